package dialog

import (
	"errors"
	"testing"

	"github.com/nettracex/netlistx/internal/config"
	"github.com/nettracex/netlistx/internal/domain"
	"github.com/nettracex/netlistx/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mapStore is an in-memory domain.SettingsStore
type mapStore struct {
	values map[string]interface{}
	saves  int
	setErr error
}

func newMapStore(kv ...interface{}) *mapStore {
	s := &mapStore{values: make(map[string]interface{})}
	for i := 0; i+1 < len(kv); i += 2 {
		s.values[kv[i].(string)] = kv[i+1]
	}
	return s
}

func (s *mapStore) GetString(key string) string {
	v, _ := s.values[key].(string)
	return v
}

func (s *mapStore) GetBool(key string) bool {
	v, _ := s.values[key].(bool)
	return v
}

func (s *mapStore) Set(key string, value interface{}) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = value
	return nil
}

func (s *mapStore) Save() error {
	s.saves++
	return nil
}

// fakeHost records what the dialog hands to the host editor
type fakeHost struct {
	schematic        string
	projectDir       string
	formatName       string
	formatNameSets   int
	simulatorCommand string
	adjust           bool
	netlisterCommand string

	netlist  *domain.Netlist
	buildErr error
	writeErr error
	written  []writeCall
}

type writeCall struct {
	format domain.NetlistFormat
	path   string
	opts   domain.NetlistOptions
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		schematic:  "/work/amp/amp.sch",
		projectDir: "/work/amp",
		netlist:    &domain.Netlist{Components: []domain.Component{{Ref: "R1", Value: "1k"}}},
	}
}

func (h *fakeHost) SchematicFileName() string { return h.schematic }
func (h *fakeHost) ProjectDir() string        { return h.projectDir }
func (h *fakeHost) NetlistFormatName() string { return h.formatName }
func (h *fakeHost) SetNetlistFormatName(name string) {
	h.formatName = name
	h.formatNameSets++
}
func (h *fakeHost) SimulatorCommand() string             { return h.simulatorCommand }
func (h *fakeHost) SetSimulatorCommand(command string)   { h.simulatorCommand = command }
func (h *fakeHost) SpiceAdjustPassiveValues() bool       { return h.adjust }
func (h *fakeHost) SetSpiceAdjustPassiveValues(adj bool) { h.adjust = adj }
func (h *fakeHost) SetNetlisterCommand(command string)   { h.netlisterCommand = command }
func (h *fakeHost) CreateNetlist() (*domain.Netlist, error) {
	return h.netlist, h.buildErr
}
func (h *fakeHost) WriteNetlistFile(nl *domain.Netlist, format domain.NetlistFormat, path string, opts domain.NetlistOptions) error {
	if h.writeErr != nil {
		return h.writeErr
	}
	h.written = append(h.written, writeCall{format: format, path: path, opts: opts})
	return nil
}
func (h *fakeHost) SaveProjectSettings() error { return nil }

type MockLauncher struct {
	mock.Mock
}

func (m *MockLauncher) Launch(executable, args string, files ...string) error {
	return m.Called(executable, args, files).Error(0)
}

func (m *MockLauncher) LaunchShell(commandLine string) error {
	return m.Called(commandLine).Error(0)
}

func newShell(host *fakeHost, store *mapStore) (*Shell, *MockLauncher) {
	launcher := &MockLauncher{}
	return NewShell(host, store, launcher, logging.NewNop(), Options{MaxCustomTargets: 8}), launcher
}

func defaults(s *Shell) int {
	n := 0
	for _, p := range s.Pages() {
		if p.IsDefault {
			n++
		}
	}
	return n
}

func TestNewShellFixedPages(t *testing.T) {
	host := newFakeHost()
	host.simulatorCommand = "ngspice"
	host.adjust = true
	s, _ := newShell(host, newMapStore())

	require.Len(t, s.Pages(), 4)
	assert.Equal(t, "Pcbnew", s.Page(0).Name)
	assert.Equal(t, "Spice", s.Page(3).Name)
	assert.Equal(t, "ngspice", s.SpicePage().Command)
	assert.True(t, s.SpicePage().AdjustPassiveValues)
}

func TestNewShellLoadsContiguousGenerators(t *testing.T) {
	store := newMapStore(
		config.TitleKey(1), "MyGen",
		config.CommandKey(1), "foo.xsl",
		config.TitleKey(2), "",
		config.TitleKey(3), "Orphan",
		config.CommandKey(3), "orphan",
	)
	s, _ := newShell(newFakeHost(), store)

	require.Len(t, s.Pages(), 5)
	gen := s.Page(4)
	assert.Equal(t, domain.CustomFormat(0), gen.Format)
	assert.Equal(t, "MyGen", gen.Title)
	assert.Equal(t, "foo.xsl", gen.Command)
	assert.Equal(t, -1, s.IndexOf("Orphan"))
}

func TestNewShellHonoursLimit(t *testing.T) {
	store := newMapStore()
	for i := 1; i <= 5; i++ {
		store.values[config.TitleKey(i)] = string(rune('A' + i - 1))
	}
	launcher := &MockLauncher{}
	s := NewShell(newFakeHost(), store, launcher, logging.NewNop(), Options{MaxCustomTargets: 3})

	assert.Len(t, s.Pages(), 7)
	assert.Equal(t, 3, s.Limit())
}

func TestNewShellExactlyOneDefault(t *testing.T) {
	store := newMapStore(config.TitleKey(1), "MyGen", config.CommandKey(1), "gen")

	for _, current := range []string{"", "Pcbnew", "Spice", "MyGen", "Unknown"} {
		t.Run(current, func(t *testing.T) {
			host := newFakeHost()
			host.formatName = current
			s, _ := newShell(host, store)

			assert.Equal(t, 1, defaults(s))
			assert.Equal(t, s.DefaultIndex(), s.Active())
			assert.Equal(t, s.DefaultName(), host.formatName)
		})
	}
}

func TestNewShellForcesPcbnewDefault(t *testing.T) {
	host := newFakeHost()
	host.formatName = "Removed"
	s, _ := newShell(host, newMapStore())

	assert.True(t, s.Page(0).IsDefault)
	assert.Equal(t, 0, s.Active())
	assert.Equal(t, "Pcbnew", host.formatName)
	assert.Equal(t, 1, host.formatNameSets)
}

func TestNewShellSelectsHostDefault(t *testing.T) {
	host := newFakeHost()
	host.formatName = "CadStar"
	s, _ := newShell(host, newMapStore())

	assert.Equal(t, 2, s.Active())
	assert.Equal(t, "CadStar", s.DefaultName())
	assert.Zero(t, host.formatNameSets)
}

func TestSelectDefaultClearsOthers(t *testing.T) {
	store := newMapStore(
		config.TitleKey(1), "A", config.CommandKey(1), "a",
		config.TitleKey(2), "B", config.CommandKey(2), "b",
	)
	host := newFakeHost()
	host.formatName = "A"
	s, _ := newShell(host, store)
	require.True(t, s.Page(4).IsDefault)

	require.NoError(t, s.SelectDefault(5))
	assert.Equal(t, 1, defaults(s))
	assert.True(t, s.Page(5).IsDefault)
	assert.False(t, s.Page(4).IsDefault)
	assert.Equal(t, "B", host.formatName)

	require.NoError(t, s.SelectDefault(1))
	assert.Equal(t, 1, defaults(s))
	assert.Equal(t, "OrcadPCB2", host.formatName)

	assert.Error(t, s.SelectDefault(9))
	assert.Error(t, s.SetActive(-1))
}

func TestAddCustomTarget(t *testing.T) {
	store := newMapStore(config.TitleKey(1), "MyGen", config.CommandKey(1), "foo.xsl")
	s, _ := newShell(newFakeHost(), store)

	result, err := s.AddCustomTarget("BOM", `python "bom.py" "%I" "%O"`)
	require.NoError(t, err)
	assert.Equal(t, domain.ResultPluginChanged, result)

	assert.Equal(t, "MyGen", store.GetString(config.TitleKey(1)))
	assert.Equal(t, "BOM", store.GetString(config.TitleKey(2)))
	assert.Equal(t, `python "bom.py" "%I" "%O"`, store.GetString(config.CommandKey(2)))
	assert.Equal(t, 1, store.saves)

	reopened, _ := newShell(newFakeHost(), store)
	assert.Len(t, reopened.Pages(), 6)
}

func TestAddCustomTargetRejectsBlankTitle(t *testing.T) {
	store := newMapStore()
	s, _ := newShell(newFakeHost(), store)

	result, err := s.AddCustomTarget("", "run.sh")
	assert.ErrorIs(t, err, ErrMissingTitle)
	assert.Equal(t, domain.ResultCancel, result)
	assert.Len(t, s.Pages(), 4)
	assert.Zero(t, store.saves)

	_, err = s.AddCustomTarget("Gen", "  ")
	assert.ErrorIs(t, err, ErrMissingCommand)
}

func TestAddCustomTargetRejectsDuplicates(t *testing.T) {
	store := newMapStore(config.TitleKey(1), "MyGen", config.CommandKey(1), "foo.xsl")
	s, _ := newShell(newFakeHost(), store)

	_, err := s.AddCustomTarget("MyGen", "other")
	assert.ErrorIs(t, err, ErrDuplicateTarget)
	assert.Equal(t, MsgDuplicateTarget, Message(err))

	_, err = s.AddCustomTarget("Spice", "other")
	assert.ErrorIs(t, err, ErrDuplicateTarget)

	assert.Len(t, s.Pages(), 5)
	assert.Zero(t, store.saves)
}

func TestAddCustomTargetRejectsWhenFull(t *testing.T) {
	store := newMapStore()
	launcher := &MockLauncher{}
	s := NewShell(newFakeHost(), store, launcher, logging.NewNop(), Options{MaxCustomTargets: 1})

	_, err := s.AddCustomTarget("A", "a")
	require.NoError(t, err)

	_, err = s.AddCustomTarget("B", "b")
	assert.ErrorIs(t, err, ErrNoFreeSlot)
}

func TestRemoveCustomTarget(t *testing.T) {
	store := newMapStore(
		config.TitleKey(1), "A", config.CommandKey(1), "a",
		config.TitleKey(2), "B", config.CommandKey(2), "b",
		config.TitleKey(3), "C", config.CommandKey(3), "c",
	)
	host := newFakeHost()
	host.formatName = "B"
	s, _ := newShell(host, store)
	require.Equal(t, 5, s.Active())

	result, err := s.RemoveCustomTarget()
	require.NoError(t, err)
	assert.Equal(t, domain.ResultPluginChanged, result)

	// Default moves to the first fixed page
	assert.True(t, s.Page(0).IsDefault)
	assert.Equal(t, 1, defaults(s))
	assert.Equal(t, "Pcbnew", host.formatName)

	// Compacted: C moves up to slot 2, slot 3 is blanked
	assert.Equal(t, "A", store.GetString(config.TitleKey(1)))
	assert.Equal(t, "C", store.GetString(config.TitleKey(2)))
	assert.Equal(t, "c", store.GetString(config.CommandKey(2)))
	assert.Equal(t, "", store.GetString(config.TitleKey(3)))
	assert.Equal(t, "", store.GetString(config.CommandKey(3)))
}

func TestRemoveCustomTargetOnFixedPage(t *testing.T) {
	s, _ := newShell(newFakeHost(), newMapStore())

	_, err := s.RemoveCustomTarget()
	assert.ErrorIs(t, err, ErrNotCustomTarget)
}

func TestRemoveThenAddSameTitle(t *testing.T) {
	store := newMapStore(config.TitleKey(1), "A", config.CommandKey(1), "a")
	s, _ := newShell(newFakeHost(), store)
	require.NoError(t, s.SetActive(4))

	_, err := s.RemoveCustomTarget()
	require.NoError(t, err)

	_, err = s.AddCustomTarget("A", "a2")
	require.NoError(t, err)
	assert.Equal(t, "a2", store.GetString(config.CommandKey(1)))
}

func TestPersistSettingsClearsStaleSlots(t *testing.T) {
	store := newMapStore()
	for i := 1; i <= 12; i++ {
		store.values[config.TitleKey(i)] = "old"
		store.values[config.CommandKey(i)] = "old"
	}
	launcher := &MockLauncher{}
	s := NewShell(newFakeHost(), store, launcher, logging.NewNop(), Options{MaxCustomTargets: 2})
	s.SetUseDefaultNetname(true)

	require.NoError(t, s.PersistSettings())

	assert.Equal(t, "old", store.GetString(config.TitleKey(2)))
	for i := 3; i <= 12; i++ {
		assert.Empty(t, store.GetString(config.TitleKey(i)), i)
	}
	assert.True(t, store.GetBool(config.KeyUseDefaultNetname))
}

func TestPersistSettingsSyncsHost(t *testing.T) {
	host := newFakeHost()
	s, _ := newShell(host, newMapStore())

	s.SpicePage().Command = "ngspice -b"
	s.SpicePage().AdjustPassiveValues = true
	require.NoError(t, s.SelectDefault(3))
	require.NoError(t, s.PersistSettings())

	assert.Equal(t, "ngspice -b", host.simulatorCommand)
	assert.True(t, host.adjust)
	assert.Equal(t, "Spice", host.formatName)
}

func TestPersistSettingsStoreError(t *testing.T) {
	store := newMapStore()
	s, _ := newShell(newFakeHost(), store)
	store.setErr = errors.New("read-only")

	assert.Error(t, s.PersistSettings())
	assert.Zero(t, store.saves)
}

func TestPageLabel(t *testing.T) {
	p := &Page{Format: domain.CustomFormat(0), Name: "Old", Title: "New"}
	assert.Equal(t, "New", p.Label())

	p.Title = ""
	assert.Equal(t, "Old", p.Label())
	assert.Equal(t, "Spice", (&Page{Format: domain.SpiceFormat, Name: "Spice"}).Label())
}
