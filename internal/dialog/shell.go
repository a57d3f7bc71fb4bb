// Package dialog implements the netlist export dialog: one page per export
// target, default format selection, netlist generation, the simulator run
// and user generator management. It has no UI of its own; the terminal UI
// and the CLI both drive a Shell.
package dialog

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nettracex/netlistx/internal/config"
	"github.com/nettracex/netlistx/internal/domain"
	"github.com/nettracex/netlistx/internal/process"
)

// Page is one export target
type Page struct {
	Format domain.NetlistFormat
	// Name identifies the page as the default format. Fixed at creation.
	Name string
	// Title is the editable display title of a generator page
	Title string
	// Command is the generator command, or the simulator command on the
	// Spice page
	Command   string
	IsDefault bool
	// AdjustPassiveValues is only used by the Spice page
	AdjustPassiveValues bool
}

// Label returns the tab label
func (p *Page) Label() string {
	if p.Format.IsCustom() && p.Title != "" {
		return p.Title
	}
	return p.Name
}

// Options configures a Shell
type Options struct {
	// MaxCustomTargets bounds how many generators are loaded and can be added
	MaxCustomTargets int
}

// Shell owns the pages of one dialog session
type Shell struct {
	host     domain.Host
	store    domain.SettingsStore
	launcher domain.ProcessLauncher
	logger   domain.Logger

	pages  []*Page
	active int
	limit  int
	// previous is the number of generators found in the store at
	// construction, whatever the limit
	previous          int
	useDefaultNetname bool
}

// NewShell builds the fixed pages and the persisted generator pages. The page
// named by the host's default format becomes default and active. When none
// matches, Pcbnew is made default and the host is told.
func NewShell(host domain.Host, store domain.SettingsStore, launcher domain.ProcessLauncher, logger domain.Logger, opts Options) *Shell {
	limit := opts.MaxCustomTargets
	if limit <= 0 {
		limit = config.DefaultCustomTargetLimit
	}

	s := &Shell{
		host:              host,
		store:             store,
		launcher:          launcher,
		logger:            logger,
		limit:             limit,
		previous:          len(config.LoadTargets(store, config.MaxCustomTargetLimit)),
		useDefaultNetname: store.GetBool(config.KeyUseDefaultNetname),
	}

	for _, f := range domain.FixedFormats() {
		page := &Page{Format: f, Name: f.Name()}
		if f == domain.SpiceFormat {
			page.Command = host.SimulatorCommand()
			page.AdjustPassiveValues = host.SpiceAdjustPassiveValues()
		}
		s.pages = append(s.pages, page)
	}

	for slot, target := range config.CustomTargets(store, limit) {
		s.pages = append(s.pages, &Page{
			Format:  domain.CustomFormat(slot),
			Name:    target.Title,
			Title:   target.Title,
			Command: target.Command,
		})
	}

	current := host.NetlistFormatName()
	for i, p := range s.pages {
		if current != "" && p.Name == current {
			p.IsDefault = true
			s.active = i
			break
		}
	}

	if s.DefaultIndex() < 0 {
		s.pages[0].IsDefault = true
		s.active = 0
		host.SetNetlistFormatName(s.pages[0].Name)
		logger.Debug("No default netlist format, using first page", "format", s.pages[0].Name)
	}

	return s
}

// Pages returns every page in tab order
func (s *Shell) Pages() []*Page {
	return s.pages
}

// Page returns the page at index i
func (s *Shell) Page(i int) *Page {
	return s.pages[i]
}

// Active returns the index of the active page
func (s *Shell) Active() int {
	return s.active
}

// ActivePage returns the active page
func (s *Shell) ActivePage() *Page {
	return s.pages[s.active]
}

// SetActive switches to page i
func (s *Shell) SetActive(i int) error {
	if i < 0 || i >= len(s.pages) {
		return fmt.Errorf("page index %d out of range", i)
	}
	s.active = i
	return nil
}

// Limit returns the maximum number of generators
func (s *Shell) Limit() int {
	return s.limit
}

// SpicePage returns the Spice page
func (s *Shell) SpicePage() *Page {
	return s.pageFor(domain.SpiceFormat)
}

func (s *Shell) pageFor(f domain.NetlistFormat) *Page {
	for _, p := range s.pages {
		if p.Format == f {
			return p
		}
	}
	return nil
}

// IndexOf returns the index of the page with the given name, or -1
func (s *Shell) IndexOf(name string) int {
	for i, p := range s.pages {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// DefaultIndex returns the index of the default page, or -1
func (s *Shell) DefaultIndex() int {
	for i, p := range s.pages {
		if p.IsDefault {
			return i
		}
	}
	return -1
}

// DefaultName returns the name of the default page, or "" when there is none
func (s *Shell) DefaultName() string {
	if i := s.DefaultIndex(); i >= 0 {
		return s.pages[i].Name
	}
	return ""
}

// SelectDefault makes page i the only default page
func (s *Shell) SelectDefault(i int) error {
	if i < 0 || i >= len(s.pages) {
		return fmt.Errorf("page index %d out of range", i)
	}
	for _, p := range s.pages {
		p.IsDefault = false
	}
	s.pages[i].IsDefault = true
	s.host.SetNetlistFormatName(s.pages[i].Name)
	return nil
}

// UseDefaultNetname reports the "use default net name" flag
func (s *Shell) UseDefaultNetname() bool {
	return s.useDefaultNetname
}

// SetUseDefaultNetname sets the "use default net name" flag
func (s *Shell) SetUseDefaultNetname(use bool) {
	s.useDefaultNetname = use
}

// customPages returns the generator pages in slot order
func (s *Shell) customPages() []*Page {
	var pages []*Page
	for _, p := range s.pages {
		if p.Format.IsCustom() {
			pages = append(pages, p)
		}
	}
	return pages
}

// syncOptions hands the Spice options and the default format to the host
func (s *Shell) syncOptions() {
	if spice := s.SpicePage(); spice != nil {
		s.host.SetSpiceAdjustPassiveValues(spice.AdjustPassiveValues)
		s.host.SetSimulatorCommand(spice.Command)
	}
	s.host.SetNetlistFormatName(s.DefaultName())
}

// PersistSettings writes the generators as a compacted numbered sequence,
// blanks every following slot a previous session may have used, stores the
// flags and saves the store
func (s *Shell) PersistSettings() error {
	s.syncOptions()

	var targets []config.Target
	for _, p := range s.customPages() {
		targets = append(targets, config.Target{Title: p.Title, Command: p.Command})
	}

	clearTo := max(s.limit, s.previous)
	if err := config.StoreTargets(s.store, targets, clearTo); err != nil {
		return err
	}

	if err := s.store.Set(config.KeyUseDefaultNetname, s.useDefaultNetname); err != nil {
		return fmt.Errorf("failed to store %s: %w", config.KeyUseDefaultNetname, err)
	}

	if err := s.store.Save(); err != nil {
		return fmt.Errorf("failed to save netlist settings: %w", err)
	}

	s.logger.Debug("Netlist settings saved", "generators", len(targets))
	return nil
}

// AddCustomTarget appends a generator page and persists it. The caller
// should rebuild the dialog when it returns ResultPluginChanged.
func (s *Shell) AddCustomTarget(title, command string) (domain.DialogResult, error) {
	title = strings.TrimSpace(title)
	if err := ValidateGenerator(title, command); err != nil {
		return domain.ResultCancel, err
	}

	used := 0
	for _, p := range s.pages {
		if p.Format.IsCustom() && p.Title == "" {
			// removed in this session
			continue
		}
		if p.Name == title || p.Title == title {
			return domain.ResultCancel, fmt.Errorf("%w: %s", ErrDuplicateTarget, title)
		}
		if p.Format.IsCustom() {
			used++
		}
	}

	if used >= s.limit {
		return domain.ResultCancel, ErrNoFreeSlot
	}

	s.pages = append(s.pages, &Page{
		Format:  domain.CustomFormat(len(s.customPages())),
		Name:    title,
		Title:   title,
		Command: command,
	})

	if err := s.PersistSettings(); err != nil {
		return domain.ResultCancel, err
	}

	s.logger.Info("Netlist generator added", "title", title)
	return domain.ResultPluginChanged, nil
}

// RemoveCustomTarget clears the active generator page and persists. When it
// was the default, the first fixed page becomes default.
func (s *Shell) RemoveCustomTarget() (domain.DialogResult, error) {
	page := s.ActivePage()
	if !page.Format.IsCustom() {
		return domain.ResultCancel, ErrNotCustomTarget
	}

	title := page.Title
	page.Title = ""
	page.Command = ""

	if page.IsDefault {
		if err := s.SelectDefault(0); err != nil {
			return domain.ResultCancel, err
		}
	}

	if err := s.PersistSettings(); err != nil {
		return domain.ResultCancel, err
	}

	s.logger.Info("Netlist generator removed", "title", title)
	return domain.ResultPluginChanged, nil
}

// schematicBase returns the directory and the extensionless base name of the
// schematic. The directory falls back to the project directory.
func (s *Shell) schematicBase() (dir, base string) {
	schematic := s.host.SchematicFileName()
	dir = filepath.Dir(schematic)
	if dir == "." || dir == "" {
		dir = s.host.ProjectDir()
	}
	name := filepath.Base(schematic)
	base = strings.TrimSuffix(name, filepath.Ext(name))
	return dir, base
}

// launchSimulator splits the command and starts the simulator on netlistPath
func (s *Shell) launchSimulator(command, netlistPath string) error {
	executable, args := process.SplitCommand(command)
	return s.launcher.Launch(executable, args, netlistPath)
}
