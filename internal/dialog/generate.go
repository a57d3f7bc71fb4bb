package dialog

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nettracex/netlistx/internal/domain"
)

// SaveRequest describes the save chooser shown before a netlist is written
type SaveRequest struct {
	// Title is the chooser title
	Title    string
	Dir      string
	FileName string
	// Wildcard is a "description|pattern" filter hint
	Wildcard string
	Format   domain.NetlistFormat
	Options  domain.NetlistOptions
	// Command is handed to the host as the netlister command
	Command string
}

// DefaultPath returns the path the chooser starts with
func (r SaveRequest) DefaultPath() string {
	return filepath.Join(r.Dir, r.FileName)
}

// Outcome reports what CompleteGenerate did
type Outcome struct {
	Result domain.DialogResult
	// Closed is false when the save was cancelled and the dialog stays open
	Closed bool
	// Notice is a message to show the user before closing
	Notice string
	// Path is the written netlist, empty when nothing was written
	Path string
}

// PrepareGenerate syncs the page options to the host and describes the save
// chooser for the active page
func (s *Shell) PrepareGenerate() SaveRequest {
	s.syncOptions()

	page := s.ActivePage()
	dir, base := s.schematicBase()

	req := SaveRequest{
		Title:  "Save Netlist File",
		Dir:    dir,
		Format: page.Format,
	}

	ext, wildcard, known := page.Format.FileParams()
	switch {
	case page.Format.IsCustom():
		ext = CustomExtension(page.Command, page.Title)
		req.Title = fmt.Sprintf("%s Export", page.Title)
		req.Command = page.Command
		if ext != "" {
			wildcard = fmt.Sprintf("%s files (*.%s)|*.%s", strings.ToUpper(ext), ext, ext)
		}
	case !known:
		ext = ""
	}

	if page.Format == domain.SpiceFormat && page.AdjustPassiveValues {
		req.Options |= domain.OptAdjustPassiveValues
	}

	req.FileName = base
	if ext != "" {
		req.FileName += "." + ext
	}
	req.Wildcard = wildcard

	return req
}

// CompleteGenerate finishes a generation started by PrepareGenerate. An empty
// path means the chooser was cancelled: settings are persisted and the dialog
// stays open. Otherwise the host builds the netlist and writes it to path.
// Settings are persisted in every case.
func (s *Shell) CompleteGenerate(req SaveRequest, path string) (Outcome, error) {
	if strings.TrimSpace(path) == "" {
		s.logger.Debug("Netlist save cancelled")
		return Outcome{Result: domain.ResultCancel}, s.PersistSettings()
	}

	outcome := Outcome{Result: domain.ResultOK, Closed: true}

	s.host.SetNetlisterCommand(req.Command)
	nl, err := s.host.CreateNetlist()
	switch {
	case err != nil:
		s.logger.Error("Failed to build netlist", "error", err)
		outcome.Notice = MsgNetlistUnavailable
	case nl == nil:
		outcome.Notice = MsgNetlistUnavailable
	default:
		if werr := s.host.WriteNetlistFile(nl, req.Format, path, req.Options); werr != nil {
			s.logger.Error("Failed to write netlist", "path", path, "error", werr)
			outcome.Notice = fmt.Sprintf("Failed to write netlist: %v", werr)
		} else {
			outcome.Path = path
		}
	}

	if err := s.PersistSettings(); err != nil {
		return outcome, err
	}
	return outcome, nil
}

// Generate writes the active page's netlist to path, or to the default path
// when path is empty. It is the non-interactive form of PrepareGenerate and
// CompleteGenerate.
func (s *Shell) Generate(path string) (Outcome, error) {
	req := s.PrepareGenerate()
	if path == "" {
		path = req.DefaultPath()
	}
	return s.CompleteGenerate(req, path)
}

// RunSimulator writes a Spice netlist next to the schematic and starts the
// simulator command on it. When the netlist cannot be written the simulator
// is not started and no error is reported.
func (s *Shell) RunSimulator() error {
	spice := s.SpicePage()
	command := strings.TrimSpace(spice.Command)
	spice.Command = command
	s.host.SetSimulatorCommand(command)

	dir, base := s.schematicBase()
	netlistPath := filepath.Join(dir, base+".cir")

	var opts domain.NetlistOptions
	if spice.AdjustPassiveValues {
		opts |= domain.OptAdjustPassiveValues
	}

	s.host.SetNetlisterCommand("")
	nl, err := s.host.CreateNetlist()
	if err != nil || nl == nil {
		s.logger.Debug("Simulator netlist not available", "error", err)
		return nil
	}
	if err := s.host.WriteNetlistFile(nl, domain.SpiceFormat, netlistPath, opts); err != nil {
		s.logger.Debug("Simulator netlist not written", "path", netlistPath, "error", err)
		return nil
	}

	return s.launchSimulator(command, netlistPath)
}
