// Package netlist reads design netlists and writes them in the export
// formats offered by the netlist dialog
package netlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nettracex/netlistx/internal/domain"
)

// ToolName is written into every netlist header
const ToolName = "netlistx"

// Exporter implements domain.NetlistWriter
type Exporter struct {
	launcher        domain.ProcessLauncher
	logger          domain.Logger
	intermediateExt string
	projectDir      string
	now             func() time.Time
}

// NewExporter creates an exporter. launcher runs custom generator commands;
// intermediateExt is the extension of the file handed to them as %I.
func NewExporter(launcher domain.ProcessLauncher, logger domain.Logger, intermediateExt, projectDir string) *Exporter {
	if intermediateExt == "" {
		intermediateExt = "xml"
	}
	return &Exporter{
		launcher:        launcher,
		logger:          logger,
		intermediateExt: intermediateExt,
		projectDir:      projectDir,
		now:             time.Now,
	}
}

// Write serialises nl to path in the given format. command is only used by
// custom formats.
func (e *Exporter) Write(nl *domain.Netlist, format domain.NetlistFormat, path string, opts domain.NetlistOptions, command string) error {
	if nl == nil {
		return &domain.NetlistError{
			Type:      domain.ErrorTypeExport,
			Message:   "no netlist to write",
			Code:      "NETLIST_EMPTY",
			Timestamp: e.now(),
		}
	}

	if format.IsCustom() {
		return e.writeCustom(nl, path, command)
	}

	write, err := e.formatter(format, opts)
	if err != nil {
		return err
	}

	if err := e.writeFile(path, func(w io.Writer) error { return write(w, nl) }); err != nil {
		return err
	}

	e.logger.Info("Netlist written", "format", format.Name(), "path", path,
		"components", len(nl.Components), "nets", len(nl.Nets))
	return nil
}

type formatFunc func(w io.Writer, nl *domain.Netlist) error

func (e *Exporter) formatter(format domain.NetlistFormat, opts domain.NetlistOptions) (formatFunc, error) {
	date := e.now().Format(time.RFC1123)

	switch format.Kind {
	case domain.FormatPcbnew:
		return func(w io.Writer, nl *domain.Netlist) error { return WritePcbnew(w, nl, date) }, nil
	case domain.FormatOrcadPCB2:
		return func(w io.Writer, nl *domain.Netlist) error { return WriteOrcadPCB2(w, nl, date) }, nil
	case domain.FormatCadStar:
		return func(w io.Writer, nl *domain.Netlist) error { return WriteCadStar(w, nl, date) }, nil
	case domain.FormatSpice:
		adjust := opts.Has(domain.OptAdjustPassiveValues)
		return func(w io.Writer, nl *domain.Netlist) error { return WriteSpice(w, nl, date, adjust) }, nil
	}
	return nil, fmt.Errorf("unsupported netlist format %s", format)
}

// writeFile creates path and hands a buffered writer to fn
func (e *Exporter) writeFile(path string, fn func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return &domain.NetlistError{
			Type:      domain.ErrorTypeExport,
			Message:   fmt.Sprintf("failed to create %s", path),
			Cause:     err,
			Context:   map[string]interface{}{"path": path},
			Code:      "NETLIST_CREATE_FAILED",
			Timestamp: e.now(),
		}
	}

	bw := bufio.NewWriter(f)
	if err := fn(bw); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
