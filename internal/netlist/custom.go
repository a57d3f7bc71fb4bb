package netlist

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/nettracex/netlistx/internal/domain"
)

// IntermediatePath returns the path of the file handed to a generator as %I:
// the output path with its extension replaced by ext
func IntermediatePath(output, ext string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + "." + ext
}

// ExpandCommand fills in a generator command template:
//
//	%I  intermediate netlist path
//	%O  output path without extension
//	%B  output base name without extension
//	%P  project directory
//	%%  a literal percent sign
func ExpandCommand(command, input, output, projectDir string) string {
	base := strings.TrimSuffix(output, filepath.Ext(output))
	r := strings.NewReplacer(
		"%%", "%",
		"%I", input,
		"%O", base,
		"%B", filepath.Base(base),
		"%P", projectDir,
	)
	return r.Replace(command)
}

// writeCustom writes the intermediate netlist next to path and runs the
// generator command on it. Without a command only the intermediate file is
// produced.
func (e *Exporter) writeCustom(nl *domain.Netlist, path, command string) error {
	intermediate := IntermediatePath(path, e.intermediateExt)
	date := e.now().Format(time.RFC1123)

	err := e.writeFile(intermediate, func(w io.Writer) error { return WriteXML(w, nl, date) })
	if err != nil {
		return err
	}
	e.logger.Debug("Intermediate netlist written", "path", intermediate)

	if strings.TrimSpace(command) == "" {
		e.logger.Warn("Generator has no command, only the intermediate netlist was written", "path", intermediate)
		return nil
	}

	line := ExpandCommand(command, intermediate, path, e.projectDir)
	e.logger.Info("Running netlist generator", "command", line)
	return e.launcher.LaunchShell(line)
}
