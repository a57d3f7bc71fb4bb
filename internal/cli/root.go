// Package cli implements the netlistx commands: the interactive netlist
// dialog and its headless counterparts
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/nettracex/netlistx/internal/config"
	"github.com/nettracex/netlistx/internal/dialog"
	"github.com/nettracex/netlistx/internal/domain"
	"github.com/nettracex/netlistx/internal/host"
	"github.com/nettracex/netlistx/internal/logging"
	"github.com/nettracex/netlistx/internal/netlist"
	"github.com/nettracex/netlistx/internal/process"
	"github.com/nettracex/netlistx/internal/version"
	"github.com/spf13/cobra"
)

// globalFlags are the persistent flags shared by every command
type globalFlags struct {
	configFile string
	verbose    bool
}

// NewRootCommand creates the netlistx command tree
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "netlistx",
		Short: "Schematic netlist export dialog",
		Long: `Export a schematic netlist as Pcbnew, OrcadPCB2, CadStar or Spice, or
through user generator commands.

Examples:
  netlistx dialog amp.net                       # Open the netlist dialog
  netlistx export amp.net --format Spice        # Write amp.cir
  netlistx generators add BOM 'xsltproc -o "%O.csv" bom2csv.xsl "%I"'`,
		Version:       version.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "configuration file")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(newDialogCommand(flags))
	rootCmd.AddCommand(newExportCommand(flags))
	rootCmd.AddCommand(newSimulateCommand(flags))
	rootCmd.AddCommand(newGeneratorsCommand(flags))
	rootCmd.AddCommand(newSettingsCommand(flags))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the command tree and exits non-zero on error
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var nerr *domain.NetlistError
		if errors.As(err, &nerr) && nerr.Cause != nil {
			fmt.Fprintf(os.Stderr, "Cause: %v\n", nerr.Cause)
		}
		os.Exit(1)
	}
}

// loadConfig reads the configuration file named by --config, or searches
// the default locations
func (f *globalFlags) loadConfig() (*config.Manager, error) {
	manager := config.NewManager()

	if f.configFile != "" {
		if err := manager.LoadFromFile(f.configFile); err != nil {
			return nil, err
		}
		return manager, nil
	}

	if err := manager.Load(); err != nil {
		return nil, err
	}
	return manager, nil
}

// newLogger builds the logger of the logging section. --verbose forces
// debug level.
func (f *globalFlags) newLogger(cfg domain.LoggingConfig) (*logging.Logger, error) {
	if f.verbose {
		cfg.Level = "debug"
	}
	return logging.FromConfig(cfg)
}

// session is everything a command needs to drive the dialog shell for one
// design file
type session struct {
	manager  *config.Manager
	logger   *logging.Logger
	launcher *process.Launcher
	editor   *host.Editor
	shell    *dialog.Shell
	limit    int

	// formatName is the project's default format before the first shell
	// was built. Building a shell may force a default onto the host.
	formatName string
}

// openSession loads the configuration and builds the shell for design. tweak,
// when set, adjusts the logging configuration before the logger is created.
func (f *globalFlags) openSession(design string, tweak func(*domain.LoggingConfig)) (*session, error) {
	manager, err := f.loadConfig()
	if err != nil {
		return nil, err
	}

	logCfg := manager.GetLoggingConfig()
	if tweak != nil {
		tweak(&logCfg)
	}
	logger, err := f.newLogger(logCfg)
	if err != nil {
		return nil, err
	}

	netCfg := manager.GetNetlistConfig()
	projectDir := host.ProjectDirFor(design)

	launcher := process.NewLauncher(logger,
		process.WithShell(netCfg.Shell),
		process.WithDir(projectDir),
	)
	exporter := netlist.NewExporter(launcher, logger, netCfg.IntermediateExt, projectDir)

	editor, err := host.NewEditor(design, manager, exporter, logger)
	if err != nil {
		logger.Close()
		return nil, err
	}

	s := &session{
		manager:  manager,
		logger:   logger,
		launcher: launcher,
		editor:   editor,
		limit:    netCfg.MaxCustomTargets,

		formatName: editor.NetlistFormatName(),
	}
	s.reopen()
	return s, nil
}

// reopen builds the shell from the current settings
func (s *session) reopen() {
	s.shell = dialog.NewShell(s.editor, s.manager, s.launcher, s.logger, dialog.Options{
		MaxCustomTargets: s.limit,
	})
}

func (s *session) close() {
	s.logger.Close()
}
