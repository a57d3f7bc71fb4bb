package cli

import (
	"github.com/nettracex/netlistx/internal/dialog"
	"github.com/nettracex/netlistx/internal/domain"
	"github.com/nettracex/netlistx/internal/tui"
	"github.com/spf13/cobra"
)

func newDialogCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "dialog <design>",
		Short: "Open the netlist dialog for a design",
		Long: `Open the interactive netlist dialog. The dialog is reopened after a
generator is added or removed so the new page set is shown.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDialog(flags, args[0])
		},
	}
}

// terminalSafe moves terminal log output to the log file while the dialog
// owns the screen
func terminalSafe(cfg *domain.LoggingConfig) {
	switch cfg.Output {
	case "", "stdout", "stderr":
		cfg.Output = "file"
	}
}

// dialogRunner shows the dialog for shell until it closes
type dialogRunner func(shell *dialog.Shell, opts tui.DialogOptions) (domain.DialogResult, error)

func runDialog(flags *globalFlags, design string) error {
	s, err := flags.openSession(design, terminalSafe)
	if err != nil {
		return err
	}
	defer s.close()

	return s.showDialog(tui.Run)
}

// showDialog runs the dialog, reopening it while the generator set changes,
// and saves the project settings when the default format changed. A default
// forced while building the shell counts as a change.
func (s *session) showDialog(run dialogRunner) error {
	ui := s.manager.GetUIConfig()
	themes := tui.NewThemeManager()
	if !themes.SetTheme(ui.Theme) {
		s.logger.Warn("Unknown theme, using default", "theme", ui.Theme, "available", themes.GetAvailableThemes())
	}
	s.logger.Debug("Opening netlist dialog", "theme", themes.GetCurrentThemeName(), "pages", len(s.shell.Pages()))

	var (
		result domain.DialogResult
		err    error
	)
	for {
		result, err = run(s.shell, tui.DialogOptions{
			Theme:     themes.GetTheme(),
			Logger:    s.logger,
			BrowseDir: s.editor.ProjectDir(),
			Mouse:     ui.Mouse,
		})
		if err != nil {
			return err
		}
		if result != domain.ResultPluginChanged {
			break
		}
		s.logger.Debug("Generators changed, reopening dialog")
		s.reopen()
	}

	s.logger.Info("Netlist dialog finished", "result", result.String())

	if s.editor.NetlistFormatName() != s.formatName {
		return s.editor.SaveProjectSettings()
	}
	return nil
}
