package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nettracex/netlistx/internal/config"
	"github.com/nettracex/netlistx/internal/domain"
	"github.com/nettracex/netlistx/internal/tui"
	"github.com/nettracex/netlistx/internal/version"
	"github.com/spf13/cobra"
)

func newSettingsCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Edit the netlistx configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := flags.loadConfig()
			if err != nil {
				return err
			}

			themes := tui.NewThemeManager()
			themes.SetTheme(manager.GetUIConfig().Theme)

			model := config.NewConfigUIModel(manager)
			themes.ApplyThemeToComponent(model)
			manager.AddChangeListener(followTheme(themes, model))

			if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
				return fmt.Errorf("settings editor failed: %w", err)
			}
			return nil
		},
	}
}

// followTheme re-themes component when ui.theme is changed
func followTheme(themes *tui.ThemeManager, component domain.TUIComponent) config.ConfigChangeListener {
	return func(key string, _, newValue interface{}) {
		if key != "ui.theme" {
			return
		}
		if name, ok := newValue.(string); ok && themes.SetTheme(name) {
			themes.ApplyThemeToComponent(component)
		}
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Get().Detailed())
		},
	}
}
