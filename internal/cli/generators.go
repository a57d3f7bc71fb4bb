package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/nettracex/netlistx/internal/config"
	"github.com/nettracex/netlistx/internal/dialog"
	"github.com/spf13/cobra"
)

type generatorFlags struct {
	design string
}

func newGeneratorsCommand(flags *globalFlags) *cobra.Command {
	opts := &generatorFlags{}

	cmd := &cobra.Command{
		Use:     "generators",
		Aliases: []string{"gen", "plugins"},
		Short:   "Manage user netlist generators",
		Long: `Generators are external commands that turn the intermediate XML netlist
into another format. The command may use %I (intermediate file), %O (output
file without extension), %B (output base name) and %P (project directory).`,
	}

	cmd.PersistentFlags().StringVarP(&opts.design, "design", "d", ".", "design whose project settings are updated")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the configured generators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGeneratorsList(cmd.OutOrStdout(), flags)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <title> <command>",
		Short: "Add a generator",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGeneratorsAdd(cmd.OutOrStdout(), flags, opts, args[0], args[1])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <title>",
		Short: "Remove a generator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGeneratorsRemove(cmd.OutOrStdout(), flags, opts, args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import <catalog>",
		Short: "Add the generators of a JSON, JSONC or YAML catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGeneratorsImport(cmd.OutOrStdout(), flags, opts, args[0])
		},
	})

	return cmd
}

func runGeneratorsList(out io.Writer, flags *globalFlags) error {
	manager, err := flags.loadConfig()
	if err != nil {
		return err
	}

	limit := manager.GetNetlistConfig().MaxCustomTargets
	targets := config.LoadTargets(manager, limit)
	if len(targets) == 0 {
		fmt.Fprintln(out, "No generators configured")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "TITLE", "COMMAND")
	for i, target := range targets {
		t.Row(strconv.Itoa(i+1), target.Title, target.Command)
	}

	fmt.Fprintln(out, t.Render())
	return nil
}

func runGeneratorsAdd(out io.Writer, flags *globalFlags, opts *generatorFlags, title, command string) error {
	s, err := flags.openSession(opts.design, nil)
	if err != nil {
		return err
	}
	defer s.close()

	if _, err := s.shell.AddCustomTarget(title, command); err != nil {
		return userError(err)
	}

	fmt.Fprintf(out, "Added generator %q\n", title)
	return nil
}

func runGeneratorsRemove(out io.Writer, flags *globalFlags, opts *generatorFlags, title string) error {
	s, err := flags.openSession(opts.design, nil)
	if err != nil {
		return err
	}
	defer s.close()

	i := s.shell.IndexOf(title)
	if i < 0 {
		return fmt.Errorf("no generator named %q", title)
	}
	if err := s.shell.SetActive(i); err != nil {
		return err
	}
	if _, err := s.shell.RemoveCustomTarget(); err != nil {
		return userError(err)
	}

	fmt.Fprintf(out, "Removed generator %q\n", title)
	return nil
}

func runGeneratorsImport(out io.Writer, flags *globalFlags, opts *generatorFlags, path string) error {
	catalog, err := config.LoadCatalog(path)
	if err != nil {
		return err
	}

	s, err := flags.openSession(opts.design, nil)
	if err != nil {
		return err
	}
	defer s.close()

	added := 0
	for _, g := range catalog.Generators {
		_, err := s.shell.AddCustomTarget(g.Title, g.Command)
		switch {
		case errors.Is(err, dialog.ErrDuplicateTarget):
			fmt.Fprintf(out, "Skipped %q: already exists\n", g.Title)
		case err != nil:
			return userError(err)
		default:
			added++
		}
	}

	fmt.Fprintf(out, "Imported %d of %d generators\n", added, len(catalog.Generators))
	return nil
}

// userError replaces validation errors with the message the dialog shows
func userError(err error) error {
	if msg := dialog.Message(err); msg != err.Error() {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return err
}
