package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/nettracex/netlistx/internal/dialog"
	"github.com/nettracex/netlistx/internal/domain"
	"github.com/spf13/cobra"
)

type exportFlags struct {
	format string
	output string
}

func newExportCommand(flags *globalFlags) *cobra.Command {
	opts := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export <design>",
		Short: "Write a netlist without opening the dialog",
		Long: `Write the netlist of a design in one format. Without --format the
default format of the project is used; without --output the file is written
next to the design.

Examples:
  netlistx export amp.net
  netlistx export amp.net --format CadStar -o out/amp.frp
  netlistx export amp.net --format BOM`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.OutOrStdout(), flags, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "format or generator title")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file")

	return cmd
}

func runExport(out io.Writer, flags *globalFlags, opts *exportFlags, design string) error {
	s, err := flags.openSession(design, nil)
	if err != nil {
		return err
	}
	defer s.close()

	if opts.format != "" {
		i, err := pageIndex(s.shell, opts.format)
		if err != nil {
			return err
		}
		if err := s.shell.SetActive(i); err != nil {
			return err
		}
	}

	outcome, err := s.shell.Generate(opts.output)
	if err != nil {
		return err
	}
	if outcome.Notice != "" {
		return errors.New(outcome.Notice)
	}

	fmt.Fprintf(out, "Wrote %s netlist to %s\n", s.shell.ActivePage().Label(), outcome.Path)
	return nil
}

// pageIndex finds the page for a format name, case-insensitive for the fixed
// formats, or a generator title
func pageIndex(shell *dialog.Shell, name string) (int, error) {
	if f, ok := domain.ParseFormatName(name); ok {
		name = f.Name()
	}
	if i := shell.IndexOf(name); i >= 0 {
		return i, nil
	}
	return -1, fmt.Errorf("unknown netlist format or generator %q", name)
}

type simulateFlags struct {
	command string
}

func newSimulateCommand(flags *globalFlags) *cobra.Command {
	opts := &simulateFlags{}

	cmd := &cobra.Command{
		Use:   "simulate <design>",
		Short: "Write the Spice netlist and start the simulator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd.OutOrStdout(), flags, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.command, "command", "", "simulator command, overrides the project setting")

	return cmd
}

func runSimulate(out io.Writer, flags *globalFlags, opts *simulateFlags, design string) error {
	s, err := flags.openSession(design, nil)
	if err != nil {
		return err
	}
	defer s.close()

	spice := s.shell.SpicePage()
	if opts.command != "" {
		spice.Command = opts.command
	}
	if spice.Command == "" {
		return errors.New("no simulator command configured, use --command or set project.simulator_command")
	}

	if err := s.shell.RunSimulator(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Started %s\n", spice.Command)
	return nil
}
