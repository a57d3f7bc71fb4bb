// Package process starts external programs (simulators and netlist
// generators) without waiting for them to finish
package process

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/google/shlex"
	"github.com/nettracex/netlistx/internal/domain"
)

// ErrEmptyCommand is returned when there is nothing to run
var ErrEmptyCommand = errors.New("empty command")

// Starter starts cmd. The default starter does not wait for the process.
type Starter func(cmd *exec.Cmd) error

// Launcher implements domain.ProcessLauncher
type Launcher struct {
	logger domain.Logger
	shell  string
	dir    string
	start  Starter
	// literalBackslash keeps backslashes in argument strings, so Windows
	// paths survive word splitting
	literalBackslash bool
}

// Option configures a Launcher
type Option func(*Launcher)

// WithShell sets the shell command line used by LaunchShell, e.g. "bash -c".
// The command line to run is appended as the last argument.
func WithShell(shell string) Option {
	return func(l *Launcher) {
		l.shell = shell
	}
}

// WithDir sets the working directory of launched processes
func WithDir(dir string) Option {
	return func(l *Launcher) {
		l.dir = dir
	}
}

// WithLiteralBackslashes controls whether a backslash in an argument string
// is kept as is or escapes the next character. It defaults to true on Windows.
func WithLiteralBackslashes(literal bool) Option {
	return func(l *Launcher) {
		l.literalBackslash = literal
	}
}

// WithStarter replaces the function that starts processes
func WithStarter(start Starter) Option {
	return func(l *Launcher) {
		l.start = start
	}
}

// NewLauncher creates a new launcher
func NewLauncher(logger domain.Logger, opts ...Option) *Launcher {
	l := &Launcher{
		logger:           logger,
		literalBackslash: runtime.GOOS == "windows",
	}
	l.start = l.startDetached
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SplitCommand splits a command line at the first space into the executable
// and the raw argument string. Leading and trailing whitespace is trimmed.
func SplitCommand(commandLine string) (executable, args string) {
	commandLine = strings.TrimSpace(commandLine)
	executable, args, _ = strings.Cut(commandLine, " ")
	return executable, args
}

// Launch runs executable with args followed by files. args is split into
// words with shell quoting rules, but no shell is involved. files are passed
// as they are.
func (l *Launcher) Launch(executable, args string, files ...string) error {
	if executable == "" {
		return ErrEmptyCommand
	}

	if l.literalBackslash {
		args = escapeBackslashes(args)
	}
	argv, err := shlex.Split(args)
	if err != nil {
		return fmt.Errorf("failed to parse arguments %q: %w", args, err)
	}

	return l.run(exec.Command(executable, append(argv, files...)...))
}

// escapeBackslashes doubles every backslash outside single quotes, where
// shlex would otherwise treat it as an escape
func escapeBackslashes(args string) string {
	var b strings.Builder
	single, double := false, false
	for _, r := range args {
		switch {
		case r == '\'' && !double:
			single = !single
		case r == '"' && !single:
			double = !double
		case r == '\\' && !single:
			b.WriteRune(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// LaunchShell runs commandLine through the shell so redirections in
// generator templates work
func (l *Launcher) LaunchShell(commandLine string) error {
	if strings.TrimSpace(commandLine) == "" {
		return ErrEmptyCommand
	}

	shell, err := l.shellArgs()
	if err != nil {
		return err
	}

	argv := append(shell[1:], commandLine)
	return l.run(exec.Command(shell[0], argv...))
}

func (l *Launcher) shellArgs() ([]string, error) {
	if l.shell != "" {
		parts, err := shlex.Split(l.shell)
		if err != nil {
			return nil, fmt.Errorf("failed to parse shell %q: %w", l.shell, err)
		}
		if len(parts) == 0 {
			return nil, ErrEmptyCommand
		}
		return parts, nil
	}

	if runtime.GOOS == "windows" {
		return []string{"cmd", "/C"}, nil
	}
	return []string{"sh", "-c"}, nil
}

func (l *Launcher) run(cmd *exec.Cmd) error {
	cmd.Dir = l.dir

	l.logger.Info("Launching process", "args", cmd.Args)
	if err := l.start(cmd); err != nil {
		return &domain.NetlistError{
			Type:      domain.ErrorTypeProcess,
			Message:   fmt.Sprintf("failed to start %s", cmd.Path),
			Cause:     err,
			Context:   map[string]interface{}{"args": cmd.Args},
			Code:      "PROCESS_START_FAILED",
			Timestamp: time.Now(),
		}
	}
	return nil
}

// startDetached starts cmd and reaps it in the background. The exit report
// is dropped when the logger was closed in the meantime.
func (l *Launcher) startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}

	go func() {
		err := cmd.Wait()
		if err != nil {
			l.logger.Warn("Process exited with error", "pid", cmd.Process.Pid, "error", err)
			return
		}
		l.logger.Debug("Process exited", "pid", cmd.Process.Pid)
	}()

	return nil
}
