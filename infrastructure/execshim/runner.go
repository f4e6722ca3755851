package execshim

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"audiosweep/infrastructure/console"
)

// CommandRunner defines the interface for running external commands
// This allows mocking exec.Command in tests and swapping in dry-run rendering
type CommandRunner interface {
	// Run executes a command and returns any error
	Run(ctx context.Context, tag console.Tag, name string, args ...string) error

	// Output executes a command and returns its standard output
	Output(ctx context.Context, tag console.Tag, name string, args ...string) ([]byte, error)
}

// ExecRunner is the production implementation using os/exec. Every
// invocation is traced with its engine tag; stderr is captured and attached
// to the error on failure, and additionally teed to os.Stderr in verbose
// mode.
type ExecRunner struct {
	printer *console.Printer
	verbose bool
}

// NewExecRunner creates an ExecRunner tracing through printer
func NewExecRunner(printer *console.Printer, verbose bool) *ExecRunner {
	return &ExecRunner{printer: printer, verbose: verbose}
}

// Run implements CommandRunner
func (r *ExecRunner) Run(ctx context.Context, tag console.Tag, name string, args ...string) error {
	r.printer.Command(tag, name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = engineEnv()
	cmd.Stdin = nil

	var stderr bytes.Buffer
	if r.verbose {
		cmd.Stderr = io.MultiWriter(&stderr, os.Stderr)
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s failed: %w: %s", name, err, lastLine(msg))
		}
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}

// Output implements CommandRunner
func (r *ExecRunner) Output(ctx context.Context, tag console.Tag, name string, args ...string) ([]byte, error) {
	r.printer.Command(tag, name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = engineEnv()
	return cmd.Output()
}

// engineEnv forces the transcoding engine's own log output to be uncolored
// so the shim's engine tags stay authoritative.
func engineEnv() []string {
	return append(os.Environ(), "AV_LOG_FORCE_NOCOLOR=1")
}

func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

// DryRunner renders each command as a shell-quotable line instead of
// executing it. Nothing is ever invoked.
type DryRunner struct {
	printer *console.Printer
}

// NewDryRunner creates a DryRunner printing through printer
func NewDryRunner(printer *console.Printer) *DryRunner {
	return &DryRunner{printer: printer}
}

// Run implements CommandRunner by printing the rendered command line
func (r *DryRunner) Run(ctx context.Context, tag console.Tag, name string, args ...string) error {
	r.printer.Plan(name, args)
	return nil
}

// Output implements CommandRunner; probing is not possible without
// executing, so the command is rendered and no output returned.
func (r *DryRunner) Output(ctx context.Context, tag console.Tag, name string, args ...string) ([]byte, error) {
	r.printer.Plan(name, args)
	return nil, nil
}
