package workflow

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Executor abstracts the external changelog command so the orchestrator can
// be tested with a recording mock.
type Executor interface {
	// Append runs the non-interactive pass for one change line.
	Append(ctx context.Context, version, line string) error
	// Edit runs the interactive edit pass attached to the user's terminal.
	Edit(ctx context.Context) error
	// FormatAppend returns the append command as it would run, for display.
	FormatAppend(version, line string) string
	// FormatEdit returns the edit command as it would run, for display.
	FormatEdit() string
}

// DchExecutor invokes the dch command.
//
// The append pass (`dch -v <version> -a <line>`) streams output and honors
// Timeout. The edit pass (`dch -e`) inherits the terminal and is never
// subject to a timeout, since it waits on a human in an editor.
type DchExecutor struct {
	// DchCmd is the command name to invoke (normally "dch").
	DchCmd string
	// Timeout in seconds for the append pass (0 = no timeout).
	Timeout int

	// Stdout and Stderr receive streamed command output. Nil means os.Stdout
	// and os.Stderr.
	Stdout *os.File
	Stderr *os.File
}

// Append runs dch -v <version> -a <line>.
func (d *DchExecutor) Append(ctx context.Context, version, line string) error {
	ctx, cancel := d.withTimeout(ctx)
	if cancel != nil {
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, d.DchCmd, "-v", version, "-a", line)
	cmd.Stdout = d.stdout()
	cmd.Stderr = d.stderr()
	cmd.Env = os.Environ()

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("%s timed out after %ds: %s", d.DchCmd, d.Timeout, d.FormatAppend(version, line))
	}
	if err != nil {
		return fmt.Errorf("%s command failed: %w", d.DchCmd, err)
	}
	return nil
}

// Edit runs dch -e with the terminal attached so the user's editor opens.
func (d *DchExecutor) Edit(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, d.DchCmd, "-e")
	cmd.Stdin = os.Stdin
	cmd.Stdout = d.stdout()
	cmd.Stderr = d.stderr()
	cmd.Env = os.Environ()

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.Canceled {
			return ctx.Err()
		}
		return fmt.Errorf("%s -e failed: %w", d.DchCmd, err)
	}
	return nil
}

// FormatAppend returns a human-readable append command string for display.
func (d *DchExecutor) FormatAppend(version, line string) string {
	return strings.Join([]string{d.DchCmd, "-v", version, "-a", shellQuote(line)}, " ")
}

// FormatEdit returns a human-readable edit command string for display.
func (d *DchExecutor) FormatEdit() string {
	return d.DchCmd + " -e"
}

// withTimeout wraps ctx with the configured timeout, if any.
func (d *DchExecutor) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.Timeout > 0 {
		return context.WithTimeout(ctx, time.Duration(d.Timeout)*time.Second)
	}
	return ctx, nil
}

func (d *DchExecutor) stdout() *os.File {
	if d.Stdout != nil {
		return d.Stdout
	}
	return os.Stdout
}

func (d *DchExecutor) stderr() *os.File {
	if d.Stderr != nil {
		return d.Stderr
	}
	return os.Stderr
}

// shellQuote quotes a string for safe display in shell command previews.
// It wraps the string in single quotes and escapes any single quotes within.
func shellQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t'\"$&|;<>()*?!~#") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}
