// Package command runs external pacemaker and libxml2 tools.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Result holds the outcome of a finished process.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes an external command. A non-zero exit code is reported in
// Result, not as an error; err is set only when the process could not run.
type Runner interface {
	Run(ctx context.Context, stdin string, args ...string) (Result, error)
}

// ExecRunner runs commands on the local machine.
type ExecRunner struct {
	logger *slog.Logger
	env    []string
}

// NewExecRunner creates a runner. Commands run in the C locale so pacemaker
// messages are not translated.
func NewExecRunner(logger *slog.Logger) *ExecRunner {
	if logger == nil {
		logger = slog.Default()
	}
	env := append(os.Environ(), "LC_ALL=C")
	return &ExecRunner{logger: logger, env: env}
}

// Run executes args[0] with the remaining args.
func (r *ExecRunner) Run(ctx context.Context, stdin string, args ...string) (Result, error) {
	if len(args) == 0 {
		return Result{}, fmt.Errorf("no command specified")
	}

	r.logger.Debug("running command", "cmd", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Env = r.env
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			result.ExitCode = exitErr.ExitCode()
			r.logger.Debug("command finished", "cmd", args[0], "exit_code", result.ExitCode)
			return result, nil
		}
		return result, fmt.Errorf("%s failed: %w", args[0], err)
	}

	r.logger.Debug("command finished", "cmd", args[0], "exit_code", 0, "stdout_bytes", stdout.Len())
	return result, nil
}

// JoinOutput merges stderr and stdout into one message the way pacemaker
// tools are usually reported.
func JoinOutput(result Result) string {
	parts := make([]string, 0, 2)
	for _, out := range []string{result.Stderr, result.Stdout} {
		if trimmed := strings.TrimSpace(out); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, "\n")
}
