package command

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunner_Success(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	runner := NewExecRunner(nil)

	result, err := runner.Run(context.Background(), "", "sh", "-c", "echo out; echo err >&2")
	require.NoError(t, err)
	assert.Equal(t, "out\n", result.Stdout)
	assert.Equal(t, "err\n", result.Stderr)
	assert.Equal(t, 0, result.ExitCode)
}

func TestExecRunner_NonZeroExitIsNotAnError(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	runner := NewExecRunner(nil)

	result, err := runner.Run(context.Background(), "", "sh", "-c", "echo broken >&2; exit 3")
	require.NoError(t, err)
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, "broken\n", result.Stderr)
}

func TestExecRunner_Stdin(t *testing.T) {
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}
	runner := NewExecRunner(nil)

	result, err := runner.Run(context.Background(), "<xml/>", "cat")
	require.NoError(t, err)
	assert.Equal(t, "<xml/>", result.Stdout)
}

func TestExecRunner_MissingExecutable(t *testing.T) {
	runner := NewExecRunner(nil)

	_, err := runner.Run(context.Background(), "", "/nonexistent/pcmkctl-test-binary")
	assert.Error(t, err)
}

func TestExecRunner_NoCommand(t *testing.T) {
	runner := NewExecRunner(nil)

	_, err := runner.Run(context.Background(), "")
	assert.Error(t, err)
}

func TestJoinOutput(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{"both", Result{Stdout: "out\n", Stderr: "err\n"}, "err\nout"},
		{"stderr only", Result{Stderr: "  err  "}, "err"},
		{"stdout only", Result{Stdout: "out"}, "out"},
		{"empty", Result{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinOutput(tt.result))
		})
	}
}
