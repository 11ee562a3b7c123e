package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bgdnvk/pcmkctl/internal/command"
)

func newTestChecker(runner command.Runner, installed map[string]string) *DependencyChecker {
	checker := NewDependencyChecker(runner)
	checker.lookPath = func(name string) (string, error) {
		if path, ok := installed[name]; ok {
			return path, nil
		}
		return "", errors.New("executable file not found in $PATH")
	}
	return checker
}

func TestCheckPacemakerTools(t *testing.T) {
	runner := command.NewFakeRunner()
	runner.Set(command.Result{Stdout: "Pacemaker 2.1.7\nWritten by Andrew Beekhof and the Pacemaker project contributors\n"}, "/usr/sbin/crm_resource", "--version")
	runner.Set(command.Result{Stdout: "Pacemaker 2.1.7\n"}, "/usr/sbin/crm_attribute", "--version")
	runner.Set(command.Result{Stderr: "xmllint: using libxml version 20913\n   compiled with: Threads Tree Output\n"}, "/usr/bin/xmllint", "--version")

	checker := newTestChecker(runner, map[string]string{"xmllint": "/usr/bin/xmllint"})
	statuses := checker.CheckAll(context.Background(), PacemakerTools("/usr/sbin/crm_resource", "/usr/sbin/crm_attribute", "xmllint", false))

	require.Len(t, statuses, 3)
	assert.Equal(t, DependencyStatus{Name: "crm_resource", Path: "/usr/sbin/crm_resource", Installed: true, Version: "2.1.7", Required: true}, statuses[0])
	assert.Equal(t, "2.1.7", statuses[1].Version)
	assert.Equal(t, "20913", statuses[2].Version)
	assert.Equal(t, "/usr/bin/xmllint", statuses[2].Path)
	assert.False(t, statuses[2].Required)
}

func TestCheckMissing(t *testing.T) {
	runner := command.NewFakeRunner()
	runner.SetError(errors.New("fork/exec /usr/sbin/crm_resource: no such file or directory"), "/usr/sbin/crm_resource", "--version")
	runner.Set(command.Result{Stdout: "Pacemaker 2.1.7\n"}, "/usr/sbin/crm_attribute", "--version")

	checker := newTestChecker(runner, nil)

	missing := checker.CheckMissing(context.Background(), PacemakerTools("/usr/sbin/crm_resource", "/usr/sbin/crm_attribute", "xmllint", false))
	require.Len(t, missing, 1)
	assert.Equal(t, "crm_resource", missing[0].Name)
	assert.Contains(t, missing[0].Message, "cannot be run")

	missing = checker.CheckMissing(context.Background(), PacemakerTools("/usr/sbin/crm_resource", "/usr/sbin/crm_attribute", "xmllint", true))
	require.Len(t, missing, 2)
	assert.Equal(t, "xmllint is not installed (needed for RelaxNG validation of agent metadata)", missing[1].Message)
}

func TestCheckUnparsedVersion(t *testing.T) {
	runner := command.NewFakeRunner()
	runner.Set(command.Result{Stdout: "custom build\nmore\n"}, "/opt/crm_resource", "--version")

	checker := newTestChecker(runner, nil)
	status := checker.Check(context.Background(), Tool{
		Name:        "crm_resource",
		Path:        "/opt/crm_resource",
		VersionArgs: []string{"--version"},
		VersionRe:   pacemakerVersionRe,
	})
	assert.True(t, status.Installed)
	assert.Equal(t, "custom build", status.Version)
}
