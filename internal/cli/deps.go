// Package cli checks the external tools pcmkctl drives.
package cli

import (
	"context"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bgdnvk/pcmkctl/internal/command"
)

// Tool is one external program to check.
type Tool struct {
	Name string
	// Path is looked up in PATH when it has no directory part.
	Path        string
	VersionArgs []string
	// VersionRe extracts the version from the tool output. The first
	// submatch is used when present.
	VersionRe *regexp.Regexp
	Required  bool
	Purpose   string
}

// DependencyStatus represents the status of a CLI tool
type DependencyStatus struct {
	Name      string
	Path      string
	Installed bool
	Version   string
	Required  bool
	Message   string
}

var (
	pacemakerVersionRe = regexp.MustCompile(`Pacemaker (\d+\.\d+\.\d+)`)
	libxmlVersionRe    = regexp.MustCompile(`libxml version (\d+)`)
)

// PacemakerTools returns the tools pcmkctl uses. xmllint is only required
// when it validates agent metadata.
func PacemakerTools(crmResource, crmAttribute, xmllint string, xmllintRequired bool) []Tool {
	return []Tool{
		{
			Name:        "crm_resource",
			Path:        crmResource,
			VersionArgs: []string{"--version"},
			VersionRe:   pacemakerVersionRe,
			Required:    true,
			Purpose:     "loading and listing resource agents",
		},
		{
			Name:        "crm_attribute",
			Path:        crmAttribute,
			VersionArgs: []string{"--version"},
			VersionRe:   pacemakerVersionRe,
			Required:    true,
			Purpose:     "loading cluster options",
		},
		{
			Name:        "xmllint",
			Path:        xmllint,
			VersionArgs: []string{"--version"},
			VersionRe:   libxmlVersionRe,
			Required:    xmllintRequired,
			Purpose:     "RelaxNG validation of agent metadata",
		},
	}
}

// DependencyChecker handles detection of CLI tools
type DependencyChecker struct {
	runner   command.Runner
	lookPath func(string) (string, error)
}

// NewDependencyChecker creates a new dependency checker
func NewDependencyChecker(runner command.Runner) *DependencyChecker {
	return &DependencyChecker{runner: runner, lookPath: exec.LookPath}
}

// CheckAll checks all tools.
func (d *DependencyChecker) CheckAll(ctx context.Context, tools []Tool) []DependencyStatus {
	statuses := make([]DependencyStatus, 0, len(tools))
	for _, tool := range tools {
		statuses = append(statuses, d.Check(ctx, tool))
	}
	return statuses
}

// CheckMissing returns only the missing required dependencies
func (d *DependencyChecker) CheckMissing(ctx context.Context, tools []Tool) []DependencyStatus {
	var missing []DependencyStatus
	for _, dep := range d.CheckAll(ctx, tools) {
		if !dep.Installed && dep.Required {
			missing = append(missing, dep)
		}
	}
	return missing
}

// Check checks a single tool.
func (d *DependencyChecker) Check(ctx context.Context, tool Tool) DependencyStatus {
	status := DependencyStatus{
		Name:     tool.Name,
		Required: tool.Required,
	}

	path := tool.Path
	if path == "" {
		path = tool.Name
	}
	if filepath.Base(path) == path {
		found, err := d.lookPath(path)
		if err != nil {
			status.Message = tool.Name + " is not installed (needed for " + tool.Purpose + ")"
			return status
		}
		path = found
	}
	status.Path = path

	result, err := d.runner.Run(ctx, "", append([]string{path}, tool.VersionArgs...)...)
	if err != nil {
		status.Message = tool.Name + " cannot be run: " + err.Error()
		return status
	}
	status.Installed = true

	output := command.JoinOutput(result)
	status.Version = strings.TrimSpace(strings.SplitN(output, "\n", 2)[0])
	if tool.VersionRe != nil {
		if m := tool.VersionRe.FindStringSubmatch(output); m != nil {
			status.Version = m[len(m)-1]
		}
	}
	return status
}
