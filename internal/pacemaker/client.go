// Package pacemaker runs the pacemaker command line tools to obtain agent
// metadata and agent listings.
package pacemaker

import (
	"context"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bgdnvk/pcmkctl/internal/command"
	"github.com/bgdnvk/pcmkctl/internal/resourceagent"
)

// Default locations of pacemaker tools.
const (
	DefaultCrmResource  = "/usr/sbin/crm_resource"
	DefaultCrmAttribute = "/usr/sbin/crm_attribute"
	DefaultDaemonDir    = "/usr/libexec/pacemaker"
	DefaultTimeout      = 30 * time.Second
)

// Config locates the pacemaker tools.
type Config struct {
	CrmResource  string
	CrmAttribute string
	DaemonDir    string
	// Timeout bounds every tool invocation, zero means no limit.
	Timeout time.Duration
}

// DefaultConfig returns the paths used by pacemaker packages.
func DefaultConfig() Config {
	return Config{
		CrmResource:  DefaultCrmResource,
		CrmAttribute: DefaultCrmAttribute,
		DaemonDir:    DefaultDaemonDir,
		Timeout:      DefaultTimeout,
	}
}

// Client provides pacemaker command execution capabilities.
type Client struct {
	runner command.Runner
	config Config
	logger *slog.Logger
}

var (
	_ resourceagent.MetadataLoader = (*Client)(nil)
	_ resourceagent.AgentLister    = (*Client)(nil)
)

// NewClient creates a new pacemaker client.
func NewClient(runner command.Runner, config Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{runner: runner, config: config, logger: logger}
}

// LoadAgentMetadata returns the raw metadata of an installed agent.
func (c *Client) LoadAgentMetadata(ctx context.Context, name resourceagent.AgentName) (string, error) {
	result, err := c.run(ctx, c.config.CrmResource, "--show-metadata", name.FullName())
	if err != nil {
		return "", &resourceagent.AgentLoadError{AgentName: name.FullName(), Reason: err.Error()}
	}
	if result.ExitCode != 0 {
		return "", &resourceagent.AgentLoadError{AgentName: name.FullName(), Reason: command.JoinOutput(result)}
	}
	return result.Stdout, nil
}

// LoadFakeAgentMetadata returns the raw metadata of a pacemaker daemon or of
// the cluster options. Cluster options come wrapped in a pacemaker-result
// envelope.
func (c *Client) LoadFakeAgentMetadata(ctx context.Context, fake string) (string, error) {
	if !resourceagent.IsFakeAgentName(fake) {
		return "", &resourceagent.UnknownFakeAgentError{AgentName: fake}
	}

	var args []string
	if fake == resourceagent.FakeAgentClusterOptions {
		args = []string{c.config.CrmAttribute, "--list-options=cluster", "--all", "--output-as=xml"}
	} else {
		args = []string{filepath.Join(c.config.DaemonDir, fake), "metadata"}
	}

	result, err := c.run(ctx, args...)
	if err != nil {
		return "", &resourceagent.AgentLoadError{AgentName: fake, Reason: err.Error()}
	}
	// the envelope carries its own error status, daemons only ever print
	// metadata on success
	if strings.TrimSpace(result.Stdout) == "" {
		reason := command.JoinOutput(result)
		if reason == "" {
			reason = "no metadata returned"
		}
		return "", &resourceagent.AgentLoadError{AgentName: fake, Reason: reason}
	}
	return result.Stdout, nil
}

// ListStandards lists agent standards pacemaker supports.
func (c *Client) ListStandards(ctx context.Context) ([]string, error) {
	return c.list(ctx, "--list-standards")
}

// ListOcfProviders lists installed OCF agent providers.
func (c *Client) ListOcfProviders(ctx context.Context) ([]string, error) {
	return c.list(ctx, "--list-ocf-providers")
}

// ListAgents lists agent types of a standard, or of "ocf:<provider>".
func (c *Client) ListAgents(ctx context.Context, standardProvider string) ([]string, error) {
	return c.list(ctx, "--list-agents", standardProvider)
}

func (c *Client) list(ctx context.Context, args ...string) ([]string, error) {
	result, err := c.run(ctx, append([]string{c.config.CrmResource}, args...)...)
	if err != nil {
		return nil, err
	}
	if result.ExitCode != 0 {
		return nil, &CommandError{Args: args, Output: command.JoinOutput(result)}
	}

	seen := make(map[string]bool)
	var items []string
	for _, line := range strings.Split(result.Stdout, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || seen[line] {
			continue
		}
		seen[line] = true
		items = append(items, line)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i]) < strings.ToLower(items[j])
	})
	return items, nil
}

func (c *Client) run(ctx context.Context, args ...string) (command.Result, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}
	c.logger.Debug("running pacemaker tool", "args", args)
	return c.runner.Run(ctx, "", args...)
}
