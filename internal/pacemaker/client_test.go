package pacemaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bgdnvk/pcmkctl/internal/command"
	"github.com/bgdnvk/pcmkctl/internal/resourceagent"
)

func newTestClient() (*Client, *command.FakeRunner) {
	runner := command.NewFakeRunner()
	return NewClient(runner, DefaultConfig(), nil), runner
}

func TestLoadAgentMetadata(t *testing.T) {
	client, runner := newTestClient()
	runner.Set(command.Result{Stdout: "<resource-agent/>"}, DefaultCrmResource, "--show-metadata", "ocf:heartbeat:IPaddr2")

	raw, err := client.LoadAgentMetadata(context.Background(), resourceagent.AgentName{Standard: "ocf", Provider: "heartbeat", Type: "IPaddr2"})
	require.NoError(t, err)
	assert.Equal(t, "<resource-agent/>", raw)
}

func TestLoadAgentMetadataFailure(t *testing.T) {
	client, runner := newTestClient()
	runner.Set(
		command.Result{ExitCode: 5, Stderr: "Metadata query for stonith:fence_none failed: No such device or address\n"},
		DefaultCrmResource, "--show-metadata", "stonith:fence_none",
	)
	runner.SetError(errors.New("exec: not found"), DefaultCrmResource, "--show-metadata", "lsb:network")

	_, err := client.LoadAgentMetadata(context.Background(), resourceagent.AgentName{Standard: "stonith", Type: "fence_none"})
	var loadErr *resourceagent.AgentLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "stonith:fence_none", loadErr.AgentName)
	assert.Equal(t, "Metadata query for stonith:fence_none failed: No such device or address", loadErr.Reason)

	_, err = client.LoadAgentMetadata(context.Background(), resourceagent.AgentName{Standard: "lsb", Type: "network"})
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "exec: not found", loadErr.Reason)
}

func TestLoadFakeAgentMetadata(t *testing.T) {
	client, runner := newTestClient()
	runner.Set(command.Result{Stdout: "<pacemaker-result/>"}, DefaultCrmAttribute, "--list-options=cluster", "--all", "--output-as=xml")
	runner.Set(command.Result{Stdout: "<resource-agent/>"}, "/usr/libexec/pacemaker/pacemaker-fenced", "metadata")

	raw, err := client.LoadFakeAgentMetadata(context.Background(), resourceagent.FakeAgentClusterOptions)
	require.NoError(t, err)
	assert.Equal(t, "<pacemaker-result/>", raw)

	raw, err = client.LoadFakeAgentMetadata(context.Background(), resourceagent.FakeAgentPacemakerFenced)
	require.NoError(t, err)
	assert.Equal(t, "<resource-agent/>", raw)
}

func TestLoadFakeAgentMetadataEmptyOutput(t *testing.T) {
	client, runner := newTestClient()
	runner.Set(command.Result{Stderr: "pacemaker-based: unknown command"}, "/usr/libexec/pacemaker/pacemaker-based", "metadata")
	runner.Set(command.Result{ExitCode: 1}, "/usr/libexec/pacemaker/pacemaker-controld", "metadata")

	_, err := client.LoadFakeAgentMetadata(context.Background(), resourceagent.FakeAgentPacemakerBased)
	var loadErr *resourceagent.AgentLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "pacemaker-based: unknown command", loadErr.Reason)

	_, err = client.LoadFakeAgentMetadata(context.Background(), resourceagent.FakeAgentPacemakerControld)
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "no metadata returned", loadErr.Reason)
}

func TestLoadFakeAgentMetadataUnknown(t *testing.T) {
	client, runner := newTestClient()

	_, err := client.LoadFakeAgentMetadata(context.Background(), "pacemakerd")
	var unknownErr *resourceagent.UnknownFakeAgentError
	require.ErrorAs(t, err, &unknownErr)
	assert.Empty(t, runner.Calls)
}

func TestListing(t *testing.T) {
	client, runner := newTestClient()
	runner.Set(command.Result{Stdout: "ocf\nlsb\nservice\nsystemd\nstonith\n"}, DefaultCrmResource, "--list-standards")
	runner.Set(command.Result{Stdout: "pacemaker\nheartbeat\n\n"}, DefaultCrmResource, "--list-ocf-providers")
	runner.Set(command.Result{Stdout: "apache\nIPaddr2\nDummy\napache\n"}, DefaultCrmResource, "--list-agents", "ocf:heartbeat")

	standards, err := client.ListStandards(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"lsb", "ocf", "service", "stonith", "systemd"}, standards)

	providers, err := client.ListOcfProviders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"heartbeat", "pacemaker"}, providers)

	agents, err := client.ListAgents(context.Background(), "ocf:heartbeat")
	require.NoError(t, err)
	assert.Equal(t, []string{"apache", "Dummy", "IPaddr2"}, agents)
}

func TestListingFailure(t *testing.T) {
	client, runner := newTestClient()
	runner.Set(command.Result{ExitCode: 6, Stderr: "No agents found for standard 'nagios'"}, DefaultCrmResource, "--list-agents", "nagios")

	_, err := client.ListAgents(context.Background(), "nagios")
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, "crm_resource --list-agents nagios failed: No agents found for standard 'nagios'", err.Error())
}

type deadlineRunner struct {
	deadline time.Time
	ok       bool
}

func (r *deadlineRunner) Run(ctx context.Context, _ string, _ ...string) (command.Result, error) {
	r.deadline, r.ok = ctx.Deadline()
	return command.Result{Stdout: "ocf\n"}, nil
}

func TestTimeout(t *testing.T) {
	runner := &deadlineRunner{}
	config := DefaultConfig()
	config.Timeout = time.Minute
	client := NewClient(runner, config, nil)

	_, err := client.ListStandards(context.Background())
	require.NoError(t, err)
	assert.True(t, runner.ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), runner.deadline, 10*time.Second)

	config.Timeout = 0
	client = NewClient(runner, config, nil)
	_, err = client.ListStandards(context.Background())
	require.NoError(t, err)
	assert.False(t, runner.ok)
}

func TestClientFeedsFactory(t *testing.T) {
	client, runner := newTestClient()
	runner.Set(command.Result{Stdout: `<resource-agent name="Dummy">
  <version>1.1</version>
  <parameters><parameter name="state" required="1"/></parameters>
  <actions><action name="monitor" interval="10s"/></actions>
</resource-agent>`}, DefaultCrmResource, "--show-metadata", "ocf:pacemaker:Dummy")

	factory := resourceagent.NewFacadeFactory(client, resourceagent.NewStructuralValidator(), nil)
	facade, err := factory.FacadeFromName(context.Background(), "ocf:pacemaker:Dummy")
	require.NoError(t, err)
	assert.Equal(t, []string{"state", "trace_file", "trace_ra"}, facade.Metadata().ParameterNames())
}
