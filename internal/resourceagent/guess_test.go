package resourceagent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bgdnvk/pcmkctl/internal/reports"
)

type fakeLister struct {
	standards []string
	providers []string
	agents    map[string][]string
	err       error
}

func (l fakeLister) ListStandards(context.Context) ([]string, error) {
	return l.standards, l.err
}

func (l fakeLister) ListOcfProviders(context.Context) ([]string, error) {
	return l.providers, nil
}

func (l fakeLister) ListAgents(_ context.Context, standardProvider string) ([]string, error) {
	return l.agents[standardProvider], nil
}

func newFakeLister() fakeLister {
	return fakeLister{
		standards: []string{"lsb", "ocf", "service", "stonith", "systemd"},
		providers: []string{"heartbeat", "pacemaker"},
		agents: map[string][]string{
			"lsb":           {"network"},
			"ocf:heartbeat": {"apache", "IPaddr2", "Dummy"},
			"ocf:pacemaker": {"Dummy", "Stateful"},
			"service":       {"httpd", "network"},
			"stonith":       {"fence_xvm"},
			"systemd":       {"httpd"},
		},
	}
}

func TestListAllAgents(t *testing.T) {
	names, err := ListAllAgents(context.Background(), newFakeLister())
	require.NoError(t, err)

	fullNames := make([]string, 0, len(names))
	for _, name := range names {
		fullNames = append(fullNames, name.FullName())
	}
	assert.Equal(t, []string{
		"lsb:network",
		"ocf:heartbeat:Dummy",
		"ocf:heartbeat:IPaddr2",
		"ocf:heartbeat:apache",
		"ocf:pacemaker:Dummy",
		"ocf:pacemaker:Stateful",
		"service:httpd",
		"service:network",
		"systemd:httpd",
	}, fullNames)
}

func TestFindOneAgentByType(t *testing.T) {
	name, err := FindOneAgentByType(context.Background(), newFakeLister(), "ipaddr2")
	require.NoError(t, err)
	assert.Equal(t, ipaddr2Name, name)

	_, err = FindOneAgentByType(context.Background(), newFakeLister(), "fence_xvm")
	var noneErr *AgentNameGuessFoundNoneError
	require.ErrorAs(t, err, &noneErr)
	assert.Equal(t, "fence_xvm", noneErr.Search)

	_, err = FindOneAgentByType(context.Background(), newFakeLister(), "dummy")
	var moreErr *AgentNameGuessFoundMoreThanOneError
	require.ErrorAs(t, err, &moreErr)
	assert.Equal(t, []string{"ocf:heartbeat:Dummy", "ocf:pacemaker:Dummy"}, moreErr.Names)
}

func TestFindOneAgentByTypeListFailure(t *testing.T) {
	lister := newFakeLister()
	lister.err = errors.New("crm_resource not found")

	_, err := FindOneAgentByType(context.Background(), lister, "IPaddr2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "crm_resource not found")
}

func TestGuessedReport(t *testing.T) {
	item := GuessedReport("ipaddr2", ipaddr2Name)
	assert.Equal(t, "Assumed agent name 'ocf:heartbeat:IPaddr2' (deduced from 'ipaddr2')", item.Message)
	assert.Equal(t, reports.Info(), item.Severity)
}
