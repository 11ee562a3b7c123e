package resourceagent

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// AgentLister lists installed agents.
type AgentLister interface {
	ListStandards(ctx context.Context) ([]string, error)
	ListOcfProviders(ctx context.Context) ([]string, error)
	// ListAgents lists agent types of a standard, or of "ocf:<provider>".
	ListAgents(ctx context.Context, standardProvider string) ([]string, error)
}

// ListAllAgents returns the names of every installed agent, sorted by full
// name. Fence agents are not included.
func ListAllAgents(ctx context.Context, lister AgentLister) ([]AgentName, error) {
	standards, err := lister.ListStandards(ctx)
	if err != nil {
		return nil, fmt.Errorf("list standards: %w", err)
	}

	var names []AgentName
	for _, standard := range standards {
		switch standard {
		case StandardStonith:
			continue
		case StandardOcf:
			providers, err := lister.ListOcfProviders(ctx)
			if err != nil {
				return nil, fmt.Errorf("list ocf providers: %w", err)
			}
			for _, provider := range providers {
				types, err := lister.ListAgents(ctx, StandardOcf+":"+provider)
				if err != nil {
					return nil, fmt.Errorf("list agents of ocf:%s: %w", provider, err)
				}
				for _, agentType := range types {
					names = append(names, AgentName{Standard: StandardOcf, Provider: provider, Type: agentType})
				}
			}
		default:
			types, err := lister.ListAgents(ctx, standard)
			if err != nil {
				return nil, fmt.Errorf("list agents of %s: %w", standard, err)
			}
			for _, agentType := range types {
				names = append(names, AgentName{Standard: standard, Type: agentType})
			}
		}
	}
	sort.Slice(names, func(i, j int) bool {
		return names[i].FullName() < names[j].FullName()
	})
	return names, nil
}

// FindOneAgentByType returns the only installed agent whose type matches
// search, ignoring case.
func FindOneAgentByType(ctx context.Context, lister AgentLister, search string) (AgentName, error) {
	all, err := ListAllAgents(ctx, lister)
	if err != nil {
		return AgentName{}, err
	}

	var found []AgentName
	for _, name := range all {
		if strings.EqualFold(name.Type, search) {
			found = append(found, name)
		}
	}
	switch len(found) {
	case 0:
		return AgentName{}, &AgentNameGuessFoundNoneError{Search: search}
	case 1:
		return found[0], nil
	default:
		fullNames := make([]string, 0, len(found))
		for _, name := range found {
			fullNames = append(fullNames, name.FullName())
		}
		sort.Strings(fullNames)
		return AgentName{}, &AgentNameGuessFoundMoreThanOneError{Search: search, Names: fullNames}
	}
}
