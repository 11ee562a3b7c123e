package resourceagent

import (
	"fmt"
	"strings"
)

// AgentError is implemented by every failure of the metadata pipeline. Agent
// returns the agent name or the search string the failure relates to.
type AgentError interface {
	error
	Agent() string
}

// AgentLoadError means raw metadata could not be obtained at all.
type AgentLoadError struct {
	AgentName string
	Reason    string
}

func (e *AgentLoadError) Error() string {
	return fmt.Sprintf("unable to load agent '%s': %s", e.AgentName, e.Reason)
}

func (e *AgentLoadError) Agent() string { return e.AgentName }

// UnableToGetAgentMetadataError means raw metadata was obtained but could not
// be turned into Metadata. Message carries the parser or validator output
// verbatim.
type UnableToGetAgentMetadataError struct {
	AgentName string
	Message   string
}

func (e *UnableToGetAgentMetadataError) Error() string {
	return fmt.Sprintf("unable to get metadata of agent '%s': %s", e.AgentName, e.Message)
}

func (e *UnableToGetAgentMetadataError) Agent() string { return e.AgentName }

// UnsupportedOcfVersionError means the metadata declares an OCF version other
// than 1.0 and 1.1.
type UnsupportedOcfVersionError struct {
	AgentName string
	Version   string
}

func (e *UnsupportedOcfVersionError) Error() string {
	return fmt.Sprintf("agent '%s' implements unsupported OCF version '%s'", e.AgentName, e.Version)
}

func (e *UnsupportedOcfVersionError) Agent() string { return e.AgentName }

// UnknownFakeAgentError is returned for a fake agent name pacemaker does not
// provide.
type UnknownFakeAgentError struct {
	AgentName string
}

func (e *UnknownFakeAgentError) Error() string {
	return fmt.Sprintf("unknown pacemaker internal agent '%s'", e.AgentName)
}

func (e *UnknownFakeAgentError) Agent() string { return e.AgentName }

// InvalidAgentNameError is returned when a name cannot be split into
// standard, provider and type.
type InvalidAgentNameError struct {
	Name string
}

func (e *InvalidAgentNameError) Error() string {
	return fmt.Sprintf(
		"invalid resource agent name '%s', use standard:provider:type when standard is 'ocf' or standard:type otherwise",
		e.Name,
	)
}

func (e *InvalidAgentNameError) Agent() string { return e.Name }

// AgentNameGuessFoundNoneError is returned when no installed agent has the
// searched type.
type AgentNameGuessFoundNoneError struct {
	Search string
}

func (e *AgentNameGuessFoundNoneError) Error() string {
	return fmt.Sprintf("unable to find agent '%s', try specifying its full name", e.Search)
}

func (e *AgentNameGuessFoundNoneError) Agent() string { return e.Search }

// AgentNameGuessFoundMoreThanOneError is returned when several installed
// agents share the searched type. Names is sorted.
type AgentNameGuessFoundMoreThanOneError struct {
	Search string
	Names  []string
}

func (e *AgentNameGuessFoundMoreThanOneError) Error() string {
	return fmt.Sprintf(
		"multiple agents match '%s', please specify full name: %s",
		e.Search,
		strings.Join(e.Names, ", "),
	)
}

func (e *AgentNameGuessFoundMoreThanOneError) Agent() string { return e.Search }
