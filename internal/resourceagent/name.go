// Package resourceagent turns resource agent metadata into a single model and
// builds validators from it.
//
// Raw agent metadata comes in two incompatible OCF schema versions. It is
// parsed into a version specific record, unified into Metadata, run through
// the pcs policy transforms and finally wrapped in a Facade which the
// configuration layer consumes.
package resourceagent

import (
	"regexp"
	"strings"
)

// Agent standards understood by pacemaker.
const (
	StandardOcf     = "ocf"
	StandardStonith = "stonith"
	StandardSystemd = "systemd"
	StandardService = "service"
	StandardLsb     = "lsb"

	// FakeAgentStandard marks pseudo agents describing options of the
	// pacemaker daemons. It never appears in a CIB.
	FakeAgentStandard = "__pcmk_internal"
)

// Pacemaker daemons and tools exposing their options as agent metadata.
const (
	FakeAgentClusterOptions      = "cluster-options"
	FakeAgentPacemakerBased      = "pacemaker-based"
	FakeAgentPacemakerControld   = "pacemaker-controld"
	FakeAgentPacemakerFenced     = "pacemaker-fenced"
	FakeAgentPacemakerSchedulerd = "pacemaker-schedulerd"
)

// FakeAgentNames lists all known fake agents.
var FakeAgentNames = []string{
	FakeAgentClusterOptions,
	FakeAgentPacemakerBased,
	FakeAgentPacemakerControld,
	FakeAgentPacemakerFenced,
	FakeAgentPacemakerSchedulerd,
}

// IsFakeAgentName reports whether name identifies a known fake agent.
func IsFakeAgentName(name string) bool {
	for _, fake := range FakeAgentNames {
		if fake == name {
			return true
		}
	}
	return false
}

// AgentName identifies a resource agent. Provider is empty unless Standard
// is "ocf".
type AgentName struct {
	Standard string
	Provider string
	Type     string
}

// NewFakeAgentName returns the name of a daemon exposed fake agent.
func NewFakeAgentName(fake string) AgentName {
	return AgentName{Standard: FakeAgentStandard, Type: fake}
}

// FullName renders the name the way pacemaker tools expect it.
func (n AgentName) FullName() string {
	parts := []string{n.Standard}
	if n.Provider != "" {
		parts = append(parts, n.Provider)
	}
	parts = append(parts, n.Type)
	return strings.Join(parts, ":")
}

func (n AgentName) String() string {
	return n.FullName()
}

// IsStonith reports whether the agent is a fence agent.
func (n AgentName) IsStonith() bool {
	return n.Standard == StandardStonith
}

// IsOcf reports whether the agent follows the OCF standard.
func (n AgentName) IsOcf() bool {
	return n.Standard == StandardOcf
}

// IsPcmkFakeAgent reports whether the agent describes a pacemaker daemon.
func (n AgentName) IsPcmkFakeAgent() bool {
	return n.Standard == FakeAgentStandard
}

var (
	// systemd:lvm2-pvscan@252:2 - the second colon is part of the type
	unitInstanceNameRe = regexp.MustCompile(`^(systemd|service):([^:@]+@.*)$`)
	agentNameRe        = regexp.MustCompile(`^([^:]+)(?::([^:]+))?:([^:]+)$`)
)

// ParseAgentName splits a full agent name such as "ocf:heartbeat:IPaddr2"
// or "stonith:fence_xvm".
func ParseAgentName(fullName string) (AgentName, error) {
	if m := unitInstanceNameRe.FindStringSubmatch(fullName); m != nil {
		return AgentName{Standard: m[1], Type: m[2]}, nil
	}
	m := agentNameRe.FindStringSubmatch(fullName)
	if m == nil {
		return AgentName{}, &InvalidAgentNameError{Name: fullName}
	}
	name := AgentName{Standard: m[1], Provider: m[2], Type: m[3]}
	if name.IsOcf() != (name.Provider != "") {
		return AgentName{}, &InvalidAgentNameError{Name: fullName}
	}
	return name, nil
}

// ParseStonithAgentName accepts a bare fence agent type as well as a full
// "stonith:type" name.
func ParseStonithAgentName(name string) (AgentName, error) {
	if strings.Contains(name, ":") {
		parsed, err := ParseAgentName(name)
		if err != nil {
			return AgentName{}, err
		}
		if !parsed.IsStonith() {
			return AgentName{}, &InvalidAgentNameError{Name: name}
		}
		return parsed, nil
	}
	if name == "" {
		return AgentName{}, &InvalidAgentNameError{Name: name}
	}
	return AgentName{Standard: StandardStonith, Type: name}, nil
}
