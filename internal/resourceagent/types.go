package resourceagent

import "sort"

// OCF metadata versions pcmkctl knows how to read.
const (
	OcfVersion10 = "1.0"
	OcfVersion11 = "1.1"
)

// Parameter describes one configurable attribute of an agent.
type Parameter struct {
	Name      string
	Shortdesc *string
	Longdesc  *string
	Type      string
	Default   *string
	// EnumValues is non-nil only for the "select" type.
	EnumValues []string
	Required   bool
	Advanced   bool
	Deprecated bool
	// DeprecatedBy lists the parameters replacing this one. It may be empty
	// for a deprecated parameter and may name parameters which don't exist.
	DeprecatedBy   []string
	DeprecatedDesc *string
	// UniqueGroup groups parameters whose combined value must be unique
	// across all resources of the agent.
	UniqueGroup *string
	Reloadable  bool
}

// Action describes one operation an agent supports.
type Action struct {
	Name       string
	Timeout    *string
	Interval   *string
	Role       *string
	StartDelay *string
	// Depth is nil when not specified, which differs from "0".
	Depth     *string
	Automatic bool
	OnTarget  bool
}

// Metadata is the version independent description of an agent.
//
// Metadata values are never modified in place. Every transformation builds a
// new value with its own parameter and action slices.
type Metadata struct {
	Name        AgentName
	AgentExists bool
	OcfVersion  string
	Shortdesc   *string
	Longdesc    *string
	Parameters  []Parameter
	Actions     []Action
}

// ProvidesUnfencing reports whether a fence agent requires unfencing.
func (m Metadata) ProvidesUnfencing() bool {
	if !m.Name.IsStonith() {
		return false
	}
	for _, action := range m.Actions {
		if action.Name == "on" && action.Automatic && action.OnTarget {
			return true
		}
	}
	return false
}

// ProvidesSelfValidation reports whether the agent can validate its own
// configuration.
func (m Metadata) ProvidesSelfValidation() bool {
	return m.hasAction("validate-all")
}

// ProvidesPromotability reports whether the agent can run promotable clones.
func (m Metadata) ProvidesPromotability() bool {
	return m.hasAction("promote") && m.hasAction("demote")
}

func (m Metadata) hasAction(name string) bool {
	for _, action := range m.Actions {
		if action.Name == name {
			return true
		}
	}
	return false
}

// UniqueParameterGroups maps unique group names to the names of parameters
// in them, in metadata order.
func (m Metadata) UniqueParameterGroups() map[string][]string {
	groups := make(map[string][]string)
	for _, param := range m.Parameters {
		if param.UniqueGroup == nil {
			continue
		}
		groups[*param.UniqueGroup] = append(groups[*param.UniqueGroup], param.Name)
	}
	return groups
}

// ParameterNames returns the names of all parameters, sorted.
func (m Metadata) ParameterNames() []string {
	names := make([]string, 0, len(m.Parameters))
	for _, param := range m.Parameters {
		names = append(names, param.Name)
	}
	sort.Strings(names)
	return names
}

// Parameter looks up a parameter by name.
func (m Metadata) Parameter(name string) (Parameter, bool) {
	for _, param := range m.Parameters {
		if param.Name == name {
			return param, true
		}
	}
	return Parameter{}, false
}

func (p Parameter) clone() Parameter {
	out := p
	if p.EnumValues != nil {
		out.EnumValues = append([]string{}, p.EnumValues...)
	}
	if p.DeprecatedBy != nil {
		out.DeprecatedBy = append([]string{}, p.DeprecatedBy...)
	}
	return out
}

func (m Metadata) clone() Metadata {
	out := m
	out.Parameters = nil
	if m.Parameters != nil {
		out.Parameters = make([]Parameter, 0, len(m.Parameters))
		for _, param := range m.Parameters {
			out.Parameters = append(out.Parameters, param.clone())
		}
	}
	if m.Actions != nil {
		out.Actions = append([]Action{}, m.Actions...)
	}
	return out
}

func strPtr(s string) *string {
	return &s
}
