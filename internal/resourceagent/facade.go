package resourceagent

import (
	"sort"
	"strings"

	"github.com/bgdnvk/pcmkctl/internal/reports"
	"github.com/bgdnvk/pcmkctl/internal/validate"
)

const defaultMonitorInterval = "60s"

// defaultOperationNames are the actions pcs adds to a newly created resource.
var defaultOperationNames = map[string]bool{
	"monitor":      true,
	"start":        true,
	"stop":         true,
	"promote":      true,
	"demote":       true,
	"migrate_to":   true,
	"migrate_from": true,
	"notify":       true,
	"reload":       true,
	"reload-agent": true,
}

// Facade gives access to policy clean metadata of one agent and builds
// validators for its parameters. A Facade is not safe for concurrent use.
type Facade struct {
	raw        Metadata
	additional []Parameter
	metadata   *Metadata
}

// NewFacade wraps unified metadata. Additional parameters are appended to the
// agent's own parameters after the pcs transforms run.
func NewFacade(md Metadata, additional []Parameter) *Facade {
	params := make([]Parameter, 0, len(additional))
	for _, param := range additional {
		params = append(params, param.clone())
	}
	return &Facade{raw: md.clone(), additional: params}
}

// Metadata returns the transformed metadata, computing it on first use.
func (f *Facade) Metadata() Metadata {
	if f.metadata == nil {
		md := PcsTransform(f.raw)
		md.Parameters = append(md.Parameters, f.additional...)
		f.metadata = &md
	}
	return f.metadata.clone()
}

// RawMetadata returns the metadata as unified from the agent, before the pcs
// transforms.
func (f *Facade) RawMetadata() Metadata {
	return f.raw.clone()
}

func (f *Facade) optionType() string {
	name := f.raw.Name
	switch {
	case name.IsStonith():
		return "stonith"
	case name.IsPcmkFakeAgent() && name.Type == FakeAgentClusterOptions:
		return "cluster property"
	case name.IsPcmkFakeAgent():
		return name.Type
	default:
		return "resource"
	}
}

// ValidatorsAllowedParameters checks that only known parameters are set.
func (f *Facade) ValidatorsAllowedParameters(force bool) []validate.Validator {
	return []validate.Validator{
		validate.NamesIn{
			Allowed:    f.Metadata().ParameterNames(),
			OptionType: f.optionType(),
			Severity:   reports.SeverityFromForce(force),
		},
	}
}

// ValidatorsDeprecatedParameters warns about every deprecated parameter set.
func (f *Facade) ValidatorsDeprecatedParameters() []validate.Validator {
	var validators []validate.Validator
	for _, param := range f.Metadata().Parameters {
		if !param.Deprecated {
			continue
		}
		validators = append(validators, validate.DeprecatedOption{
			OptionName: param.Name,
			ReplacedBy: copyStrings(param.DeprecatedBy),
			OptionType: f.optionType(),
		})
	}
	return validators
}

// ValidatorsRequiredParameters checks required parameters are set. A
// required parameter connected to other parameters by deprecation is
// satisfied by any of them. When onlyParameters is not nil, parameters
// unrelated to it are not checked.
func (f *Facade) ValidatorsRequiredParameters(force bool, onlyParameters []string) []validate.Validator {
	md := f.Metadata()
	severity := reports.SeverityFromForce(force)

	replacedBy := deprecatedByClosure(md.Parameters)
	params := make(map[string]Parameter, len(md.Parameters))
	replaces := make(map[string][]string, len(md.Parameters))
	for _, param := range md.Parameters {
		params[param.Name] = param
		for _, newName := range param.DeprecatedBy {
			replaces[newName] = append(replaces[newName], param.Name)
		}
	}

	var only map[string]bool
	if onlyParameters != nil {
		only = make(map[string]bool, len(onlyParameters))
		for _, name := range onlyParameters {
			only[name] = true
		}
	}

	var validators []validate.Validator
	var requiredAll []string
	// parameters replacing each other share one set of alternatives
	seenAlternatives := make(map[string]bool)
	for _, param := range md.Parameters {
		if !param.Required {
			continue
		}
		newNames := replacedBy[param.Name]
		oldNames := closure(param.Name, replaces)
		if param.Deprecated && (len(newNames) == 0 || anyRequired(newNames, params)) {
			// checked through the parameters replacing it
			continue
		}

		alternatives := uniqueStrings(append(append([]string{param.Name}, newNames...), oldNames...))
		if only != nil && !anyIn(alternatives, only) {
			continue
		}
		if len(alternatives) == 1 {
			requiredAll = append(requiredAll, param.Name)
			continue
		}

		key := alternativesKey(alternatives)
		if seenAlternatives[key] {
			continue
		}
		seenAlternatives[key] = true

		var deprecated []string
		for _, name := range alternatives {
			if params[name].Deprecated || containsString(oldNames, name) {
				deprecated = append(deprecated, name)
			}
		}
		validators = append(validators, validate.IsRequiredSomeOf{
			OptionNames:     alternatives,
			DeprecatedNames: deprecated,
			OptionType:      f.optionType(),
			Severity:        severity,
		})
	}
	if len(requiredAll) > 0 {
		validators = append(validators, validate.IsRequiredAll{
			OptionNames: requiredAll,
			OptionType:  f.optionType(),
			Severity:    severity,
		})
	}
	return validators
}

// closure returns every name reachable from start through edges, sorted.
// Cycles are tolerated and start itself is never part of the result.
func closure(start string, edges map[string][]string) []string {
	seen := map[string]bool{start: true}
	var result []string
	queue := append([]string{}, edges[start]...)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if seen[current] {
			continue
		}
		seen[current] = true
		result = append(result, current)
		queue = append(queue, edges[current]...)
	}
	sort.Strings(result)
	return result
}

// deprecatedByClosure maps each parameter name to all parameters replacing it
// directly or transitively.
func deprecatedByClosure(params []Parameter) map[string][]string {
	edges := make(map[string][]string, len(params))
	for _, param := range params {
		edges[param.Name] = param.DeprecatedBy
	}
	result := make(map[string][]string, len(params))
	for _, param := range params {
		result[param.Name] = closure(param.Name, edges)
	}
	return result
}

func anyRequired(names []string, params map[string]Parameter) bool {
	for _, name := range names {
		if param, ok := params[name]; ok && param.Required && !param.Deprecated {
			return true
		}
	}
	return false
}

func alternativesKey(names []string) string {
	sorted := append([]string{}, names...)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x00")
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		if !seen[value] {
			seen[value] = true
			out = append(out, value)
		}
	}
	return out
}

// DefaultOperations returns the operations pcs adds to a new resource of this
// agent. With necessaryOnly, and always for fence agents, only the monitor
// operation is returned.
func (f *Facade) DefaultOperations(necessaryOnly bool) []Action {
	md := f.Metadata()
	monitorOnly := necessaryOnly || md.Name.IsStonith()

	var operations []Action
	hasMonitor := false
	for _, action := range md.Actions {
		if !defaultOperationNames[action.Name] {
			continue
		}
		if monitorOnly && action.Name != "monitor" {
			continue
		}
		if action.Name == "monitor" {
			hasMonitor = true
		}
		if action.Interval == nil {
			if action.Name == "monitor" {
				action.Interval = strPtr(defaultMonitorInterval)
			} else {
				action.Interval = strPtr("0s")
			}
		}
		operations = append(operations, action)
	}
	if !hasMonitor {
		operations = append(operations, Action{
			Name:     "monitor",
			Interval: strPtr(defaultMonitorInterval),
		})
	}
	return operations
}

func anyIn(names []string, set map[string]bool) bool {
	for _, name := range names {
		if set[name] {
			return true
		}
	}
	return false
}
