package resourceagent

import "strings"

const allowedValuesMarker = "  Allowed values: "

var advancedShortdescMarkers = []string{
	"Advanced use only:",
	"*** Advanced Use Only ***",
}

var legacyRoles = map[string]string{
	"Master": "Promoted",
	"Slave":  "Unpromoted",
}

// stonithActionReplacedBy lists the parameters superseding the "action"
// parameter of fence agents.
var stonithActionReplacedBy = []string{"pcmk_off_action", "pcmk_reboot_action"}

// PcsTransform applies pcs specific policy to unified metadata.
func PcsTransform(md Metadata) Metadata {
	md = translateActionRoles(md)
	if md.Name.IsPcmkFakeAgent() {
		md = mapParameters(md, extractEnumValuesFromDescription)
		md = mapParameters(md, removeEnumValuesFromDescription)
		md = mapParameters(md, removeDuplicateLongdesc)
		md = mapParameters(md, extractAdvancedFromShortdesc)
		md = mapParameters(md, joinShortAndLongdesc)
	}
	if md.Name.IsStonith() {
		md = removeStonithCliParameters(md)
		md = mapParameters(md, deprecateStonithAction)
		md = stonithPortNotRequired(md)
	}
	return md
}

func mapParameters(md Metadata, fn func(Parameter) Parameter) Metadata {
	out := md.clone()
	for i, param := range out.Parameters {
		out.Parameters[i] = fn(param)
	}
	return out
}

func translateActionRoles(md Metadata) Metadata {
	out := md.clone()
	for i, action := range out.Actions {
		if action.Role == nil {
			continue
		}
		if role, ok := legacyRoles[*action.Role]; ok {
			out.Actions[i].Role = strPtr(role)
		}
	}
	return out
}

// splitAllowedValues cuts the "Allowed values" list pacemaker daemons append
// to descriptions of their enum options.
func splitAllowedValues(longdesc *string) (*string, []string, bool) {
	if longdesc == nil {
		return nil, nil, false
	}
	desc, values, found := strings.Cut(*longdesc, allowedValuesMarker)
	if !found {
		return longdesc, nil, false
	}
	return trimmedOrNil(desc), strings.Split(values, ", "), true
}

func extractEnumValuesFromDescription(param Parameter) Parameter {
	if param.Type != "enum" {
		return param
	}
	longdesc, values, _ := splitAllowedValues(param.Longdesc)
	enumValues := append([]string{}, values...)
	if param.Default != nil && !containsString(enumValues, *param.Default) {
		enumValues = append(enumValues, *param.Default)
	}
	param.Longdesc = longdesc
	param.Type = "select"
	param.EnumValues = enumValues
	return param
}

func removeEnumValuesFromDescription(param Parameter) Parameter {
	if param.Type != "select" {
		return param
	}
	param.Longdesc, _, _ = splitAllowedValues(param.Longdesc)
	return param
}

func removeDuplicateLongdesc(param Parameter) Parameter {
	if param.Shortdesc != nil && param.Longdesc != nil && *param.Shortdesc == *param.Longdesc {
		param.Longdesc = nil
	}
	return param
}

func extractAdvancedFromShortdesc(param Parameter) Parameter {
	if param.Shortdesc == nil {
		return param
	}
	for _, marker := range advancedShortdescMarkers {
		if rest, ok := strings.CutPrefix(*param.Shortdesc, marker); ok {
			rest = strings.TrimLeft(rest, " \t\n\r")
			param.Shortdesc = nil
			if rest != "" {
				param.Shortdesc = &rest
			}
			param.Advanced = true
			return param
		}
	}
	return param
}

func joinShortAndLongdesc(param Parameter) Parameter {
	if param.Shortdesc == nil || param.Longdesc == nil {
		return param
	}
	if strings.HasPrefix(*param.Longdesc, *param.Shortdesc) {
		return param
	}
	shortdesc := *param.Shortdesc
	if !strings.HasSuffix(shortdesc, ".") {
		shortdesc += "."
	}
	param.Longdesc = strPtr(strings.TrimSpace(shortdesc + "\n" + *param.Longdesc))
	return param
}

func removeStonithCliParameters(md Metadata) Metadata {
	out := md.clone()
	kept := make([]Parameter, 0, len(out.Parameters))
	for _, param := range out.Parameters {
		if param.Name == "help" || param.Name == "version" {
			continue
		}
		kept = append(kept, param)
	}
	out.Parameters = kept
	return out
}

func deprecateStonithAction(param Parameter) Parameter {
	if param.Name != "action" {
		return param
	}
	param.Required = false
	param.Advanced = true
	param.Deprecated = true
	param.DeprecatedBy = append(append([]string{}, stonithActionReplacedBy...), param.DeprecatedBy...)
	return param
}

// stonithPortNotRequired relaxes "port" and every parameter connected to it
// by deprecation in either direction. Pacemaker fills port from host maps.
func stonithPortNotRequired(md Metadata) Metadata {
	graph := make(map[string][]string)
	for _, param := range md.Parameters {
		for _, newName := range param.DeprecatedBy {
			graph[param.Name] = append(graph[param.Name], newName)
			graph[newName] = append(graph[newName], param.Name)
		}
	}

	relaxed := map[string]bool{"port": true}
	queue := []string{"port"}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range graph[current] {
			if !relaxed[next] {
				relaxed[next] = true
				queue = append(queue, next)
			}
		}
	}

	return mapParameters(md, func(param Parameter) Parameter {
		if relaxed[param.Name] {
			param.Required = false
		}
		return param
	})
}

// traceParameters returns the tracing parameters pacemaker supports for OCF
// agents which the agent does not declare itself.
func traceParameters(existing []Parameter) []Parameter {
	declared := make(map[string]bool, len(existing))
	for _, param := range existing {
		declared[param.Name] = true
	}

	var params []Parameter
	if !declared["trace_ra"] {
		params = append(params, Parameter{
			Name:      "trace_ra",
			Shortdesc: strPtr("Set to 1 to turn on resource agent tracing (expect large output)"),
			Longdesc: strPtr(
				"The trace output will be saved to trace_file, if set, or by default to " +
					"$HA_VARRUN/ra_trace/<type>/<id>.<action>.<timestamp> e.g. " +
					"$HA_VARRUN/ra_trace/oracle/db.start.2012-11-27.08:37:08",
			),
			Type:     "integer",
			Default:  strPtr("0"),
			Advanced: true,
		})
	}
	if !declared["trace_file"] {
		params = append(params, Parameter{
			Name:      "trace_file",
			Shortdesc: strPtr("Path to a file to store resource agent tracing log"),
			Type:      "string",
			Default:   strPtr(""),
			Advanced:  true,
		})
	}
	return params
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
