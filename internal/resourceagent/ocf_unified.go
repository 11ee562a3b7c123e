package resourceagent

import "sort"

// uniqueGroupPrefix names the single-parameter unique groups synthesized for
// OCF 1.0 parameters marked unique.
const uniqueGroupPrefix = "_pcs_unique_group_"

// OcfToUnified converts parsed metadata of any OCF version to Metadata.
func OcfToUnified(md OcfMetadata) Metadata {
	switch m := md.(type) {
	case Ocf10Metadata:
		return ocf10ToUnified(m)
	case Ocf11Metadata:
		return ocf11ToUnified(m)
	}
	// unreachable, OcfMetadata is sealed
	panic("unknown OCF metadata type")
}

func ocf10ToUnified(md Ocf10Metadata) Metadata {
	return Metadata{
		Name:        md.Name,
		AgentExists: true,
		OcfVersion:  OcfVersion10,
		Shortdesc:   md.Shortdesc,
		Longdesc:    md.Longdesc,
		Parameters:  ocf10ParametersToUnified(md.Parameters),
		Actions:     ocfActionsToUnified(md.Actions),
	}
}

func ocf11ToUnified(md Ocf11Metadata) Metadata {
	return Metadata{
		Name:        md.Name,
		AgentExists: true,
		OcfVersion:  OcfVersion11,
		Shortdesc:   md.Shortdesc,
		Longdesc:    md.Longdesc,
		Parameters:  ocf11ParametersToUnified(md.Parameters),
		Actions:     ocfActionsToUnified(md.Actions),
	}
}

func ocf10ParametersToUnified(params []Ocf10Parameter) []Parameter {
	// OCF 1.0 says "new obsoletes old", OCF 1.1 says "old is replaced with
	// new". Invert the relation.
	obsoletedBy := make(map[string]map[string]struct{})
	for _, param := range params {
		if param.Obsoletes == nil || *param.Obsoletes == "" {
			continue
		}
		old := *param.Obsoletes
		if obsoletedBy[old] == nil {
			obsoletedBy[old] = make(map[string]struct{})
		}
		obsoletedBy[old][param.Name] = struct{}{}
	}

	out := make([]Parameter, 0, len(params))
	for _, param := range params {
		var deprecatedBy []string
		for name := range obsoletedBy[param.Name] {
			deprecatedBy = append(deprecatedBy, name)
		}
		sort.Strings(deprecatedBy)

		unique := isOcfTrue(param.Unique)
		var uniqueGroup *string
		if unique {
			uniqueGroup = strPtr(uniqueGroupPrefix + param.Name)
		}

		out = append(out, Parameter{
			Name:         param.Name,
			Shortdesc:    param.Shortdesc,
			Longdesc:     param.Longdesc,
			Type:         param.Type,
			Default:      param.Default,
			EnumValues:   copyStrings(param.EnumValues),
			Required:     isOcfTrue(param.Required),
			Advanced:     false,
			Deprecated:   isOcfTrue(param.Deprecated),
			DeprecatedBy: deprecatedBy,
			UniqueGroup:  uniqueGroup,
			// OCF 1.0 has no reloadable attribute, it has always
			// mirrored unique
			Reloadable: unique,
		})
	}
	return out
}

func ocf11ParametersToUnified(params []Ocf11Parameter) []Parameter {
	out := make([]Parameter, 0, len(params))
	for _, param := range params {
		out = append(out, Parameter{
			Name:           param.Name,
			Shortdesc:      param.Shortdesc,
			Longdesc:       param.Longdesc,
			Type:           param.Type,
			Default:        param.Default,
			EnumValues:     copyStrings(param.EnumValues),
			Required:       isOcfTrue(param.Required),
			Advanced:       isOcfTrue(param.Advanced),
			Deprecated:     param.Deprecated,
			DeprecatedBy:   copyStrings(param.DeprecatedBy),
			DeprecatedDesc: param.DeprecatedDesc,
			UniqueGroup:    param.UniqueGroup,
			Reloadable:     isOcfTrue(param.Reloadable),
		})
	}
	return out
}

func ocfActionsToUnified(actions []OcfAction) []Action {
	out := make([]Action, 0, len(actions))
	for _, action := range actions {
		out = append(out, Action{
			Name:       action.Name,
			Timeout:    action.Timeout,
			Interval:   action.Interval,
			Role:       action.Role,
			StartDelay: action.StartDelay,
			Depth:      action.Depth,
			Automatic:  isOcfTrue(action.Automatic),
			OnTarget:   isOcfTrue(action.OnTarget),
		})
	}
	return out
}

// isOcfTrue interprets a raw OCF boolean attribute. Only "1" is true.
func isOcfTrue(value *string) bool {
	return value != nil && *value == "1"
}

func copyStrings(values []string) []string {
	if values == nil {
		return nil
	}
	return append([]string{}, values...)
}
