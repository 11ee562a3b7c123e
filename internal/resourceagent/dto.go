package resourceagent

// AgentNameDto is the serializable form of AgentName.
type AgentNameDto struct {
	Standard string `json:"standard" yaml:"standard"`
	Provider string `json:"provider" yaml:"provider"`
	Type     string `json:"type" yaml:"type"`
}

// ParameterDto is the serializable form of Parameter.
type ParameterDto struct {
	Name           string   `json:"name" yaml:"name"`
	Shortdesc      *string  `json:"shortdesc" yaml:"shortdesc"`
	Longdesc       *string  `json:"longdesc" yaml:"longdesc"`
	Type           string   `json:"type" yaml:"type"`
	Default        *string  `json:"default" yaml:"default"`
	EnumValues     []string `json:"enum_values" yaml:"enum_values"`
	Required       bool     `json:"required" yaml:"required"`
	Advanced       bool     `json:"advanced" yaml:"advanced"`
	Deprecated     bool     `json:"deprecated" yaml:"deprecated"`
	DeprecatedBy   []string `json:"deprecated_by" yaml:"deprecated_by"`
	DeprecatedDesc *string  `json:"deprecated_desc" yaml:"deprecated_desc"`
	UniqueGroup    *string  `json:"unique_group" yaml:"unique_group"`
	Reloadable     bool     `json:"reloadable" yaml:"reloadable"`
}

// ActionDto is the serializable form of Action.
type ActionDto struct {
	Name       string  `json:"name" yaml:"name"`
	Timeout    *string `json:"timeout" yaml:"timeout"`
	Interval   *string `json:"interval" yaml:"interval"`
	Role       *string `json:"role" yaml:"role"`
	StartDelay *string `json:"start_delay" yaml:"start_delay"`
	Depth      *string `json:"depth" yaml:"depth"`
	Automatic  bool    `json:"automatic" yaml:"automatic"`
	OnTarget   bool    `json:"on_target" yaml:"on_target"`
}

// MetadataDto is the serializable form of Metadata. Derived properties are
// not part of it.
type MetadataDto struct {
	Name        AgentNameDto   `json:"name" yaml:"name"`
	AgentExists bool           `json:"agent_exists" yaml:"agent_exists"`
	OcfVersion  string         `json:"ocf_version" yaml:"ocf_version"`
	Shortdesc   *string        `json:"shortdesc" yaml:"shortdesc"`
	Longdesc    *string        `json:"longdesc" yaml:"longdesc"`
	Parameters  []ParameterDto `json:"parameters" yaml:"parameters"`
	Actions     []ActionDto    `json:"actions" yaml:"actions"`
}

// ToDto converts the name to its serializable form.
func (n AgentName) ToDto() AgentNameDto {
	return AgentNameDto{Standard: n.Standard, Provider: n.Provider, Type: n.Type}
}

// AgentNameFromDto builds an AgentName from its serializable form.
func AgentNameFromDto(dto AgentNameDto) AgentName {
	return AgentName{Standard: dto.Standard, Provider: dto.Provider, Type: dto.Type}
}

// ToDto converts the parameter to its serializable form. Slices are copied.
func (p Parameter) ToDto() ParameterDto {
	p = p.clone()
	return ParameterDto{
		Name:           p.Name,
		Shortdesc:      p.Shortdesc,
		Longdesc:       p.Longdesc,
		Type:           p.Type,
		Default:        p.Default,
		EnumValues:     p.EnumValues,
		Required:       p.Required,
		Advanced:       p.Advanced,
		Deprecated:     p.Deprecated,
		DeprecatedBy:   p.DeprecatedBy,
		DeprecatedDesc: p.DeprecatedDesc,
		UniqueGroup:    p.UniqueGroup,
		Reloadable:     p.Reloadable,
	}
}

// ParameterFromDto builds a Parameter from its serializable form.
func ParameterFromDto(dto ParameterDto) Parameter {
	return Parameter{
		Name:           dto.Name,
		Shortdesc:      dto.Shortdesc,
		Longdesc:       dto.Longdesc,
		Type:           dto.Type,
		Default:        dto.Default,
		EnumValues:     dto.EnumValues,
		Required:       dto.Required,
		Advanced:       dto.Advanced,
		Deprecated:     dto.Deprecated,
		DeprecatedBy:   dto.DeprecatedBy,
		DeprecatedDesc: dto.DeprecatedDesc,
		UniqueGroup:    dto.UniqueGroup,
		Reloadable:     dto.Reloadable,
	}.clone()
}

// ToDto converts the action to its serializable form.
func (a Action) ToDto() ActionDto {
	return ActionDto(a)
}

// ActionFromDto builds an Action from its serializable form.
func ActionFromDto(dto ActionDto) Action {
	return Action(dto)
}

// ToDto converts the metadata to its serializable form.
func (m Metadata) ToDto() MetadataDto {
	dto := MetadataDto{
		Name:        m.Name.ToDto(),
		AgentExists: m.AgentExists,
		OcfVersion:  m.OcfVersion,
		Shortdesc:   m.Shortdesc,
		Longdesc:    m.Longdesc,
	}
	if m.Parameters != nil {
		dto.Parameters = make([]ParameterDto, 0, len(m.Parameters))
		for _, param := range m.Parameters {
			dto.Parameters = append(dto.Parameters, param.ToDto())
		}
	}
	if m.Actions != nil {
		dto.Actions = make([]ActionDto, 0, len(m.Actions))
		for _, action := range m.Actions {
			dto.Actions = append(dto.Actions, action.ToDto())
		}
	}
	return dto
}

// MetadataFromDto builds Metadata from its serializable form.
func MetadataFromDto(dto MetadataDto) Metadata {
	md := Metadata{
		Name:        AgentNameFromDto(dto.Name),
		AgentExists: dto.AgentExists,
		OcfVersion:  dto.OcfVersion,
		Shortdesc:   dto.Shortdesc,
		Longdesc:    dto.Longdesc,
	}
	if dto.Parameters != nil {
		md.Parameters = make([]Parameter, 0, len(dto.Parameters))
		for _, param := range dto.Parameters {
			md.Parameters = append(md.Parameters, ParameterFromDto(param))
		}
	}
	if dto.Actions != nil {
		md.Actions = make([]Action, 0, len(dto.Actions))
		for _, action := range dto.Actions {
			md.Actions = append(md.Actions, ActionFromDto(action))
		}
	}
	return md
}
