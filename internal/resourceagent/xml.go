package resourceagent

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

// OcfMetadata is the parsed but not yet unified metadata of an agent. It is
// either Ocf10Metadata or Ocf11Metadata.
type OcfMetadata interface {
	OcfVersion() string
	AgentName() AgentName
	isOcfMetadata()
}

// OcfAction is an action as written in the metadata, attributes kept raw.
type OcfAction struct {
	Name       string
	Timeout    *string
	Interval   *string
	Role       *string
	StartDelay *string
	Depth      *string
	Automatic  *string
	OnTarget   *string
}

// Ocf10Parameter is an OCF 1.0 parameter with raw boolean attributes.
type Ocf10Parameter struct {
	Name       string
	Shortdesc  *string
	Longdesc   *string
	Type       string
	Default    *string
	EnumValues []string
	Required   *string
	Deprecated *string
	// Obsoletes names the parameter this one replaces.
	Obsoletes *string
	Unique    *string
}

// Ocf10Metadata is metadata following the OCF 1.0 schema.
type Ocf10Metadata struct {
	Name       AgentName
	Shortdesc  *string
	Longdesc   *string
	Parameters []Ocf10Parameter
	Actions    []OcfAction
}

func (Ocf10Metadata) OcfVersion() string    { return OcfVersion10 }
func (m Ocf10Metadata) AgentName() AgentName { return m.Name }
func (Ocf10Metadata) isOcfMetadata()         {}

// Ocf11Parameter is an OCF 1.1 parameter. Deprecation is already resolved
// from the structured <deprecated> element.
type Ocf11Parameter struct {
	Name           string
	Shortdesc      *string
	Longdesc       *string
	Type           string
	Default        *string
	EnumValues     []string
	Required       *string
	Advanced       *string
	Deprecated     bool
	DeprecatedBy   []string
	DeprecatedDesc *string
	UniqueGroup    *string
	Reloadable     *string
}

// Ocf11Metadata is metadata following the OCF 1.1 schema.
type Ocf11Metadata struct {
	Name       AgentName
	Shortdesc  *string
	Longdesc   *string
	Parameters []Ocf11Parameter
	Actions    []OcfAction
}

func (Ocf11Metadata) OcfVersion() string    { return OcfVersion11 }
func (m Ocf11Metadata) AgentName() AgentName { return m.Name }
func (Ocf11Metadata) isOcfMetadata()         {}

type xmlText struct {
	Text string `xml:",chardata"`
}

type xmlVersionHeader struct {
	XMLName xml.Name
	Version []xmlText `xml:"version"`
}

type xmlContent struct {
	Type    *string     `xml:"type,attr"`
	Default *string     `xml:"default,attr"`
	Options []xmlOption `xml:"option"`
}

type xmlOption struct {
	Value *string `xml:"value,attr"`
}

type xmlAction struct {
	Name       *string `xml:"name,attr"`
	Timeout    *string `xml:"timeout,attr"`
	Interval   *string `xml:"interval,attr"`
	Role       *string `xml:"role,attr"`
	StartDelay *string `xml:"start-delay,attr"`
	Depth      *string `xml:"depth,attr"`
	Automatic  *string `xml:"automatic,attr"`
	OnTarget   *string `xml:"on_target,attr"`
}

type xmlAgent10 struct {
	ShortdescAttr *string          `xml:"shortdesc,attr"`
	LongdescAttr  *string          `xml:"longdesc,attr"`
	Shortdesc     []xmlText        `xml:"shortdesc"`
	Longdesc      []xmlText        `xml:"longdesc"`
	Parameters    []xmlParameter10 `xml:"parameters>parameter"`
	Actions       []xmlAction      `xml:"actions>action"`
}

type xmlParameter10 struct {
	Name       *string      `xml:"name,attr"`
	Required   *string      `xml:"required,attr"`
	Deprecated *string      `xml:"deprecated,attr"`
	Obsoletes  *string      `xml:"obsoletes,attr"`
	Unique     *string      `xml:"unique,attr"`
	Shortdesc  []xmlText    `xml:"shortdesc"`
	Longdesc   []xmlText    `xml:"longdesc"`
	Content    []xmlContent `xml:"content"`
}

type xmlAgent11 struct {
	Shortdesc  []xmlText        `xml:"shortdesc"`
	Longdesc   []xmlText        `xml:"longdesc"`
	Parameters []xmlParameter11 `xml:"parameters>parameter"`
	Actions    []xmlAction      `xml:"actions>action"`
}

type xmlParameter11 struct {
	Name        *string         `xml:"name,attr"`
	Required    *string         `xml:"required,attr"`
	Advanced    *string         `xml:"advanced,attr"`
	UniqueGroup *string         `xml:"unique-group,attr"`
	Reloadable  *string         `xml:"reloadable,attr"`
	Shortdesc   []xmlText       `xml:"shortdesc"`
	Longdesc    []xmlText       `xml:"longdesc"`
	Content     []xmlContent    `xml:"content"`
	Deprecated  []xmlDeprecated `xml:"deprecated"`
}

type xmlDeprecated struct {
	ReplacedWith []xmlReplacedWith `xml:"replaced-with"`
	Desc         []xmlText         `xml:"desc"`
}

type xmlReplacedWith struct {
	Name *string `xml:"name,attr"`
}

// ParseOcfMetadata validates raw agent metadata and parses it into a record
// matching its OCF version. The name is supplied by the caller, the name
// written in the XML is ignored. A nil validator skips schema validation.
func ParseOcfMetadata(ctx context.Context, name AgentName, raw string, validator SchemaValidator) (OcfMetadata, error) {
	version, err := detectOcfVersion(raw)
	if err != nil {
		return nil, &UnableToGetAgentMetadataError{AgentName: name.FullName(), Message: err.Error()}
	}

	if validator != nil {
		if err := validator.Validate(ctx, version, raw); err != nil {
			if errors.Is(err, ErrUnsupportedSchema) {
				return nil, &UnsupportedOcfVersionError{AgentName: name.FullName(), Version: version}
			}
			return nil, &UnableToGetAgentMetadataError{AgentName: name.FullName(), Message: err.Error()}
		}
	}

	var md OcfMetadata
	switch version {
	case OcfVersion10:
		md, err = parseOcf10(name, raw)
	case OcfVersion11:
		md, err = parseOcf11(name, raw)
	default:
		return nil, &UnsupportedOcfVersionError{AgentName: name.FullName(), Version: version}
	}
	if err != nil {
		return nil, &UnableToGetAgentMetadataError{AgentName: name.FullName(), Message: err.Error()}
	}
	return md, nil
}

// detectOcfVersion returns the trimmed text of the top level <version>
// element, defaulting to OCF 1.0.
func detectOcfVersion(raw string) (string, error) {
	var header xmlVersionHeader
	if err := decodeXML(raw, &header); err != nil {
		return "", err
	}
	if len(header.Version) == 0 {
		return OcfVersion10, nil
	}
	version := strings.TrimSpace(header.Version[0].Text)
	if version == "" {
		return OcfVersion10, nil
	}
	return version, nil
}

func parseOcf10(name AgentName, raw string) (Ocf10Metadata, error) {
	var agent xmlAgent10
	if err := decodeXML(raw, &agent); err != nil {
		return Ocf10Metadata{}, err
	}

	md := Ocf10Metadata{
		Name:      name,
		Shortdesc: descWithAttrFallback(agent.Shortdesc, agent.ShortdescAttr),
		Longdesc:  descWithAttrFallback(agent.Longdesc, agent.LongdescAttr),
	}
	for _, p := range agent.Parameters {
		if p.Name == nil {
			return Ocf10Metadata{}, errors.New("parameter element is missing the 'name' attribute")
		}
		contentType, defaultValue, enumValues := parseContent(p.Content)
		md.Parameters = append(md.Parameters, Ocf10Parameter{
			Name:       *p.Name,
			Shortdesc:  firstText(p.Shortdesc),
			Longdesc:   firstText(p.Longdesc),
			Type:       contentType,
			Default:    defaultValue,
			EnumValues: enumValues,
			Required:   p.Required,
			Deprecated: p.Deprecated,
			Obsoletes:  p.Obsoletes,
			Unique:     p.Unique,
		})
	}
	actions, err := parseActions(agent.Actions)
	if err != nil {
		return Ocf10Metadata{}, err
	}
	md.Actions = actions
	return md, nil
}

func parseOcf11(name AgentName, raw string) (Ocf11Metadata, error) {
	var agent xmlAgent11
	if err := decodeXML(raw, &agent); err != nil {
		return Ocf11Metadata{}, err
	}

	md := Ocf11Metadata{
		Name:      name,
		Shortdesc: firstText(agent.Shortdesc),
		Longdesc:  firstText(agent.Longdesc),
	}
	for _, p := range agent.Parameters {
		if p.Name == nil {
			return Ocf11Metadata{}, errors.New("parameter element is missing the 'name' attribute")
		}
		contentType, defaultValue, enumValues := parseContent(p.Content)
		param := Ocf11Parameter{
			Name:        *p.Name,
			Shortdesc:   firstText(p.Shortdesc),
			Longdesc:    firstText(p.Longdesc),
			Type:        contentType,
			Default:     defaultValue,
			EnumValues:  enumValues,
			Required:    p.Required,
			Advanced:    p.Advanced,
			UniqueGroup: p.UniqueGroup,
			Reloadable:  p.Reloadable,
		}
		if len(p.Deprecated) > 0 {
			deprecated := p.Deprecated[0]
			param.Deprecated = true
			for _, replacement := range deprecated.ReplacedWith {
				if replacement.Name == nil {
					return Ocf11Metadata{}, fmt.Errorf(
						"replaced-with element of parameter '%s' is missing the 'name' attribute", *p.Name,
					)
				}
				param.DeprecatedBy = append(param.DeprecatedBy, *replacement.Name)
			}
			param.DeprecatedDesc = firstText(deprecated.Desc)
		}
		md.Parameters = append(md.Parameters, param)
	}
	actions, err := parseActions(agent.Actions)
	if err != nil {
		return Ocf11Metadata{}, err
	}
	md.Actions = actions
	return md, nil
}

func parseContent(content []xmlContent) (string, *string, []string) {
	if len(content) == 0 {
		return "string", nil, nil
	}
	el := content[0]
	contentType := "string"
	if el.Type != nil {
		contentType = *el.Type
	}
	var enumValues []string
	if contentType == "select" {
		enumValues = []string{}
		for _, option := range el.Options {
			if option.Value != nil {
				enumValues = append(enumValues, *option.Value)
			}
		}
	}
	return contentType, el.Default, enumValues
}

func parseActions(actions []xmlAction) ([]OcfAction, error) {
	var out []OcfAction
	for _, a := range actions {
		if a.Name == nil {
			return nil, errors.New("action element is missing the 'name' attribute")
		}
		out = append(out, OcfAction{
			Name:       *a.Name,
			Timeout:    a.Timeout,
			Interval:   a.Interval,
			Role:       a.Role,
			StartDelay: a.StartDelay,
			Depth:      a.Depth,
			Automatic:  a.Automatic,
			OnTarget:   a.OnTarget,
		})
	}
	return out, nil
}

func firstText(elements []xmlText) *string {
	if len(elements) == 0 {
		return nil
	}
	return trimmedOrNil(elements[0].Text)
}

func descWithAttrFallback(elements []xmlText, attr *string) *string {
	if len(elements) > 0 {
		return trimmedOrNil(elements[0].Text)
	}
	if attr != nil {
		return trimmedOrNil(*attr)
	}
	return nil
}

func trimmedOrNil(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

type xmlPacemakerResult struct {
	XMLName xml.Name        `xml:"pacemaker-result"`
	Agent   []xmlRawElement `xml:"resource-agent"`
	Status  *xmlStatus      `xml:"status"`
}

type xmlRawElement struct {
	Attrs []xml.Attr `xml:",any,attr"`
	Inner string     `xml:",innerxml"`
}

type xmlStatus struct {
	Code    string   `xml:"code,attr"`
	Message string   `xml:"message,attr"`
	Errors  []string `xml:"errors>error"`
}

// UnwrapPacemakerResult extracts the resource-agent element from the
// pacemaker-result envelope printed by pacemaker tools run with
// --output-as=xml. An error status in the envelope is returned as
// UnableToGetAgentMetadataError.
func UnwrapPacemakerResult(name AgentName, raw string) (string, error) {
	var result xmlPacemakerResult
	if err := decodeXML(raw, &result); err != nil {
		return "", &UnableToGetAgentMetadataError{AgentName: name.FullName(), Message: err.Error()}
	}

	if result.Status != nil && strings.TrimSpace(result.Status.Code) != "0" {
		parts := []string{}
		if msg := strings.TrimSpace(result.Status.Message); msg != "" {
			parts = append(parts, msg)
		}
		for _, e := range result.Status.Errors {
			if e = strings.TrimSpace(e); e != "" {
				parts = append(parts, e)
			}
		}
		if len(parts) == 0 {
			parts = append(parts, fmt.Sprintf("error code %s", result.Status.Code))
		}
		return "", &UnableToGetAgentMetadataError{AgentName: name.FullName(), Message: strings.Join(parts, "\n")}
	}

	if len(result.Agent) == 0 {
		return "", &UnableToGetAgentMetadataError{
			AgentName: name.FullName(),
			Message:   "resource-agent element not found in pacemaker result",
		}
	}

	agent := result.Agent[0]
	var b strings.Builder
	b.WriteString("<resource-agent")
	for _, attr := range agent.Attrs {
		b.WriteString(" ")
		b.WriteString(attr.Name.Local)
		b.WriteString(`="`)
		_ = xml.EscapeText(&b, []byte(attr.Value))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	b.WriteString(agent.Inner)
	b.WriteString("</resource-agent>")
	return b.String(), nil
}
