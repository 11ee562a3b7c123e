// Package validate checks user supplied name/value options.
package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bgdnvk/pcmkctl/internal/reports"
)

// Validator checks a set of options.
type Validator interface {
	Validate(options map[string]string) []reports.Item
}

// ValidateAll runs all validators and concatenates their reports.
func ValidateAll(options map[string]string, validators []Validator) []reports.Item {
	var items []reports.Item
	for _, v := range validators {
		items = append(items, v.Validate(options)...)
	}
	return items
}

// NamesIn reports options whose names are not in Allowed.
type NamesIn struct {
	Allowed    []string
	OptionType string
	Severity   reports.Severity
}

// Validate implements Validator.
func (v NamesIn) Validate(options map[string]string) []reports.Item {
	allowed := make(map[string]bool, len(v.Allowed))
	for _, name := range v.Allowed {
		allowed[name] = true
	}
	var invalid []string
	for name := range options {
		if !allowed[name] {
			invalid = append(invalid, name)
		}
	}
	if len(invalid) == 0 {
		return nil
	}
	sort.Strings(invalid)

	allowedSorted := append([]string{}, v.Allowed...)
	sort.Strings(allowedSorted)
	return []reports.Item{{
		Severity: v.Severity,
		Code:     reports.CodeInvalidOptions,
		Message: fmt.Sprintf(
			"invalid %s %s %s, allowed %s %s",
			v.OptionType,
			pluralize("option", len(invalid)),
			quoteJoin(invalid),
			pluralize("option", len(allowedSorted)),
			allowedList(allowedSorted),
		),
	}}
}

// IsRequiredAll reports missing options from OptionNames.
type IsRequiredAll struct {
	OptionNames []string
	OptionType  string
	Severity    reports.Severity
}

// Validate implements Validator.
func (v IsRequiredAll) Validate(options map[string]string) []reports.Item {
	var missing []string
	for _, name := range v.OptionNames {
		if _, ok := options[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return []reports.Item{{
		Severity: v.Severity,
		Code:     reports.CodeRequiredOptionsAreMissing,
		Message: fmt.Sprintf(
			"required %s %s %s %s missing",
			v.OptionType,
			pluralize("option", len(missing)),
			quoteJoin(missing),
			isAre(len(missing)),
		),
	}}
}

// IsRequiredSomeOf requires at least one of OptionNames. DeprecatedNames
// marks the alternatives kept only for backward compatibility.
type IsRequiredSomeOf struct {
	OptionNames     []string
	DeprecatedNames []string
	OptionType      string
	Severity        reports.Severity
}

// Validate implements Validator.
func (v IsRequiredSomeOf) Validate(options map[string]string) []reports.Item {
	for _, name := range v.OptionNames {
		if _, ok := options[name]; ok {
			return nil
		}
	}
	deprecated := make(map[string]bool, len(v.DeprecatedNames))
	for _, name := range v.DeprecatedNames {
		deprecated[name] = true
	}
	names := append([]string{}, v.OptionNames...)
	sort.Strings(names)
	labels := make([]string, 0, len(names))
	for _, name := range names {
		label := fmt.Sprintf("'%s'", name)
		if deprecated[name] {
			label += " (deprecated)"
		}
		labels = append(labels, label)
	}
	return []reports.Item{{
		Severity: v.Severity,
		Code:     reports.CodeRequiredOptionOfAlternativesMissing,
		Message: fmt.Sprintf(
			"%s option %s is required",
			v.OptionType,
			strings.Join(labels, " or "),
		),
	}}
}

// DeprecatedOption warns when a deprecated option is used. It never blocks.
type DeprecatedOption struct {
	OptionName string
	ReplacedBy []string
	OptionType string
}

// Validate implements Validator.
func (v DeprecatedOption) Validate(options map[string]string) []reports.Item {
	if _, ok := options[v.OptionName]; !ok {
		return nil
	}
	msg := fmt.Sprintf("%s option '%s' is deprecated and might be removed in a future release", v.OptionType, v.OptionName)
	if len(v.ReplacedBy) > 0 {
		replacedBy := append([]string{}, v.ReplacedBy...)
		sort.Strings(replacedBy)
		msg += ", therefore it is not recommended, use " + quoteJoin(replacedBy) + " instead"
	}
	return []reports.Item{{
		Severity: reports.Warning(),
		Code:     reports.CodeDeprecatedOption,
		Message:  msg,
	}}
}

func quoteJoin(names []string) string {
	quoted := make([]string, 0, len(names))
	for _, name := range names {
		quoted = append(quoted, fmt.Sprintf("'%s'", name))
	}
	return strings.Join(quoted, ", ")
}

func allowedList(names []string) string {
	if len(names) == 0 {
		return "are none"
	}
	return isAre(len(names)) + " " + quoteJoin(names)
}

func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}

func isAre(count int) string {
	if count == 1 {
		return "is"
	}
	return "are"
}
