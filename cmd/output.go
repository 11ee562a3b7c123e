package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bgdnvk/pcmkctl/internal/resourceagent"
)

func checkOutputFormat(format string) error {
	switch format {
	case "text", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("invalid output format %q, use text, json or yaml", format)
	}
}

func writeMetadata(w io.Writer, facade *resourceagent.Facade, format string, full bool) error {
	md := facade.Metadata()
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(md.ToDto())
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(md.ToDto()); err != nil {
			return err
		}
		return enc.Close()
	default:
		writeMetadataText(w, md, facade.DefaultOperations(false), full)
		return nil
	}
}

func writeMetadataText(w io.Writer, md resourceagent.Metadata, ops []resourceagent.Action, full bool) {
	title := md.Name.FullName()
	if md.Shortdesc != nil {
		title += " - " + *md.Shortdesc
	}
	fmt.Fprintln(w, title)
	if md.Longdesc != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, indent(*md.Longdesc, ""))
	}

	var shown []resourceagent.Parameter
	hidden := 0
	for _, param := range md.Parameters {
		if param.Advanced && !full {
			hidden++
			continue
		}
		shown = append(shown, param)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	for _, param := range shown {
		fmt.Fprintf(w, "  %s%s\n", param.Name, parameterFlags(param))
		if desc := parameterDescription(param); desc != "" {
			fmt.Fprintln(w, indent(desc, "    "))
		}
	}
	if hidden > 0 {
		fmt.Fprintf(w, "  (%d advanced options hidden, use --full to show them)\n", hidden)
	}

	if len(ops) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Default operations:")
		for _, op := range ops {
			fmt.Fprintln(w, "  "+formatOperation(op))
		}
	}
}

func parameterFlags(param resourceagent.Parameter) string {
	var flags []string
	if param.Required {
		flags = append(flags, "required")
	}
	if param.Advanced {
		flags = append(flags, "advanced")
	}
	if param.UniqueGroup != nil {
		flags = append(flags, "unique group: "+*param.UniqueGroup)
	}
	if param.Deprecated {
		if len(param.DeprecatedBy) > 0 {
			flags = append(flags, "deprecated by "+strings.Join(param.DeprecatedBy, ", "))
		} else {
			flags = append(flags, "deprecated")
		}
	}
	if len(flags) == 0 {
		return ""
	}
	return " (" + strings.Join(flags, ") (") + ")"
}

func parameterDescription(param resourceagent.Parameter) string {
	desc := ""
	switch {
	case param.Longdesc != nil:
		desc = *param.Longdesc
	case param.Shortdesc != nil:
		desc = *param.Shortdesc
	}
	var extra []string
	if param.Type == "select" && len(param.EnumValues) > 0 {
		extra = append(extra, "Allowed values: "+strings.Join(param.EnumValues, ", "))
	} else if param.Type != "" && param.Type != "string" {
		extra = append(extra, "Type: "+param.Type)
	}
	if param.Default != nil && *param.Default != "" {
		extra = append(extra, "Default: "+*param.Default)
	}
	if param.DeprecatedDesc != nil {
		extra = append(extra, *param.DeprecatedDesc)
	}
	return strings.TrimSpace(strings.Join(append([]string{desc}, extra...), "\n"))
}

func indent(text, prefix string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		lines[i] = prefix + strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}
