package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PromptYesNo prompts the user for a yes/no response. Anything but y or yes
// is a no.
func PromptYesNo(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", question)

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	switch strings.TrimSpace(strings.ToLower(response)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// PrintDependencyStatus prints a summary of dependency status
func PrintDependencyStatus(out io.Writer, deps []DependencyStatus) {
	fmt.Fprintln(out, "Pacemaker tool status:")
	fmt.Fprintln(out, "----------------------")

	for _, dep := range deps {
		icon := "+"
		if !dep.Installed {
			icon = "-"
		}

		version := dep.Version
		if version == "" {
			version = "not installed"
		}

		required := ""
		if dep.Required {
			required = " (required)"
		}

		fmt.Fprintf(out, "  [%s] %s: %s%s\n", icon, dep.Name, version, required)

		if dep.Message != "" {
			fmt.Fprintf(out, "      %s\n", dep.Message)
		}
	}
}
