package cmd

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bgdnvk/pcmkctl/internal/reports"
	"github.com/bgdnvk/pcmkctl/internal/resourceagent"
	"github.com/bgdnvk/pcmkctl/internal/validate"
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Inspect resource and fence agents",
}

var agentDescribeCmd = &cobra.Command{
	Use:   "describe <agent>",
	Short: "Show parameters and actions of an agent",
	Long: `Show the metadata of an agent after pcs normalization.

The agent is given as standard:provider:type, standard:type, or as a bare type
which is looked up among installed agents.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		full, _ := cmd.Flags().GetBool("full")
		if err := checkOutputFormat(output); err != nil {
			return err
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		name, err := a.resolveAgentName(cmd, args[0])
		if err != nil {
			return err
		}
		facade, err := a.factory().FacadeFromParsedName(ctx, name)
		if err != nil {
			return err
		}
		return writeMetadata(cmd.OutOrStdout(), facade, output, full)
	},
}

var agentListCmd = &cobra.Command{
	Use:   "list [standard[:provider]]",
	Short: "List installed agents",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			names, err := resourceagent.ListAllAgents(ctx, a.client)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(out, name.FullName())
			}
			return nil
		}

		types, err := a.client.ListAgents(ctx, args[0])
		if err != nil {
			return err
		}
		for _, agentType := range types {
			fmt.Fprintf(out, "%s:%s\n", args[0], agentType)
		}
		return nil
	},
}

var agentGuessCmd = &cobra.Command{
	Use:   "guess <type>",
	Short: "Find the full name of an agent by its type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		name, err := resourceagent.FindOneAgentByType(cmd.Context(), a.client, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), name.FullName())
		return nil
	},
}

var agentValidateCmd = &cobra.Command{
	Use:   "validate <agent> [name=value]...",
	Short: "Validate resource options against agent metadata",
	Long: `Check that the given options are known to the agent, that required options
are set and warn about deprecated ones.

With --update only the required options related to the given ones are
checked, the way an update of an existing resource is validated. With
--force errors which can be overridden become warnings and an agent which
cannot be loaded is accepted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		update, _ := cmd.Flags().GetBool("update")

		options, err := parseOptions(args[1:])
		if err != nil {
			return err
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		name, err := a.resolveAgentName(cmd, args[0])
		if err != nil {
			return err
		}

		factory := a.factory()
		facade, err := factory.FacadeFromParsedName(ctx, name)
		if err != nil {
			var loadErr *resourceagent.AgentLoadError
			var mdErr *resourceagent.UnableToGetAgentMetadataError
			if !force || !(errors.As(err, &loadErr) || errors.As(err, &mdErr)) {
				return err
			}
			printReports(cmd.ErrOrStderr(), resourceagent.ErrorToReport(err, reports.Warning()))
			facade = factory.VoidFacadeFromParsedName(ctx, name)
		}

		items := validateOptions(facade, options, force, update)
		printReports(cmd.ErrOrStderr(), items...)
		if reports.HasErrors(items) {
			return errors.New("errors have occurred, therefore the options are not valid")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Options are valid")
		return nil
	},
}

var agentDefaultsCmd = &cobra.Command{
	Use:   "defaults <agent>",
	Short: "Show the operations created with a new resource of an agent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		necessaryOnly, _ := cmd.Flags().GetBool("necessary-only")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		name, err := a.resolveAgentName(cmd, args[0])
		if err != nil {
			return err
		}
		facade, err := a.factory().FacadeFromParsedName(ctx, name)
		if err != nil {
			return err
		}
		for _, op := range facade.DefaultOperations(necessaryOnly) {
			fmt.Fprintln(cmd.OutOrStdout(), formatOperation(op))
		}
		return nil
	},
}

func init() {
	agentDescribeCmd.Flags().StringP("output", "o", "text", "output format: text, json or yaml")
	agentDescribeCmd.Flags().Bool("full", false, "show advanced parameters")
	agentValidateCmd.Flags().Bool("force", false, "turn overridable errors into warnings")
	agentValidateCmd.Flags().Bool("update", false, "validate only the given options as an update")
	agentDefaultsCmd.Flags().Bool("necessary-only", false, "show only operations pacemaker requires")
	for _, c := range []*cobra.Command{agentDescribeCmd, agentValidateCmd, agentDefaultsCmd} {
		c.Flags().Bool("stonith", false, "treat the agent as a fence agent, a bare type needs no lookup")
	}

	agentCmd.AddCommand(agentDescribeCmd, agentListCmd, agentGuessCmd, agentValidateCmd, agentDefaultsCmd)
	rootCmd.AddCommand(agentCmd)
}

// resolveAgentName parses a full agent name or guesses it from a bare type.
// With --stonith a bare type names a fence agent and only stonith names are
// accepted.
func (a *app) resolveAgentName(cmd *cobra.Command, input string) (resourceagent.AgentName, error) {
	if stonith, _ := cmd.Flags().GetBool("stonith"); stonith {
		return resourceagent.ParseStonithAgentName(input)
	}
	if strings.Contains(input, ":") {
		return resourceagent.ParseAgentName(input)
	}
	name, err := resourceagent.FindOneAgentByType(cmd.Context(), a.client, input)
	if err != nil {
		return resourceagent.AgentName{}, err
	}
	printReports(cmd.ErrOrStderr(), resourceagent.GuessedReport(input, name))
	return name, nil
}

func validateOptions(facade *resourceagent.Facade, options map[string]string, force, update bool) []reports.Item {
	var onlyParameters []string
	if update {
		onlyParameters = make([]string, 0, len(options))
		for name := range options {
			onlyParameters = append(onlyParameters, name)
		}
		sort.Strings(onlyParameters)
	}

	var validators []validate.Validator
	validators = append(validators, facade.ValidatorsAllowedParameters(force)...)
	validators = append(validators, facade.ValidatorsDeprecatedParameters()...)
	validators = append(validators, facade.ValidatorsRequiredParameters(force, onlyParameters)...)
	return validate.ValidateAll(options, validators)
}

func parseOptions(args []string) (map[string]string, error) {
	options := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, found := strings.Cut(arg, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid option %q, use name=value", arg)
		}
		options[name] = value
	}
	return options, nil
}

func printReports(w io.Writer, items ...reports.Item) {
	for _, item := range items {
		fmt.Fprintln(w, item.String())
	}
}

func formatOperation(op resourceagent.Action) string {
	parts := []string{op.Name}
	add := func(key string, value *string) {
		if value != nil {
			parts = append(parts, key+"="+*value)
		}
	}
	add("interval", op.Interval)
	add("timeout", op.Timeout)
	add("role", op.Role)
	add("start-delay", op.StartDelay)
	add("OCF_CHECK_LEVEL", op.Depth)
	return strings.Join(parts, " ")
}
