package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bgdnvk/pcmkctl/internal/resourceagent"
)

var clusterOptionsCmd = &cobra.Command{
	Use:   "cluster-options",
	Short: "Show cluster properties or options of a pacemaker daemon",
	Long: `Show the cluster properties pacemaker accepts. With --daemon the options of
one pacemaker daemon are shown instead.

Known daemons: ` + strings.Join(resourceagent.FakeAgentNames[1:], ", "),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		daemon, _ := cmd.Flags().GetString("daemon")
		output, _ := cmd.Flags().GetString("output")
		full, _ := cmd.Flags().GetBool("full")
		if err := checkOutputFormat(output); err != nil {
			return err
		}

		fake := resourceagent.FakeAgentClusterOptions
		if daemon != "" {
			if daemon == resourceagent.FakeAgentClusterOptions || !resourceagent.IsFakeAgentName(daemon) {
				return fmt.Errorf("unknown pacemaker daemon %q", daemon)
			}
			fake = daemon
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		facade, err := a.factory().FacadeFromPacemakerFakeAgent(cmd.Context(), fake)
		if err != nil {
			return err
		}
		if output != "text" {
			return writeMetadata(cmd.OutOrStdout(), facade, output, full)
		}
		writeMetadataText(cmd.OutOrStdout(), facade.Metadata(), nil, full)
		return nil
	},
}

func init() {
	clusterOptionsCmd.Flags().String("daemon", "", "pacemaker daemon to describe")
	clusterOptionsCmd.Flags().StringP("output", "o", "text", "output format: text, json or yaml")
	clusterOptionsCmd.Flags().Bool("full", false, "show advanced options")
	rootCmd.AddCommand(clusterOptionsCmd)
}
