package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bgdnvk/pcmkctl/internal/cli"
	"github.com/bgdnvk/pcmkctl/internal/config"
)

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Check the pacemaker tools pcmkctl runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		tools := cli.PacemakerTools(
			a.settings.Pacemaker.CrmResource,
			a.settings.Pacemaker.CrmAttribute,
			a.settings.Ocf.Xmllint,
			a.settings.Ocf.Validator == config.ValidatorXmllint,
		)
		statuses := cli.NewDependencyChecker(a.runner).CheckAll(cmd.Context(), tools)
		statuses = cli.NewInstaller(cli.DefaultOSReleasePath).AddInstallHints(statuses)
		cli.PrintDependencyStatus(cmd.OutOrStdout(), statuses)

		for _, status := range statuses {
			if status.Required && !status.Installed {
				return fmt.Errorf("required tool %s is missing", status.Name)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(depsCmd)
}
