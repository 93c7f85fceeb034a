package cmd

import (
	"github.com/spf13/cobra"

	"shoctl/cmd/cli/app"
)

var uninstallYes bool

func init() {
	uninstallCmd.Flags().BoolVarP(&uninstallYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(uninstallCmd)
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Removes the Self-Hosted Operator",
	Long: `Removes the Self-Hosted Operator release together with the namespaces,
custom resources and workloads it manages. Asks for confirmation unless
--yes is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectUninstallCommandHandler()
		if err != nil {
			return err
		}

		return handler.Handle(cmd.Context(), baseOptions(), uninstallYes)
	},
}
