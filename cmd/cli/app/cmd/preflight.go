package cmd

import (
	"github.com/spf13/cobra"

	"shoctl/cmd/cli/app"
)

func init() {
	rootCmd.AddCommand(preflightCmd)
}

var preflightCmd = &cobra.Command{
	Use:   "preflight",
	Short: "Checks tooling and cluster connectivity",
	Long: `Verifies that the required command line tools are installed and that the
cluster of the current kubeconfig context is reachable, without changing
anything.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectPreflightCommandHandler()
		if err != nil {
			return err
		}

		return handler.Handle(cmd.Context(), baseOptions())
	},
}
