package cmd

import (
	"github.com/spf13/cobra"

	"shoctl/cmd/cli/app"
)

var (
	consolePortForward bool
	consoleSkipBrowser bool
)

func init() {
	consoleURLCmd.Flags().BoolVar(&consolePortForward, "port-forward", false, "Tunnel through kubectl port-forward instead of a LoadBalancer")
	consoleURLCmd.Flags().BoolVar(&consoleSkipBrowser, "skip-browser", false, "Do not open the console in a browser")
	rootCmd.AddCommand(consoleURLCmd)
}

var consoleURLCmd = &cobra.Command{
	Use:   "console-url",
	Short: "Prints the operator console URL",
	Long: `Exposes the console of an installed Self-Hosted Operator release and
prints its URL. With --port-forward the command keeps a local kubectl
tunnel open until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectConsoleURLCommandHandler()
		if err != nil {
			return err
		}

		opts := baseOptions()
		opts.SkipBrowser = consoleSkipBrowser
		return handler.Handle(cmd.Context(), opts, consolePortForward)
	},
}
