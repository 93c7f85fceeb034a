package cmd

import (
	"github.com/spf13/cobra"

	"shoctl/cmd/cli/app"
)

var (
	installVersion     string
	installRepository  string
	installUseACR      bool
	installSkipBrowser bool
)

func init() {
	installCmd.Flags().StringVar(&installVersion, "version", "", "Chart version to install (default: latest from the registry)")
	installCmd.Flags().StringVar(&installRepository, "repository", "", "Chart repository override (oci://...)")
	installCmd.Flags().BoolVar(&installUseACR, "use-acr", false, "Pull from the private ACR registry regardless of environment")
	installCmd.Flags().BoolVar(&installSkipBrowser, "skip-browser", false, "Do not open the console in a browser")
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Installs the Self-Hosted Operator",
	Long: `Installs the Self-Hosted Operator chart into the cluster of the current
kubeconfig context, waits for its pods to become ready and exposes the
operator console.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectInstallCommandHandler()
		if err != nil {
			return err
		}

		opts := baseOptions()
		opts.Version = installVersion
		opts.Repository = installRepository
		opts.SkipBrowser = installSkipBrowser
		if cmd.Flags().Changed("use-acr") {
			opts.UseACR = &installUseACR
		}
		return handler.Handle(cmd.Context(), opts)
	},
}
