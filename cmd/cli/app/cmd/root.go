package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"shoctl/internal/core"
	"shoctl/internal/logging"
)

var (
	envFlag     string
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "shoctl",
	Short: "Installer for the OutSystems Self-Hosted Operator",
	Long: `shoctl installs, exposes and removes the OutSystems Self-Hosted Operator
on a Kubernetes or OpenShift cluster.

Configuration is read from flags, environment variables and ~/.shoctl.yaml,
in that order of precedence.

Common workflows:
  shoctl preflight            Check tooling and cluster connectivity
  shoctl install              Install the operator and open its console
  shoctl console-url          Print (and expose) the console URL
  shoctl uninstall            Remove the operator and its namespaces`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verboseFlag)
	},
	SilenceUsage: true,
}

func Execute() {
	rootCmd.PersistentFlags().StringVar(&envFlag, "env", "", "Target environment (dev, test, ea, ga, prod, non-prod)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// baseOptions carries the persistent flags into a request.
func baseOptions() core.RequestOptions {
	return core.RequestOptions{Environment: envFlag}
}
