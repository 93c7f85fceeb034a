package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"shoctl/internal/cli/output"
	"shoctl/internal/core/domain"
	"shoctl/internal/ports"
)

// Uninstaller tears down the release and the fixed set of dependent
// resources and namespaces. Every step after the release check is
// best-effort except the helm uninstall itself.
type Uninstaller struct {
	helmClient    ports.HelmClient
	cluster       ports.Cluster
	terminalInput ports.TerminalInput
	clock         ports.Clock
}

func ProvideUninstaller(
	helmClient ports.HelmClient,
	cluster ports.Cluster,
	terminalInput ports.TerminalInput,
	clock ports.Clock,
) *Uninstaller {
	return &Uninstaller{
		helmClient:    helmClient,
		cluster:       cluster,
		terminalInput: terminalInput,
		clock:         clock,
	}
}

// Confirm asks for explicit destructive intent. Anything other than the
// exact word "yes" is a clean no-op.
func (u *Uninstaller) Confirm(release string) (bool, error) {
	answer, err := u.terminalInput.ReadLine(
		fmt.Sprintf("This permanently removes the %s release and its namespaces. Type \"yes\" to continue: ", release))
	if err != nil {
		return false, err
	}
	return answer == "yes", nil
}

// Run executes the ordered teardown. The topology is static configuration:
// the dependent-namespace layout is known per deployment, not discovered.
func (u *Uninstaller) Run(ctx context.Context, req domain.InstallRequest, topology domain.CleanupTopology) error {
	exists, err := u.helmClient.ReleaseExists(ctx, req.ReleaseName, req.Namespace)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s in namespace %s", domain.ErrReleaseNotFound, req.ReleaseName, req.Namespace)
	}

	u.bestEffort("remove console service", u.cluster.DeleteService(ctx, req.Namespace, ConsoleServiceName(req.ReleaseName)))

	for _, kind := range topology.OperatorResources {
		u.bestEffort(fmt.Sprintf("clear %s finalizers", kind.Resource), u.cluster.StripFinalizers(ctx, kind, req.Namespace))
	}
	u.bestEffort("delete runtime resource",
		u.cluster.DeleteResource(ctx, topology.RuntimeResource, req.Namespace, topology.RuntimeResourceName))

	if output, err := u.helmClient.Uninstall(ctx, req.ReleaseName, req.Namespace); err != nil {
		return fmt.Errorf("helm uninstall failed: %w, output: %s", err, string(output))
	}

	if err := u.clock.Sleep(ctx, topology.SettleDelay); err != nil {
		return err
	}
	u.bestEffort("clear vault role finalizers", u.cluster.StripFinalizers(ctx, topology.VaultRoleResource, req.Namespace))

	for _, namespace := range topology.InfraNamespaces {
		u.bestEffort(fmt.Sprintf("clear helm-managed resources in %s", namespace),
			u.cluster.StripFinalizers(ctx, topology.HelmManagedResource, namespace))
	}
	if err := u.clock.Sleep(ctx, topology.SettleDelay); err != nil {
		return err
	}

	for _, namespace := range topology.PodSweepNamespaces {
		u.bestEffort(fmt.Sprintf("force delete pods in %s", namespace), u.cluster.ForceDeletePods(ctx, namespace))
	}

	// Namespace termination continues on the cluster after we return.
	for _, namespace := range topology.OperatorNamespaces {
		u.bestEffort(fmt.Sprintf("delete namespace %s", namespace), u.cluster.DeleteNamespace(ctx, namespace))
	}

	return nil
}

func (u *Uninstaller) bestEffort(step string, err error) {
	if err == nil {
		return
	}
	log.Debug().Str("step", step).Err(err).Msg("cleanup step failed")
	output.PrintWarning(fmt.Sprintf("could not %s: %v", step, err))
}
