package handler

import (
	"context"
	"fmt"

	"shoctl/internal/cli/output"
	"shoctl/internal/cli/progress"
	"shoctl/internal/core"
	"shoctl/internal/core/domain"
	"shoctl/internal/ports"
)

type InstallCommandHandler struct {
	configRepository   core.ConfigRepository
	dependencyResolver *core.DependencyResolver
	cluster            ports.Cluster
	versionResolver    *core.VersionResolver
	registryAuth       *core.RegistryAuthenticator
	releaseInstaller   *core.ReleaseInstaller
	readinessPoller    *core.ReadinessPoller
	serviceExposer     *core.ServiceExposer
}

func ProvideInstallCommandHandler(
	configRepository core.ConfigRepository,
	dependencyResolver *core.DependencyResolver,
	cluster ports.Cluster,
	versionResolver *core.VersionResolver,
	registryAuth *core.RegistryAuthenticator,
	releaseInstaller *core.ReleaseInstaller,
	readinessPoller *core.ReadinessPoller,
	serviceExposer *core.ServiceExposer,
) InstallCommandHandler {
	return InstallCommandHandler{
		configRepository:   configRepository,
		dependencyResolver: dependencyResolver,
		cluster:            cluster,
		versionResolver:    versionResolver,
		registryAuth:       registryAuth,
		releaseInstaller:   releaseInstaller,
		readinessPoller:    readinessPoller,
		serviceExposer:     serviceExposer,
	}
}

func (h *InstallCommandHandler) Handle(ctx context.Context, opts core.RequestOptions) error {
	req, err := h.configRepository.BuildRequest(opts)
	if err != nil {
		return err
	}

	output.PrintHeader(fmt.Sprintf("Installing Self-Hosted Operator (%s)", req.Environment))
	fmt.Println()

	// Dependency and connectivity failures abort before anything mutates.
	if err := h.dependencyResolver.EnsureTools(ctx); err != nil {
		return err
	}
	if err := h.dependencyResolver.CheckCluster(ctx, req.Namespace); err != nil {
		output.PrintHint("verify your cluster connection", "kubectl cluster-info")
		return err
	}

	clusterType, err := h.cluster.DetectPlatform(ctx)
	if err != nil {
		return err
	}
	cfg := h.configRepository.ResolveConfig(req, clusterType)

	steps := []string{"Resolve chart version", "Authenticate registry", "Install chart"}
	tracker := progress.NewTrackerWithVerb(steps, "Running")
	tracker.Start()

	tracker.StartItem(0)
	version, err := h.versionResolver.Resolve(ctx, req, cfg)
	tracker.CompleteItem(0, err)
	tracker.PrintItemComplete(0)
	if err != nil {
		tracker.Stop()
		return err
	}

	tracker.StartItem(1)
	cred, authErr := h.authenticate(ctx, req, cfg)
	tracker.CompleteItem(1, authErr)
	tracker.PrintItemComplete(1)
	if authErr != nil {
		tracker.Stop()
		return authErr
	}

	tracker.StartItem(2)
	installErr := h.releaseInstaller.Install(ctx, req, cfg, version, cred)
	tracker.CompleteItem(2, installErr)
	tracker.PrintItemComplete(2)
	tracker.Stop()
	fmt.Println()

	if installErr != nil {
		output.PrintHint("inspect the release state", fmt.Sprintf("helm status %s --namespace %s", req.ReleaseName, req.Namespace))
		return installErr
	}
	output.PrintSuccess(fmt.Sprintf("Chart %s installed as release %q", version, req.ReleaseName))
	fmt.Println()

	h.waitForPods(ctx, req)
	h.expose(ctx, req, cfg)
	return nil
}

// authenticate logs helm into the chart registry. In ACR mode a failure is
// fatal; against the public registry it only costs anonymous rate limits,
// so it degrades to a warning.
func (h *InstallCommandHandler) authenticate(ctx context.Context, req domain.InstallRequest, cfg domain.ResolvedConfig) (*domain.RegistryCredential, error) {
	cred, err := h.registryAuth.ResolveCredential(ctx, req.RegistryMode, cfg.RegistryHost)
	if err != nil {
		if req.RegistryMode == domain.RegistryACR {
			return nil, err
		}
		output.PrintWarning(fmt.Sprintf("continuing without registry login: %v", err))
		return nil, nil
	}
	if err := h.registryAuth.Login(ctx, cred); err != nil {
		if req.RegistryMode == domain.RegistryACR {
			return nil, err
		}
		output.PrintWarning(fmt.Sprintf("continuing without registry login: %v", err))
		return nil, nil
	}
	return &cred, nil
}

// waitForPods polls for readiness. A timeout or pod error is reported as a
// warning with next steps; the install itself already succeeded.
func (h *InstallCommandHandler) waitForPods(ctx context.Context, req domain.InstallRequest) {
	timeouts := h.configRepository.Timeouts()
	output.PrintInfo("Waiting for operator pods to become ready")

	result, err := h.readinessPoller.Wait(ctx, req.Namespace, req.ReleaseName, timeouts.PollInterval, timeouts.PollCeiling)
	if err != nil {
		output.PrintWarning(fmt.Sprintf("could not watch pod readiness: %v", err))
		return
	}

	switch result.State {
	case core.AllReady:
		output.PrintSuccess(fmt.Sprintf("All %d operator pods are running and ready", result.Total))
	default:
		output.PrintWarning(fmt.Sprintf("pods are not ready yet (%s); the release may still be starting", result.State))
		output.PrintDiagnostics(result.Diagnostics)
		output.PrintHint("check pod status with", fmt.Sprintf("kubectl get pods --namespace %s", req.Namespace))
		output.PrintHint("inspect pod details with", fmt.Sprintf("kubectl describe pods --namespace %s", req.Namespace))
	}
	fmt.Println()
}

// expose creates the console front-end. Exposure problems never fail the
// command; the release is installed either way.
func (h *InstallCommandHandler) expose(ctx context.Context, req domain.InstallRequest, cfg domain.ResolvedConfig) {
	endpoint, _, err := h.serviceExposer.Expose(ctx, core.ExposeRequest{
		Namespace:   req.Namespace,
		ReleaseName: req.ReleaseName,
		Port:        cfg.ConsolePort,
		SkipBrowser: req.SkipBrowser,
		Timeouts:    h.configRepository.Timeouts(),
	})
	if err != nil {
		output.PrintWarning(fmt.Sprintf("could not expose the console: %v", err))
		output.PrintHint("retry later with", "shoctl console-url")
		return
	}

	if endpoint.Reachable {
		output.PrintSuccess(fmt.Sprintf("Console available at %s", endpoint.URL()))
		return
	}
	output.PrintWarning(fmt.Sprintf("console created at %s but not answering yet", endpoint.URL()))
}
