package handler

import (
	"context"
	"fmt"

	"shoctl/internal/cli/output"
	"shoctl/internal/core"
	"shoctl/internal/ports"
)

type PreflightCommandHandler struct {
	configRepository   core.ConfigRepository
	dependencyResolver *core.DependencyResolver
	cluster            ports.Cluster
}

func ProvidePreflightCommandHandler(
	configRepository core.ConfigRepository,
	dependencyResolver *core.DependencyResolver,
	cluster ports.Cluster,
) PreflightCommandHandler {
	return PreflightCommandHandler{
		configRepository:   configRepository,
		dependencyResolver: dependencyResolver,
		cluster:            cluster,
	}
}

// Handle verifies tooling and cluster connectivity without changing
// anything, so an install can be attempted with confidence.
func (h *PreflightCommandHandler) Handle(ctx context.Context, opts core.RequestOptions) error {
	req, err := h.configRepository.BuildRequest(opts)
	if err != nil {
		return err
	}

	output.PrintHeader("Preflight checks")
	fmt.Println()

	ok := true
	if err := h.dependencyResolver.EnsureTools(ctx); err != nil {
		output.PrintError(fmt.Sprintf("tooling: %v", err))
		ok = false
	} else {
		output.PrintSuccess("Required tools are installed")
	}

	if err := h.dependencyResolver.CheckCluster(ctx, req.Namespace); err != nil {
		output.PrintError(fmt.Sprintf("cluster: %v", err))
		output.PrintHint("verify your cluster connection", "kubectl cluster-info")
		ok = false
	} else {
		output.PrintSuccess("Cluster is reachable")
		clusterType, err := h.cluster.DetectPlatform(ctx)
		if err != nil {
			output.PrintWarning(fmt.Sprintf("could not detect the platform: %v", err))
		} else {
			output.PrintInfo(fmt.Sprintf("Detected platform: %s", clusterType))
		}
	}

	if !ok {
		return fmt.Errorf("preflight checks failed")
	}
	output.PrintSuccess(fmt.Sprintf("Ready to install into environment %q", req.Environment))
	return nil
}
