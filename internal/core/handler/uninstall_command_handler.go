package handler

import (
	"context"
	"fmt"

	"shoctl/internal/cli/output"
	"shoctl/internal/core"
	"shoctl/internal/core/domain"
)

type UninstallCommandHandler struct {
	configRepository   core.ConfigRepository
	dependencyResolver *core.DependencyResolver
	uninstaller        *core.Uninstaller
}

func ProvideUninstallCommandHandler(
	configRepository core.ConfigRepository,
	dependencyResolver *core.DependencyResolver,
	uninstaller *core.Uninstaller,
) UninstallCommandHandler {
	return UninstallCommandHandler{
		configRepository:   configRepository,
		dependencyResolver: dependencyResolver,
		uninstaller:        uninstaller,
	}
}

// Handle tears down the operator release and everything it left behind.
// assumeYes skips the interactive confirmation.
func (h *UninstallCommandHandler) Handle(ctx context.Context, opts core.RequestOptions, assumeYes bool) error {
	req, err := h.configRepository.BuildRequest(opts)
	if err != nil {
		return err
	}

	output.PrintHeader("Uninstalling Self-Hosted Operator")
	output.PrintWarning(fmt.Sprintf("this removes release %q, its namespaces and all operator-managed workloads", req.ReleaseName))
	fmt.Println()

	if !assumeYes {
		confirmed, err := h.uninstaller.Confirm(req.ReleaseName)
		if err != nil {
			return err
		}
		if !confirmed {
			output.PrintInfo("Aborted, nothing was removed")
			return nil
		}
	}

	if err := h.dependencyResolver.EnsureTools(ctx); err != nil {
		return err
	}
	if err := h.dependencyResolver.CheckCluster(ctx, req.Namespace); err != nil {
		return err
	}

	topology := domain.DefaultCleanupTopology(req.Namespace)
	if err := h.uninstaller.Run(ctx, req, topology); err != nil {
		return err
	}

	output.PrintSuccess("Self-Hosted Operator removed")
	output.PrintInfo("Namespace deletion continues in the background; verify with: kubectl get namespaces")
	return nil
}
