package handler

import (
	"context"
	"errors"
	"fmt"

	"shoctl/internal/cli/output"
	"shoctl/internal/core"
	"shoctl/internal/core/domain"
	"shoctl/internal/ports"
)

type ConsoleURLCommandHandler struct {
	configRepository core.ConfigRepository
	cluster          ports.Cluster
	serviceExposer   *core.ServiceExposer
}

func ProvideConsoleURLCommandHandler(
	configRepository core.ConfigRepository,
	cluster ports.Cluster,
	serviceExposer *core.ServiceExposer,
) ConsoleURLCommandHandler {
	return ConsoleURLCommandHandler{
		configRepository: configRepository,
		cluster:          cluster,
		serviceExposer:   serviceExposer,
	}
}

// Handle exposes the console for an already installed release and prints
// its URL. With portForward the command blocks holding a kubectl tunnel
// open until the context is cancelled.
func (h *ConsoleURLCommandHandler) Handle(ctx context.Context, opts core.RequestOptions, portForward bool) error {
	req, err := h.configRepository.BuildRequest(opts)
	if err != nil {
		return err
	}
	clusterType, err := h.cluster.DetectPlatform(ctx)
	if err != nil {
		return err
	}
	cfg := h.configRepository.ResolveConfig(req, clusterType)

	endpoint, tunnel, err := h.serviceExposer.Expose(ctx, core.ExposeRequest{
		Namespace:   req.Namespace,
		ReleaseName: req.ReleaseName,
		Port:        cfg.ConsolePort,
		PortForward: portForward,
		SkipBrowser: req.SkipBrowser,
		Timeouts:    h.configRepository.Timeouts(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrServiceMissing) {
			output.PrintHint("install the operator first", "shoctl install")
		}
		return err
	}

	if endpoint.Reachable {
		output.PrintSuccess(fmt.Sprintf("Console available at %s", endpoint.URL()))
	} else {
		output.PrintWarning(fmt.Sprintf("console exposed at %s but not answering yet", endpoint.URL()))
	}

	if tunnel == nil {
		return nil
	}
	defer func() { _ = tunnel.Stop() }()

	output.PrintInfo("Press Ctrl+C to close the tunnel")
	<-ctx.Done()
	return nil
}
