package core

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"shoctl/internal/cli/output"
	"shoctl/internal/core/domain"
	"shoctl/internal/ports"
)

// ExposeRequest describes how the console should be made reachable.
type ExposeRequest struct {
	Namespace   string
	ReleaseName string
	Port        int
	// PortForward tunnels through kubectl instead of a LoadBalancer.
	PortForward bool
	SkipBrowser bool
	Timeouts    Timeouts
}

// ServiceExposer fronts the operator console with a LoadBalancer service
// (or a local kubectl tunnel) and verifies the address answers HTTP.
type ServiceExposer struct {
	cluster       ports.Cluster
	commandRunner ports.CommandRunner
	prober        ports.EndpointProber
	platform      ports.Platform
	clock         ports.Clock
}

func ProvideServiceExposer(
	cluster ports.Cluster,
	commandRunner ports.CommandRunner,
	prober ports.EndpointProber,
	platform ports.Platform,
	clock ports.Clock,
) *ServiceExposer {
	return &ServiceExposer{
		cluster:       cluster,
		commandRunner: commandRunner,
		prober:        prober,
		platform:      platform,
		clock:         clock,
	}
}

// ConsoleServiceName is the front-end service created ahead of the
// chart's own console service.
func ConsoleServiceName(release string) string {
	return release + "-lb"
}

// Expose makes the console reachable and returns its endpoint. An endpoint
// that never answered HTTP within the retry budget is still returned, with
// Reachable false; only a missing backing service, a failed creation, or an
// address timeout are errors. The returned process is the background tunnel
// in port-forward mode, nil otherwise.
func (e *ServiceExposer) Expose(ctx context.Context, req ExposeRequest) (domain.Endpoint, ports.Process, error) {
	exists, err := e.cluster.ServiceExists(ctx, req.Namespace, req.ReleaseName)
	if err != nil {
		return domain.Endpoint{}, nil, err
	}
	if !exists {
		return domain.Endpoint{}, nil, fmt.Errorf("%w: %s/%s", domain.ErrServiceMissing, req.Namespace, req.ReleaseName)
	}

	if req.PortForward {
		return e.exposeTunnel(ctx, req)
	}
	return e.exposeLoadBalancer(ctx, req)
}

func (e *ServiceExposer) exposeLoadBalancer(ctx context.Context, req ExposeRequest) (domain.Endpoint, ports.Process, error) {
	name := ConsoleServiceName(req.ReleaseName)
	if err := e.cluster.EnsureLoadBalancer(ctx, req.Namespace, name, req.ReleaseName, req.Port); err != nil {
		return domain.Endpoint{}, nil, &domain.ExposeCreateError{Err: err}
	}

	host, err := e.waitForAddress(ctx, req, name)
	if err != nil {
		return domain.Endpoint{}, nil, err
	}

	endpoint := domain.Endpoint{Host: host, Port: req.Port}
	endpoint.Reachable = e.verify(ctx, endpoint, req.Timeouts.ProbeTries, req.Timeouts.ProbeBackoff)
	e.maybeOpenBrowser(ctx, req, endpoint)
	return endpoint, nil, nil
}

func (e *ServiceExposer) exposeTunnel(ctx context.Context, req ExposeRequest) (domain.Endpoint, ports.Process, error) {
	tunnel, err := e.commandRunner.Start(ctx, "kubectl",
		"port-forward",
		fmt.Sprintf("svc/%s", req.ReleaseName),
		fmt.Sprintf("%d:%d", req.Port, req.Port),
		"--namespace", req.Namespace,
	)
	if err != nil {
		return domain.Endpoint{}, nil, &domain.ExposeCreateError{Err: err}
	}

	endpoint := domain.Endpoint{Host: "localhost", Port: req.Port}
	endpoint.Reachable = e.verify(ctx, endpoint, req.Timeouts.TunnelProbeTries, req.Timeouts.TunnelProbeBackoff)
	e.maybeOpenBrowser(ctx, req, endpoint)
	return endpoint, tunnel, nil
}

// waitForAddress polls the front-end service until the cloud controller
// populates a hostname or IP, hostname preferred.
func (e *ServiceExposer) waitForAddress(ctx context.Context, req ExposeRequest, name string) (string, error) {
	start := e.clock.Now()
	for {
		host, err := e.cluster.LoadBalancerAddress(ctx, req.Namespace, name)
		if err != nil {
			return "", err
		}
		if host != "" {
			return host, nil
		}
		if e.clock.Now().Sub(start) >= req.Timeouts.PollCeiling {
			return "", domain.ErrExposeTimeout
		}
		output.PrintStep("waiting for an external address")
		if err := e.clock.Sleep(ctx, req.Timeouts.PollInterval); err != nil {
			return "", err
		}
	}
}

// verify probes the endpoint with bounded retries. Unreachable after the
// budget is a soft condition, reported to the caller through the flag.
func (e *ServiceExposer) verify(ctx context.Context, endpoint domain.Endpoint, tries int, backoff time.Duration) bool {
	url := endpoint.URL()
	for attempt := 1; attempt <= tries; attempt++ {
		err := e.prober.Probe(ctx, url)
		if err == nil {
			return true
		}
		log.Debug().Str("url", url).Int("attempt", attempt).Err(err).Msg("endpoint probe failed")
		if attempt == tries {
			break
		}
		if err := e.clock.Sleep(ctx, backoff); err != nil {
			return false
		}
	}
	return false
}

func (e *ServiceExposer) maybeOpenBrowser(ctx context.Context, req ExposeRequest, endpoint domain.Endpoint) {
	if req.SkipBrowser {
		return
	}
	if err := e.platform.OpenBrowser(ctx, endpoint.URL()); err != nil {
		// Browser problems never fail the flow.
		log.Debug().Err(err).Msg("failed to open browser")
	}
}
