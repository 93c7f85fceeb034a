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

// PollState is one state of the readiness machine.
type PollState int

const (
	Polling PollState = iota
	AllReady
	ErrorDetected
	TimedOut
)

func (s PollState) String() string {
	switch s {
	case AllReady:
		return "all pods ready"
	case ErrorDetected:
		return "pod error detected"
	case TimedOut:
		return "timed out"
	default:
		return "polling"
	}
}

// errorReasons are the container waiting reasons that end polling early.
var errorReasons = map[string]bool{
	"Error":            true,
	"CrashLoopBackOff": true,
	"ImagePullBackOff": true,
}

// PollResult is the terminal outcome of one readiness wait.
type PollResult struct {
	State       PollState
	Ready       int
	Total       int
	Diagnostics string
}

// ReadinessPoller watches the release pods until they are all running and
// ready, an error state shows up, or the ceiling elapses. Terminal
// non-ready states are reported, not raised; the caller decides severity.
type ReadinessPoller struct {
	cluster ports.Cluster
	clock   ports.Clock
}

func ProvideReadinessPoller(cluster ports.Cluster, clock ports.Clock) *ReadinessPoller {
	return &ReadinessPoller{cluster: cluster, clock: clock}
}

// Wait polls the pod set at the given interval until a terminal state.
func (p *ReadinessPoller) Wait(ctx context.Context, namespace, release string, interval, ceiling time.Duration) (PollResult, error) {
	start := p.clock.Now()

	for {
		pods, err := p.cluster.ReleasePods(ctx, namespace, release)
		if err != nil {
			return PollResult{State: Polling}, err
		}

		result := evaluate(pods)
		switch result.State {
		case AllReady:
			return result, nil
		case ErrorDetected:
			result.Diagnostics = p.diagnostics(ctx, namespace, release)
			return result, nil
		}

		if p.clock.Now().Sub(start) >= ceiling {
			result.State = TimedOut
			result.Diagnostics = p.diagnostics(ctx, namespace, release)
			return result, nil
		}

		output.PrintStep(progressLine(result))
		if err := p.clock.Sleep(ctx, interval); err != nil {
			return result, err
		}
	}
}

// evaluate applies the transition rules to one pod snapshot.
func evaluate(pods []domain.PodStatus) PollResult {
	result := PollResult{State: Polling, Total: len(pods)}
	if len(pods) == 0 {
		return result
	}

	allReady := true
	for _, pod := range pods {
		if errorReasons[pod.Reason] {
			result.State = ErrorDetected
			log.Debug().Str("pod", pod.Name).Str("reason", pod.Reason).Msg("pod in error state")
			return result
		}
		if pod.Phase == "Running" && pod.Ready {
			result.Ready++
		} else {
			allReady = false
		}
	}

	if allReady {
		result.State = AllReady
	}
	return result
}

func (p *ReadinessPoller) diagnostics(ctx context.Context, namespace, release string) string {
	dump, err := p.cluster.PodDiagnostics(ctx, namespace, release)
	if err != nil {
		return ""
	}
	return dump
}

func progressLine(result PollResult) string {
	if result.Total == 0 {
		return "waiting for pods to be scheduled"
	}
	return fmt.Sprintf("waiting for pods: %d/%d ready", result.Ready, result.Total)
}
