package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"shoctl/internal/cli/output"
	"shoctl/internal/core/domain"
	"shoctl/internal/ports"
)

// requiredTools must be present before anything touches the cluster.
var requiredTools = []string{"helm", "kubectl"}

// optionalTools are only needed for specific registry modes; their absence
// is a warning, not a failure.
var optionalTools = []string{"aws", "jq"}

// DependencyResolver checks for the external binaries the installer drives
// and installs missing ones through the platform's package manager.
type DependencyResolver struct {
	commandRunner ports.CommandRunner
	platform      ports.Platform
	helmClient    ports.HelmClient
}

func ProvideDependencyResolver(
	commandRunner ports.CommandRunner,
	platform ports.Platform,
	helmClient ports.HelmClient,
) *DependencyResolver {
	return &DependencyResolver{
		commandRunner: commandRunner,
		platform:      platform,
		helmClient:    helmClient,
	}
}

// EnsureTools verifies every required tool is on PATH, attempting an
// install for missing ones and re-checking afterwards. All failures are
// aggregated into one go/no-go result.
func (d *DependencyResolver) EnsureTools(ctx context.Context) error {
	var failures []error
	for _, tool := range requiredTools {
		if err := d.ensureTool(ctx, tool); err != nil {
			failures = append(failures, err)
		}
	}

	for _, tool := range optionalTools {
		if _, err := d.commandRunner.LookPath(tool); err != nil {
			output.PrintWarning(fmt.Sprintf("optional tool %q not found, some registry modes will not work", tool))
		}
	}

	return errors.Join(failures...)
}

func (d *DependencyResolver) ensureTool(ctx context.Context, tool string) error {
	if _, err := d.commandRunner.LookPath(tool); err == nil {
		return nil
	}

	log.Debug().Str("tool", tool).Msg("tool missing, attempting install")
	installErr := d.platform.InstallTool(ctx, tool)

	if _, err := d.commandRunner.LookPath(tool); err == nil {
		return nil
	}
	if installErr == nil {
		installErr = fmt.Errorf("tool still missing after install")
	}
	return &domain.DependencyError{Tool: tool, Strategy: "platform install", Err: installErr}
}

// CheckCluster verifies control-plane connectivity with a no-output helm
// call; success is purely "did the call exit zero".
func (d *DependencyResolver) CheckCluster(ctx context.Context, namespace string) error {
	if _, err := d.helmClient.List(ctx, namespace); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrClusterUnreachable, err)
	}
	return nil
}
