package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"shoctl/internal/core/domain"
	"shoctl/internal/ports"
)

// outcomeRule pairs a text predicate with the error kind it indicates.
// Rules are evaluated in order; classification of helm's human-readable
// output is best-effort, so the final fallback is always Unknown with the
// raw text attached.
type outcomeRule struct {
	kind    domain.InstallErrorKind
	markers []string
}

var installOutcomeRules = []outcomeRule{
	{kind: domain.InstallReleaseExists, markers: []string{"already exists"}},
	{kind: domain.InstallNetworkUnreachable, markers: []string{"no route to host", "connection refused", "i/o timeout", "no such host"}},
	{kind: domain.InstallUnauthorized, markers: []string{"401", "unauthorized"}},
	{kind: domain.InstallChartNotFound, markers: []string{"404", "not found"}},
}

// ClassifyInstallOutcome maps a failed helm invocation to an InstallError
// using the prioritized marker rules.
func ClassifyInstallOutcome(output string, err error) *domain.InstallError {
	lower := strings.ToLower(output)
	for _, rule := range installOutcomeRules {
		for _, marker := range rule.markers {
			if strings.Contains(lower, marker) {
				return &domain.InstallError{Kind: rule.kind, Output: output, Err: err}
			}
		}
	}
	return &domain.InstallError{Kind: domain.InstallUnknown, Output: output, Err: err}
}

// ReleaseInstaller drives helm upgrade --install with the fixed override
// set the operator chart expects.
type ReleaseInstaller struct {
	helmClient ports.HelmClient
	cluster    ports.Cluster
	clock      ports.Clock
}

func ProvideReleaseInstaller(
	helmClient ports.HelmClient,
	cluster ports.Cluster,
	clock ports.Clock,
) *ReleaseInstaller {
	return &ReleaseInstaller{
		helmClient: helmClient,
		cluster:    cluster,
		clock:      clock,
	}
}

// Install ensures the namespace exists and installs or upgrades the chart.
// The rollout timestamp override changes on every call, so a re-install
// with identical values still restarts the pods.
func (i *ReleaseInstaller) Install(ctx context.Context, req domain.InstallRequest, cfg domain.ResolvedConfig, version string, cred *domain.RegistryCredential) error {
	if err := i.cluster.EnsureNamespace(ctx, req.Namespace); err != nil {
		return fmt.Errorf("failed to prepare namespace: %w", err)
	}

	values := map[string]string{
		"image.registry":                  cfg.ImageRegistry,
		"image.repository":                cfg.ImageRepository,
		"image.tag":                       "v" + version,
		"podAnnotations.rolloutTimestamp": i.clock.Now().UTC().Format(time.RFC3339),
		"platform.type":                   string(cfg.ClusterType),
		"platform.createSCC":              fmt.Sprintf("%t", cfg.SCCRequired),
	}

	var secrets map[string]string
	if cred != nil && req.RegistryMode == domain.RegistryACR {
		secrets = map[string]string{
			"imageCredentials.registry": cred.Host,
			"imageCredentials.username": cred.Username,
			"imageCredentials.password": cred.Password,
		}
	}

	log.Debug().Str("release", req.ReleaseName).Str("version", version).Msg("installing chart")
	output, err := i.helmClient.UpgradeInstall(ctx, req.ReleaseName, cfg.ChartRepository, req.Namespace, version, values, secrets)
	if err != nil {
		return ClassifyInstallOutcome(string(output), err)
	}
	return nil
}
