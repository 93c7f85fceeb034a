package core

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog/log"

	"shoctl/internal/core/domain"
	"shoctl/internal/ports"
)

// versionPattern is the strict MAJOR.MINOR.PATCH form chart versions must
// have. Tags like "latest" or build hashes are ignored, not errors.
var versionPattern = regexp.MustCompile(`^[0-9]+\.[0-9]+\.[0-9]+$`)

// VersionResolver picks the chart version to install: an explicit request
// is used as-is, otherwise the highest semantic version the registry lists.
type VersionResolver struct {
	registry ports.RegistryClient
}

func ProvideVersionResolver(registry ports.RegistryClient) *VersionResolver {
	return &VersionResolver{registry: registry}
}

// Resolve returns the version to install for the request. Tags are listed
// from the same repository the chart will be pulled from, so a repository
// override resolves against the override, not the environment default.
func (v *VersionResolver) Resolve(ctx context.Context, req domain.InstallRequest, cfg domain.ResolvedConfig) (string, error) {
	if req.Version != "" {
		return req.Version, nil
	}

	host, repository, err := chartCoordinates(cfg.ChartRepository)
	if err != nil {
		return "", err
	}

	token, err := v.registry.PullToken(ctx, host, repository)
	if err != nil {
		return "", err
	}

	tags, err := v.registry.ListTags(ctx, host, repository, token)
	if err != nil {
		return "", err
	}

	latest, err := LatestVersion(tags)
	if err != nil {
		return "", err
	}
	log.Debug().Str("version", latest).Msg("resolved latest chart version")
	return latest, nil
}

// chartCoordinates splits an OCI chart reference into its registry host and
// repository path.
func chartCoordinates(chartRef string) (string, string, error) {
	trimmed, ok := strings.CutPrefix(chartRef, "oci://")
	if !ok {
		return "", "", fmt.Errorf("cannot list tags for non-OCI repository %q, pass an explicit --version", chartRef)
	}
	host, repository, ok := strings.Cut(trimmed, "/")
	if !ok || host == "" || repository == "" {
		return "", "", fmt.Errorf("malformed chart repository %q, expected oci://<host>/<repository>", chartRef)
	}
	return host, repository, nil
}

// LatestVersion filters tags down to strict MAJOR.MINOR.PATCH matches and
// returns the maximum under semantic version ordering.
func LatestVersion(tags []string) (string, error) {
	var best *semver.Version
	for _, tag := range tags {
		if !versionPattern.MatchString(tag) {
			continue
		}
		version, err := semver.NewVersion(tag)
		if err != nil {
			continue
		}
		if best == nil || version.GreaterThan(best) {
			best = version
		}
	}
	if best == nil {
		return "", &domain.NoValidVersionError{Tags: tags}
	}
	return best.String(), nil
}
