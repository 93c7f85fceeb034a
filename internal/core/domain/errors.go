package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared across the install and uninstall flows.
var (
	// ErrClusterUnreachable means no control-plane call succeeded.
	ErrClusterUnreachable = errors.New("kubernetes cluster is not reachable")
	// ErrTokenUnavailable means the registry token endpoint returned no token.
	ErrTokenUnavailable = errors.New("registry did not return a pull token")
	// ErrUnauthorized covers registry login rejections.
	ErrUnauthorized = errors.New("registry rejected the supplied credentials")
	// ErrReleaseNotFound aborts an uninstall that has nothing to clean up.
	ErrReleaseNotFound = errors.New("helm release not found")
	// ErrServiceMissing means the backing service the exposer fronts does not exist.
	ErrServiceMissing = errors.New("operator service not found")
	// ErrExposeTimeout means no external address appeared within the polling ceiling.
	ErrExposeTimeout = errors.New("timed out waiting for an external address")
)

// DependencyError reports a required tool that is missing and could not be
// installed, naming the last strategy that was attempted.
type DependencyError struct {
	Tool     string
	Strategy string
	Err      error
}

func (e *DependencyError) Error() string {
	if e.Strategy == "" {
		return fmt.Sprintf("required tool %q is not available: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("required tool %q is not available (last attempted install via %s): %v", e.Tool, e.Strategy, e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }

// NoValidVersionError means the registry listed tags but none matched the
// strict MAJOR.MINOR.PATCH pattern. The raw tag list is kept for diagnostics.
type NoValidVersionError struct {
	Tags []string
}

func (e *NoValidVersionError) Error() string {
	return fmt.Sprintf("no tag matches MAJOR.MINOR.PATCH, got: [%s]", strings.Join(e.Tags, ", "))
}

// InstallErrorKind classifies a failed helm upgrade from its output.
type InstallErrorKind string

const (
	InstallReleaseExists      InstallErrorKind = "release-exists"
	InstallNetworkUnreachable InstallErrorKind = "network-unreachable"
	InstallUnauthorized       InstallErrorKind = "unauthorized"
	InstallChartNotFound      InstallErrorKind = "chart-not-found"
	InstallUnknown            InstallErrorKind = "unknown"
)

// InstallError wraps a failed chart install with a best-effort
// classification of the helm output. Output always carries the raw text.
type InstallError struct {
	Kind   InstallErrorKind
	Output string
	Err    error
}

func (e *InstallError) Error() string {
	switch e.Kind {
	case InstallReleaseExists:
		return "release already exists"
	case InstallNetworkUnreachable:
		return "chart registry is not reachable from this machine"
	case InstallUnauthorized:
		return "chart registry rejected the configured credentials"
	case InstallChartNotFound:
		return "chart or chart version not found in the registry"
	default:
		return fmt.Sprintf("helm install failed: %v", e.Err)
	}
}

func (e *InstallError) Unwrap() error { return e.Err }

// AuthError carries an unclassified registry login failure with raw output.
type AuthError struct {
	Output string
	Err    error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("registry login failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// ExposeCreateError means the console front-end service could not be created.
type ExposeCreateError struct {
	Err error
}

func (e *ExposeCreateError) Error() string {
	return fmt.Sprintf("failed to create console service: %v", e.Err)
}

func (e *ExposeCreateError) Unwrap() error { return e.Err }
