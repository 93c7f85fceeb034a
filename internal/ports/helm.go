package ports

import (
	"context"
	"io"
)

// HelmClient defines the interface for interacting with the helm CLI.
// Helm stays an external binary; this wrapper only shapes its invocations.
type HelmClient interface {
	// UpgradeInstall runs helm upgrade --install with the given override
	// values. Entries in secrets are piped as a values file on stdin so
	// they never appear in argv. The combined output is returned even on
	// failure so the caller can classify the outcome.
	UpgradeInstall(ctx context.Context, release, chartRef, namespace, version string, values, secrets map[string]string) ([]byte, error)
	// Uninstall removes a helm release.
	Uninstall(ctx context.Context, release, namespace string) ([]byte, error)
	// ReleaseExists reports whether a release is installed in the namespace.
	ReleaseExists(ctx context.Context, release, namespace string) (bool, error)
	// List returns release names in the namespace. A zero exit doubles as
	// the cluster connectivity probe.
	List(ctx context.Context, namespace string) ([]string, error)
	// RegistryLogin authenticates helm against an OCI registry, piping the
	// password through stdin so it never appears in argv.
	RegistryLogin(ctx context.Context, host, username string, password io.Reader) ([]byte, error)
}
