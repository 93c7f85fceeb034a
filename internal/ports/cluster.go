package ports

import (
	"context"

	"shoctl/internal/core/domain"
)

// Cluster wraps the Kubernetes API operations the installer needs, from
// platform detection through cleanup.
type Cluster interface {
	// DetectPlatform reports whether the target is OpenShift or plain
	// Kubernetes, which decides whether an SCC must be created.
	DetectPlatform(ctx context.Context) (domain.ClusterType, error)
	// EnsureNamespace creates the namespace, treating "already exists" as
	// success.
	EnsureNamespace(ctx context.Context, name string) error
	// ReleasePods returns the current status of every pod labeled with the
	// release instance.
	ReleasePods(ctx context.Context, namespace, release string) ([]domain.PodStatus, error)
	// PodDiagnostics returns a human-readable dump of pod statuses and
	// recent events, used when polling ends in an error state.
	PodDiagnostics(ctx context.Context, namespace, release string) (string, error)
	// ServiceExists reports whether a service is present in the namespace.
	ServiceExists(ctx context.Context, namespace, name string) (bool, error)
	// EnsureLoadBalancer creates a LoadBalancer service fronting the given
	// selector and port, treating "already exists" as success.
	EnsureLoadBalancer(ctx context.Context, namespace, name, release string, port int) error
	// LoadBalancerAddress returns the populated hostname or IP of the
	// service, hostname preferred, or empty while still pending.
	LoadBalancerAddress(ctx context.Context, namespace, name string) (string, error)
	// DeleteService removes a service, tolerating absence.
	DeleteService(ctx context.Context, namespace, name string) error
	// StripFinalizers clears metadata.finalizers on every object of the
	// kind in the namespace so deletion is not blocked.
	StripFinalizers(ctx context.Context, kind domain.ResourceKind, namespace string) error
	// DeleteResource deletes one named custom resource, tolerating absence.
	DeleteResource(ctx context.Context, kind domain.ResourceKind, namespace, name string) error
	// ForceDeletePods deletes all pods in the namespace with no grace period.
	ForceDeletePods(ctx context.Context, namespace string) error
	// DeleteNamespace initiates namespace deletion without waiting for
	// termination, tolerating absence.
	DeleteNamespace(ctx context.Context, name string) error
}
