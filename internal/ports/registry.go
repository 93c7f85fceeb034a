package ports

import "context"

// RegistryClient talks to a container registry's HTTP API to resolve chart
// versions. Authentication for pulls stays with helm itself.
type RegistryClient interface {
	// PullToken requests a pull-scoped bearer token for the repository.
	PullToken(ctx context.Context, host, repository string) (string, error)
	// ListTags returns every tag of the repository.
	ListTags(ctx context.Context, host, repository, token string) ([]string, error)
}

// EndpointProber verifies that an exposed endpoint answers HTTP.
type EndpointProber interface {
	Probe(ctx context.Context, url string) error
}
