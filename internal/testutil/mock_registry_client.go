package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"shoctl/internal/ports"
)

// Compile-time interface compliance check
var _ ports.RegistryClient = (*MockRegistryClient)(nil)

// MockRegistryClient provides a testify mock for ports.RegistryClient
type MockRegistryClient struct {
	mock.Mock
}

func (m *MockRegistryClient) PullToken(ctx context.Context, host, repository string) (string, error) {
	args := m.Called(ctx, host, repository)
	return args.String(0), args.Error(1)
}

func (m *MockRegistryClient) ListTags(ctx context.Context, host, repository, token string) ([]string, error) {
	args := m.Called(ctx, host, repository, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockEndpointProber provides a testify mock for ports.EndpointProber
type MockEndpointProber struct {
	mock.Mock
}

func (m *MockEndpointProber) Probe(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}
