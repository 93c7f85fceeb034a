package testutil

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"shoctl/internal/ports"
)

// Compile-time interface compliance check
var _ ports.HelmClient = (*MockHelmClient)(nil)

// MockHelmClient provides a testify mock for ports.HelmClient
type MockHelmClient struct {
	mock.Mock
}

func (m *MockHelmClient) UpgradeInstall(ctx context.Context, release, chartRef, namespace, version string, values, secrets map[string]string) ([]byte, error) {
	args := m.Called(ctx, release, chartRef, namespace, version, values, secrets)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockHelmClient) Uninstall(ctx context.Context, release, namespace string) ([]byte, error) {
	args := m.Called(ctx, release, namespace)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockHelmClient) ReleaseExists(ctx context.Context, release, namespace string) (bool, error) {
	args := m.Called(ctx, release, namespace)
	return args.Bool(0), args.Error(1)
}

func (m *MockHelmClient) List(ctx context.Context, namespace string) ([]string, error) {
	args := m.Called(ctx, namespace)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockHelmClient) RegistryLogin(ctx context.Context, host, username string, password io.Reader) ([]byte, error) {
	args := m.Called(ctx, host, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
