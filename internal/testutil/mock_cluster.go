package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"shoctl/internal/core/domain"
	"shoctl/internal/ports"
)

// Compile-time interface compliance check
var _ ports.Cluster = (*MockCluster)(nil)

// MockCluster provides a testify mock for ports.Cluster
type MockCluster struct {
	mock.Mock
}

func (m *MockCluster) DetectPlatform(ctx context.Context) (domain.ClusterType, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.ClusterType), args.Error(1)
}

func (m *MockCluster) EnsureNamespace(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockCluster) ReleasePods(ctx context.Context, namespace, release string) ([]domain.PodStatus, error) {
	args := m.Called(ctx, namespace, release)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PodStatus), args.Error(1)
}

func (m *MockCluster) PodDiagnostics(ctx context.Context, namespace, release string) (string, error) {
	args := m.Called(ctx, namespace, release)
	return args.String(0), args.Error(1)
}

func (m *MockCluster) ServiceExists(ctx context.Context, namespace, name string) (bool, error) {
	args := m.Called(ctx, namespace, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockCluster) EnsureLoadBalancer(ctx context.Context, namespace, name, release string, port int) error {
	args := m.Called(ctx, namespace, name, release, port)
	return args.Error(0)
}

func (m *MockCluster) LoadBalancerAddress(ctx context.Context, namespace, name string) (string, error) {
	args := m.Called(ctx, namespace, name)
	return args.String(0), args.Error(1)
}

func (m *MockCluster) DeleteService(ctx context.Context, namespace, name string) error {
	args := m.Called(ctx, namespace, name)
	return args.Error(0)
}

func (m *MockCluster) StripFinalizers(ctx context.Context, kind domain.ResourceKind, namespace string) error {
	args := m.Called(ctx, kind, namespace)
	return args.Error(0)
}

func (m *MockCluster) DeleteResource(ctx context.Context, kind domain.ResourceKind, namespace, name string) error {
	args := m.Called(ctx, kind, namespace, name)
	return args.Error(0)
}

func (m *MockCluster) ForceDeletePods(ctx context.Context, namespace string) error {
	args := m.Called(ctx, namespace)
	return args.Error(0)
}

func (m *MockCluster) DeleteNamespace(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}
