package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"shoctl/internal/ports"
)

// Compile-time interface compliance check
var _ ports.Platform = (*MockPlatform)(nil)

// MockPlatform provides a testify mock for ports.Platform
type MockPlatform struct {
	mock.Mock
}

func (m *MockPlatform) InstallTool(ctx context.Context, tool string) error {
	args := m.Called(ctx, tool)
	return args.Error(0)
}

func (m *MockPlatform) OpenBrowser(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}
