package testutil

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"shoctl/internal/ports"
)

// Compile-time interface compliance check
var _ ports.CommandRunner = (*MockCommandRunner)(nil)

// MockCommandRunner provides a testify mock for ports.CommandRunner
type MockCommandRunner struct {
	mock.Mock
}

func (m *MockCommandRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	callArgs := m.Called(ctx, name, args)
	if callArgs.Get(0) == nil {
		return nil, callArgs.Error(1)
	}
	return callArgs.Get(0).([]byte), callArgs.Error(1)
}

func (m *MockCommandRunner) RunWithStdin(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error) {
	callArgs := m.Called(ctx, stdin, name, args)
	if callArgs.Get(0) == nil {
		return nil, callArgs.Error(1)
	}
	return callArgs.Get(0).([]byte), callArgs.Error(1)
}

func (m *MockCommandRunner) Start(ctx context.Context, name string, args ...string) (ports.Process, error) {
	callArgs := m.Called(ctx, name, args)
	if callArgs.Get(0) == nil {
		return nil, callArgs.Error(1)
	}
	return callArgs.Get(0).(ports.Process), callArgs.Error(1)
}

func (m *MockCommandRunner) LookPath(name string) (string, error) {
	callArgs := m.Called(name)
	return callArgs.String(0), callArgs.Error(1)
}

// MockProcess provides a testify mock for ports.Process
type MockProcess struct {
	mock.Mock
}

func (m *MockProcess) Stop() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockProcess) Running() bool {
	args := m.Called()
	return args.Bool(0)
}
