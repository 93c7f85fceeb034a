package ports

import (
	"context"
	"io"
)

// Process is a handle to a background child process, such as the
// port-forward tunnel, so it can be stopped explicitly later.
type Process interface {
	Stop() error
	Running() bool
}

// CommandRunner executes external tools and returns their combined output.
// Every call takes a context so an interrupt reaches the child process.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
	RunWithStdin(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error)
	// Start launches a long-running command without waiting for it.
	Start(ctx context.Context, name string, args ...string) (Process, error)
	// LookPath reports whether a tool is present on the execution PATH.
	LookPath(name string) (string, error)
}
