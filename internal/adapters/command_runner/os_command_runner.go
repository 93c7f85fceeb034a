package command_runner

import (
	"context"
	"io"
	"os/exec"

	"shoctl/internal/ports"
)

var _ ports.CommandRunner = (*OsCommandRunner)(nil)

// OsCommandRunner executes external tools using os/exec. Commands inherit
// the parent environment and are bound to the caller's context so an
// interrupt also stops the child.
type OsCommandRunner struct{}

func ProvideOsCommandRunner() *OsCommandRunner {
	return &OsCommandRunner{}
}

func (r *OsCommandRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

func (r *OsCommandRunner) RunWithStdin(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	return cmd.CombinedOutput()
}

func (r *OsCommandRunner) Start(ctx context.Context, name string, args ...string) (ports.Process, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	p := &osProcess{cmd: cmd, done: make(chan struct{})}
	go func() {
		_ = cmd.Wait()
		close(p.done)
	}()
	return p, nil
}

func (r *OsCommandRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

type osProcess struct {
	cmd  *exec.Cmd
	done chan struct{}
}

func (p *osProcess) Stop() error {
	if !p.Running() {
		return nil
	}
	return p.cmd.Process.Kill()
}

func (p *osProcess) Running() bool {
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}
