package command_runner

import (
	"context"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("relies on a POSIX shell")
	}
}

func TestOsCommandRunner_RunReturnsCombinedOutput(t *testing.T) {
	skipOnWindows(t)
	sut := ProvideOsCommandRunner()

	output, err := sut.Run(context.Background(), "sh", "-c", "echo out; echo err 1>&2")

	assert.Nil(t, err)
	assert.Contains(t, string(output), "out")
	assert.Contains(t, string(output), "err")
}

func TestOsCommandRunner_RunReturnsOutputOnFailure(t *testing.T) {
	skipOnWindows(t)
	sut := ProvideOsCommandRunner()

	output, err := sut.Run(context.Background(), "sh", "-c", "echo broken; exit 3")

	assert.NotNil(t, err)
	assert.Contains(t, string(output), "broken")
}

func TestOsCommandRunner_RunWithStdin(t *testing.T) {
	skipOnWindows(t)
	sut := ProvideOsCommandRunner()

	output, err := sut.RunWithStdin(context.Background(), strings.NewReader("piped"), "cat")

	assert.Nil(t, err)
	assert.Equal(t, "piped", string(output))
}

func TestOsCommandRunner_StartAndStop(t *testing.T) {
	skipOnWindows(t)
	sut := ProvideOsCommandRunner()

	process, err := sut.Start(context.Background(), "sleep", "60")
	assert.Nil(t, err)
	assert.True(t, process.Running())

	assert.Nil(t, process.Stop())
	assert.Eventually(t, func() bool { return !process.Running() }, 5*time.Second, 10*time.Millisecond)
}

func TestOsCommandRunner_LookPath(t *testing.T) {
	skipOnWindows(t)
	sut := ProvideOsCommandRunner()

	path, err := sut.LookPath("sh")
	assert.Nil(t, err)
	assert.NotEmpty(t, path)

	_, err = sut.LookPath("definitely-not-a-command-xyz")
	assert.NotNil(t, err)
}
