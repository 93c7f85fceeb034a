package platform

import (
	"context"
	"errors"
	"testing"

	"shoctl/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestOsPlatform_InstallToolUsesHomebrewOnDarwin(t *testing.T) {
	runner := testutil.MockCommandRunner{}
	runner.On("Run", mock.Anything, "brew", []string{"install", "helm"}).Return([]byte(""), nil)
	sut := NewOsPlatform(&runner, "darwin")

	err := sut.InstallTool(context.Background(), "helm")

	assert.Nil(t, err)
	runner.AssertExpectations(t)
}

func TestOsPlatform_InstallToolMapsAwsToAwscliPackage(t *testing.T) {
	runner := testutil.MockCommandRunner{}
	runner.On("Run", mock.Anything, "sudo", []string{"apt-get", "install", "-y", "awscli"}).Return([]byte(""), nil)
	sut := NewOsPlatform(&runner, "linux")

	err := sut.InstallTool(context.Background(), "aws")

	assert.Nil(t, err)
}

func TestOsPlatform_InstallToolFallsBackToDirectDownload(t *testing.T) {
	runner := testutil.MockCommandRunner{}
	runner.On("Run", mock.Anything, "sudo", mock.Anything).Return([]byte("E: Unable to locate package"), errors.New("exit status 100"))
	runner.On("Run", mock.Anything, "bash", mock.Anything).Return([]byte(""), nil)
	sut := NewOsPlatform(&runner, "linux")

	err := sut.InstallTool(context.Background(), "helm")

	assert.Nil(t, err)
	runner.AssertCalled(t, "Run", mock.Anything, "bash", mock.Anything)
}

func TestOsPlatform_InstallToolReportsLastFailedStrategy(t *testing.T) {
	runner := testutil.MockCommandRunner{}
	runner.On("Run", mock.Anything, mock.Anything, mock.Anything).Return([]byte("denied"), errors.New("exit status 1"))
	sut := NewOsPlatform(&runner, "linux")

	err := sut.InstallTool(context.Background(), "helm")

	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "direct download")
}

func TestOsPlatform_WindowsTriesWingetThenChocolatey(t *testing.T) {
	runner := testutil.MockCommandRunner{}
	runner.On("Run", mock.Anything, "winget", mock.Anything).Return([]byte(""), errors.New("not recognized"))
	runner.On("Run", mock.Anything, "choco", []string{"install", "-y", "kubectl"}).Return([]byte(""), nil)
	sut := NewOsPlatform(&runner, "windows")

	err := sut.InstallTool(context.Background(), "kubectl")

	assert.Nil(t, err)
	runner.AssertCalled(t, "Run", mock.Anything, "choco", []string{"install", "-y", "kubectl"})
}

func TestOsPlatform_OpenBrowserPerOS(t *testing.T) {
	cases := []struct {
		goos string
		name string
		args []string
	}{
		{"darwin", "open", []string{"http://localhost:5050"}},
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", "http://localhost:5050"}},
		{"linux", "xdg-open", []string{"http://localhost:5050"}},
	}

	for _, tc := range cases {
		t.Run(tc.goos, func(t *testing.T) {
			runner := testutil.MockCommandRunner{}
			runner.On("Run", mock.Anything, tc.name, tc.args).Return([]byte(""), nil)
			sut := NewOsPlatform(&runner, tc.goos)

			err := sut.OpenBrowser(context.Background(), "http://localhost:5050")

			assert.Nil(t, err)
			runner.AssertExpectations(t)
		})
	}
}
