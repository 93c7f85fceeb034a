package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rs/zerolog/log"

	"shoctl/internal/ports"
)

var _ ports.Platform = (*OsPlatform)(nil)

// OsPlatform implements ports.Platform for the current operating system:
// package manager first, documented direct download second.
type OsPlatform struct {
	commandRunner ports.CommandRunner
	goos          string
}

func ProvideOsPlatform(runner ports.CommandRunner) *OsPlatform {
	return &OsPlatform{commandRunner: runner, goos: runtime.GOOS}
}

// NewOsPlatform builds a platform adapter for an explicit GOOS, used by tests.
func NewOsPlatform(runner ports.CommandRunner, goos string) *OsPlatform {
	return &OsPlatform{commandRunner: runner, goos: goos}
}

// installStrategy is one way of getting a tool onto the machine.
type installStrategy struct {
	name string
	cmd  []string
}

// Direct-download fallbacks for unix-like systems. These mirror the
// documented install commands from the upstream projects.
var unixDownloadFallbacks = map[string][]string{
	"helm":    {"bash", "-c", "curl -fsSL https://raw.githubusercontent.com/helm/helm/main/scripts/get-helm-3 | bash"},
	"kubectl": {"bash", "-c", `curl -fsSLo /usr/local/bin/kubectl "https://dl.k8s.io/release/$(curl -fsSL https://dl.k8s.io/release/stable.txt)/bin/$(uname | tr '[:upper:]' '[:lower:]')/amd64/kubectl" && chmod +x /usr/local/bin/kubectl`},
}

func (p *OsPlatform) strategiesFor(tool string) []installStrategy {
	packageName := tool
	if tool == "aws" {
		packageName = "awscli"
	}

	var strategies []installStrategy
	switch p.goos {
	case "darwin":
		strategies = append(strategies, installStrategy{name: "homebrew", cmd: []string{"brew", "install", packageName}})
	case "windows":
		strategies = append(strategies,
			installStrategy{name: "winget", cmd: []string{"winget", "install", "--silent", packageName}},
			installStrategy{name: "chocolatey", cmd: []string{"choco", "install", "-y", packageName}},
		)
	default:
		strategies = append(strategies, installStrategy{name: "apt", cmd: []string{"sudo", "apt-get", "install", "-y", packageName}})
	}

	if p.goos != "windows" {
		if fallback, ok := unixDownloadFallbacks[tool]; ok {
			strategies = append(strategies, installStrategy{name: "direct download", cmd: fallback})
		}
	}
	return strategies
}

// InstallTool tries each strategy in order until one succeeds. The name of
// the last failed strategy is reported so the user knows what was tried.
func (p *OsPlatform) InstallTool(ctx context.Context, tool string) error {
	strategies := p.strategiesFor(tool)

	var lastErr error
	lastStrategy := ""
	for _, strategy := range strategies {
		log.Debug().Str("tool", tool).Str("strategy", strategy.name).Msg("attempting tool install")
		output, err := p.commandRunner.Run(ctx, strategy.cmd[0], strategy.cmd[1:]...)
		if err == nil {
			return nil
		}
		lastErr = fmt.Errorf("%w, output: %s", err, string(output))
		lastStrategy = strategy.name
	}
	return fmt.Errorf("install via %s failed: %w", lastStrategy, lastErr)
}

// OpenBrowser opens the URL with the platform's default handler.
func (p *OsPlatform) OpenBrowser(ctx context.Context, url string) error {
	var cmd []string
	switch p.goos {
	case "darwin":
		cmd = []string{"open", url}
	case "windows":
		cmd = []string{"rundll32", "url.dll,FileProtocolHandler", url}
	default:
		cmd = []string{"xdg-open", url}
	}
	output, err := p.commandRunner.Run(ctx, cmd[0], cmd[1:]...)
	if err != nil {
		return fmt.Errorf("failed to open browser: %w, output: %s", err, string(output))
	}
	return nil
}
