package core

import (
	"context"
	"fmt"
	"os"
	"strings"

	"shoctl/internal/core/domain"
	"shoctl/internal/ports"
)

// Keyring entries used as last-resort credential sources.
const (
	keyringRegistryUsername = "registry-username"
	keyringRegistryPassword = "registry-password"
)

// unauthorizedMarkers classify a registry login rejection from helm's
// human-readable output. Best-effort text matching, by nature incomplete.
var unauthorizedMarkers = []string{"401", "unauthorized", "authentication required"}

// RegistryAuthenticator resolves short-lived registry credentials and logs
// helm in with them. Passwords stay off argv and are never persisted.
type RegistryAuthenticator struct {
	commandRunner ports.CommandRunner
	keyring       ports.Keyring
	terminalInput ports.TerminalInput
	helmClient    ports.HelmClient
}

func ProvideRegistryAuthenticator(
	commandRunner ports.CommandRunner,
	keyring ports.Keyring,
	terminalInput ports.TerminalInput,
	helmClient ports.HelmClient,
) *RegistryAuthenticator {
	return &RegistryAuthenticator{
		commandRunner: commandRunner,
		keyring:       keyring,
		terminalInput: terminalInput,
		helmClient:    helmClient,
	}
}

// ResolveCredential finds a credential for the registry. ACR mode prefers
// the service principal variables; both modes fall back to the generic
// REGISTRY_USERNAME/REGISTRY_PASSWORD pair and then the OS keyring. Public
// ECR exchanges a password through the aws CLI. ACR mode finally prompts
// interactively when stdin is a terminal.
func (a *RegistryAuthenticator) ResolveCredential(ctx context.Context, mode domain.RegistryMode, host string) (domain.RegistryCredential, error) {
	if mode == domain.RegistryACR {
		if id, secret := os.Getenv("SP_ID"), os.Getenv("SP_SECRET"); id != "" && secret != "" {
			return domain.RegistryCredential{Username: id, Password: secret, Host: host}, nil
		}
	}

	if user, pass := os.Getenv("REGISTRY_USERNAME"), os.Getenv("REGISTRY_PASSWORD"); user != "" && pass != "" {
		return domain.RegistryCredential{Username: user, Password: pass, Host: host}, nil
	}

	if cred, ok := a.keyringCredential(host); ok {
		return cred, nil
	}

	if mode == domain.RegistryPublic {
		password, err := a.ecrPublicPassword(ctx)
		if err != nil {
			return domain.RegistryCredential{}, err
		}
		return domain.RegistryCredential{Username: "AWS", Password: password, Host: host}, nil
	}

	if a.terminalInput.IsTerminal() {
		return a.promptCredential(host)
	}

	return domain.RegistryCredential{}, fmt.Errorf("no registry credentials configured, set SP_ID/SP_SECRET or REGISTRY_USERNAME/REGISTRY_PASSWORD")
}

// promptCredential asks the user for registry credentials interactively,
// with the password read without echo.
func (a *RegistryAuthenticator) promptCredential(host string) (domain.RegistryCredential, error) {
	username, err := a.terminalInput.ReadLine(fmt.Sprintf("Username for %s: ", host))
	if err != nil {
		return domain.RegistryCredential{}, err
	}
	password, err := a.terminalInput.ReadPassword("Password: ")
	if err != nil {
		return domain.RegistryCredential{}, err
	}
	if username == "" || password == "" {
		return domain.RegistryCredential{}, fmt.Errorf("registry credentials cannot be empty")
	}
	return domain.RegistryCredential{Username: username, Password: password, Host: host}, nil
}

func (a *RegistryAuthenticator) keyringCredential(host string) (domain.RegistryCredential, bool) {
	hasUser, err := a.keyring.HasKey(keyringRegistryUsername)
	if err != nil || !hasUser {
		return domain.RegistryCredential{}, false
	}
	user, err := a.keyring.GetKey(keyringRegistryUsername)
	if err != nil {
		return domain.RegistryCredential{}, false
	}
	pass, err := a.keyring.GetKey(keyringRegistryPassword)
	if err != nil {
		return domain.RegistryCredential{}, false
	}
	return domain.RegistryCredential{Username: user, Password: pass, Host: host}, true
}

func (a *RegistryAuthenticator) ecrPublicPassword(ctx context.Context) (string, error) {
	output, err := a.commandRunner.Run(ctx, "aws", "ecr-public", "get-login-password", "--region", "us-east-1")
	if err != nil {
		return "", fmt.Errorf("failed to obtain ECR public login password: %w, output: %s", err, string(output))
	}
	return strings.TrimSpace(string(output)), nil
}

// Login authenticates helm against the registry, piping the password via
// stdin. Output matching a known unauthorized marker is classified as such.
func (a *RegistryAuthenticator) Login(ctx context.Context, cred domain.RegistryCredential) error {
	output, err := a.helmClient.RegistryLogin(ctx, cred.Host, cred.Username, strings.NewReader(cred.Password))
	if err == nil {
		return nil
	}

	lower := strings.ToLower(string(output))
	for _, marker := range unauthorizedMarkers {
		if strings.Contains(lower, marker) {
			return fmt.Errorf("%w (%s)", domain.ErrUnauthorized, cred.Host)
		}
	}
	return &domain.AuthError{Output: string(output), Err: err}
}
