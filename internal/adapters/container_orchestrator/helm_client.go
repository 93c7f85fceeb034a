package container_orchestrator

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"shoctl/internal/ports"
)

var _ ports.HelmClient = (*HelmClient)(nil)

// HelmClient implements ports.HelmClient using the helm CLI.
type HelmClient struct {
	commandRunner ports.CommandRunner
}

// ProvideHelmClient creates a HelmClient for Wire dependency injection.
func ProvideHelmClient(runner ports.CommandRunner) *HelmClient {
	return &HelmClient{
		commandRunner: runner,
	}
}

// UpgradeInstall installs or upgrades the operator chart. Override values
// are passed as --set pairs in deterministic order; secret values are sent
// as a values file on stdin so they never show up in a process listing.
func (h *HelmClient) UpgradeInstall(ctx context.Context, release, chartRef, namespace, version string, values, secrets map[string]string) ([]byte, error) {
	cmdArgs := []string{
		"upgrade",
		"--install",
		release,
		chartRef,
	}
	if version != "" {
		cmdArgs = append(cmdArgs, "--version", version)
	}
	if namespace != "" {
		cmdArgs = append(cmdArgs, "--namespace", namespace)
	}
	for _, key := range sortedKeys(values) {
		cmdArgs = append(cmdArgs, "--set", fmt.Sprintf("%s=%s", key, values[key]))
	}

	var stdin io.Reader
	if len(secrets) > 0 {
		doc, err := secretValuesYAML(secrets)
		if err != nil {
			return nil, err
		}
		cmdArgs = append(cmdArgs, "--values", "-")
		stdin = strings.NewReader(doc)
	}

	log.Debug().Str("release", release).Str("chart", chartRef).Str("version", version).Msg("running helm upgrade --install")

	if stdin != nil {
		return h.commandRunner.RunWithStdin(ctx, stdin, "helm", cmdArgs...)
	}
	return h.commandRunner.Run(ctx, "helm", cmdArgs...)
}

// Uninstall removes a helm release.
func (h *HelmClient) Uninstall(ctx context.Context, release, namespace string) ([]byte, error) {
	cmdArgs := []string{"uninstall", release}
	if namespace != "" {
		cmdArgs = append(cmdArgs, "--namespace", namespace)
	}

	output, err := h.commandRunner.Run(ctx, "helm", cmdArgs...)
	if err != nil {
		return output, fmt.Errorf("failed to uninstall helm release: %w, output: %s", err, string(output))
	}
	return output, nil
}

// ReleaseExists reports whether the release is installed in the namespace.
func (h *HelmClient) ReleaseExists(ctx context.Context, release, namespace string) (bool, error) {
	names, err := h.List(ctx, namespace)
	if err != nil {
		return false, err
	}
	for _, name := range names {
		if name == release {
			return true, nil
		}
	}
	return false, nil
}

// List returns release names in the namespace.
func (h *HelmClient) List(ctx context.Context, namespace string) ([]string, error) {
	cmdArgs := []string{"list", "--short"}
	if namespace != "" {
		cmdArgs = append(cmdArgs, "--namespace", namespace)
	}

	output, err := h.commandRunner.Run(ctx, "helm", cmdArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to list helm releases: %w, output: %s", err, string(output))
	}

	trimmed := strings.TrimSpace(string(output))
	if trimmed == "" {
		return []string{}, nil
	}
	return strings.Split(trimmed, "\n"), nil
}

// RegistryLogin authenticates helm against an OCI registry. The password is
// piped through stdin.
func (h *HelmClient) RegistryLogin(ctx context.Context, host, username string, password io.Reader) ([]byte, error) {
	cmdArgs := []string{
		"registry",
		"login",
		host,
		"--username", username,
		"--password-stdin",
	}
	return h.commandRunner.RunWithStdin(ctx, password, "helm", cmdArgs...)
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// secretValuesYAML turns dotted override keys into a nested values document.
func secretValuesYAML(secrets map[string]string) (string, error) {
	root := make(map[string]interface{})
	for _, key := range sortedKeys(secrets) {
		node := root
		parts := strings.Split(key, ".")
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]interface{})
			if !ok {
				child = make(map[string]interface{})
				node[part] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = secrets[key]
	}
	encoded, err := yaml.Marshal(root)
	if err != nil {
		return "", fmt.Errorf("failed to encode secret values: %w", err)
	}
	return string(encoded), nil
}
