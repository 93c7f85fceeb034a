package domain

import (
	"fmt"
	"strings"
)

// Environment identifies the deployment target the operator is installed for.
type Environment string

const (
	EnvDev     Environment = "dev"
	EnvTest    Environment = "test"
	EnvEA      Environment = "ea"
	EnvGA      Environment = "ga"
	EnvProd    Environment = "prod"
	EnvNonProd Environment = "non-prod"
)

// Environments lists every accepted --env value.
var Environments = []Environment{EnvDev, EnvTest, EnvEA, EnvGA, EnvProd, EnvNonProd}

func ParseEnvironment(value string) (Environment, error) {
	for _, env := range Environments {
		if string(env) == value {
			return env, nil
		}
	}
	names := make([]string, len(Environments))
	for i, env := range Environments {
		names[i] = string(env)
	}
	return "", fmt.Errorf("unknown environment %q, expected one of: %s", value, strings.Join(names, ", "))
}

// RegistryMode selects how the chart registry is authenticated.
type RegistryMode string

const (
	RegistryPublic RegistryMode = "public"
	RegistryACR    RegistryMode = "acr"
)

// ClusterType distinguishes plain Kubernetes from OpenShift targets.
type ClusterType string

const (
	ClusterKubernetes ClusterType = "kubernetes"
	ClusterOpenShift  ClusterType = "openshift"
)

// InstallRequest carries the user's intent for a single command invocation.
// It is built once from flags and environment variables and never mutated.
type InstallRequest struct {
	Version      string // "x.y.z", "latest", or empty (resolve via registry)
	Environment  Environment
	RegistryMode RegistryMode
	Namespace    string
	ReleaseName  string
	Repository   string // chart repository override, empty = environment default
	SkipBrowser  bool
}

// ResolvedConfig is the fully derived run configuration, threaded explicitly
// through the call chain instead of read from the environment at point of use.
type ResolvedConfig struct {
	ChartRepository string // OCI reference without tag, e.g. oci://public.ecr.aws/outsystems/self-hosted-operator
	RegistryHost    string
	ImageRegistry   string
	ImageRepository string
	ClusterType     ClusterType
	SCCRequired     bool
	ConsolePort     int
}

// RegistryCredential is a short-lived registry login. It is never written
// to disk or passed on a command line.
type RegistryCredential struct {
	Username string
	Password string
	Host     string
}

// Endpoint is the externally reachable address of the operator console.
type Endpoint struct {
	Host      string
	Port      int
	Reachable bool
}

func (e Endpoint) URL() string {
	return fmt.Sprintf("http://%s:%d", e.Host, e.Port)
}

// PodStatus is a point-in-time view of one pod belonging to the release.
type PodStatus struct {
	Name   string
	Phase  string
	Ready  bool
	Reason string // waiting reason such as CrashLoopBackOff, empty when none
}

const (
	// DefaultReleaseName is the Helm release the operator is installed as.
	DefaultReleaseName = "self-hosted-operator"
	// DefaultNamespace is the namespace the release is installed into.
	DefaultNamespace = "self-hosted-operator"
	// ConsolePort is the port the operator console listens on.
	ConsolePort = 5050
)

type environmentDefaults struct {
	RegistryHost    string
	ChartRepository string // repository path within the registry
	ImageRepository string
	RegistryMode    RegistryMode
}

// Per-environment registry coordinates. GA and prod pull from the public
// ECR gallery, everything else from the non-production ACR.
var defaultsByEnvironment = map[Environment]environmentDefaults{
	EnvGA:      {RegistryHost: "public.ecr.aws", ChartRepository: "outsystems/self-hosted-operator", ImageRepository: "outsystems/self-hosted-operator", RegistryMode: RegistryPublic},
	EnvProd:    {RegistryHost: "public.ecr.aws", ChartRepository: "outsystems/self-hosted-operator", ImageRepository: "outsystems/self-hosted-operator", RegistryMode: RegistryPublic},
	EnvDev:     {RegistryHost: "outsystemsnonprod.azurecr.io", ChartRepository: "self-hosted-operator/chart", ImageRepository: "self-hosted-operator/operator", RegistryMode: RegistryACR},
	EnvTest:    {RegistryHost: "outsystemsnonprod.azurecr.io", ChartRepository: "self-hosted-operator/chart", ImageRepository: "self-hosted-operator/operator", RegistryMode: RegistryACR},
	EnvEA:      {RegistryHost: "outsystemsnonprod.azurecr.io", ChartRepository: "self-hosted-operator/chart", ImageRepository: "self-hosted-operator/operator", RegistryMode: RegistryACR},
	EnvNonProd: {RegistryHost: "outsystemsnonprod.azurecr.io", ChartRepository: "self-hosted-operator/chart", ImageRepository: "self-hosted-operator/operator", RegistryMode: RegistryACR},
}

// DefaultsFor returns the registry coordinates for an environment.
func DefaultsFor(env Environment) (registryHost, chartRepository, imageRepository string, mode RegistryMode) {
	d, ok := defaultsByEnvironment[env]
	if !ok {
		d = defaultsByEnvironment[EnvGA]
	}
	return d.RegistryHost, d.ChartRepository, d.ImageRepository, d.RegistryMode
}
