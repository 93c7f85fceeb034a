package core

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"shoctl/internal/core/domain"
	"shoctl/internal/ports"
)

const configFileName = ".shoctl.yaml"

// RequestOptions are the raw flag values of one command invocation.
type RequestOptions struct {
	Version     string
	Repository  string
	Environment string
	UseACR      *bool // nil = environment default
	SkipBrowser bool
}

// Timeouts collects every polling ceiling and retry budget used by the
// install and expose flows.
type Timeouts struct {
	PollInterval       time.Duration
	PollCeiling        time.Duration
	ProbeTries         int
	ProbeBackoff       time.Duration
	TunnelProbeTries   int
	TunnelProbeBackoff time.Duration
}

func DefaultTimeouts() Timeouts {
	return Timeouts{
		PollInterval:       10 * time.Second,
		PollCeiling:        300 * time.Second,
		ProbeTries:         10,
		ProbeBackoff:       20 * time.Second,
		TunnelProbeTries:   5,
		TunnelProbeBackoff: 5 * time.Second,
	}
}

// fileConfig is the optional ~/.shoctl.yaml override file.
type fileConfig struct {
	Environment     string `yaml:"environment"`
	Namespace       string `yaml:"namespace"`
	ReleaseName     string `yaml:"releaseName"`
	ChartRepository string `yaml:"chartRepository"`
	ImageRegistry   string `yaml:"imageRegistry"`
	Timeouts        struct {
		PollIntervalSeconds       int `yaml:"pollIntervalSeconds"`
		PollCeilingSeconds        int `yaml:"pollCeilingSeconds"`
		ProbeTries                int `yaml:"probeTries"`
		ProbeBackoffSeconds       int `yaml:"probeBackoffSeconds"`
		TunnelProbeTries          int `yaml:"tunnelProbeTries"`
		TunnelProbeBackoffSeconds int `yaml:"tunnelProbeBackoffSeconds"`
	} `yaml:"timeouts"`
}

// ConfigRepository turns flags, environment variables and the optional
// config file into the immutable per-run request and derived configuration.
// Precedence: flag, then environment variable, then file, then default.
type ConfigRepository interface {
	BuildRequest(opts RequestOptions) (domain.InstallRequest, error)
	ResolveConfig(req domain.InstallRequest, clusterType domain.ClusterType) domain.ResolvedConfig
	Timeouts() Timeouts
}

type FileSystemConfigRepository struct {
	fileSystem ports.FileSystem
	loaded     *fileConfig
}

func ProvideFileSystemConfigRepository(fileSystem ports.FileSystem) *FileSystemConfigRepository {
	return &FileSystemConfigRepository{fileSystem: fileSystem}
}

func (r *FileSystemConfigRepository) file() *fileConfig {
	if r.loaded != nil {
		return r.loaded
	}
	r.loaded = &fileConfig{}
	home, err := r.fileSystem.HomeDir()
	if err != nil {
		return r.loaded
	}
	path := filepath.Join(home, configFileName)
	exists, err := r.fileSystem.FileExists(path)
	if err != nil || !exists {
		return r.loaded
	}
	content, err := r.fileSystem.ReadFile(path)
	if err != nil {
		return r.loaded
	}
	// A malformed file is ignored rather than fatal; defaults still apply.
	_ = yaml.Unmarshal(content, r.loaded)
	return r.loaded
}

func (r *FileSystemConfigRepository) BuildRequest(opts RequestOptions) (domain.InstallRequest, error) {
	file := r.file()

	envName := opts.Environment
	if envName == "" {
		envName = os.Getenv("ENV")
	}
	if envName == "" {
		envName = file.Environment
	}
	if envName == "" {
		envName = string(domain.EnvGA)
	}
	env, err := domain.ParseEnvironment(envName)
	if err != nil {
		return domain.InstallRequest{}, err
	}

	_, _, _, mode := domain.DefaultsFor(env)
	if opts.UseACR != nil {
		if *opts.UseACR {
			mode = domain.RegistryACR
		} else {
			mode = domain.RegistryPublic
		}
	}

	namespace := file.Namespace
	if namespace == "" {
		namespace = domain.DefaultNamespace
	}
	releaseName := file.ReleaseName
	if releaseName == "" {
		releaseName = domain.DefaultReleaseName
	}

	version := opts.Version
	if version == "latest" {
		version = ""
	}
	if version != "" && !versionPattern.MatchString(version) {
		return domain.InstallRequest{}, fmt.Errorf("invalid version %q, expected MAJOR.MINOR.PATCH or latest", version)
	}

	return domain.InstallRequest{
		Version:      version,
		Environment:  env,
		RegistryMode: mode,
		Namespace:    namespace,
		ReleaseName:  releaseName,
		Repository:   opts.Repository,
		SkipBrowser:  opts.SkipBrowser,
	}, nil
}

func (r *FileSystemConfigRepository) ResolveConfig(req domain.InstallRequest, clusterType domain.ClusterType) domain.ResolvedConfig {
	file := r.file()
	registryHost, chartRepository, imageRepository, _ := domain.DefaultsFor(req.Environment)

	if req.RegistryMode == domain.RegistryACR {
		if override := os.Getenv("SH_REGISTRY"); override != "" {
			registryHost = override
		}
	}

	chartRef := fmt.Sprintf("oci://%s/%s", registryHost, chartRepository)
	if file.ChartRepository != "" {
		chartRef = file.ChartRepository
	}
	if override := os.Getenv("HELM_REPO_URL"); override != "" {
		chartRef = override
	}
	if req.Repository != "" {
		chartRef = req.Repository
	}

	imageRegistry := registryHost
	if file.ImageRegistry != "" {
		imageRegistry = file.ImageRegistry
	}
	if override := os.Getenv("IMAGE_REGISTRY"); override != "" {
		imageRegistry = override
	}

	return domain.ResolvedConfig{
		ChartRepository: chartRef,
		RegistryHost:    registryHost,
		ImageRegistry:   imageRegistry,
		ImageRepository: imageRepository,
		ClusterType:     clusterType,
		SCCRequired:     clusterType == domain.ClusterOpenShift,
		ConsolePort:     domain.ConsolePort,
	}
}

func (r *FileSystemConfigRepository) Timeouts() Timeouts {
	timeouts := DefaultTimeouts()
	file := r.file()
	if file.Timeouts.PollIntervalSeconds > 0 {
		timeouts.PollInterval = time.Duration(file.Timeouts.PollIntervalSeconds) * time.Second
	}
	if file.Timeouts.PollCeilingSeconds > 0 {
		timeouts.PollCeiling = time.Duration(file.Timeouts.PollCeilingSeconds) * time.Second
	}
	if file.Timeouts.ProbeTries > 0 {
		timeouts.ProbeTries = file.Timeouts.ProbeTries
	}
	if file.Timeouts.ProbeBackoffSeconds > 0 {
		timeouts.ProbeBackoff = time.Duration(file.Timeouts.ProbeBackoffSeconds) * time.Second
	}
	if file.Timeouts.TunnelProbeTries > 0 {
		timeouts.TunnelProbeTries = file.Timeouts.TunnelProbeTries
	}
	if file.Timeouts.TunnelProbeBackoffSeconds > 0 {
		timeouts.TunnelProbeBackoff = time.Duration(file.Timeouts.TunnelProbeBackoffSeconds) * time.Second
	}
	return timeouts
}
