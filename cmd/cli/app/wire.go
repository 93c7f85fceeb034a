//go:build wireinject
// +build wireinject

package app

import (
	"shoctl/internal/adapters/clock"
	"shoctl/internal/adapters/command_runner"
	"shoctl/internal/adapters/container_orchestrator"
	"shoctl/internal/adapters/filesystem"
	"shoctl/internal/adapters/httpprobe"
	"shoctl/internal/adapters/keyring"
	"shoctl/internal/adapters/platform"
	"shoctl/internal/adapters/registry"
	"shoctl/internal/adapters/terminal"
	"shoctl/internal/core"
	"shoctl/internal/core/handler"
	"shoctl/internal/ports"

	"github.com/google/wire"
)

var Adapter = wire.NewSet(
	command_runner.ProvideOsCommandRunner,
	wire.Bind(new(ports.CommandRunner), new(*command_runner.OsCommandRunner)),
	container_orchestrator.ProvideHelmClient,
	wire.Bind(new(ports.HelmClient), new(*container_orchestrator.HelmClient)),
	container_orchestrator.ProvideKubernetes,
	wire.Bind(new(ports.Cluster), new(*container_orchestrator.Kubernetes)),
	registry.ProvideHTTPRegistry,
	wire.Bind(new(ports.RegistryClient), new(*registry.HTTPRegistry)),
	httpprobe.ProvideProber,
	wire.Bind(new(ports.EndpointProber), new(*httpprobe.Prober)),
	platform.ProvideOsPlatform,
	wire.Bind(new(ports.Platform), new(*platform.OsPlatform)),
	filesystem.ProvideOsFileSystem,
	wire.Bind(new(ports.FileSystem), new(*filesystem.OsFileSystem)),
	keyring.ProvideZalandoKeyring,
	terminal.ProvideTerminalInput,
	wire.Bind(new(ports.TerminalInput), new(*terminal.TerminalInput)),
	clock.ProvideSystemClock,
	wire.Bind(new(ports.Clock), new(*clock.SystemClock)),
)

// CoreSet provides domain/core dependencies
var CoreSet = wire.NewSet(
	core.ProvideFileSystemConfigRepository,
	wire.Bind(new(core.ConfigRepository), new(*core.FileSystemConfigRepository)),
	core.ProvideDependencyResolver,
	core.ProvideVersionResolver,
	core.ProvideRegistryAuthenticator,
	core.ProvideReleaseInstaller,
	core.ProvideReadinessPoller,
	core.ProvideServiceExposer,
	core.ProvideUninstaller,
)

// CommandHandlerSet combines all sets needed for command handlers
var CommandHandlerSet = wire.NewSet(
	Adapter,
	CoreSet,
)

func InjectInstallCommandHandler() (handler.InstallCommandHandler, error) {
	wire.Build(CommandHandlerSet, handler.ProvideInstallCommandHandler)
	return handler.InstallCommandHandler{}, nil
}

func InjectUninstallCommandHandler() (handler.UninstallCommandHandler, error) {
	wire.Build(CommandHandlerSet, handler.ProvideUninstallCommandHandler)
	return handler.UninstallCommandHandler{}, nil
}

func InjectConsoleURLCommandHandler() (handler.ConsoleURLCommandHandler, error) {
	wire.Build(CommandHandlerSet, handler.ProvideConsoleURLCommandHandler)
	return handler.ConsoleURLCommandHandler{}, nil
}

func InjectPreflightCommandHandler() (handler.PreflightCommandHandler, error) {
	wire.Build(CommandHandlerSet, handler.ProvidePreflightCommandHandler)
	return handler.PreflightCommandHandler{}, nil
}
