package app

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"golocate/internal/config"
	"golocate/internal/environ"
	"golocate/internal/executor"
	"golocate/internal/runtime"
	"golocate/internal/system"
	"golocate/internal/tools"
)

// ErrNoRuntime is returned when no working Go runtime was discovered.
var ErrNoRuntime = errors.New("no go runtime found")

// Options configures New. Zero values select the process environment, a
// static source built from Config and the shared logger.
type Options struct {
	Config      config.Config
	Source      config.Source
	Environment environ.Provider
	InstallDirs []string
	Fallback    tools.Fallback
	Logger      *log.Logger
}

// App bundles the discovery engine for one host process.
type App struct {
	Config   config.Config
	Source   config.Source
	Env      environ.Provider
	Executor *executor.Executor
	Locator  *runtime.Locator
	Resolver *tools.Resolver
	Logger   *log.Logger
}

func New(opts Options) *App {
	a := &App{
		Config: opts.Config,
		Source: opts.Source,
		Env:    opts.Environment,
		Logger: opts.Logger,
	}
	if a.Logger == nil {
		a.Logger = system.Logger
	}
	if a.Env == nil {
		a.Env = environ.Process{}
	}
	if a.Source == nil {
		a.Source = config.Static(opts.Config.GoInstallation)
	}
	a.Executor = executor.New(func() environ.Env { return environ.Current(a.Env) })
	a.Locator = runtime.New(runtime.Options{
		Executor:     a.Executor,
		Environment:  a.Env,
		Config:       a.Source,
		ProbeTimeout: opts.Config.ProbeTimeout,
		InstallDirs:  opts.InstallDirs,
		Logger:       a.Logger,
	})
	a.Resolver = tools.NewResolver(tools.Options{
		Runtimes:    a.Locator,
		Environment: a.Env,
		Fallback:    opts.Fallback,
		Logger:      a.Logger,
	})
	return a
}

// Close clears the runtime cache and releases the executor. Commands already
// running keep running.
func (a *App) Close() error {
	return errors.Join(a.Locator.Close(), a.Executor.Close())
}

func (a *App) Runtimes(ctx context.Context, project string) ([]runtime.Runtime, error) {
	return a.Locator.Runtimes(ctx, project)
}

// RuntimeForProject returns the preferred runtime or ErrNoRuntime.
func (a *App) RuntimeForProject(ctx context.Context, project string) (runtime.Runtime, error) {
	rt, ok, err := a.Locator.RuntimeForProject(ctx, project)
	if err != nil {
		return runtime.Runtime{}, err
	}
	if !ok {
		return runtime.Runtime{}, ErrNoRuntime
	}
	return rt, nil
}

func (a *App) FindTool(ctx context.Context, name, project string) (string, bool) {
	return a.Resolver.FindTool(ctx, name, project)
}

func (a *App) GoPath() (string, bool) {
	return a.Locator.GoPath()
}

// ResetRuntimes drops the runtime cache; the next query rediscovers.
func (a *App) ResetRuntimes() {
	a.Locator.Reset()
	a.Logger.Info("runtime cache reset")
}

// Exec runs a command through the shared executor.
func (a *App) Exec(ctx context.Context, opts executor.Options) (executor.Result, error) {
	return a.Executor.ExecSync(ctx, opts)
}
