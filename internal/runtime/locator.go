package runtime

import (
	"context"
	"fmt"
	"path/filepath"
	gruntime "runtime"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"golocate/internal/environ"
	"golocate/internal/executor"
	"golocate/internal/pathutil"
	"golocate/internal/system"
)

// DefaultProbeTimeout bounds each `go version` / `go env` probe.
const DefaultProbeTimeout = 10 * time.Second

// ConfigSource supplies the user-configured Go installation: either the go
// executable itself or the directory holding it.
type ConfigSource interface {
	GoInstallation() string
}

type Options struct {
	// Executor runs the probes. When nil the locator creates its own, using
	// the locator's environment.
	Executor    *executor.Executor
	Environment environ.Provider
	Config      ConfigSource
	// ProbeTimeout defaults to DefaultProbeTimeout. A probe that times out
	// rejects its candidate.
	ProbeTimeout time.Duration
	// InstallDirs replaces DefaultInstallDirs when non-nil.
	InstallDirs []string
	Logger      *log.Logger
}

// Locator discovers Go runtimes and caches them until Reset.
type Locator struct {
	env          environ.Provider
	config       ConfigSource
	exec         *executor.Executor
	ownsExec     bool
	probeTimeout time.Duration
	installDirs  []string
	executables  []string
	logger       *log.Logger
	strategies   []strategy

	group  singleflight.Group
	mu     sync.Mutex
	cache  []Runtime
	cached bool
	gen    uint64
}

func New(opts Options) *Locator {
	l := &Locator{
		env:          opts.Environment,
		config:       opts.Config,
		exec:         opts.Executor,
		probeTimeout: opts.ProbeTimeout,
		installDirs:  opts.InstallDirs,
		logger:       opts.Logger,
	}
	if l.probeTimeout <= 0 {
		l.probeTimeout = DefaultProbeTimeout
	}
	if l.installDirs == nil {
		l.installDirs = DefaultInstallDirs()
	}
	if l.logger == nil {
		l.logger = system.Logger
	}
	l.logger = l.logger.WithPrefix("runtime")
	if l.exec == nil {
		l.exec = executor.New(l.Environment)
		l.ownsExec = true
	}
	suffix := environ.ExeSuffix()
	l.executables = []string{"go" + suffix, "goapp" + suffix}
	l.strategies = []strategy{
		{name: "project", find: l.projectCandidates},
		{name: "config", find: l.configCandidates},
		{name: "path", find: l.pathCandidates},
		{name: "default", find: l.installCandidates},
	}
	return l
}

// Close clears the cache and releases the executor the locator created.
// Probes already running are not cancelled.
func (l *Locator) Close() error {
	l.Reset()
	if l.ownsExec {
		return l.exec.Close()
	}
	return nil
}

// Environment is the environment used for expansion and probes.
func (l *Locator) Environment() environ.Env {
	return environ.Current(l.env)
}

// Executables lists the file names searched for in every directory.
func (l *Locator) Executables() []string {
	return append([]string(nil), l.executables...)
}

// Runtimes returns every working runtime, most preferred first. The first
// call runs discovery; concurrent callers share that single pass and later
// calls are served from the cache.
func (l *Locator) Runtimes(ctx context.Context, project string) ([]Runtime, error) {
	l.mu.Lock()
	if l.cached {
		out := cloneRuntimes(l.cache)
		l.mu.Unlock()
		return out, nil
	}
	gen := l.gen
	l.mu.Unlock()

	ch := l.group.DoChan(fmt.Sprintf("runtimes/%d", gen), func() (any, error) {
		l.mu.Lock()
		if l.cached && l.gen == gen {
			found := l.cache
			l.mu.Unlock()
			return found, nil
		}
		l.mu.Unlock()

		found := l.discover(context.WithoutCancel(ctx), project)

		l.mu.Lock()
		defer l.mu.Unlock()
		if l.gen == gen {
			l.cache = found
			l.cached = true
		}
		return found, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return cloneRuntimes(res.Val.([]Runtime)), nil
	}
}

// RuntimeForProject returns the preferred runtime. Every project currently
// gets the first discovered runtime.
func (l *Locator) RuntimeForProject(ctx context.Context, project string) (Runtime, bool, error) {
	rts, err := l.Runtimes(ctx, project)
	if err != nil {
		return Runtime{}, false, err
	}
	if len(rts) == 0 {
		return Runtime{}, false, nil
	}
	return rts[0], true, nil
}

// Reset drops the cache. A discovery pass still running will not repopulate it.
func (l *Locator) Reset() {
	l.mu.Lock()
	l.cache = nil
	l.cached = false
	l.gen++
	l.mu.Unlock()
}

// GoPath returns the expanded GOPATH of the current environment, or false
// when it is unset or blank.
func (l *Locator) GoPath() (string, bool) {
	env := l.Environment()
	gp, ok := env.Get("GOPATH")
	if !ok || strings.TrimSpace(gp) == "" {
		return "", false
	}
	return pathutil.Expand(env, gp), true
}

// GoPathEntries splits GoPath into its list elements.
func (l *Locator) GoPathEntries() []string {
	gp, ok := l.GoPath()
	if !ok {
		return nil
	}
	return filepath.SplitList(gp)
}

// cloneRuntimes copies records so callers cannot reach the cached Env.
func cloneRuntimes(rts []Runtime) []Runtime {
	out := make([]Runtime, len(rts))
	for i, rt := range rts {
		rt.Env = rt.Env.Clone()
		out[i] = rt
	}
	return out
}

func (l *Locator) discover(ctx context.Context, project string) []Runtime {
	candidates := l.Candidates(project)
	l.logger.Debug("discovering runtimes", "candidates", len(candidates))

	viable := make([]Runtime, 0, len(candidates))
	for _, c := range candidates {
		res, ok := l.probe(ctx, c, "version")
		if !ok {
			continue
		}
		rt, ok := parseVersion(c, res.Stdout)
		if !ok {
			l.logger.Debug("unexpected version output", "path", c, "output", strings.TrimSpace(res.Stdout))
			continue
		}
		viable = append(viable, rt)
	}

	windows := gruntime.GOOS == "windows"
	runtimes := make([]Runtime, 0, len(viable))
	for _, rt := range viable {
		res, ok := l.probe(ctx, rt.Path, "env")
		if !ok || strings.TrimSpace(res.Stdout) == "" {
			continue
		}
		rt.Env = parseEnv(res.Stdout, windows)
		runtimes = append(runtimes, rt)
	}
	l.logger.Debug("runtimes discovered", "count", len(runtimes))
	return runtimes
}

func (l *Locator) probe(ctx context.Context, path, arg string) (executor.Result, bool) {
	res, err := l.exec.ExecSync(ctx, executor.Options{
		Command: path,
		Args:    []string{arg},
		Dir:     filepath.Dir(path),
		Timeout: l.probeTimeout,
	})
	if err != nil || !res.OK() {
		l.logger.Debug("probe rejected", "path", path, "arg", arg, "status", res.ExitStatus, "err", res.Err)
		return res, false
	}
	return res, true
}
