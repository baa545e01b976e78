package tools

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"golocate/internal/environ"
	"golocate/internal/runtime"
	"golocate/internal/system"
)

// RuntimeSource picks the runtime that owns runtime-bin and runtime-tooldir
// tools.
type RuntimeSource interface {
	RuntimeForProject(ctx context.Context, project string) (runtime.Runtime, bool, error)
}

// Fallback resolves tools with StrategyDefault, such as those installed into
// a workspace GOPATH.
type Fallback interface {
	FindTool(ctx context.Context, name, project string) (string, bool)
}

type Options struct {
	Runtimes    RuntimeSource
	Environment environ.Provider
	Fallback    Fallback
	Logger      *log.Logger
}

// Resolver finds the executable of a named tool.
type Resolver struct {
	runtimes RuntimeSource
	env      environ.Provider
	fallback Fallback
	logger   *log.Logger
}

func NewResolver(opts Options) *Resolver {
	r := &Resolver{
		runtimes: opts.Runtimes,
		env:      opts.Environment,
		fallback: opts.Fallback,
		logger:   opts.Logger,
	}
	if r.logger == nil {
		r.logger = system.Logger
	}
	r.logger = r.logger.WithPrefix("tools")
	return r
}

// FindTool returns the absolute path of name for project, or false when the
// tool cannot be found. It never fails: lookup problems are logged.
func (r *Resolver) FindTool(ctx context.Context, name, project string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	switch strategy := StrategyFor(name); strategy {
	case StrategyRuntimeBin, StrategyRuntimeToolDir:
		rt, ok := r.runtime(ctx, project)
		if !ok {
			return "", false
		}
		var dir string
		if strategy == StrategyRuntimeToolDir {
			dir = rt.ToolDir()
		} else if root := rt.Root(); root != "" {
			dir = filepath.Join(root, "bin")
		}
		if strings.TrimSpace(dir) == "" {
			r.logger.Debug("runtime did not report a tool directory", "tool", name, "runtime", rt.Path, "strategy", strategy)
			return "", false
		}
		p := filepath.Join(dir, name+rt.ExeSuffix())
		if fi, ok := r.Stat(p); ok && fi.Mode().IsRegular() {
			return p, true
		}
		return "", false
	case StrategySystemPath:
		return r.FindInPath(name)
	default:
		if r.fallback == nil {
			return "", false
		}
		return r.fallback.FindTool(ctx, name, project)
	}
}

// FindInPath returns the first PATH entry holding name with the host
// executable suffix.
func (r *Resolver) FindInPath(name string) (string, bool) {
	env := environ.Current(r.env)
	list, ok := env.Get(environ.PathKey())
	if !ok {
		return "", false
	}
	file := name + environ.ExeSuffix()
	for _, dir := range filepath.SplitList(list) {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		p := filepath.Join(dir, file)
		if fi, ok := r.Stat(p); ok && fi.Mode().IsRegular() {
			if abs, err := filepath.Abs(p); err == nil {
				return abs, true
			}
			return p, true
		}
	}
	return "", false
}

// Stat reports the file info of p. Missing files and blank paths are
// reported as absent; other errors are logged and also reported as absent.
func (r *Resolver) Stat(p string) (fs.FileInfo, bool) {
	if strings.TrimSpace(p) == "" {
		return nil, false
	}
	fi, err := os.Stat(p)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			r.logger.Error("stat failed", "path", p, "err", err)
		}
		return nil, false
	}
	return fi, true
}

// Exists reports whether p names an existing file or directory.
func (r *Resolver) Exists(p string) bool {
	_, ok := r.Stat(p)
	return ok
}

func (r *Resolver) runtime(ctx context.Context, project string) (runtime.Runtime, bool) {
	if r.runtimes == nil {
		return runtime.Runtime{}, false
	}
	rt, ok, err := r.runtimes.RuntimeForProject(ctx, project)
	if err != nil {
		r.logger.Warn("runtime lookup failed", "project", project, "err", err)
		return runtime.Runtime{}, false
	}
	return rt, ok
}
