package runtime

import (
	"os"
	"path/filepath"
	gruntime "runtime"
	"strings"

	"golocate/internal/environ"
	"golocate/internal/pathutil"
)

// strategy produces candidate executables for one discovery source.
type strategy struct {
	name string
	find func(project string) []string
}

// DefaultInstallDirs are the directories an installer usually puts go in.
func DefaultInstallDirs() []string {
	if gruntime.GOOS == "windows" {
		return []string{`C:\go\bin`, `C:\tools\go\bin`}
	}
	return []string{"/usr/local/go/bin", "/usr/local/bin"}
}

// Candidates returns every candidate executable in rank order, without
// probing. A path found by more than one strategy keeps its first rank.
func (l *Locator) Candidates(project string) []string {
	set := newOrderedSet()
	for _, s := range l.strategies {
		found := s.find(project)
		if len(found) > 0 {
			l.logger.Debug("candidates", "strategy", s.name, "paths", found)
		}
		set.Add(found...)
	}
	return set.Items()
}

// projectCandidates is reserved for runtimes vendored inside a project.
func (l *Locator) projectCandidates(string) []string {
	return nil
}

func (l *Locator) configCandidates(string) []string {
	if l.config == nil {
		return nil
	}
	configured := strings.TrimSpace(l.config.GoInstallation())
	if configured == "" {
		return nil
	}
	p := pathutil.Expand(l.Environment(), configured)
	fi, err := os.Stat(p)
	if err != nil {
		l.logger.Debug("configured installation unavailable", "path", p, "err", err)
		return nil
	}
	dir := p
	if !fi.IsDir() {
		dir = filepath.Dir(p)
	}
	return l.FindExecutables(dir)
}

func (l *Locator) pathCandidates(string) []string {
	env := l.Environment()
	p, ok := env.Get(environ.PathKey())
	if !ok || strings.TrimSpace(p) == "" {
		return nil
	}
	return l.FindExecutables(p)
}

func (l *Locator) installCandidates(string) []string {
	return l.FindExecutables(strings.Join(l.installDirs, string(os.PathListSeparator)))
}

// FindExecutables expands pathList and returns, per directory in order, every
// go executable name that exists there as a regular file.
func (l *Locator) FindExecutables(pathList string) []string {
	expanded := pathutil.Expand(l.Environment(), pathList)
	if expanded == "" {
		return nil
	}
	var out []string
	for _, dir := range filepath.SplitList(expanded) {
		for _, name := range l.executables {
			p := filepath.Join(dir, name)
			if isFile(p) {
				out = append(out, p)
			}
		}
	}
	return out
}

func isFile(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.Mode().IsRegular()
}
