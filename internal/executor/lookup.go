package executor

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"golocate/internal/environ"
)

var errNotDir = errors.New("not a directory")

// canonicalDir resolves dir to an absolute path without symlinks.
func canonicalDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	st, err := os.Stat(resolved)
	if err != nil {
		return "", err
	}
	if !st.IsDir() {
		return "", errNotDir
	}
	return resolved, nil
}

// lookPath resolves name against the search path of env rather than the
// process environment, so children see the same tools the caller asked for.
func lookPath(name string, env environ.Env) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", exec.ErrNotFound
	}
	if strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/') {
		return name, nil
	}
	list, ok := env.Get(environ.PathKey())
	if !ok {
		return exec.LookPath(name)
	}
	for _, dir := range filepath.SplitList(list) {
		if dir == "" {
			continue
		}
		for _, candidate := range executableNames(name) {
			p := filepath.Join(dir, candidate)
			if isExecutable(p) {
				// exec searches PATH again for a name without a separator.
				return filepath.Abs(p)
			}
		}
	}
	return "", exec.ErrNotFound
}

func executableNames(name string) []string {
	if runtime.GOOS != "windows" || filepath.Ext(name) != "" {
		return []string{name}
	}
	return []string{name + ".exe", name + ".com", name + ".bat", name + ".cmd"}
}

func isExecutable(path string) bool {
	st, err := os.Stat(path)
	if err != nil || !st.Mode().IsRegular() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return st.Mode().Perm()&0o111 != 0
}
