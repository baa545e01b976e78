package environ

import (
	"os"
	"runtime"
	"sort"
	"strings"
)

// Env is a mapping of environment variable names to values.
type Env map[string]string

// FromOS returns the environment of the current process.
func FromOS() Env {
	return FromSlice(os.Environ())
}

// FromSlice parses KEY=VALUE entries as returned by os.Environ.
// Later duplicates win, matching how the OS resolves them.
func FromSlice(entries []string) Env {
	env := make(Env, len(entries))
	for _, kv := range entries {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = v
	}
	return env
}

// Slice renders env as KEY=VALUE entries sorted by key.
func (e Env) Slice() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+e[k])
	}
	return out
}

// Clone returns a shallow copy of e.
func (e Env) Clone() Env {
	out := make(Env, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Get returns the value for key. On Windows the lookup falls back to a
// case-insensitive match because variable names are not case sensitive there.
func (e Env) Get(key string) (string, bool) {
	if v, ok := e[key]; ok {
		return v, true
	}
	if runtime.GOOS != "windows" {
		return "", false
	}
	for k, v := range e {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}

// PathKey is the name of the search path variable on this platform.
func PathKey() string {
	if runtime.GOOS == "windows" {
		return "Path"
	}
	return "PATH"
}

// ExeSuffix is the executable file suffix on this platform.
func ExeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
