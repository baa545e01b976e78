package runtime

import (
	"strings"
	"unicode"

	"golocate/internal/environ"
)

// versionPrefix is how `go version` output starts for a real toolchain.
const versionPrefix = "go "

// Runtime is one working Go installation.
type Runtime struct {
	Path    string `json:"path" yaml:"path" jsonschema_description:"Absolute path of the go executable."`
	Name    string `json:"name" yaml:"name" jsonschema_description:"Version name as reported, e.g. go1.21.3."`
	Semver  string `json:"semver" yaml:"semver" jsonschema_description:"Name without its alphabetic prefix, e.g. 1.21.3."`
	Version string `json:"version" yaml:"version" jsonschema_description:"Raw output of go version without line terminators."`
	Env     *Env   `json:"env" yaml:"env" jsonschema_description:"Variables reported by go env, in reported order."`
}

// Get returns the reported value of an environment variable, "" when absent.
func (r Runtime) Get(key string) string {
	v, _ := r.Env.Get(key)
	return v
}

// Root is the reported GOROOT.
func (r Runtime) Root() string { return r.Get("GOROOT") }

// ToolDir is the reported GOTOOLDIR.
func (r Runtime) ToolDir() string { return r.Get("GOTOOLDIR") }

// ExeSuffix is the reported GOEXE, or the host suffix if the runtime did not
// report one.
func (r Runtime) ExeSuffix() string {
	if v, ok := r.Env.Get("GOEXE"); ok {
		return v
	}
	return environ.ExeSuffix()
}

// parseVersion builds a Runtime from `go version` output.
func parseVersion(path, out string) (Runtime, bool) {
	if !strings.HasPrefix(out, versionPrefix) {
		return Runtime{}, false
	}
	version := strings.NewReplacer("\r\n", "", "\n", "", "\r", "").Replace(out)
	fields := strings.Fields(version)
	if len(fields) < 3 {
		return Runtime{}, false
	}
	name := fields[2]
	return Runtime{
		Path:    path,
		Name:    name,
		Semver:  strings.TrimLeftFunc(name, unicode.IsLetter),
		Version: version,
	}, true
}

// parseEnv reads `go env` output: KEY=VALUE lines, prefixed with "set " on
// Windows and with quoted values elsewhere.
func parseEnv(out string, windows bool) *Env {
	env := NewEnv()
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if windows {
			key = strings.TrimPrefix(key, "set ")
		} else {
			value = unquote(value)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		env.Set(key, value)
	}
	return env
}

func unquote(v string) string {
	if len(v) < 2 {
		return v
	}
	if q := v[0]; (q == '"' || q == '\'') && v[len(v)-1] == q {
		return v[1 : len(v)-1]
	}
	return v
}
