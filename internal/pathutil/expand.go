package pathutil

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	homedir "github.com/mitchellh/go-homedir"

	"golocate/internal/environ"
)

// varRe matches $NAME, ${NAME} and %NAME% references.
var varRe = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}|\$([A-Za-z_][A-Za-z0-9_]*)|%([A-Za-z_][A-Za-z0-9_()]*)%`)

// Expand substitutes variable references in p with values from env, replaces
// a leading ~ with the home directory and resolves every element of the path
// list. Undefined variables are left untouched. Blank input yields "".
func Expand(env environ.Env, p string) string {
	if strings.TrimSpace(p) == "" {
		return ""
	}
	p = ExpandVars(env, p)

	sep := string(os.PathListSeparator)
	if !strings.Contains(p, sep) {
		return ResolveAndNormalize(expandTilde(p))
	}
	out := make([]string, 0, strings.Count(p, sep)+1)
	for _, item := range strings.Split(p, sep) {
		if r := ResolveAndNormalize(expandTilde(item)); r != "" {
			out = append(out, r)
		}
	}
	return strings.Join(out, sep)
}

// ExpandVars performs only the variable substitution step of Expand.
func ExpandVars(env environ.Env, p string) string {
	return varRe.ReplaceAllStringFunc(p, func(token string) string {
		m := varRe.FindStringSubmatch(token)
		name := m[1] + m[2] + m[3]
		if v, ok := env.Get(name); ok {
			return v
		}
		return token
	})
}

// ResolveAndNormalize cleans p and makes it absolute against the working
// directory. Blank input yields "".
func ResolveAndNormalize(p string) string {
	if strings.TrimSpace(p) == "" {
		return ""
	}
	abs, err := filepath.Abs(filepath.Clean(p))
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}

// Home returns the current user's home directory, or "" when unknown.
func Home() string {
	h, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return h
}

func expandTilde(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, `~\`) {
		return p
	}
	home := Home()
	if home == "" {
		return p
	}
	return home + p[1:]
}
