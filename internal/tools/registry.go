package tools

import (
	"sort"

	"github.com/sahilm/fuzzy"
)

var Tools = []ToolInfo{
	{Name: "go", Strategy: StrategyRuntimeBin},
	{Name: "gofmt", Strategy: StrategyRuntimeBin},
	{Name: "godoc", Strategy: StrategyRuntimeBin},

	{Name: "addr2line", Strategy: StrategyRuntimeToolDir},
	{Name: "api", Strategy: StrategyRuntimeToolDir},
	{Name: "asm", Strategy: StrategyRuntimeToolDir},
	{Name: "cgo", Strategy: StrategyRuntimeToolDir},
	{Name: "compile", Strategy: StrategyRuntimeToolDir},
	{Name: "cover", Strategy: StrategyRuntimeToolDir},
	{Name: "dist", Strategy: StrategyRuntimeToolDir},
	{Name: "doc", Strategy: StrategyRuntimeToolDir},
	{Name: "fix", Strategy: StrategyRuntimeToolDir},
	{Name: "link", Strategy: StrategyRuntimeToolDir},
	{Name: "nm", Strategy: StrategyRuntimeToolDir},
	{Name: "objdump", Strategy: StrategyRuntimeToolDir},
	{Name: "pack", Strategy: StrategyRuntimeToolDir},
	{Name: "pprof", Strategy: StrategyRuntimeToolDir},
	{Name: "tour", Strategy: StrategyRuntimeToolDir},
	{Name: "trace", Strategy: StrategyRuntimeToolDir},
	{Name: "vet", Strategy: StrategyRuntimeToolDir},
	{Name: "yacc", Strategy: StrategyRuntimeToolDir},

	{Name: "git", Strategy: StrategySystemPath},

	{Name: "goimports", Strategy: StrategyDefault, ImportPath: "golang.org/x/tools/cmd/goimports"},
	{Name: "goreturns", Strategy: StrategyDefault, ImportPath: "sourcegraph.com/sqs/goreturns"},
	{Name: "gometalinter", Strategy: StrategyDefault, ImportPath: "github.com/alecthomas/gometalinter"},
	{Name: "godebug", Strategy: StrategyDefault, ImportPath: "github.com/mailgun/godebug"},
	{Name: "oracle", Strategy: StrategyDefault, ImportPath: "golang.org/x/tools/cmd/oracle"},
	{Name: "gocode", Strategy: StrategyDefault, ImportPath: "github.com/nsf/gocode"},
}

var byName = func() map[string]ToolInfo {
	m := make(map[string]ToolInfo, len(Tools))
	for _, t := range Tools {
		m[t.Name] = t
	}
	return m
}()

// Lookup returns the table entry for name.
func Lookup(name string) (ToolInfo, bool) {
	t, ok := byName[name]
	return t, ok
}

// StrategyFor returns the placement strategy of name; unknown tools use
// StrategyDefault.
func StrategyFor(name string) Strategy {
	if t, ok := byName[name]; ok {
		return t.Strategy
	}
	return StrategyDefault
}

// Names returns every known tool name, sorted.
func Names() []string {
	out := make([]string, 0, len(Tools))
	for _, t := range Tools {
		out = append(out, t.Name)
	}
	sort.Strings(out)
	return out
}

// Suggest returns up to limit known names that fuzzy-match query, best first.
func Suggest(query string, limit int) []string {
	if query == "" || limit <= 0 {
		return nil
	}
	matches := fuzzy.Find(query, Names())
	out := make([]string, 0, limit)
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, m.Str)
	}
	return out
}
