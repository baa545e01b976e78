package tools

// Strategy says where a tool is expected to live.
type Strategy string

const (
	// StrategyRuntimeBin tools sit beside go in GOROOT/bin.
	StrategyRuntimeBin Strategy = "runtime-bin"
	// StrategyRuntimeToolDir tools live in the runtime's GOTOOLDIR.
	StrategyRuntimeToolDir Strategy = "runtime-tooldir"
	// StrategySystemPath tools are searched on PATH.
	StrategySystemPath Strategy = "system-path"
	// StrategyDefault tools are delegated to the fallback locator.
	StrategyDefault Strategy = "default"
)

type ToolInfo struct {
	Name     string   `json:"name" yaml:"name"`
	Strategy Strategy `json:"strategy" yaml:"strategy"`
	// ImportPath is the canonical `go get` path of tools built from source.
	ImportPath string `json:"importPath,omitempty" yaml:"importPath,omitempty"`
}
