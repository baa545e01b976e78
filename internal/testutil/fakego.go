package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// FakeGo describes a shell script standing in for a go executable.
type FakeGo struct {
	// Version is printed for `go version`; empty means the default go1.5.1
	// line.
	Version string
	// Env lines are printed for `go env`.
	Env []string
	// VersionExit and EnvExit are the exit statuses of the two probes.
	VersionExit int
	EnvExit     int
	// Sleep delays every invocation, in seconds.
	Sleep string
	// CountFile, when set, receives one line per invocation.
	CountFile string
}

const DefaultVersion = "go version go1.5.1 linux/amd64"

// SkipWithoutShell skips tests that rely on /bin/sh scripts.
func SkipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
}

// WriteFakeGo writes an executable script named name into dir and returns its
// path.
func WriteFakeGo(t *testing.T, dir, name string, g FakeGo) string {
	t.Helper()
	version := g.Version
	if version == "" {
		version = DefaultVersion
	}
	var b strings.Builder
	b.WriteString("#!/bin/sh\nPATH=/bin:/usr/bin:$PATH\n")
	if g.CountFile != "" {
		fmt.Fprintf(&b, "echo \"$1\" >> %s\n", shellQuote(g.CountFile))
	}
	if g.Sleep != "" {
		fmt.Fprintf(&b, "exec sleep %s\n", g.Sleep)
	}
	b.WriteString("case \"$1\" in\n")
	fmt.Fprintf(&b, "version)\n  echo %s\n  exit %d\n  ;;\n", shellQuote(version), g.VersionExit)
	b.WriteString("env)\n")
	if len(g.Env) > 0 {
		b.WriteString("  cat <<'EOF'\n")
		for _, line := range g.Env {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		b.WriteString("EOF\n")
	}
	fmt.Fprintf(&b, "  exit %d\n  ;;\n", g.EnvExit)
	b.WriteString("esac\nexit 2\n")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(b.String()), 0o755); err != nil {
		t.Fatalf("write fake go: %v", err)
	}
	return p
}

// FakeGoEnv returns `go env` lines for a runtime rooted at goroot.
func FakeGoEnv(goroot string) []string {
	return []string{
		`GOARCH="amd64"`,
		`GOBIN=""`,
		`GOEXE=""`,
		`GOHOSTARCH="amd64"`,
		`GOHOSTOS="linux"`,
		`GOOS="linux"`,
		`GOPATH="/home/user/go"`,
		fmt.Sprintf(`GOROOT="%s"`, goroot),
		fmt.Sprintf(`GOTOOLDIR="%s"`, filepath.Join(goroot, "pkg", "tool", "linux_amd64")),
		`GO15VENDOREXPERIMENT=""`,
		`CC="gcc"`,
		`GOGCCFLAGS="-fPIC -m64 -pthread -fmessage-length=0"`,
		`CXX="g++"`,
		`CGO_ENABLED="1"`,
	}
}

// FakeGoRoot builds a GOROOT tree with bin/ and pkg/tool/linux_amd64/ holding
// a fake go and the named tool files, and returns the go executable path.
func FakeGoRoot(t *testing.T, goroot string, binTools, dirTools []string) string {
	t.Helper()
	bin := filepath.Join(goroot, "bin")
	toolDir := filepath.Join(goroot, "pkg", "tool", "linux_amd64")
	goExe := WriteFakeGo(t, bin, "go", FakeGo{Env: FakeGoEnv(goroot)})
	for _, name := range binTools {
		TouchExecutable(t, filepath.Join(bin, name))
	}
	for _, name := range dirTools {
		TouchExecutable(t, filepath.Join(toolDir, name))
	}
	return goExe
}

// TouchExecutable creates an empty executable file, creating parents.
func TouchExecutable(t *testing.T, p string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
}

// CountLines returns the number of lines in p, 0 when it does not exist.
func CountLines(t *testing.T, p string) int {
	t.Helper()
	b, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return 0
		}
		t.Fatalf("read %s: %v", p, err)
	}
	return strings.Count(string(b), "\n")
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
