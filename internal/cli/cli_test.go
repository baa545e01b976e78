package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"golocate/internal/testutil"
)

// setupCLI points the CLI at a fake GOROOT on PATH and an absent config file.
func setupCLI(t *testing.T) string {
	t.Helper()
	testutil.SkipWithoutShell(t)
	root := t.TempDir()
	goroot := filepath.Join(root, "goroot")
	testutil.FakeGoRoot(t, goroot, []string{"gofmt"}, []string{"vet"})

	t.Cleanup(testutil.WithEnv(t, "PATH", filepath.Join(goroot, "bin")))
	t.Cleanup(testutil.WithEnv(t, "GOPATH", filepath.Join(root, "gopath")))
	t.Cleanup(testutil.WithEnv(t, "GOLOCATE_CONFIG", filepath.Join(root, "config.toml")))
	t.Cleanup(testutil.WithEnv(t, "GOLOCATE_GO_INSTALLATION", ""))
	t.Cleanup(testutil.WithEnv(t, "GOLOCATE_PROBE_TIMEOUT", ""))
	t.Cleanup(testutil.WithEnv(t, "GOLOCATE_LOG_LEVEL", "error"))

	prev := installDirs
	installDirs = []string{}
	t.Cleanup(func() { installDirs = prev })
	return goroot
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLI_RuntimesJSON(t *testing.T) {
	goroot := setupCLI(t)
	out, err := run(t, "runtimes", "-o", "json", "--project", goroot)
	if err != nil {
		t.Fatalf("runtimes: %v", err)
	}
	var rts []map[string]any
	if err := json.Unmarshal([]byte(out), &rts); err != nil {
		t.Fatalf("not json: %v\n%s", err, out)
	}
	if len(rts) != 1 || rts[0]["name"] != "go1.5.1" || rts[0]["path"] != filepath.Join(goroot, "bin", "go") {
		t.Fatalf("runtimes = %v", rts)
	}

	out, err = run(t, "runtime", "-o", "yaml", "--project", goroot)
	if err != nil {
		t.Fatalf("runtime: %v", err)
	}
	if !strings.Contains(out, "semver: 1.5.1") || !strings.Contains(out, "GOROOT: "+goroot) {
		t.Fatalf("yaml output:\n%s", out)
	}
}

func TestCLI_Tool(t *testing.T) {
	goroot := setupCLI(t)
	out, err := run(t, "tool", "vet", "--project", goroot)
	if err != nil {
		t.Fatalf("tool vet: %v", err)
	}
	if strings.TrimSpace(out) != filepath.Join(goroot, "pkg", "tool", "linux_amd64", "vet") {
		t.Fatalf("vet = %q", out)
	}

	_, err = run(t, "tool", "gofm", "--project", goroot)
	if err == nil || !strings.Contains(err.Error(), "did you mean: gofmt") {
		t.Fatalf("expected suggestion, got %v", err)
	}
}

func TestCLI_Candidates(t *testing.T) {
	goroot := setupCLI(t)
	out, err := run(t, "candidates")
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	if strings.TrimSpace(out) != filepath.Join(goroot, "bin", "go") {
		t.Fatalf("candidates = %q", out)
	}
}

func TestCLI_ExecAndMisc(t *testing.T) {
	setupCLI(t)
	out, err := run(t, "exec", "--stdin", "hello", "--", "/bin/sh", "-c", `read l; echo "$l"`)
	if err != nil {
		t.Fatalf("exec: %v", err)
	}
	if out != "hello\n" {
		t.Fatalf("exec output = %q", out)
	}
	if _, err := run(t, "exec", "--stdin", "", "--", "/bin/sh", "-c", "exit 4"); err == nil || !strings.Contains(err.Error(), "exit status 4") {
		t.Fatalf("expected exit status error, got %v", err)
	}

	if out, err := run(t, "version"); err != nil || strings.TrimSpace(out) != "dev" {
		t.Fatalf("version = %q, %v", out, err)
	}
	if out, err := run(t, "schema"); err != nil || !strings.Contains(out, `"semver"`) {
		t.Fatalf("schema: %v\n%s", err, out)
	}
	if out, err := run(t, "tools"); err != nil || !strings.Contains(out, "goimports") {
		t.Fatalf("tools: %v\n%s", err, out)
	}
	if out, err := run(t, "gopath"); err != nil || strings.TrimSpace(out) == "" {
		t.Fatalf("gopath = %q, %v", out, err)
	}
	if _, err := run(t, "runtimes", "-o", "xml"); err == nil {
		t.Fatalf("expected unknown format error")
	}
}
