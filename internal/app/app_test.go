package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"golocate/internal/config"
	"golocate/internal/environ"
	"golocate/internal/executor"
	"golocate/internal/testutil"
)

func TestApp_EndToEnd(t *testing.T) {
	testutil.SkipWithoutShell(t)
	root := t.TempDir()
	goroot := filepath.Join(root, "goroot")
	goExe := testutil.FakeGoRoot(t, goroot, []string{"gofmt"}, []string{"vet"})
	sys := filepath.Join(root, "sys")
	testutil.TouchExecutable(t, filepath.Join(sys, "git"))

	a := New(Options{
		Config:      config.Config{GoInstallation: filepath.Join(goroot, "bin")},
		Environment: environ.Static{"PATH": sys, "GOPATH": filepath.Join(root, "gopath")},
		InstallDirs: []string{},
	})
	defer a.Close()
	ctx := context.Background()

	rt, err := a.RuntimeForProject(ctx, root)
	if err != nil {
		t.Fatalf("RuntimeForProject: %v", err)
	}
	if rt.Path != goExe || rt.Name != "go1.5.1" {
		t.Fatalf("runtime = %+v", rt)
	}

	if p, ok := a.FindTool(ctx, "go", root); !ok || p != goExe {
		t.Fatalf("go = %q, %v", p, ok)
	}
	if p, ok := a.FindTool(ctx, "vet", root); !ok || p != filepath.Join(goroot, "pkg", "tool", "linux_amd64", "vet") {
		t.Fatalf("vet = %q, %v", p, ok)
	}
	if p, ok := a.FindTool(ctx, "git", root); !ok || p != filepath.Join(sys, "git") {
		t.Fatalf("git = %q, %v", p, ok)
	}
	if _, ok := a.FindTool(ctx, "doesnotexist", root); ok {
		t.Fatalf("unknown tool must not resolve")
	}

	if gp, ok := a.GoPath(); !ok || gp != filepath.Join(root, "gopath") {
		t.Fatalf("GoPath = %q, %v", gp, ok)
	}

	res, err := a.Exec(ctx, executor.Options{Command: "git"})
	if err != nil || res.ExitStatus != 0 {
		t.Fatalf("exec through app env: %+v, %v", res, err)
	}
}

func TestApp_NoRuntime(t *testing.T) {
	a := New(Options{
		Environment: environ.Static{"PATH": t.TempDir()},
		InstallDirs: []string{},
	})
	defer a.Close()
	if _, err := a.RuntimeForProject(context.Background(), ""); !errors.Is(err, ErrNoRuntime) {
		t.Fatalf("err = %v, want ErrNoRuntime", err)
	}
	if _, ok := a.FindTool(context.Background(), "gofmt", ""); ok {
		t.Fatalf("gofmt must not resolve without a runtime")
	}
	a.ResetRuntimes()
}
