package runtime

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseVersion(t *testing.T) {
	rt, ok := parseVersion("/usr/local/go/bin/go", "go version go1.5.1 linux/amd64\r\n")
	if !ok {
		t.Fatalf("expected version to parse")
	}
	if rt.Name != "go1.5.1" || rt.Semver != "1.5.1" {
		t.Fatalf("unexpected name/semver: %q %q", rt.Name, rt.Semver)
	}
	if rt.Version != "go version go1.5.1 linux/amd64" {
		t.Fatalf("line terminators not stripped: %q", rt.Version)
	}
	if rt.Path != "/usr/local/go/bin/go" {
		t.Fatalf("path = %q", rt.Path)
	}

	if _, ok := parseVersion("x", "gofmt version 1"); ok {
		t.Fatalf("output without the go prefix must be rejected")
	}
	if _, ok := parseVersion("x", "go version"); ok {
		t.Fatalf("output without a name must be rejected")
	}
	rt, _ = parseVersion("x", "go version devel +a1b2 Mon linux/amd64")
	if rt.Name != "devel" || rt.Semver != "" {
		t.Fatalf("devel build: %q %q", rt.Name, rt.Semver)
	}
}

func TestParseEnv_Unix(t *testing.T) {
	out := strings.Join([]string{
		`GOARCH="amd64"`,
		`GOBIN=""`,
		`GOFLAGS='-mod=mod -tags=a'`,
		`CGO_CFLAGS="-O2 -g"`,
		`GOEXPERIMENT=`,
		`not a pair`,
		`GOROOT="/usr/local/go"`,
		`GOARCH="arm64"`,
		``,
	}, "\n")
	env := parseEnv(out, false)

	wantKeys := []string{"GOARCH", "GOBIN", "GOFLAGS", "CGO_CFLAGS", "GOEXPERIMENT", "GOROOT"}
	if got := env.Keys(); strings.Join(got, ",") != strings.Join(wantKeys, ",") {
		t.Fatalf("keys = %v, want %v", got, wantKeys)
	}
	if v, _ := env.Get("GOARCH"); v != "arm64" {
		t.Fatalf("later duplicate should update value in place, got %q", v)
	}
	if v, ok := env.Get("GOBIN"); !ok || v != "" {
		t.Fatalf("GOBIN = %q, %v", v, ok)
	}
	if v, _ := env.Get("GOFLAGS"); v != "-mod=mod -tags=a" {
		t.Fatalf("value with '=' not rejoined: %q", v)
	}
	if v, _ := env.Get("CGO_CFLAGS"); v != "-O2 -g" {
		t.Fatalf("CGO_CFLAGS = %q", v)
	}
}

func TestParseEnv_Windows(t *testing.T) {
	out := "set GOARCH=amd64\r\nset GOEXE=.exe\r\nset GOROOT=C:\\Go\r\nset GOFLAGS=-ldflags=-s\r\n"
	env := parseEnv(out, true)
	if v, _ := env.Get("GOEXE"); v != ".exe" {
		t.Fatalf("GOEXE = %q", v)
	}
	if v, _ := env.Get("GOROOT"); v != `C:\Go` {
		t.Fatalf("GOROOT = %q", v)
	}
	if v, _ := env.Get("GOFLAGS"); v != "-ldflags=-s" {
		t.Fatalf("GOFLAGS = %q", v)
	}
	rt := Runtime{Env: env}
	if rt.ExeSuffix() != ".exe" || rt.Root() != `C:\Go` {
		t.Fatalf("accessors: %q %q", rt.ExeSuffix(), rt.Root())
	}
}

func TestEnv_MarshalKeepsOrder(t *testing.T) {
	env := NewEnv()
	env.Set("GOROOT", "/r")
	env.Set("GOARCH", "amd64")
	env.Set("CC", "gcc")

	b, err := json.Marshal(Runtime{Name: "go1.5.1", Env: env})
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	s := string(b)
	if !(strings.Index(s, "GOROOT") < strings.Index(s, "GOARCH") && strings.Index(s, "GOARCH") < strings.Index(s, "\"CC\"")) {
		t.Fatalf("json lost order: %s", s)
	}

	var back Runtime
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if strings.Join(back.Env.Keys(), ",") != "GOROOT,GOARCH,CC" {
		t.Fatalf("round trip keys = %v", back.Env.Keys())
	}

	y, err := yaml.Marshal(Runtime{Env: env})
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	ys := string(y)
	if !(strings.Index(ys, "GOROOT") < strings.Index(ys, "GOARCH") && strings.Index(ys, "GOARCH") < strings.Index(ys, "CC:")) {
		t.Fatalf("yaml lost order:\n%s", ys)
	}

	var nilEnv *Env
	if b, _ := json.Marshal(nilEnv); string(b) != "{}" {
		t.Fatalf("nil env = %s", b)
	}
}

func TestEnv_Clone(t *testing.T) {
	env := NewEnv()
	env.Set("GOROOT", "/usr/local/go")
	env.Set("GOOS", "linux")
	cp := env.Clone()
	cp.Set("GOROOT", "/elsewhere")
	cp.Set("EXTRA", "1")
	if v, _ := env.Get("GOROOT"); v != "/usr/local/go" || env.Len() != 2 {
		t.Fatalf("clone shares state with original: GOROOT=%q len=%d", v, env.Len())
	}
	if strings.Join(cp.Keys(), ",") != "GOROOT,GOOS,EXTRA" {
		t.Fatalf("clone keys = %v", cp.Keys())
	}
	var nilEnv *Env
	if nilEnv.Clone() != nil {
		t.Fatalf("nil Env should clone to nil")
	}
}

func TestOrderedSet_FirstWins(t *testing.T) {
	s := newOrderedSet()
	s.Add("b", "a", "b")
	s.Add("c", "a")
	if got := strings.Join(s.Items(), ","); got != "b,a,c" {
		t.Fatalf("items = %s", got)
	}
}

func TestSemverLess(t *testing.T) {
	if !SemverLess("1.5.1", "1.21.0") {
		t.Fatalf("1.5.1 < 1.21.0")
	}
	if SemverLess("1.21", "1.21.0") || SemverLess("1.21.0", "1.21") {
		t.Fatalf("1.21 and 1.21.0 are equal")
	}
	if !SemverLess("1.22rc1", "1.22") {
		t.Fatalf("rc sorts below release")
	}
	if !SemverLess("1.22rc1", "1.22rc2") {
		t.Fatalf("rc1 < rc2")
	}
	if SemverLess("", "1.0") {
		t.Fatalf("empty never compares less")
	}

	rts := []Runtime{{Semver: "1.20.3"}, {Semver: "1.22.1"}, {Semver: "1.9"}, {Semver: "1.22.1"}}
	if i := Newest(rts); i != 1 {
		t.Fatalf("Newest = %d, want 1", i)
	}
	if Newest(nil) != -1 {
		t.Fatalf("Newest(nil) should be -1")
	}
}

func TestRuntimeListSchema(t *testing.T) {
	b, err := MarshalSchema(RuntimeListSchema())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("schema is not json: %v", err)
	}
	if doc["type"] != "array" {
		t.Fatalf("type = %v", doc["type"])
	}
	items, _ := doc["items"].(map[string]any)
	props, _ := items["properties"].(map[string]any)
	for _, k := range []string{"path", "name", "semver", "version", "env"} {
		if _, ok := props[k]; !ok {
			t.Fatalf("missing property %q in %s", k, b)
		}
	}
}
