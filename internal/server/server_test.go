package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"golocate/internal/app"
	"golocate/internal/runtime"
)

type stubBackend struct {
	rts      []runtime.Runtime
	err      error
	tools    map[string]string
	gopath   string
	resets   int
	projects []string
}

func (b *stubBackend) Runtimes(_ context.Context, project string) ([]runtime.Runtime, error) {
	b.projects = append(b.projects, project)
	return b.rts, b.err
}

func (b *stubBackend) RuntimeForProject(ctx context.Context, project string) (runtime.Runtime, error) {
	rts, err := b.Runtimes(ctx, project)
	if err != nil {
		return runtime.Runtime{}, err
	}
	if len(rts) == 0 {
		return runtime.Runtime{}, app.ErrNoRuntime
	}
	return rts[0], nil
}

func (b *stubBackend) FindTool(_ context.Context, name, _ string) (string, bool) {
	p, ok := b.tools[name]
	return p, ok
}

func (b *stubBackend) GoPath() (string, bool) { return b.gopath, b.gopath != "" }

func (b *stubBackend) ResetRuntimes() { b.resets++ }

func init() {
	gin.SetMode(gin.TestMode)
}

func do(t *testing.T, h http.Handler, method, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var body map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s %s: body is not a json object: %s", method, target, rec.Body.String())
		}
	}
	return rec, body
}

func TestAPI_Runtimes(t *testing.T) {
	env := runtime.NewEnv()
	env.Set("GOROOT", "/usr/local/go")
	b := &stubBackend{rts: []runtime.Runtime{
		{Path: "/usr/local/go/bin/go", Name: "go1.20.1", Semver: "1.20.1", Env: env},
		{Path: "/opt/go/bin/go", Name: "go1.22.0", Semver: "1.22.0"},
	}}
	h := (&Server{Backend: b}).Handler()

	rec, body := do(t, h, http.MethodGet, "/api/runtimes?project=/src/app")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	list, _ := body["runtimes"].([]any)
	if len(list) != 2 || body["newest"].(float64) != 1 {
		t.Fatalf("body = %v", body)
	}
	if b.projects[0] != "/src/app" {
		t.Fatalf("project not forwarded: %v", b.projects)
	}

	rec, body = do(t, h, http.MethodGet, "/api/runtime")
	if rec.Code != http.StatusOK || body["name"] != "go1.20.1" {
		t.Fatalf("runtime: %d %v", rec.Code, body)
	}
	envBody, _ := body["env"].(map[string]any)
	if envBody["GOROOT"] != "/usr/local/go" {
		t.Fatalf("env not serialized: %v", body["env"])
	}

	rec, _ = do(t, h, http.MethodPost, "/api/runtimes/reset")
	if rec.Code != http.StatusNoContent || b.resets != 1 {
		t.Fatalf("reset: %d, resets=%d", rec.Code, b.resets)
	}
}

func TestAPI_RuntimeErrors(t *testing.T) {
	h := (&Server{Backend: &stubBackend{}}).Handler()
	if rec, _ := do(t, h, http.MethodGet, "/api/runtime"); rec.Code != http.StatusNotFound {
		t.Fatalf("no runtime: status = %d", rec.Code)
	}

	rec, body := do(t, h, http.MethodGet, "/api/runtimes")
	if list, ok := body["runtimes"].([]any); rec.Code != http.StatusOK || !ok || len(list) != 0 {
		t.Fatalf("empty runtimes should be a list: %d %v", rec.Code, body)
	}

	h = (&Server{Backend: &stubBackend{err: errors.New("boom")}}).Handler()
	rec, body = do(t, h, http.MethodGet, "/api/runtimes")
	if rec.Code != http.StatusInternalServerError || body["error"] != "boom" {
		t.Fatalf("error: %d %v", rec.Code, body)
	}
}

func TestAPI_Tools(t *testing.T) {
	b := &stubBackend{tools: map[string]string{"gofmt": "/usr/local/go/bin/gofmt"}}
	h := (&Server{Backend: b}).Handler()

	rec, body := do(t, h, http.MethodGet, "/api/tools/gofmt")
	if rec.Code != http.StatusOK || body["path"] != "/usr/local/go/bin/gofmt" || body["strategy"] != "runtime-bin" {
		t.Fatalf("gofmt: %d %v", rec.Code, body)
	}

	rec, body = do(t, h, http.MethodGet, "/api/tools/gofm")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("gofm: status = %d", rec.Code)
	}
	sugg, _ := body["suggestions"].([]any)
	if len(sugg) == 0 || sugg[0] != "gofmt" {
		t.Fatalf("suggestions = %v", body["suggestions"])
	}

	rec, body = do(t, h, http.MethodGet, "/api/tools")
	if list, _ := body["tools"].([]any); rec.Code != http.StatusOK || len(list) == 0 {
		t.Fatalf("tools: %d %v", rec.Code, body)
	}
}

func TestAPI_GoPathAndMeta(t *testing.T) {
	h := (&Server{Backend: &stubBackend{}}).Handler()
	if rec, _ := do(t, h, http.MethodGet, "/api/gopath"); rec.Code != http.StatusNotFound {
		t.Fatalf("unset gopath: status = %d", rec.Code)
	}
	h = (&Server{Backend: &stubBackend{gopath: "/home/u/go"}}).Handler()
	if rec, body := do(t, h, http.MethodGet, "/api/gopath"); rec.Code != http.StatusOK || body["gopath"] != "/home/u/go" {
		t.Fatalf("gopath: %d %v", rec.Code, body)
	}
	if rec, body := do(t, h, http.MethodGet, "/api/health"); rec.Code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("health: %d %v", rec.Code, body)
	}
	if rec, _ := do(t, h, http.MethodGet, "/api/nope"); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown route: status = %d", rec.Code)
	}
}
