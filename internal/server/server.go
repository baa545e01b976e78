package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"golocate/internal/app"
	"golocate/internal/runtime"
	"golocate/internal/system"
	"golocate/internal/tools"
	appver "golocate/internal/version"
)

// Backend is the discovery engine the API serves. *app.App implements it.
type Backend interface {
	Runtimes(ctx context.Context, project string) ([]runtime.Runtime, error)
	RuntimeForProject(ctx context.Context, project string) (runtime.Runtime, error)
	FindTool(ctx context.Context, name, project string) (string, bool)
	GoPath() (string, bool)
	ResetRuntimes()
}

type Server struct {
	Addr    string
	Backend Backend
}

func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.Addr, Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	system.Logger.Info("api server listening", "addr", s.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Handler returns the gin engine with every API route mounted.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	s.mountAPI(r)
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	return r
}

func (s *Server) mountAPI(r *gin.Engine) {
	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	api.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": appver.AppVersion})
	})
	api.GET("/runtimes", s.runtimesHandler)
	api.POST("/runtimes/reset", s.resetHandler)
	api.GET("/runtime", s.runtimeHandler)
	api.GET("/tools", s.toolsHandler)
	api.GET("/tools/:name", s.toolHandler)
	api.GET("/gopath", s.gopathHandler)
}

func (s *Server) runtimesHandler(c *gin.Context) {
	rts, err := s.Backend.Runtimes(c.Request.Context(), c.Query("project"))
	if err != nil {
		writeError(c, http.StatusInternalServerError, err)
		return
	}
	if rts == nil {
		rts = []runtime.Runtime{}
	}
	c.JSON(http.StatusOK, gin.H{"runtimes": rts, "newest": runtime.Newest(rts)})
}

func (s *Server) resetHandler(c *gin.Context) {
	s.Backend.ResetRuntimes()
	c.Status(http.StatusNoContent)
}

func (s *Server) runtimeHandler(c *gin.Context) {
	rt, err := s.Backend.RuntimeForProject(c.Request.Context(), c.Query("project"))
	if errors.Is(err, app.ErrNoRuntime) {
		writeError(c, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, rt)
}

func (s *Server) toolsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": tools.Tools})
}

func (s *Server) toolHandler(c *gin.Context) {
	name := c.Param("name")
	p, ok := s.Backend.FindTool(c.Request.Context(), name, c.Query("project"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error":       "tool not found",
			"name":        name,
			"strategy":    tools.StrategyFor(name),
			"suggestions": tools.Suggest(name, 3),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name, "path": p, "strategy": tools.StrategyFor(name)})
}

func (s *Server) gopathHandler(c *gin.Context) {
	gp, ok := s.Backend.GoPath()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "GOPATH is not set"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"gopath": gp})
}

func writeError(c *gin.Context, code int, err error) {
	system.Logger.Debug("api error", "path", c.Request.URL.Path, "status", code, "err", err)
	c.JSON(code, gin.H{"error": err.Error()})
}
