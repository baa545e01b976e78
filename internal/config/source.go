package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	fsnotify "github.com/fsnotify/fsnotify"

	"golocate/internal/system"
)

// Source supplies the configured Go installation path.
type Source interface {
	GoInstallation() string
}

// Static is a Source with a fixed installation path.
type Static string

func (s Static) GoInstallation() string { return string(s) }

// FileSource is a Source backed by a config file, re-read on Reload or on
// change while Watch runs.
type FileSource struct {
	path string

	mu  sync.RWMutex
	cfg Config
}

// NewFileSource loads path with environment overrides applied.
func NewFileSource(path string) (*FileSource, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if path == "" {
		if path, err = FilePath(); err != nil {
			return nil, err
		}
	}
	return &FileSource{path: path, cfg: cfg}, nil
}

func (s *FileSource) Path() string { return s.path }

func (s *FileSource) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *FileSource) GoInstallation() string {
	return s.Config().GoInstallation
}

// Reload re-reads the file and reports whether the configuration changed.
// On error the previous configuration stays in effect.
func (s *FileSource) Reload() (bool, error) {
	cfg, err := Load(s.path)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := cfg != s.cfg
	s.cfg = cfg
	return changed, nil
}

// Watch reloads the file whenever it changes and calls onChange with the new
// configuration. It blocks until ctx is done.
func (s *FileSource) Watch(ctx context.Context, onChange func(Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	defer w.Close()

	// Editors often replace the file, so watch its directory.
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	name := filepath.Clean(s.path)

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != name {
				continue
			}
			debounce = time.After(120 * time.Millisecond)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			system.Logger.Warn("config watcher error", "err", err)
		case <-debounce:
			debounce = nil
			changed, err := s.Reload()
			if err != nil {
				system.Logger.Warn("config reload failed", "path", s.path, "err", err)
				continue
			}
			if changed && onChange != nil {
				onChange(s.Config())
			}
		}
	}
}
