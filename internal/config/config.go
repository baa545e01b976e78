package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	EnvConfig         = "GOLOCATE_CONFIG"
	EnvGoInstallation = "GOLOCATE_GO_INSTALLATION"
	EnvProbeTimeout   = "GOLOCATE_PROBE_TIMEOUT"
	EnvLogLevel       = "GOLOCATE_LOG_LEVEL"
	EnvListenAddr     = "GOLOCATE_LISTEN_ADDR"
)

// Config is the effective golocate configuration.
type Config struct {
	// GoInstallation is a go executable or the directory holding it. It may
	// reference environment variables and ~.
	GoInstallation string
	ProbeTimeout   time.Duration
	LogLevel       string
	ListenAddr     string
}

// fileConfig is the config.toml key mapping.
type fileConfig struct {
	GoInstallation string `toml:"go_installation"`
	ProbeTimeout   string `toml:"probe_timeout"`
	LogLevel       string `toml:"log_level"`
	ListenAddr     string `toml:"listen_addr"`
}

func Default() Config {
	return Config{
		ProbeTimeout: 10 * time.Second,
		LogLevel:     "info",
		ListenAddr:   "127.0.0.1:8787",
	}
}

// LoadFile overlays the keys defined in the TOML file at path onto base.
// A missing file leaves base unchanged.
func LoadFile(path string, base Config) (Config, error) {
	cfg := base
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}

	if meta.IsDefined("go_installation") {
		cfg.GoInstallation = strings.TrimSpace(raw.GoInstallation)
	}
	if meta.IsDefined("probe_timeout") {
		d, err := parseTimeout(raw.ProbeTimeout)
		if err != nil {
			return Config{}, fmt.Errorf("load config %s: probe_timeout: %w", path, err)
		}
		cfg.ProbeTimeout = d
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("listen_addr") {
		cfg.ListenAddr = strings.TrimSpace(raw.ListenAddr)
	}
	return cfg, nil
}

// Load reads the config file at path (FilePath when empty) and applies
// GOLOCATE_* environment overrides.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		p, err := FilePath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}
	cfg, err := LoadFile(path, Default())
	if err != nil {
		return Config{}, err
	}
	return applyEnv(cfg)
}

func applyEnv(cfg Config) (Config, error) {
	cfg.GoInstallation = envOrDefault(EnvGoInstallation, cfg.GoInstallation)
	cfg.LogLevel = envOrDefault(EnvLogLevel, cfg.LogLevel)
	cfg.ListenAddr = envOrDefault(EnvListenAddr, cfg.ListenAddr)
	if v := strings.TrimSpace(os.Getenv(EnvProbeTimeout)); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvProbeTimeout, err)
		}
		cfg.ProbeTimeout = d
	}
	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// parseTimeout accepts Go durations ("5s", "750ms").
func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", d)
	}
	return d, nil
}
