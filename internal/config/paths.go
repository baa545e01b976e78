package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const fileName = "config.toml"

// Dir returns the golocate config directory under the user config base.
// On Linux, this typically resolves to $XDG_CONFIG_HOME/golocate; on macOS
// to ~/Library/Application Support/golocate; and on Windows to %AppData%/golocate.
// Falls back to HOME when UserConfigDir is unavailable.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(base) == "" {
		if home, herr := os.UserHomeDir(); herr == nil {
			base = home
		} else {
			return "", errors.New("cannot determine config directory")
		}
	}
	return filepath.Join(base, "golocate"), nil
}

// DotDir returns ~/.golocate.
func DotDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return "", errors.New("cannot determine home directory")
	}
	return filepath.Join(home, ".golocate"), nil
}

// FilePath returns the config file to load: $GOLOCATE_CONFIG when set,
// ~/.golocate/config.toml when it exists, the file under Dir otherwise.
func FilePath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfig)); p != "" {
		return p, nil
	}
	if dot, err := DotDir(); err == nil {
		p := filepath.Join(dot, fileName)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}
