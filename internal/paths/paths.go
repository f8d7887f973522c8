// Package paths resolves where nitidus keeps its config and data files.
//
// Layout (XDG-style):
//
//	Config:  ~/.config/nitidus/config.yaml   (override: NITIDUS_CONFIG_DIR)
//	Data:    ~/.local/share/nitidus/         (override: NITIDUS_DATA_DIR)
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const appName = "nitidus"

var (
	configDirOnce   sync.Once
	configDirCached string

	dataDirOnce   sync.Once
	dataDirCached string
)

// ConfigDir resolves the config directory.
// Priority: NITIDUS_CONFIG_DIR > $XDG_CONFIG_HOME/nitidus > ~/.config/nitidus
func ConfigDir() string {
	configDirOnce.Do(func() {
		configDirCached = resolve("NITIDUS_CONFIG_DIR", "XDG_CONFIG_HOME", ".config")
	})
	return configDirCached
}

// DataDir resolves the data directory holding the envelope index and log.
// Priority: NITIDUS_DATA_DIR > $XDG_DATA_HOME/nitidus > ~/.local/share/nitidus
func DataDir() string {
	dataDirOnce.Do(func() {
		dataDirCached = resolve("NITIDUS_DATA_DIR", "XDG_DATA_HOME", filepath.Join(".local", "share"))
	})
	return dataDirCached
}

func resolve(override, xdg, homeRel string) string {
	if env := os.Getenv(override); env != "" {
		return env
	}
	if base := os.Getenv(xdg); base != "" {
		return filepath.Join(base, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, homeRel, appName)
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// EnsureDir creates dir if it doesn't exist and returns it.
func EnsureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create dir %s: %w", dir, err)
	}
	return dir, nil
}

// ResetForTest clears cached values so tests can re-run resolution logic.
// Only use in tests.
func ResetForTest() {
	configDirOnce = sync.Once{}
	configDirCached = ""
	dataDirOnce = sync.Once{}
	dataDirCached = ""
}
