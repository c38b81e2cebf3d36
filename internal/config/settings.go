// Package config persists the small amount of state genre-fill keeps
// between runs: the most recently used folders and the join preference.
// Settings are loaded and saved explicitly by the caller; nothing here is
// global.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	jsoniter "github.com/json-iterator/go"
)

// MaxRecentDirs is how many folders are remembered.
const MaxRecentDirs = 2

const relPath = "genre-fill/settings.json"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Settings holds all persisted options.
type Settings struct {
	RecentDirs  []string `json:"recent_dirs"`
	JoinArtists bool     `json:"join_artists"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		RecentDirs:  []string{},
		JoinArtists: true,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/genre-fill/settings.json.
// The parent directory is created if needed.
func DefaultPath() (string, error) {
	path, err := xdg.ConfigFile(relPath)
	if err != nil {
		return "", fmt.Errorf("config path: %w", err)
	}
	return path, nil
}

// Load reads settings from a JSON file. A missing file yields defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}

	// hand-edited files may hold more, or blank, entries
	dirs := settings.RecentDirs
	settings.RecentDirs = []string{}
	for i := len(dirs) - 1; i >= 0; i-- {
		settings.Remember(dirs[i])
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Remember moves dir to the front of RecentDirs, dropping duplicates and
// anything past MaxRecentDirs.
func (s *Settings) Remember(dir string) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return
	}
	dir = filepath.Clean(dir)

	dirs := []string{dir}
	for _, d := range s.RecentDirs {
		if d != dir && len(dirs) < MaxRecentDirs {
			dirs = append(dirs, d)
		}
	}
	s.RecentDirs = dirs
}

// LastDir returns the most recently used folder, if any.
func (s *Settings) LastDir() (string, bool) {
	if len(s.RecentDirs) == 0 {
		return "", false
	}
	return s.RecentDirs[0], true
}
