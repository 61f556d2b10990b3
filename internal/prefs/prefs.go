// Package prefs remembers UI choices between FoodLens sessions. It is only
// used when the prefs_file setting names a file; DefaultPath is the
// suggested location.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/foodlens/internal/config"
)

// Prefs holds what the TUI changes at runtime: the theme picked with "T" and
// the directory of the last selected image.
type Prefs struct {
	Theme   string `toml:"theme,omitempty"`
	LastDir string `toml:"last_dir,omitempty"`
}

const defaultPrefsPath = "~/.config/foodlens/prefs.toml"

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from path, or DefaultPath when empty. A missing file
// is not an error. On a read or parse error the zero Prefs is returned with
// the error so the caller can log it and carry on. A LastDir that no longer
// exists is dropped.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Prefs{}, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Prefs{}, nil
		}
		return Prefs{}, fmt.Errorf("read prefs: %w", err)
	}

	var p Prefs
	if err := toml.Unmarshal(data, &p); err != nil {
		return Prefs{}, fmt.Errorf("parse prefs: %w", err)
	}

	p.Theme = strings.TrimSpace(p.Theme)
	p.LastDir = strings.TrimSpace(p.LastDir)
	if p.LastDir != "" {
		if info, err := os.Stat(p.LastDir); err != nil || !info.IsDir() {
			p.LastDir = ""
		}
	}
	return p, nil
}

// Save writes preferences to path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return config.ExpandPath(defaultPrefsPath)
	}
	return config.ExpandPath(path)
}
