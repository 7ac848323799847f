package prefs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// View modes the CLI can render.
const (
	ViewTable = "table"
	ViewJSON  = "json"
)

// Preferences holds the durable user settings. Station data itself is never
// persisted; the last-chosen view mode is the one value that survives
// between runs.
type Preferences struct {
	ViewMode string `yaml:"view_mode"`
}

var defaultPreferencesPath = xdg.ConfigHome + "/findacharger/preferences.yaml"

func Default() Preferences {
	return Preferences{ViewMode: ViewTable}
}

// Load reads preferences from path, or the default XDG location when path is
// empty. A missing or empty file is not an error: defaults come back.
func Load(path string) (Preferences, error) {
	if path == "" {
		path = defaultPreferencesPath
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("opening preferences: %w", err)
	}
	defer func() { _ = f.Close() }()

	prefs := Default()
	if err := yaml.NewDecoder(f).Decode(&prefs); err != nil {
		if errors.Is(err, io.EOF) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("decoding preferences: %w", err)
	}

	// A mode this version does not know falls back rather than failing.
	if prefs.ViewMode != ViewTable && prefs.ViewMode != ViewJSON {
		prefs.ViewMode = ViewTable
	}
	return prefs, nil
}

// Save writes preferences to path, or the default XDG location when path is
// empty, creating the parent directory when needed.
func Save(prefs Preferences, path string) error {
	if path == "" {
		path = defaultPreferencesPath
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating preferences directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("opening preferences for write: %w", err)
	}
	defer func() { _ = f.Close() }()

	// The encoder buffers until Close, so Close is what actually writes.
	enc := yaml.NewEncoder(f)
	if err := enc.Encode(prefs); err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}
	return nil
}
