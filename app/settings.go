package app

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Settings is the state persisted between runs.
type Settings struct {
	// WindowSize and WindowPos are zero when the window was maximized.
	WindowSize      [2]int `toml:"window_size"`
	WindowPos       [2]int `toml:"window_pos"`
	AllowCursorLock bool   `toml:"allow_cursor_lock"`
	// SkipAutosaveOnLaunch is set while a launch is in progress. Finding it
	// set at startup means the previous run crashed.
	SkipAutosaveOnLaunch bool `toml:"skip_autosave_on_launch"`
}

// DefaultSettings returns the settings used before the first save.
func DefaultSettings() Settings {
	return Settings{AllowCursorLock: true}
}

// LoadSettings reads settings from path. A missing file yields the
// defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}
	if _, err := toml.DecodeFile(path, &s); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultSettings(), nil
		}
		return DefaultSettings(), fmt.Errorf("decode settings %s: %w", path, err)
	}
	return s, nil
}

// Save writes the settings to path atomically.
func (s Settings) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings dir: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// Apply restores the window geometry and cursor lock switch.
func (s Settings) Apply(w Window) {
	if s.WindowSize[0] > 0 && s.WindowSize[1] > 0 {
		w.SetSize(s.WindowSize[0], s.WindowSize[1])
		w.SetPos(s.WindowPos[0], s.WindowPos[1])
	}
	w.SetAllowCursorLock(s.AllowCursorLock)
}

// Capture records the window geometry and cursor lock switch. A maximized
// window stores no geometry.
func (s *Settings) Capture(w Window) {
	if w.IsMaximized() {
		s.WindowSize = [2]int{}
		s.WindowPos = [2]int{}
	} else {
		width, height := w.Size()
		x, y := w.Pos()
		s.WindowSize = [2]int{width, height}
		s.WindowPos = [2]int{x, y}
	}
	s.AllowCursorLock = w.AllowCursorLock()
}
