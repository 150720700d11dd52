// Package config provides TOML or YAML configuration for the rack GUI.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gogpu/gg"
	"gopkg.in/yaml.v3"
)

// Config is the full configuration file.
type Config struct {
	Display DisplayConfig `toml:"display" yaml:"display"`
	Theme   ThemeConfig   `toml:"theme" yaml:"theme"`
	Log     LogConfig     `toml:"log" yaml:"log"`
	Assets  AssetsConfig  `toml:"assets" yaml:"assets"`
}

// DisplayConfig overrides the display profile derived from the platform.
// Zero values keep the platform default.
type DisplayConfig struct {
	// Profile is "auto", "maximized" or "fullscreen".
	Profile string  `toml:"profile" yaml:"profile"`
	FPS     float64 `toml:"fps" yaml:"fps"`
	Width   int     `toml:"width" yaml:"width"`
	Height  int     `toml:"height" yaml:"height"`
}

// ThemeConfig holds the two base colors the palette is derived from.
type ThemeConfig struct {
	Background string `toml:"background" yaml:"background"`
	Foreground string `toml:"foreground" yaml:"foreground"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	// Level is "debug", "info", "warn" or "error".
	Level string `toml:"level" yaml:"level"`
	// Format is "auto", "text" or "json". Auto picks text on a terminal.
	Format string `toml:"format" yaml:"format"`
}

// AssetsConfig locates resources and persisted files.
type AssetsConfig struct {
	Dir      string `toml:"dir" yaml:"dir"`
	Font     string `toml:"font" yaml:"font"`
	Template string `toml:"template" yaml:"template"`
	Autosave string `toml:"autosave" yaml:"autosave"`
	Settings string `toml:"settings" yaml:"settings"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{Profile: "auto"},
		Theme: ThemeConfig{
			Background: "#333333",
			Foreground: "#f0f0f0",
		},
		Log: LogConfig{Level: "info", Format: "auto"},
		Assets: AssetsConfig{
			Dir:      "res",
			Font:     "fonts/DejaVuSans.ttf",
			Template: "template.vcv",
			Autosave: "autosave.vcv",
			Settings: "settings.toml",
		},
	}
}

// LoadFromFile reads configuration from path. The format follows the file
// extension: .yaml and .yml are YAML, anything else is TOML. A missing file
// yields the defaults.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(f)
	default:
		return LoadTOML(f)
	}
}

// LoadTOML decodes TOML over the defaults.
func LoadTOML(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode toml config: %w", err)
	}
	return cfg, nil
}

// LoadYAML decodes YAML over the defaults.
func LoadYAML(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.NewDecoder(r).Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode yaml config: %w", err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Display.Profile {
	case "", "auto", "maximized", "fullscreen":
	default:
		return fmt.Errorf("display.profile: unknown profile %q", c.Display.Profile)
	}
	if c.Display.FPS < 0 {
		return fmt.Errorf("display.fps: must not be negative, got %v", c.Display.FPS)
	}
	if c.Display.Width < 0 || c.Display.Height < 0 {
		return fmt.Errorf("display size: must not be negative, got %dx%d", c.Display.Width, c.Display.Height)
	}
	for name, v := range map[string]string{
		"theme.background": c.Theme.Background,
		"theme.foreground": c.Theme.Foreground,
	} {
		if !validHex(v) {
			return fmt.Errorf("%s: invalid color %q", name, v)
		}
	}
	switch c.Log.Format {
	case "", "auto", "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	return nil
}

// ThemeColors returns the parsed base colors.
func (c *Config) ThemeColors() (bg, fg gg.RGBA) {
	return gg.Hex(c.Theme.Background), gg.Hex(c.Theme.Foreground)
}

// AssetPath resolves a path relative to the assets directory.
func (c *Config) AssetPath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Assets.Dir, name)
}

func validHex(s string) bool {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}
