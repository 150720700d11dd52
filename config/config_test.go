package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-theft-auto/rack"
)

func TestLoadFromFile_MissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme.Background != "#333333" || cfg.Log.Level != "info" {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestLoadFromFile_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "rack.toml", "[display]\nprofile = \"fullscreen\"\nfps = 45\n\n[theme]\nbackground = \"#202020\"\n"},
		{"yaml", "rack.yaml", "display:\n  profile: fullscreen\n  fps: 45\ntheme:\n  background: \"#202020\"\n"},
		{"yml", "rack.yml", "display:\n  profile: fullscreen\n  fps: 45\ntheme:\n  background: \"#202020\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			cfg, err := LoadFromFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Display.Profile != "fullscreen" || cfg.Display.FPS != 45 {
				t.Errorf("Expected display overrides, got %+v", cfg.Display)
			}
			if cfg.Theme.Background != "#202020" {
				t.Errorf("Expected background override, got %q", cfg.Theme.Background)
			}
			// Unset keys keep their defaults.
			if cfg.Theme.Foreground != "#f0f0f0" || cfg.Assets.Autosave != "autosave.vcv" {
				t.Errorf("Expected defaults for unset keys, got %+v", cfg)
			}
		})
	}
}

func TestLoadYAML_Empty(t *testing.T) {
	cfg, err := LoadYAML(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Display.Profile != "auto" {
		t.Errorf("Expected defaults, got %+v", cfg.Display)
	}
}

func TestLoadTOML_Malformed(t *testing.T) {
	if _, err := LoadTOML(strings.NewReader("[display\n")); err == nil {
		t.Error("Expected decode error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"profile", func(c *Config) { c.Display.Profile = "windowed" }, "display.profile"},
		{"fps", func(c *Config) { c.Display.FPS = -1 }, "display.fps"},
		{"size", func(c *Config) { c.Display.Width = -5 }, "display size"},
		{"color", func(c *Config) { c.Theme.Foreground = "#ggg" }, "theme.foreground"},
		{"color length", func(c *Config) { c.Theme.Background = "#12345" }, "theme.background"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.HasPrefix(err.Error(), tt.field) {
				t.Errorf("Expected error on %s, got %v", tt.field, err)
			}
		})
	}
}

func TestThemeColors(t *testing.T) {
	bg, fg := DefaultConfig().ThemeColors()
	if bg != rack.DefaultBackground || fg != rack.DefaultForeground {
		t.Errorf("Expected default palette bases, got %+v %+v", bg, fg)
	}
}

func TestResolveDisplayProfile(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		goarch   string
		cfg      DisplayConfig
		mode     DisplayMode
		fps      float64
		swap     int
		iconify  bool
		interval time.Duration
	}{
		{"desktop", "linux", "amd64", DisplayConfig{}, ModeMaximized, 60, 1, true, time.Second / 60},
		{"apple silicon", "darwin", "arm64", DisplayConfig{}, ModeMaximized, 60, 1, true, time.Second / 60},
		{"raspberry pi", "linux", "arm", DisplayConfig{}, ModeFullscreen, 30, 0, false, time.Second / 30},
		{"arm64 board", "linux", "arm64", DisplayConfig{}, ModeFullscreen, 30, 0, false, time.Second / 30},
		{"forced fullscreen", "windows", "amd64", DisplayConfig{Profile: "fullscreen"}, ModeFullscreen, 60, 1, false, time.Second / 60},
		{"forced maximized on arm", "linux", "arm", DisplayConfig{Profile: "maximized", FPS: 50}, ModeMaximized, 50, 0, false, time.Second / 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ResolveDisplayProfile(tt.goos, tt.goarch, tt.cfg)
			if p.Mode != tt.mode || p.FPS != tt.fps || p.SwapInterval != tt.swap || p.AutoIconify != tt.iconify {
				t.Errorf("Unexpected profile %+v", p)
			}
			if d := p.FrameInterval() - tt.interval; d > time.Microsecond || d < -time.Microsecond {
				t.Errorf("Expected interval %v, got %v", tt.interval, p.FrameInterval())
			}
			if p.MinWidth != 800 || p.MinHeight != 480 {
				t.Errorf("Expected 800x480 floor, got %dx%d", p.MinWidth, p.MinHeight)
			}
		})
	}
}

func TestResolveDisplayProfile_SizeFloor(t *testing.T) {
	p := ResolveDisplayProfile("linux", "amd64", DisplayConfig{Width: 640, Height: 900})
	if p.Width != 800 || p.Height != 900 {
		t.Errorf("Expected size clamped to the floor, got %dx%d", p.Width, p.Height)
	}
}

func TestResolvePlatform(t *testing.T) {
	tests := []struct {
		goos string
		want Platform
	}{
		{"darwin", Platform{PrimaryMod: rack.ModSuper, EmulateCursorLock: true, CtrlClickIsRightClick: true}},
		{"linux", Platform{PrimaryMod: rack.ModControl, SwapScrollOnShift: true}},
		{"windows", Platform{PrimaryMod: rack.ModControl, SwapScrollOnShift: true}},
		{"freebsd", Platform{PrimaryMod: rack.ModControl}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			if got := ResolvePlatform(tt.goos); got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}
