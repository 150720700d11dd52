// rack opens the rack window and runs it until closed.
//
// Usage:
//
//	rack [flags]
//
// Flags:
//
//	-config string  Path to a .toml or .yaml configuration file (default: rack.toml)
//	-verbose        Enable debug logging
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"

	"github.com/go-theft-auto/rack"
	"github.com/go-theft-auto/rack/app"
	"github.com/go-theft-auto/rack/backend/opengl"
	"github.com/go-theft-auto/rack/config"
)

const windowTitle = "VCV Rack"

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	var (
		configPath = flag.String("config", "rack.toml", "Path to configuration file (.toml, .yaml or .yml)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	cfg, err := config.LoadFromFile(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	setupLogging(cfg.Log, *verbose)

	profile := config.ResolveDisplayProfile(runtime.GOOS, runtime.GOARCH, cfg.Display)
	platform := config.ResolvePlatform(runtime.GOOS)
	rack.Logger().Info("starting",
		"os", runtime.GOOS, "arch", runtime.GOARCH,
		"mode", profile.Mode, "fps", profile.FPS, "config", *configPath)

	window := opengl.NewWindow(opengl.Options{
		Title:      windowTitle,
		Scene:      rack.NewScene(),
		Profile:    profile,
		Platform:   platform,
		Font:       cfg.AssetPath(cfg.Assets.Font),
		Background: cfg.Theme.Background,
		Foreground: cfg.Theme.Foreground,
	})

	lc := &app.Lifecycle{
		Window: window,
		Dialog: app.LogDialog{},
		Paths: app.Paths{
			Settings: cfg.AssetPath(cfg.Assets.Settings),
			Autosave: cfg.AssetPath(cfg.Assets.Autosave),
			Template: cfg.AssetPath(cfg.Assets.Template),
		},
	}
	os.Exit(lc.Run())
}

// setupLogging installs a text handler on a terminal and a JSON handler
// otherwise, unless the config forces one.
func setupLogging(c config.LogConfig, verbose bool) {
	level := rack.LogLevel()
	if c.Level != "" {
		if err := level.UnmarshalText([]byte(c.Level)); err != nil {
			fmt.Fprintf(os.Stderr, "invalid log level %q, using info\n", c.Level)
			level.Set(slog.LevelInfo)
		}
	}
	if verbose {
		rack.SetVerbose(true)
	}

	opts := &slog.HandlerOptions{Level: level}
	format := c.Format
	if format == "" || format == "auto" {
		format = "json"
		if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
			format = "text"
		}
	}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	rack.SetLogger(slog.New(handler))
}
