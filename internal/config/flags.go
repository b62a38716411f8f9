package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file (.yaml, .yml or .toml)")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagBackend = flag.String("backend", "", "Window backend: glfw or sdl")
	flagWidth   = flag.Int("width", 0, "Window width")
	flagHeight  = flag.Int("height", 0, "Window height")
	flagFull    = flag.Bool("fullscreen", false, "Start in fullscreen mode")
	flagShader  = flag.String("shader", "", "Path to the display shader")
	flagWatch   = flag.Bool("watch", false, "Recompile the display shader when the file changes")
	flagImage   = flag.String("image", "", "Image shown through the display texture")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagBackend != "" {
		cfg.Window.Backend = *flagBackend
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagFull {
		cfg.Window.Fullscreen = true
	}
	if *flagShader != "" {
		cfg.Shader.Path = *flagShader
	}
	if *flagWatch {
		cfg.Shader.Watch = true
	}
	if *flagImage != "" {
		cfg.Display.Image = *flagImage
	}
}
