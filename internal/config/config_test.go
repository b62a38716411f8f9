package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Window.Height)
	}
	if cfg.Window.Backend != BackendGLFW {
		t.Errorf("expected glfw backend, got %s", cfg.Window.Backend)
	}

	if cfg.Camera.MoveSensitivity != 0.15 {
		t.Errorf("expected move sensitivity 0.15, got %f", cfg.Camera.MoveSensitivity)
	}
	if cfg.Camera.ViewSensitivity != 0.075 {
		t.Errorf("expected view sensitivity 0.075, got %f", cfg.Camera.ViewSensitivity)
	}
	if cfg.Camera.Position != [3]float64{} {
		t.Errorf("expected camera at origin, got %v", cfg.Camera.Position)
	}

	if cfg.Status.Period != 0.2 {
		t.Errorf("expected status period 0.2, got %f", cfg.Status.Period)
	}
	if cfg.Shader.Path != "" {
		t.Errorf("expected embedded shader by default, got %s", cfg.Shader.Path)
	}

	if cfg.Screenshot.Dir != "screenshots" {
		t.Errorf("expected screenshot dir 'screenshots', got %s", cfg.Screenshot.Dir)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected windowed mode by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFileYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "viewer.yaml")

	yamlContent := `
window:
  title: "Test"
  width: 1280
  height: 720
  backend: sdl

camera:
  position: [1.5, 2, -3]
  yaw: 45
  move_sensitivity: 0.5

shader:
  path: "shaders/display.glsl"
  watch: true

status:
  prefix: "Bench"
  period: 0.5

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Title != "Test" || cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Errorf("unexpected window config: %+v", cfg.Window)
	}
	if cfg.Window.Backend != BackendSDL {
		t.Errorf("expected sdl backend, got %s", cfg.Window.Backend)
	}
	if cfg.Camera.Position != [3]float64{1.5, 2, -3} {
		t.Errorf("unexpected camera position %v", cfg.Camera.Position)
	}
	if cfg.Camera.Yaw != 45 {
		t.Errorf("expected yaw 45, got %f", cfg.Camera.Yaw)
	}
	if cfg.Camera.MoveSensitivity != 0.5 {
		t.Errorf("expected move sensitivity 0.5, got %f", cfg.Camera.MoveSensitivity)
	}
	// Not in the file, keeps the default.
	if cfg.Camera.ViewSensitivity != 0.075 {
		t.Errorf("expected default view sensitivity, got %f", cfg.Camera.ViewSensitivity)
	}
	if cfg.Shader.Path != "shaders/display.glsl" || !cfg.Shader.Watch {
		t.Errorf("unexpected shader config: %+v", cfg.Shader)
	}
	if cfg.Status.Prefix != "Bench" || cfg.Status.Period != 0.5 {
		t.Errorf("unexpected status config: %+v", cfg.Status)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoadFromFileTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "viewer.toml")

	tomlContent := `
[window]
width = 800
height = 600
backend = "sdl"

[camera]
position = [0.0, 1.0, 2.0]
view_sensitivity = 0.2

[display]
image = "frame.png"
`

	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Errorf("expected 800x600, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Backend != BackendSDL {
		t.Errorf("expected sdl backend, got %s", cfg.Window.Backend)
	}
	if cfg.Camera.Position != [3]float64{0, 1, 2} {
		t.Errorf("unexpected camera position %v", cfg.Camera.Position)
	}
	if cfg.Camera.ViewSensitivity != 0.2 {
		t.Errorf("expected view sensitivity 0.2, got %f", cfg.Camera.ViewSensitivity)
	}
	if cfg.Display.Image != "frame.png" {
		t.Errorf("expected display image frame.png, got %s", cfg.Display.Image)
	}
	if cfg.Window.Title != "KerzenLicht" {
		t.Errorf("expected default title, got %s", cfg.Window.Title)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileUnsupportedExtension(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "viewer.json")
	if err := os.WriteFile(configPath, []byte(`{}`), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	err := loadFromFile(Default(), configPath)
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("expected unsupported format error, got %v", err)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/viewer.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"unknown backend", func(c *Config) { c.Window.Backend = "vulkan" }, "unknown window backend"},
		{"move sensitivity", func(c *Config) { c.Camera.MoveSensitivity = 0 }, "move_sensitivity"},
		{"view sensitivity", func(c *Config) { c.Camera.ViewSensitivity = -1 }, "view_sensitivity"},
		{"focal length", func(c *Config) { c.Camera.FocalLength = 0 }, "focal_length"},
		{"status period", func(c *Config) { c.Status.Period = 0 }, "status period"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "viewer.toml"), []byte("[window]\nwidth = 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path != "./viewer.toml" {
		t.Errorf("expected ./viewer.toml, got %q", path)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "viewer.yaml")

	cfg := Default()
	cfg.Window.Backend = BackendSDL
	cfg.Camera.Position = [3]float64{4, 5, 6}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Window.Backend != BackendSDL {
		t.Errorf("expected sdl backend after reload, got %s", loaded.Window.Backend)
	}
	if loaded.Camera.Position != [3]float64{4, 5, 6} {
		t.Errorf("expected position {4 5 6} after reload, got %v", loaded.Camera.Position)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "backend flag",
			setup: func() { *flagBackend = BackendSDL },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Backend != BackendSDL {
					t.Errorf("expected sdl backend, got %s", cfg.Window.Backend)
				}
			},
			teardown: func() { *flagBackend = "" },
		},
		{
			name: "shader flags",
			setup: func() {
				*flagShader = "display.glsl"
				*flagWatch = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Shader.Path != "display.glsl" || !cfg.Shader.Watch {
					t.Errorf("unexpected shader config %+v", cfg.Shader)
				}
			},
			teardown: func() {
				*flagShader = ""
				*flagWatch = false
			},
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFull = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be enabled")
				}
			},
			teardown: func() { *flagFull = false },
		},
		{
			name:  "image flag",
			setup: func() { *flagImage = "frame.png" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Display.Image != "frame.png" {
					t.Errorf("expected image frame.png, got %s", cfg.Display.Image)
				}
			},
			teardown: func() { *flagImage = "" },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Window.Width)
				}
				if cfg.Window.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "viewer.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "viewer.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  backend: metal\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected Load to reject unknown backend")
	}
}
