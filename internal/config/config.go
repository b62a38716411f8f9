// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Window backends.
const (
	BackendGLFW = "glfw"
	BackendSDL  = "sdl"
)

// Config holds all viewer settings.
type Config struct {
	Window     WindowConfig     `yaml:"window" toml:"window"`
	Camera     CameraConfig     `yaml:"camera" toml:"camera"`
	Shader     ShaderConfig     `yaml:"shader" toml:"shader"`
	Display    DisplayConfig    `yaml:"display" toml:"display"`
	Status     StatusConfig     `yaml:"status" toml:"status"`
	Screenshot ScreenshotConfig `yaml:"screenshot" toml:"screenshot"`
	Logging    LoggingConfig    `yaml:"logging" toml:"logging"`
}

// WindowConfig holds window system settings.
type WindowConfig struct {
	Title      string `yaml:"title" toml:"title"`
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Fullscreen bool   `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool   `yaml:"vsync" toml:"vsync"`
	Backend    string `yaml:"backend" toml:"backend"` // glfw or sdl
	Icon       string `yaml:"icon" toml:"icon"`       // optional, failure to load is not fatal
}

// CameraConfig holds the initial camera state and input sensitivities.
type CameraConfig struct {
	Position        [3]float64 `yaml:"position" toml:"position"`
	Yaw             float64    `yaml:"yaw" toml:"yaw"`
	Pitch           float64    `yaml:"pitch" toml:"pitch"`
	FocalLength     float64    `yaml:"focal_length" toml:"focal_length"`
	SensorWidth     float64    `yaml:"sensor_width" toml:"sensor_width"`
	MoveSensitivity float64    `yaml:"move_sensitivity" toml:"move_sensitivity"`
	ViewSensitivity float64    `yaml:"view_sensitivity" toml:"view_sensitivity"`
}

// ShaderConfig holds the display shader location.
type ShaderConfig struct {
	Path  string `yaml:"path" toml:"path"` // empty uses the embedded shader
	Watch bool   `yaml:"watch" toml:"watch"`
}

// DisplayConfig holds the pixel source shown on the full-screen quad.
type DisplayConfig struct {
	Image string `yaml:"image" toml:"image"`
}

// StatusConfig controls the title bar frame-rate readout.
type StatusConfig struct {
	Prefix string  `yaml:"prefix" toml:"prefix"`
	Period float64 `yaml:"period" toml:"period"` // seconds between title updates
}

// ScreenshotConfig controls where F12 captures are written.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir" toml:"dir"`
	Prefix string `yaml:"prefix" toml:"prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with the viewer's default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:   "KerzenLicht",
			Width:   1920,
			Height:  1080,
			VSync:   false,
			Backend: BackendGLFW,
			Icon:    "./resources/Icon.png",
		},
		Camera: CameraConfig{
			FocalLength:     0.05,
			SensorWidth:     0.036,
			MoveSensitivity: 0.15,
			ViewSensitivity: 0.075,
		},
		Shader: ShaderConfig{
			Path:  "",
			Watch: false,
		},
		Status: StatusConfig{
			Prefix: "KerzenLicht",
			Period: 0.2,
		},
		Screenshot: ScreenshotConfig{
			Dir:    "screenshots",
			Prefix: "kerzenlicht",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every setting that cannot be used to start the viewer.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	switch c.Window.Backend {
	case BackendGLFW, BackendSDL:
	default:
		errs = append(errs, fmt.Errorf("unknown window backend %q", c.Window.Backend))
	}
	if c.Camera.MoveSensitivity <= 0 {
		errs = append(errs, fmt.Errorf("camera move_sensitivity must be positive, got %g", c.Camera.MoveSensitivity))
	}
	if c.Camera.ViewSensitivity <= 0 {
		errs = append(errs, fmt.Errorf("camera view_sensitivity must be positive, got %g", c.Camera.ViewSensitivity))
	}
	if c.Camera.FocalLength <= 0 || c.Camera.SensorWidth <= 0 {
		errs = append(errs, errors.New("camera focal_length and sensor_width must be positive"))
	}
	if c.Status.Period <= 0 {
		errs = append(errs, fmt.Errorf("status period must be positive, got %g", c.Status.Period))
	}
	return errors.Join(errs...)
}
