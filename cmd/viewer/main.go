// Package main is the entry point for the KerzenLicht viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"go.uber.org/zap"

	"github.com/kerzenlicht/viewer/internal/config"
	"github.com/kerzenlicht/viewer/internal/engine/debug"
	"github.com/kerzenlicht/viewer/internal/engine/glsl"
	"github.com/kerzenlicht/viewer/internal/engine/renderer"
	"github.com/kerzenlicht/viewer/internal/engine/texture"
	"github.com/kerzenlicht/viewer/internal/engine/window"
	"github.com/kerzenlicht/viewer/internal/engine/window/glfwwindow"
	"github.com/kerzenlicht/viewer/internal/engine/window/sdlwindow"
	"github.com/kerzenlicht/viewer/internal/logger"
	"github.com/kerzenlicht/viewer/internal/viewer"
)

func init() {
	// Window system and OpenGL calls must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== KerzenLicht Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

func run(ctx context.Context, cfg *config.Config) error {
	win, err := openWindow(cfg)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}

	if cfg.Window.Icon != "" {
		if icon, err := texture.Load(cfg.Window.Icon); err != nil {
			logger.Warn("failed to load window icon", zap.String("path", cfg.Window.Icon), zap.Error(err))
		} else {
			win.SetIcon(icon)
		}
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := win.FramebufferSize()
	r, err := renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ShaderPath: cfg.Shader.Path,
	})
	if err != nil {
		win.Close()
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	opts := viewer.Options{
		Camera:      cfg.Camera,
		Status:      cfg.Status,
		Screenshots: debug.NewScreenshotCapture(cfg.Screenshot.Dir, cfg.Screenshot.Prefix),
	}

	if cfg.Display.Image != "" {
		px, err := texture.Load(cfg.Display.Image)
		if err != nil {
			r.Close()
			win.Close()
			return fmt.Errorf("failed to load display image: %w", err)
		}
		opts.Source = texture.NewStatic(px)
	}

	if cfg.Shader.Watch && cfg.Shader.Path != "" {
		w, err := glsl.Watch(cfg.Shader.Path)
		if err != nil {
			// Hot reload is optional, R still recompiles.
			logger.Warn("shader watcher disabled", zap.Error(err))
		} else {
			opts.Watcher = w
		}
	}

	v := viewer.New(win, r, opts)
	defer v.Close()

	return v.Run(ctx)
}

func openWindow(cfg *config.Config) (window.Window, error) {
	wcfg := window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	}

	logger.Info("opening window", zap.String("backend", cfg.Window.Backend))

	switch cfg.Window.Backend {
	case config.BackendGLFW:
		w, err := glfwwindow.New(wcfg)
		if err != nil {
			return nil, err
		}
		return w, nil
	case config.BackendSDL:
		w, err := sdlwindow.New(wcfg)
		if err != nil {
			return nil, err
		}
		return w, nil
	default:
		return nil, fmt.Errorf("%w: %q", window.ErrUnknownBackend, cfg.Window.Backend)
	}
}
