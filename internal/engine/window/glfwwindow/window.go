// Package glfwwindow implements window.Window on top of GLFW 3.3.
package glfwwindow

import (
	"fmt"
	"image"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"github.com/kerzenlicht/viewer/internal/engine/input"
	"github.com/kerzenlicht/viewer/internal/engine/texture"
	"github.com/kerzenlicht/viewer/internal/engine/window"
	"github.com/kerzenlicht/viewer/internal/logger"
)

func init() {
	// GLFW calls must be made from the main thread
	runtime.LockOSThread()
}

// Window wraps a GLFW window and its OpenGL context.
type Window struct {
	config window.Config
	glw    *glfw.Window
	queue  *input.Queue
	log    *zap.Logger
}

var _ window.Window = (*Window)(nil)

// New initializes GLFW, creates the window and makes its context current.
func New(cfg window.Config) (*Window, error) {
	log := logger.Named("glfw")

	log.Info("initializing GLFW")
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init failed: %w", err)
	}

	// OpenGL 4.1 Core Profile (max supported on macOS)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)

	var monitor *glfw.Monitor
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	glw, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, monitor, nil)
	if err != nil {
		log.Error("failed to create window", zap.Error(err))
		glfw.Terminate()
		return nil, fmt.Errorf("glfw create window failed: %w", err)
	}

	glw.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &Window{
		config: cfg,
		glw:    glw,
		queue:  input.NewQueue(),
		log:    log,
	}
	w.registerCallbacks()

	log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

func (w *Window) registerCallbacks() {
	q := w.queue

	w.glw.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		q.Push(input.Event{Type: input.EventResize, Width: width, Height: height})
	})
	w.glw.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		q.Push(input.Event{Type: input.EventCursor, X: x, Y: y})
	})
	w.glw.SetMouseButtonCallback(func(_ *glfw.Window, b glfw.MouseButton, a glfw.Action, _ glfw.ModifierKey) {
		q.Push(input.Event{Type: input.EventMouseButton, Button: translateButton(b), Action: translateAction(a)})
	})
	w.glw.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		q.Push(input.Event{Type: input.EventScroll, X: xoff, Y: yoff})
	})
	w.glw.SetKeyCallback(func(_ *glfw.Window, k glfw.Key, _ int, a glfw.Action, _ glfw.ModifierKey) {
		q.Push(input.Event{Type: input.EventKey, Key: translateKey(k), Action: translateAction(a)})
	})
	w.glw.SetCloseCallback(func(_ *glfw.Window) {
		q.Push(input.Event{Type: input.EventClose})
	})
}

// PollEvents implements window.Window.
func (w *Window) PollEvents() []input.Event {
	w.queue.Reset()
	glfw.PollEvents()
	return w.queue.Events()
}

// CursorPos implements window.Window.
func (w *Window) CursorPos() (float64, float64) {
	return w.glw.GetCursorPos()
}

// SetCursorMode implements window.Window.
func (w *Window) SetCursorMode(mode window.CursorMode) {
	switch mode {
	case window.CursorDisabled:
		w.glw.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	default:
		w.glw.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

// SetTitle implements window.Window.
func (w *Window) SetTitle(title string) {
	w.glw.SetTitle(title)
}

// SetIcon implements window.Window. A nil icon restores the default.
func (w *Window) SetIcon(icon *texture.Pixels) {
	if icon == nil {
		w.glw.SetIcon(nil)
		return
	}
	w.glw.SetIcon([]image.Image{icon.Image()})
}

// SwapBuffers implements window.Window.
func (w *Window) SwapBuffers() {
	w.glw.SwapBuffers()
}

// ShouldClose implements window.Window.
func (w *Window) ShouldClose() bool {
	return w.glw.ShouldClose()
}

// SetShouldClose implements window.Window.
func (w *Window) SetShouldClose(v bool) {
	w.glw.SetShouldClose(v)
}

// FramebufferSize implements window.Window.
func (w *Window) FramebufferSize() (int, int) {
	return w.glw.GetFramebufferSize()
}

// Time implements window.Window.
func (w *Window) Time() float64 {
	return glfw.GetTime()
}

// Close destroys the window and terminates GLFW.
func (w *Window) Close() {
	w.log.Info("closing window")
	if w.glw != nil {
		w.glw.Destroy()
		w.glw = nil
	}
	glfw.Terminate()
}
