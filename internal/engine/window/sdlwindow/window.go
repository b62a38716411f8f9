// Package sdlwindow implements window.Window on top of SDL2.
package sdlwindow

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/kerzenlicht/viewer/internal/engine/input"
	"github.com/kerzenlicht/viewer/internal/engine/texture"
	"github.com/kerzenlicht/viewer/internal/engine/window"
	"github.com/kerzenlicht/viewer/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Window wraps SDL2 window and OpenGL context.
type Window struct {
	config    window.Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext
	queue     *input.Queue
	log       *zap.Logger

	shouldClose bool
	cursorMode  window.CursorMode

	// SDL reports relative motion while the cursor is captured. The
	// accumulated position keeps cursor events continuous in both modes.
	cursorX, cursorY float64

	startCounter uint64
	frequency    float64
}

var _ window.Window = (*Window)(nil)

// New creates a new window with OpenGL context.
func New(cfg window.Config) (*Window, error) {
	w := &Window{
		config: cfg,
		queue:  input.NewQueue(),
		log:    logger.Named("sdl"),
	}

	w.log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// Set OpenGL attributes BEFORE creating window
	// We want OpenGL 4.1 Core Profile (max supported on macOS)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	if cfg.VSync {
		if err := sdl.GLSetSwapInterval(1); err != nil {
			w.log.Warn("failed to enable VSync", zap.Error(err))
		}
	} else {
		sdl.GLSetSwapInterval(0)
	}

	w.startCounter = sdl.GetPerformanceCounter()
	w.frequency = float64(sdl.GetPerformanceFrequency())

	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// PollEvents implements window.Window.
func (w *Window) PollEvents() []input.Event {
	w.queue.Reset()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			w.shouldClose = true
			w.queue.Push(input.Event{Type: input.EventClose})

		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_SIZE_CHANGED:
				// Framebuffer size in pixels, not window points.
				dw, dh := w.sdlWindow.GLGetDrawableSize()
				w.queue.Push(input.Event{Type: input.EventResize, Width: int(dw), Height: int(dh)})
			case sdl.WINDOWEVENT_CLOSE:
				w.shouldClose = true
				w.queue.Push(input.Event{Type: input.EventClose})
			}

		case *sdl.MouseMotionEvent:
			if w.cursorMode == window.CursorDisabled {
				w.cursorX += float64(e.XRel)
				w.cursorY += float64(e.YRel)
			} else {
				w.cursorX = float64(e.X)
				w.cursorY = float64(e.Y)
			}
			w.queue.Push(input.Event{Type: input.EventCursor, X: w.cursorX, Y: w.cursorY})

		case *sdl.MouseButtonEvent:
			action := input.Release
			if e.State == sdl.PRESSED {
				action = input.Press
			}
			w.queue.Push(input.Event{Type: input.EventMouseButton, Button: translateButton(e.Button), Action: action})

		case *sdl.MouseWheelEvent:
			x, y := float64(e.X), float64(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				x, y = -x, -y
			}
			w.queue.Push(input.Event{Type: input.EventScroll, X: x, Y: y})

		case *sdl.KeyboardEvent:
			action := input.Release
			if e.State == sdl.PRESSED {
				action = input.Press
				if e.Repeat != 0 {
					action = input.Repeat
				}
			}
			w.queue.Push(input.Event{Type: input.EventKey, Key: translateKey(e.Keysym.Sym), Action: action})
		}
	}

	return w.queue.Events()
}

// CursorPos implements window.Window.
func (w *Window) CursorPos() (float64, float64) {
	if w.cursorMode == window.CursorDisabled {
		return w.cursorX, w.cursorY
	}
	x, y, _ := sdl.GetMouseState()
	return float64(x), float64(y)
}

// SetCursorMode implements window.Window.
func (w *Window) SetCursorMode(mode window.CursorMode) {
	if mode == w.cursorMode {
		return
	}
	if mode == window.CursorDisabled {
		// Continue from the last absolute position.
		x, y, _ := sdl.GetMouseState()
		w.cursorX, w.cursorY = float64(x), float64(y)
	}
	w.cursorMode = mode
	sdl.SetRelativeMouseMode(mode == window.CursorDisabled)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}

// SetIcon implements window.Window.
func (w *Window) SetIcon(icon *texture.Pixels) {
	if icon == nil || len(icon.Pix) == 0 {
		return
	}
	surface, err := sdl.CreateRGBSurfaceWithFormatFrom(
		unsafe.Pointer(&icon.Pix[0]),
		int32(icon.Width),
		int32(icon.Height),
		32,
		int32(icon.Width*4),
		uint32(sdl.PIXELFORMAT_ABGR8888),
	)
	if err != nil {
		w.log.Warn("failed to create icon surface", zap.Error(err))
		return
	}
	defer surface.Free()

	// SDL copies the surface, the pixel slice only has to outlive this call.
	w.sdlWindow.SetIcon(surface)
	runtime.KeepAlive(icon.Pix)
}

// SwapBuffers swaps the OpenGL buffers.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// ShouldClose implements window.Window.
func (w *Window) ShouldClose() bool {
	return w.shouldClose
}

// SetShouldClose implements window.Window.
func (w *Window) SetShouldClose(v bool) {
	w.shouldClose = v
}

// FramebufferSize returns the drawable size, which differs from the window
// size on HiDPI displays.
func (w *Window) FramebufferSize() (int, int) {
	dw, dh := w.sdlWindow.GLGetDrawableSize()
	return int(dw), int(dh)
}

// Time implements window.Window.
func (w *Window) Time() float64 {
	return float64(sdl.GetPerformanceCounter()-w.startCounter) / w.frequency
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	w.log.Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
		w.glContext = nil
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
		w.sdlWindow = nil
	}

	sdl.Quit()
}
