// Package window declares the backend-independent window used by the viewer.
//
// Concrete backends live in sub-packages (glfwwindow, sdlwindow) so that
// code depending only on the interface does not link a windowing library.
package window

import (
	"errors"

	"github.com/kerzenlicht/viewer/internal/engine/input"
	"github.com/kerzenlicht/viewer/internal/engine/texture"
)

// ErrUnknownBackend is returned when a configured backend name has no implementation.
var ErrUnknownBackend = errors.New("unknown window backend")

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// CursorMode selects how the pointer behaves inside the window.
type CursorMode int

const (
	// CursorNormal shows the pointer and lets it leave the window.
	CursorNormal CursorMode = iota
	// CursorDisabled hides and captures the pointer for unbounded motion.
	CursorDisabled
)

func (m CursorMode) String() string {
	switch m {
	case CursorNormal:
		return "normal"
	case CursorDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// Window is an OpenGL-capable window with a current context.
// All methods must be called from the thread that created the window.
type Window interface {
	// PollEvents processes pending window-system events and returns them
	// translated. The slice is only valid until the next call.
	PollEvents() []input.Event

	// CursorPos returns the cursor position in window coordinates.
	CursorPos() (x, y float64)
	SetCursorMode(mode CursorMode)

	SetTitle(title string)
	SetIcon(icon *texture.Pixels)

	SwapBuffers()

	ShouldClose() bool
	SetShouldClose(v bool)

	// FramebufferSize returns the drawable size in pixels.
	FramebufferSize() (width, height int)

	// Time returns seconds since the backend was initialized.
	Time() float64

	Close()
}
