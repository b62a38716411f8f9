package viewer

import (
	"go.uber.org/zap"

	"github.com/kerzenlicht/viewer/internal/engine/input"
	"github.com/kerzenlicht/viewer/internal/engine/window"
)

// ScrollGain scales the movement speed per scroll step.
const ScrollGain = 1.1

// DragButton rotates the camera while held.
const DragButton = input.ButtonRight

func (v *Viewer) dispatch(e input.Event) {
	switch e.Type {
	case input.EventResize:
		v.onResize(e.Width, e.Height)
	case input.EventCursor:
		v.onCursor(e.X, e.Y)
	case input.EventMouseButton:
		v.onButton(e.Button, e.Action)
	case input.EventScroll:
		v.onScroll(e.Y)
	case input.EventKey:
		v.onKey(e.Key, e.Action)
	case input.EventClose:
		v.log.Debug("close requested")
		v.win.SetShouldClose(true)
	}
}

func (v *Viewer) onResize(width, height int) {
	v.width, v.height = width, height
	v.renderer.Resize(width, height)
	v.timer.RunTime = v.win.Time()
	v.frame = 0
	v.log.Debug("framebuffer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

func (v *Viewer) onCursor(x, y float64) {
	if !v.keys.Button(DragButton) {
		return
	}
	dx := x - v.lastMouseX
	dy := y - v.lastMouseY
	v.lastMouseX, v.lastMouseY = x, y

	// Screen y grows downwards, pitch grows upwards.
	v.camera.Rotate(dx*v.viewSensitivity, -dy*v.viewSensitivity)
	v.dirty = true
}

func (v *Viewer) onButton(b input.Button, action input.Action) {
	v.keys.Apply(input.Event{Type: input.EventMouseButton, Button: b, Action: action})
	if b != DragButton || action == input.Repeat {
		return
	}

	v.lastMouseX, v.lastMouseY = v.win.CursorPos()
	if action == input.Press {
		v.win.SetCursorMode(window.CursorDisabled)
	} else {
		v.win.SetCursorMode(window.CursorNormal)
	}
}

func (v *Viewer) onScroll(y float64) {
	switch {
	case y > 0:
		v.moveSensitivity *= ScrollGain
	case y < 0:
		v.moveSensitivity /= ScrollGain
	default:
		return
	}
	v.log.Debug("move sensitivity changed", zap.Float64("sensitivity", v.moveSensitivity))
}

func (v *Viewer) onKey(k input.Key, action input.Action) {
	if action == input.Press {
		switch k {
		case input.KeyR:
			v.recompile()
		case input.KeyEscape:
			v.win.SetShouldClose(true)
		case input.KeyF12:
			v.screenshotPending = true
		}
	}
	v.keys.Apply(input.Event{Type: input.EventKey, Key: k, Action: action})
}
