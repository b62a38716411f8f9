// Package viewer implements the interactive render loop and input router.
package viewer

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/kerzenlicht/viewer/internal/config"
	"github.com/kerzenlicht/viewer/internal/engine/camera"
	"github.com/kerzenlicht/viewer/internal/engine/input"
	"github.com/kerzenlicht/viewer/internal/engine/texture"
	"github.com/kerzenlicht/viewer/internal/engine/window"
	"github.com/kerzenlicht/viewer/internal/logger"
)

// Renderer draws a frame for the viewer.
type Renderer interface {
	Resize(width, height int)
	UpdateDisplay(px *texture.Pixels)
	Draw(cam camera.Uniforms, runTime float64, frame int)
	Recompile() error
	ReadPixels() *texture.Pixels
	Close()
}

// ScreenshotWriter stores a read-back frame and returns where it went.
type ScreenshotWriter interface {
	Save(px *texture.Pixels) (string, error)
}

// ShaderWatcher reports changes to the shader source file.
type ShaderWatcher interface {
	Changes() <-chan string
	Close() error
}

// Options configures a Viewer.
type Options struct {
	Camera config.CameraConfig
	Status config.StatusConfig

	// Source supplies display frames. Optional.
	Source texture.Source
	// Watcher triggers a recompile when the shader file changes. Optional.
	Watcher ShaderWatcher
	// Screenshots receives frames captured with F12. Optional.
	Screenshots ScreenshotWriter
}

// Viewer owns the camera and drives the frame loop for one window.
type Viewer struct {
	win      window.Window
	renderer Renderer
	source   texture.Source
	watcher  ShaderWatcher
	changes  <-chan string
	shots    ScreenshotWriter
	log      *zap.Logger

	camera   *camera.Camera
	uniforms camera.Uniforms
	dirty    bool

	keys       input.State
	lastMouseX float64
	lastMouseY float64

	moveSensitivity float64
	viewSensitivity float64

	timer        *FrameTimer
	statusPrefix string
	width        int
	height       int
	frame        int

	screenshotPending bool
	closed            bool
}

// New creates a viewer for an open window and an initialized renderer.
func New(win window.Window, r Renderer, opts Options) *Viewer {
	cam := camera.New()
	cam.SetPosition(mgl64.Vec3(opts.Camera.Position))
	cam.SetRotation(opts.Camera.Yaw, opts.Camera.Pitch)
	if opts.Camera.FocalLength > 0 {
		cam.FocalLength = opts.Camera.FocalLength
	}
	if opts.Camera.SensorWidth > 0 {
		cam.SensorWidth = opts.Camera.SensorWidth
	}

	v := &Viewer{
		win:             win,
		renderer:        r,
		source:          opts.Source,
		watcher:         opts.Watcher,
		shots:           opts.Screenshots,
		log:             logger.Named("viewer"),
		camera:          cam,
		moveSensitivity: opts.Camera.MoveSensitivity,
		viewSensitivity: opts.Camera.ViewSensitivity,
		timer:           NewFrameTimer(opts.Status.Period),
		statusPrefix:    opts.Status.Prefix,
	}
	if opts.Watcher != nil {
		v.changes = opts.Watcher.Changes()
	}
	v.uniforms = cam.Compile()
	v.width, v.height = win.FramebufferSize()
	r.Resize(v.width, v.height)

	return v
}

// Camera returns the viewer's camera.
func (v *Viewer) Camera() *camera.Camera {
	return v.camera
}

// Timer returns the frame timer.
func (v *Viewer) Timer() *FrameTimer {
	return v.timer
}

// MoveSensitivity returns the current movement speed.
func (v *Viewer) MoveSensitivity() float64 {
	return v.moveSensitivity
}

// Frame returns the progressive frame counter.
func (v *Viewer) Frame() int {
	return v.frame
}

// Run drives the frame loop until the window is asked to close or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	v.timer.Reset(v.win.Time())

	v.log.Info("starting render loop",
		zap.Int("width", v.width),
		zap.Int("height", v.height),
	)

	for !v.win.ShouldClose() {
		if err := ctx.Err(); err != nil {
			v.log.Info("render loop cancelled", zap.Error(err))
			v.win.SetShouldClose(true)
			break
		}
		v.Step()
	}

	v.log.Info("render loop finished", zap.Float64("run_time", v.timer.RunTime))
	return nil
}

// Step runs a single iteration: poll, update, time, draw, status, present.
func (v *Viewer) Step() {
	// 1. Poll
	for _, e := range v.win.PollEvents() {
		v.dispatch(e)
	}
	v.drainShaderChanges()

	// 2. Update
	v.update()

	// 3. Time
	v.timer.Tick(v.win.Time())

	// 4. Draw
	if v.source != nil {
		if px, ok := v.source.Next(); ok {
			v.renderer.UpdateDisplay(px)
		}
	}
	v.renderer.Draw(v.uniforms, v.timer.RunTime, v.frame)
	v.frame++
	if v.screenshotPending {
		v.screenshotPending = false
		v.saveScreenshot()
	}

	// 5. Status
	if v.timer.StatusDue() {
		v.win.SetTitle(v.title())
	}

	// 6. Present
	v.win.SwapBuffers()
}

func (v *Viewer) title() string {
	return fmt.Sprintf("%s | %.1f Fps", v.statusPrefix, v.timer.FPS())
}

// update applies held movement keys and recompiles the camera if it changed.
func (v *Viewer) update() {
	var dx, dy, dz float64
	if v.keys.Key(input.KeyD) {
		dx++
	}
	if v.keys.Key(input.KeyA) {
		dx--
	}
	if v.keys.Any(input.KeyE, input.KeySpace) {
		dy++
	}
	if v.keys.Any(input.KeyQ, input.KeyLeftControl) {
		dy--
	}
	if v.keys.Key(input.KeyW) {
		dz++
	}
	if v.keys.Key(input.KeyS) {
		dz--
	}
	if dx != 0 || dy != 0 || dz != 0 {
		v.camera.Move(dx, dy, dz, v.moveSensitivity)
		v.dirty = true
	}

	if v.dirty {
		v.uniforms = v.camera.Compile()
		v.frame = 0
		v.dirty = false
	}
}

func (v *Viewer) drainShaderChanges() {
	if v.changes == nil {
		return
	}
	for {
		select {
		case path, ok := <-v.changes:
			if !ok {
				v.changes = nil
				return
			}
			v.log.Info("shader source changed", zap.String("path", path))
			v.recompile()
		default:
			return
		}
	}
}

func (v *Viewer) saveScreenshot() {
	if v.shots == nil {
		return
	}
	path, err := v.shots.Save(v.renderer.ReadPixels())
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// recompile rebuilds the display program and restarts the shader clock.
// A failed build keeps the previous program.
func (v *Viewer) recompile() {
	v.timer.RunTime = v.win.Time()
	v.frame = 0
	if err := v.renderer.Recompile(); err != nil {
		v.log.Error("shader recompile failed", zap.Error(err))
		return
	}
	v.log.Info("shader recompiled")
}

// Close shuts down the renderer, the shader watcher and the window. Safe to
// call more than once.
func (v *Viewer) Close() {
	if v.closed {
		return
	}
	v.closed = true
	v.log.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.watcher != nil {
		if err := v.watcher.Close(); err != nil {
			v.log.Warn("failed to close shader watcher", zap.Error(err))
		}
	}
	if v.win != nil {
		v.win.Close()
	}
}
