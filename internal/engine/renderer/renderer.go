// Package renderer draws the full-screen display quad.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/kerzenlicht/viewer/internal/engine/camera"
	"github.com/kerzenlicht/viewer/internal/engine/shader"
	"github.com/kerzenlicht/viewer/internal/engine/texture"
	"github.com/kerzenlicht/viewer/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ShaderPath string // empty uses the embedded display shader
}

// Renderer owns the display program, the quad geometry and the display texture.
type Renderer struct {
	config Config
	log    *zap.Logger

	program *shader.Program

	quadVAO uint32
	quadVBO uint32
	quadEBO uint32

	displayTex    uint32
	hasDisplay    bool
	displayWidth  int
	displayHeight int
}

// Quad vertices: position (x, y) + texture coordinate (u, v).
var quadVertices = []float32{
	-1, -1, 0, 0,
	1, -1, 1, 0,
	1, 1, 1, 1,
	-1, 1, 0, 1,
}

var quadIndices = []uint32{
	0, 1, 2,
	2, 3, 0,
}

// New creates a renderer.
// Must be called after the window has made its GL context current.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Disable(gl.DEPTH_TEST)
	gl.ClearColor(0, 0, 0, 1)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.NewProgram("Raw Image", cfg.ShaderPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create display program: %w", err)
	}

	r.createQuad()
	r.createDisplayTexture()

	return r, nil
}

// Close releases GL resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &r.quadVAO)
		r.quadVAO = 0
	}
	if r.quadVBO != 0 {
		gl.DeleteBuffers(1, &r.quadVBO)
		r.quadVBO = 0
	}
	if r.quadEBO != 0 {
		gl.DeleteBuffers(1, &r.quadEBO)
		r.quadEBO = 0
	}
	if r.displayTex != 0 {
		gl.DeleteTextures(1, &r.displayTex)
		r.displayTex = 0
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize updates the viewport to the new framebuffer size.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("viewport resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Recompile rebuilds the display program from its source.
func (r *Renderer) Recompile() error {
	return r.program.Recompile()
}

// UpdateDisplay uploads a new frame into the display texture.
func (r *Renderer) UpdateDisplay(px *texture.Pixels) {
	if px == nil || px.Width == 0 || px.Height == 0 {
		return
	}
	flipped := px.FlipVertical()

	gl.BindTexture(gl.TEXTURE_2D, r.displayTex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	if px.Width == r.displayWidth && px.Height == r.displayHeight {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(px.Width), int32(px.Height),
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(flipped.Pix))
	} else {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(px.Width), int32(px.Height), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(flipped.Pix))
		r.displayWidth = px.Width
		r.displayHeight = px.Height
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	r.hasDisplay = true
}

// Draw clears the target, uploads the frame uniforms and draws the quad.
func (r *Renderer) Draw(cam camera.Uniforms, runTime float64, frame int) {
	gl.Clear(gl.COLOR_BUFFER_BIT)

	p := r.program
	p.Use()
	p.SetMat4("uView", cam.View)
	p.SetVec3("uCameraPos", cam.Position)
	p.SetVec3("uCameraX", cam.XVector)
	p.SetVec3("uCameraY", cam.YVector)
	p.SetVec3("uCameraZ", cam.ZVector)
	p.SetFloat("uFocalLength", cam.FocalLength)
	p.SetFloat("uSensorWidth", cam.SensorWidth)
	p.SetVec2("iResolution", mgl32.Vec2{float32(r.config.Width), float32(r.config.Height)})
	p.SetFloat("iTime", float32(runTime))
	p.SetInt("iFrame", int32(frame))
	p.SetBool("uHasDisplay", r.hasDisplay)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.displayTex)
	p.SetInt("uDisplay", 0)

	gl.BindVertexArray(r.quadVAO)
	gl.DrawElements(gl.TRIANGLES, int32(len(quadIndices)), gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// ReadPixels reads the back buffer, rows bottom to top.
func (r *Renderer) ReadPixels() *texture.Pixels {
	w, h := r.config.Width, r.config.Height
	px := &texture.Pixels{Width: w, Height: h, Pix: make([]byte, w*h*4)}
	if len(px.Pix) == 0 {
		return px
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(px.Pix))
	return px
}

// createQuad uploads the two-triangle full-screen quad.
func (r *Renderer) createQuad() {
	gl.GenVertexArrays(1, &r.quadVAO)
	gl.BindVertexArray(r.quadVAO)

	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, unsafe.Pointer(&quadVertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &r.quadEBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.quadEBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(quadIndices)*4, unsafe.Pointer(&quadIndices[0]), gl.STATIC_DRAW)

	// Position (location = 0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, nil)
	gl.EnableVertexAttribArray(0)

	// Texture coordinate (location = 1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, unsafe.Pointer(uintptr(2*4)))
	gl.EnableVertexAttribArray(1)

	// The element buffer binding is VAO state, unbind the VAO first.
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	r.log.Debug("display quad created",
		zap.Uint32("vao", r.quadVAO),
		zap.Uint32("vbo", r.quadVBO),
		zap.Uint32("ebo", r.quadEBO),
	)
}

func (r *Renderer) createDisplayTexture() {
	gl.GenTextures(1, &r.displayTex)
	gl.BindTexture(gl.TEXTURE_2D, r.displayTex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}
