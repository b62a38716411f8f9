package shader

import (
	"fmt"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/kerzenlicht/viewer/internal/engine/glsl"
	"github.com/kerzenlicht/viewer/internal/logger"
)

// Program is a linked display program built from a single-file source.
// An empty path selects the embedded default shader.
type Program struct {
	ID   uint32
	Name string
	path string

	uniforms map[string]int32
}

// NewProgram compiles the program at path. Must be called with a current GL context.
func NewProgram(name, path string) (*Program, error) {
	p := &Program{Name: name, path: path}
	if err := p.Recompile(); err != nil {
		return nil, err
	}
	return p, nil
}

// Path returns the source file, empty for the embedded shader.
func (p *Program) Path() string {
	return p.path
}

// Recompile re-reads the source and relinks. On failure the previously
// linked program stays active.
func (p *Program) Recompile() error {
	src, err := p.readSource()
	if err != nil {
		return err
	}

	stages, err := glsl.SplitSource(src)
	if err != nil {
		return fmt.Errorf("program %s: %w", p.Name, err)
	}

	id, err := CompileProgram(stages.Vertex, stages.Fragment)
	if err != nil {
		return fmt.Errorf("program %s: %w", p.Name, err)
	}

	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
	}
	p.ID = id
	p.uniforms = make(map[string]int32)

	logger.Debug("shader program compiled",
		zap.String("name", p.Name),
		zap.String("path", p.path),
		zap.Uint32("program", id),
	)
	return nil
}

func (p *Program) readSource() (string, error) {
	if p.path == "" {
		return glsl.DefaultDisplaySource(), nil
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		return "", fmt.Errorf("reading shader %s: %w", p.path, err)
	}
	return string(data), nil
}

// Use activates the program.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Delete releases the program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

// Uniform returns the cached location of name, -1 if it is inactive.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.ID, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

// SetBool sets a boolean uniform.
func (p *Program) SetBool(name string, value bool) {
	var v int32
	if value {
		v = 1
	}
	gl.Uniform1i(p.Uniform(name), v)
}

// SetInt sets an integer uniform.
func (p *Program) SetInt(name string, value int32) {
	gl.Uniform1i(p.Uniform(name), value)
}

// SetFloat sets a float uniform.
func (p *Program) SetFloat(name string, value float32) {
	gl.Uniform1f(p.Uniform(name), value)
}

// SetVec2 sets a vec2 uniform.
func (p *Program) SetVec2(name string, v mgl32.Vec2) {
	gl.Uniform2f(p.Uniform(name), v[0], v[1])
}

// SetVec3 sets a vec3 uniform.
func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3f(p.Uniform(name), v[0], v[1], v[2])
}

// SetMat4 sets a mat4 uniform.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.Uniform(name), 1, false, &m[0])
}
