package render

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/san-kum/partsim/internal/render/shaders"
)

// Program is a linked vertex+fragment shader program.
type Program struct {
	ID uint32

	screenSize int32
	pointSize  int32
}

// NewProgram compiles both stages and links them. Compile and link
// failures return the driver's info log.
func NewProgram(vertexSrc, fragmentSrc string) (*Program, error) {
	vShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vShader)

	fShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vShader)
	gl.AttachShader(program, fShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return nil, fmt.Errorf("%w: %s", ErrProgramLink, trimLog(log))
	}

	gl.DetachShader(program, vShader)
	gl.DetachShader(program, fShader)

	return &Program{
		ID:         program,
		screenSize: gl.GetUniformLocation(program, gl.Str("screenSize\x00")),
		pointSize:  gl.GetUniformLocation(program, gl.Str("pointSize\x00")),
	}, nil
}

func compileShader(source string, kind uint32) (uint32, error) {
	shader := gl.CreateShader(kind)
	csources, free := gl.Strs(shaders.CString(source))
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s", ErrShaderCompile, trimLog(log))
	}
	return shader, nil
}

func trimLog(log string) string {
	return strings.TrimSpace(strings.TrimRight(log, "\x00"))
}

// Use binds the program and sets the per-frame uniforms. Uniforms the
// shader does not declare are skipped.
func (p *Program) Use(width, height, pointSize float32) {
	gl.UseProgram(p.ID)
	if p.screenSize >= 0 {
		gl.Uniform2f(p.screenSize, width, height)
	}
	if p.pointSize >= 0 {
		gl.Uniform1f(p.pointSize, pointSize)
	}
}

func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}
