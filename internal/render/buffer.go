package render

import (
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/san-kum/partsim/internal/particle"
)

// ParticleBuffer is the VAO/VBO pair holding a packed particle field.
// Attribute 0 is the position, attribute 1 the colour; velocity sits in
// the stride gap and is never read by the shader.
type ParticleBuffer struct {
	VAO   uint32
	VBO   uint32
	Count int32

	scratch []float32
}

func NewParticleBuffer(field particle.Field) *ParticleBuffer {
	b := &ParticleBuffer{Count: int32(len(field))}
	b.scratch = particle.Pack(field, nil)

	gl.GenVertexArrays(1, &b.VAO)
	gl.GenBuffers(1, &b.VBO)

	gl.BindVertexArray(b.VAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(b.scratch)*4, glPtr(b.scratch), gl.DYNAMIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, particle.PositionSize, gl.FLOAT, false, particle.Stride, particle.PositionOffset)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, particle.ColorSize, gl.FLOAT, false, particle.Stride, particle.ColorOffset)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return b
}

// Upload re-sends the whole field.
func (b *ParticleBuffer) Upload(field particle.Field) {
	b.scratch = particle.Pack(field, b.scratch)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.VBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(b.scratch)*4, glPtr(b.scratch))
}

func (b *ParticleBuffer) Draw() {
	gl.BindVertexArray(b.VAO)
	gl.DrawArrays(gl.POINTS, 0, b.Count)
}

// Delete frees the VBO and then the VAO.
func (b *ParticleBuffer) Delete() {
	if b.VBO != 0 {
		gl.DeleteBuffers(1, &b.VBO)
		b.VBO = 0
	}
	if b.VAO != 0 {
		gl.DeleteVertexArrays(1, &b.VAO)
		b.VAO = 0
	}
}

func glPtr(data []float32) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return gl.Ptr(data)
}
