package particle

import "unsafe"

// GPU vertex layout of one particle record: [px py vx vy r g b].
// The shader reads position and colour; velocity is skipped by the stride.
const (
	FloatsPerParticle = 7
	Stride            = FloatsPerParticle * 4
	PositionOffset    = 0
	VelocityOffset    = 2 * 4
	ColorOffset       = 4 * 4
	PositionSize      = 2
	ColorSize         = 3
)

// Particle must match the packed layout byte for byte.
var _ [Stride - int(unsafe.Sizeof(Particle{}))]struct{}
var _ [int(unsafe.Sizeof(Particle{})) - Stride]struct{}

// Pack flattens f into dst, growing it when needed, and returns the slice.
func Pack(f Field, dst []float32) []float32 {
	n := len(f) * FloatsPerParticle
	if cap(dst) < n {
		dst = make([]float32, n)
	}
	dst = dst[:n]
	for i := range f {
		o := i * FloatsPerParticle
		p := &f[i]
		dst[o] = p.Position.X
		dst[o+1] = p.Position.Y
		dst[o+2] = p.Velocity.X
		dst[o+3] = p.Velocity.Y
		dst[o+4] = p.Color.X
		dst[o+5] = p.Color.Y
		dst[o+6] = p.Color.Z
	}
	return dst
}

// Unpack is the inverse of Pack. Trailing floats that do not form a whole
// record are ignored.
func Unpack(data []float32) Field {
	f := make(Field, len(data)/FloatsPerParticle)
	for i := range f {
		o := i * FloatsPerParticle
		f[i] = Particle{
			Position: Vec2{data[o], data[o+1]},
			Velocity: Vec2{data[o+2], data[o+3]},
			Color:    Vec3{data[o+4], data[o+5], data[o+6]},
		}
	}
	return f
}
