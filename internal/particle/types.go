package particle

import "math"

type Vec2 struct {
	X, Y float32
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Len() float32         { return float32(math.Hypot(float64(v.X), float64(v.Y))) }

// Vec3 is an RGB colour with components in [0,1].
type Vec3 struct {
	X, Y, Z float32
}

type Particle struct {
	Position Vec2
	Velocity Vec2
	Color    Vec3
}

// Field is created once with Spawn and never resized.
type Field []Particle

func (f Field) Clone() Field {
	c := make(Field, len(f))
	copy(c, f)
	return c
}

func (f Field) Centroid() Vec2 {
	if len(f) == 0 {
		return Vec2{}
	}
	var sx, sy float64
	for i := range f {
		sx += float64(f[i].Position.X)
		sy += float64(f[i].Position.Y)
	}
	n := float64(len(f))
	return Vec2{float32(sx / n), float32(sy / n)}
}

func (f Field) MeanSpeed() float32 {
	if len(f) == 0 {
		return 0
	}
	var sum float64
	for i := range f {
		sum += float64(f[i].Velocity.Len())
	}
	return float32(sum / float64(len(f)))
}
