package particle

import "math/rand"

// Spawn creates n particles spread uniformly over the domain. Each velocity
// component is drawn from [-maxSpeed/2, maxSpeed/2) and each colour channel
// from [0, 1).
func Spawn(n int, width, height, maxSpeed float32, rng *rand.Rand) Field {
	if n < 0 {
		n = 0
	}
	f := make(Field, n)
	for i := range f {
		f[i].Position = Vec2{
			X: rng.Float32()*width - width/2,
			Y: rng.Float32()*height - height/2,
		}
		f[i].Velocity = Vec2{
			X: (rng.Float32() - 0.5) * maxSpeed,
			Y: (rng.Float32() - 0.5) * maxSpeed,
		}
		f[i].Color = Vec3{rng.Float32(), rng.Float32(), rng.Float32()}
	}
	return f
}
