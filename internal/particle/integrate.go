package particle

// Wrap applies the wraparound rule to one coordinate. A coordinate past
// +extent/2 moves to -extent/2 and one past -extent/2 moves to +extent/2.
// Values on the boundary itself stay put.
func Wrap(v, extent float32) float32 {
	half := extent / 2
	if v > half {
		return -half
	}
	if v < -half {
		return half
	}
	return v
}

// Update advances every particle by velocity*dt and wraps it back into the
// domain. A particle that travels more than one domain width in a single
// step still wraps only once per axis.
func Update(ps []Particle, dt, width, height float32) {
	UpdateCount(ps, dt, width, height)
}

// UpdateCount is Update that also reports how many axis wraps happened.
func UpdateCount(ps []Particle, dt, width, height float32) int {
	wraps := 0
	for i := range ps {
		p := &ps[i]
		x := p.Position.X + p.Velocity.X*dt
		y := p.Position.Y + p.Velocity.Y*dt

		p.Position.X = Wrap(x, width)
		if p.Position.X != x {
			wraps++
		}
		p.Position.Y = Wrap(y, height)
		if p.Position.Y != y {
			wraps++
		}
	}
	return wraps
}

func InBounds(p Particle, width, height float32) bool {
	hw, hh := width/2, height/2
	return p.Position.X >= -hw && p.Position.X <= hw &&
		p.Position.Y >= -hh && p.Position.Y <= hh
}
