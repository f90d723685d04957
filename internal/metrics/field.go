package metrics

import (
	"math"

	"github.com/san-kum/partsim/internal/particle"
)

// MeanSpeed is the time average of the field's mean particle speed. It
// stays constant unless something alters velocities.
type MeanSpeed struct {
	name    string
	sum     float64
	samples int
}

func NewMeanSpeed() *MeanSpeed {
	return &MeanSpeed{name: "mean_speed"}
}

func (m *MeanSpeed) Name() string { return m.name }

func (m *MeanSpeed) Observe(f particle.Field, wraps int, t float64) {
	m.sum += float64(f.MeanSpeed())
	m.samples++
}

func (m *MeanSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanSpeed) Reset() {
	m.sum = 0
	m.samples = 0
}

// BoundsViolations counts particles found outside the domain after a
// step. Anything other than zero means the integrator is broken.
type BoundsViolations struct {
	name          string
	width, height float32
	violations    int
}

func NewBoundsViolations(width, height float64) *BoundsViolations {
	return &BoundsViolations{name: "bounds_violations", width: float32(width), height: float32(height)}
}

func (b *BoundsViolations) Name() string { return b.name }

func (b *BoundsViolations) Observe(f particle.Field, wraps int, t float64) {
	for i := range f {
		if !particle.InBounds(f[i], b.width, b.height) {
			b.violations++
		}
	}
}

func (b *BoundsViolations) Value() float64 { return float64(b.violations) }
func (b *BoundsViolations) Reset()         { b.violations = 0 }

// CentroidDrift is the largest distance of the field centroid from the
// domain centre seen during a run.
type CentroidDrift struct {
	name     string
	maxDrift float64
}

func NewCentroidDrift() *CentroidDrift {
	return &CentroidDrift{name: "centroid_drift"}
}

func (c *CentroidDrift) Name() string { return c.name }

func (c *CentroidDrift) Observe(f particle.Field, wraps int, t float64) {
	ctr := f.Centroid()
	c.maxDrift = math.Max(c.maxDrift, float64(ctr.Len()))
}

func (c *CentroidDrift) Value() float64 { return c.maxDrift }
func (c *CentroidDrift) Reset()         { c.maxDrift = 0 }
