package metrics

import "github.com/san-kum/partsim/internal/particle"

// WrapCount totals the axis wraps over a run.
type WrapCount struct {
	name  string
	total int
}

func NewWrapCount() *WrapCount {
	return &WrapCount{name: "wraps"}
}

func (w *WrapCount) Name() string { return w.name }

func (w *WrapCount) Observe(f particle.Field, wraps int, t float64) {
	w.total += wraps
}

func (w *WrapCount) Value() float64 { return float64(w.total) }
func (w *WrapCount) Reset()         { w.total = 0 }

// WrapRate is wraps per particle per second.
type WrapRate struct {
	name      string
	total     int
	particles int
	elapsed   float64
}

func NewWrapRate() *WrapRate {
	return &WrapRate{name: "wrap_rate"}
}

func (w *WrapRate) Name() string { return w.name }

func (w *WrapRate) Observe(f particle.Field, wraps int, t float64) {
	w.total += wraps
	w.particles = len(f)
	w.elapsed = t
}

func (w *WrapRate) Value() float64 {
	if w.particles == 0 || w.elapsed <= 0 {
		return 0
	}
	return float64(w.total) / float64(w.particles) / w.elapsed
}

func (w *WrapRate) Reset() {
	w.total = 0
	w.particles = 0
	w.elapsed = 0
}
