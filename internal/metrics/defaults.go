package metrics

import "github.com/san-kum/partsim/internal/sim"

// Default returns a fresh set of the standard run metrics.
func Default(width, height float64) []sim.Metric {
	return []sim.Metric{
		NewWrapCount(),
		NewWrapRate(),
		NewMeanSpeed(),
		NewBoundsViolations(width, height),
		NewCentroidDrift(),
	}
}
