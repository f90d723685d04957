package sim

import (
	"fmt"

	"github.com/san-kum/partsim/internal/particle"
)

// Metric accumulates a scalar over a run. wraps is the number of axis
// wraps the step just performed.
type Metric interface {
	Name() string
	Observe(f particle.Field, wraps int, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(f particle.Field, t float64)
}

type Config struct {
	Dt             float64
	Duration       float64
	Width          float64
	Height         float64
	SampleEvery    int
	ValidateBounds bool
}

// Sample is a point on the recorded time series of a run. Wraps counts
// every wrap since the previous sample.
type Sample struct {
	Time      float64
	Centroid  particle.Vec2
	MeanSpeed float64
	Wraps     int
}

type Result struct {
	// Field is the field the run advanced; it holds the final state.
	Field      particle.Field
	Samples    []Sample
	Metrics    map[string]float64
	Errors     []error
	StepsTaken int
	TotalWraps int
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("t=%.4f step=%d: %s", e.Time, e.Step, e.Message)
}
