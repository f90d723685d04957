package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/partsim/internal/compute"
	"github.com/san-kum/partsim/internal/particle"
)

type Simulator struct {
	backend   compute.Backend
	metrics   []Metric
	observers []Observer
}

func New(backend compute.Backend) *Simulator {
	if backend == nil {
		backend = compute.NewSerialBackend()
	}
	return &Simulator{
		backend:   backend,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run advances f in place with a fixed step for cfg.Duration seconds.
func (s *Simulator) Run(ctx context.Context, f particle.Field, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	every := cfg.SampleEvery
	if every <= 0 {
		every = 1
	}

	result := &Result{
		Field:   f,
		Samples: make([]Sample, 0, steps/every+2),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	dt := float32(cfg.Dt)
	w, h := float32(cfg.Width), float32(cfg.Height)
	t := 0.0
	interval := 0

	result.Samples = append(result.Samples, sample(f, t, 0))

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		wraps := s.backend.Integrate(f, dt, w, h)
		t += cfg.Dt
		result.StepsTaken++
		result.TotalWraps += wraps
		interval += wraps

		for _, m := range s.metrics {
			m.Observe(f, wraps, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(f, t)
		}

		if cfg.ValidateBounds {
			if idx := firstOutOfBounds(f, w, h); idx >= 0 {
				err := SimError{Time: t, Step: i, Message: fmt.Sprintf("particle %d left the domain", idx)}
				result.Errors = append(result.Errors, err)
				result.Samples = append(result.Samples, sample(f, t, interval))
				break
			}
		}

		if (i+1)%every == 0 || i == steps-1 {
			result.Samples = append(result.Samples, sample(f, t, interval))
			interval = 0
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, cfg.Duration)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: domain must be positive, got %gx%g", ErrInvalidConfig, cfg.Width, cfg.Height)
	}
	return nil
}

// RunWithCallback steps until the duration elapses or callback returns
// false. The callback sees the field before each step.
func (s *Simulator) RunWithCallback(ctx context.Context, f particle.Field, cfg Config, callback func(particle.Field, float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	dt := float32(cfg.Dt)
	w, h := float32(cfg.Width), float32(cfg.Height)
	t := 0.0

	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(f, t) {
			return nil
		}

		s.backend.Integrate(f, dt, w, h)
		t += cfg.Dt

		if cfg.ValidateBounds {
			if idx := firstOutOfBounds(f, w, h); idx >= 0 {
				return fmt.Errorf("%w: particle %d at t=%.4f", ErrOutOfBounds, idx, t)
			}
		}
	}

	return nil
}

func sample(f particle.Field, t float64, wraps int) Sample {
	return Sample{
		Time:      t,
		Centroid:  f.Centroid(),
		MeanSpeed: float64(f.MeanSpeed()),
		Wraps:     wraps,
	}
}

func firstOutOfBounds(f particle.Field, w, h float32) int {
	for i := range f {
		if !particle.InBounds(f[i], w, h) {
			return i
		}
	}
	return -1
}
