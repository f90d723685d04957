package sim

import (
	"context"
	"math/rand"
	"sync"

	"github.com/san-kum/partsim/internal/compute"
	"github.com/san-kum/partsim/internal/particle"
)

// Ensemble runs independent fields spawned from consecutive seeds.
type Ensemble struct {
	numRuns   int
	seedStart int64
	spawn     func(rng *rand.Rand) particle.Field
	metrics   func() []Metric
}

// NewEnsemble builds an ensemble. metrics is called once per run so runs
// never share metric state; it may be nil.
func NewEnsemble(numRuns int, seedStart int64, spawn func(*rand.Rand) particle.Field, metrics func() []Metric) *Ensemble {
	return &Ensemble{numRuns: numRuns, seedStart: seedStart, spawn: spawn, metrics: metrics}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			rng := rand.New(rand.NewSource(e.seedStart + int64(idx)))
			field := e.spawn(rng)

			s := New(compute.NewSerialBackend())
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, field, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
