package compute

import (
	"runtime"
	"sync"

	"github.com/san-kum/partsim/internal/particle"
)

// ParallelThreshold is the field size below which CPUBackend stays serial.
const ParallelThreshold = 256

type CPUBackend struct {
	workers   int
	threshold int
}

func NewCPUBackend() *CPUBackend {
	return &CPUBackend{
		workers:   runtime.NumCPU(),
		threshold: ParallelThreshold,
	}
}

// NewSerialBackend returns a backend that never spawns goroutines.
func NewSerialBackend() *CPUBackend {
	return &CPUBackend{workers: 1, threshold: ParallelThreshold}
}

// WithWorkers overrides the worker count. Values below 1 mean one worker.
func (c *CPUBackend) WithWorkers(n int) *CPUBackend {
	if n < 1 {
		n = 1
	}
	c.workers = n
	return c
}

func (c *CPUBackend) Name() string {
	if c.workers <= 1 {
		return "serial"
	}
	return "cpu"
}

func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Cleanup()        {}

func (c *CPUBackend) Integrate(ps []particle.Particle, dt, width, height float32) int {
	n := len(ps)
	if c.workers <= 1 || n < c.threshold {
		return particle.UpdateCount(ps, dt, width, height)
	}
	return c.integrateParallel(ps, dt, width, height)
}

// integrateParallel hands each worker a contiguous chunk. Chunks never
// overlap so every particle still has exactly one writer.
func (c *CPUBackend) integrateParallel(ps []particle.Particle, dt, width, height float32) int {
	n := len(ps)
	workers := c.workers
	if workers > n {
		workers = n
	}
	chunkSize := (n + workers - 1) / workers
	wraps := make([]int, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		if start >= n {
			break
		}
		end := start + chunkSize
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(worker int, chunk []particle.Particle) {
			defer wg.Done()
			wraps[worker] = particle.UpdateCount(chunk, dt, width, height)
		}(w, ps[start:end])
	}
	wg.Wait()

	total := 0
	for _, w := range wraps {
		total += w
	}
	return total
}
