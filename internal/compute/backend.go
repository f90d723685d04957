package compute

import (
	"fmt"

	"github.com/san-kum/partsim/internal/particle"
)

// Backend advances a particle field by one step and reports the number of
// axis wraps it performed.
type Backend interface {
	Name() string
	Available() bool
	Integrate(ps []particle.Particle, dt, width, height float32) int
	Cleanup()
}

// ByName resolves a backend from its CLI name. "auto" picks the parallel
// CPU backend when more than one core is available.
func ByName(name string) (Backend, error) {
	switch name {
	case "", "auto":
		return AutoSelectBackend(), nil
	case "serial":
		return NewSerialBackend(), nil
	case "cpu", "parallel":
		return NewCPUBackend(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s (available: auto, serial, cpu)", name)
	}
}

func AutoSelectBackend() Backend {
	cpu := NewCPUBackend()
	if cpu.workers > 1 {
		return cpu
	}
	return NewSerialBackend()
}
