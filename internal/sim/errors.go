package sim

import "errors"

var (
	// ErrInvalidConfig indicates a non-positive step, duration or domain.
	ErrInvalidConfig = errors.New("sim: invalid config")

	// ErrOutOfBounds indicates a particle left the domain after a step.
	ErrOutOfBounds = errors.New("sim: particle left the domain")
)
