// Package compute provides integration backends for particle fields.
//
// Two CPU strategies are available:
//
//   - serial: one pass over the field on the calling goroutine
//   - cpu: the field is split into contiguous chunks, one goroutine each
//
// Particles never interact, so both strategies produce identical results:
//
//	backend, _ := compute.ByName("auto")
//	wraps := backend.Integrate(field, dt, width, height)
//
// Fields smaller than ParallelThreshold always take the serial path.
package compute
