// Package particle holds the particle field and its integrator.
//
// A field is a fixed-length slice of independent particles living in a
// centred rectangular domain [-w/2, w/2] x [-h/2, h/2]. Each frame the
// integrator advances every position by velocity*dt and teleports any
// coordinate that left the domain to the opposite edge:
//
//	particle.Update(field, dt, width, height)
//
// Velocity and colour never change after Spawn. The same records are
// flattened by Pack for upload to a GPU vertex buffer.
package particle
