// Package analysis inspects recorded particle runs.
//
//   - [PowerSpectrum] and [DominantFrequency]: periodicity of a sampled series,
//     such as the centroid x coordinate
//   - [Density]: occupancy grid of a field snapshot and its [Uniformity]
//
// With wraparound and constant velocities a uniformly spawned field stays
// uniform, so Uniformity close to 1 is expected for healthy runs.
package analysis
