// Package viz draws particle fields in the terminal.
//
//   - [Canvas]: braille canvas, 2x4 sub-pixels per cell
//   - [PlotField]: maps the centred domain onto a canvas
//   - [Live]: Bubble Tea model stepping a field at a fixed frame rate
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset (or respawn) the field
//	+/-   - Double/halve simulation speed
//	Q     - Quit
package viz
