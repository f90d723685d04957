package analysis

import (
	"math"

	"github.com/san-kum/partsim/internal/particle"
)

// Density bins particle positions into a cols x rows grid covering the
// domain. Row 0 is the bottom of the domain. Non-positive grid
// dimensions give nil.
func Density(f particle.Field, width, height float32, cols, rows int) [][]int {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	grid := make([][]int, rows)
	for i := range grid {
		grid[i] = make([]int, cols)
	}
	if width <= 0 || height <= 0 {
		return grid
	}

	for i := range f {
		p := f[i].Position
		cx := int((p.X + width/2) / width * float32(cols))
		cy := int((p.Y + height/2) / height * float32(rows))
		grid[clamp(cy, rows)][clamp(cx, cols)]++
	}
	return grid
}

// Uniformity is 1 minus the coefficient of variation of the cell counts,
// floored at 0. An empty grid scores 0.
func Uniformity(grid [][]int) float64 {
	var n, sum float64
	for _, row := range grid {
		for _, c := range row {
			sum += float64(c)
			n++
		}
	}
	if n == 0 || sum == 0 {
		return 0
	}
	mean := sum / n

	var variance float64
	for _, row := range grid {
		for _, c := range row {
			d := float64(c) - mean
			variance += d * d
		}
	}
	cv := math.Sqrt(variance/n) / mean
	return math.Max(0, 1-cv)
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
