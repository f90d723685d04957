package viz

import "github.com/san-kum/partsim/internal/particle"

// PlotField clears c and lights one sub-pixel per particle. Domain
// coordinates map onto the whole canvas with +y pointing up.
func PlotField(c *Canvas, f particle.Field, width, height float32) {
	c.Clear()
	pw, ph := c.PixelSize()
	for i := range f {
		x, y := ToPixel(f[i].Position, width, height, pw, ph)
		c.Set(x, y)
	}
}

// ToPixel maps a domain position to canvas sub-pixels. Positions on the
// right or top edge land in the last column or row.
func ToPixel(p particle.Vec2, width, height float32, pw, ph int) (int, int) {
	x := int((p.X + width/2) / width * float32(pw))
	y := int((height/2 - p.Y) / height * float32(ph))
	if x >= pw {
		x = pw - 1
	}
	if y >= ph {
		y = ph - 1
	}
	return x, y
}
