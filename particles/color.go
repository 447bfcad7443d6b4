package particles

import colorful "github.com/lucasb-eyer/go-colorful"

// Color is an 8-bit RGBA particle tint.
type Color struct {
	R, G, B, A uint8
}

// WithSaturation returns the color with its HSL saturation scaled by the given
// factor, clamped to [0, 1]. A factor of 1 returns the color unchanged.
func (c Color) WithSaturation(scale float32) Color {
	if scale == 1 {
		return c
	}
	base := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
	h, s, l := base.Hsl()
	s *= float64(scale)
	if s < 0 {
		s = 0
	}
	if s > 1 {
		s = 1
	}
	out := colorful.Hsl(h, s, l).Clamped()
	return Color{
		R: uint8(out.R*255 + 0.5),
		G: uint8(out.G*255 + 0.5),
		B: uint8(out.B*255 + 0.5),
		A: c.A,
	}
}

// applySaturation transforms a palette in place-safe copy form.
func applySaturation(palette []Color, scale float32) []Color {
	if scale == 1 || len(palette) == 0 {
		return palette
	}
	out := make([]Color, len(palette))
	for i, c := range palette {
		out[i] = c.WithSaturation(scale)
	}
	return out
}
