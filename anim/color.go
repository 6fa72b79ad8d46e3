package anim

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a packed 0xAABBGGRR value: red in the low byte, alpha in the high byte.
type Color uint32

// NewColor packs 8-bit channels into a Color.
func NewColor(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r))
}

func (c Color) R() uint8 { return uint8(c) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c >> 16) }
func (c Color) A() uint8 { return uint8(c >> 24) }

// RGBA returns the color packed as 0xRRGGBBAA, the order renderers consume.
func (c Color) RGBA() uint32 {
	return uint32(c.R())<<24 | uint32(c.G())<<16 | uint32(c.B())<<8 | uint32(c.A())
}

// Colorful splits the color into its RGB part and an alpha in [0, 1].
func (c Color) Colorful() (colorful.Color, float64) {
	return colorful.Color{
		R: float64(c.R()) / 255,
		G: float64(c.G()) / 255,
		B: float64(c.B()) / 255,
	}, float64(c.A()) / 255
}

// ColorFromColorful packs a colorful.Color and an alpha in [0, 1].
func ColorFromColorful(col colorful.Color, alpha float64) Color {
	r, g, b := col.Clamped().RGB255()
	alpha = min(max(alpha, 0), 1)
	return NewColor(r, g, b, uint8(alpha*255+0.5))
}

// Blend interpolates RGB channels and alpha independently.
func (c Color) Blend(to Color, t float64) Color {
	from, fromAlpha := c.Colorful()
	target, targetAlpha := to.Colorful()
	return ColorFromColorful(from.BlendRgb(target, t), fromAlpha+(targetAlpha-fromAlpha)*t)
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R(), c.G(), c.B(), c.A())
}
