package conifer

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default background.
var ColorWhite = Color{1, 1, 1, 1}

// NRGBA converts c to 8-bit straight alpha.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: clampByte(c.R),
		G: clampByte(c.G),
		B: clampByte(c.B),
		A: clampByte(c.A),
	}
}

// Hex formats the color as #rrggbb, ignoring alpha.
func (c Color) Hex() string {
	n := c.NRGBA()
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

func clampByte(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// ParseColor accepts a CSS color name ("white", "darkgreen") or a hex string
// ("#4e3c2e", "4e3c2e") and returns an opaque Color.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return Color{}, fmt.Errorf("parse color: empty")
	}
	if named, ok := colornames.Map[s]; ok {
		return Color{
			R: float64(named.R) / 255,
			G: float64(named.G) / 255,
			B: float64(named.B) / 255,
			A: 1,
		}, nil
	}
	if s[0] != '#' {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// HSVA is a color in hue/saturation/value space. Hue is in degrees [0, 360),
// saturation and value in [0, 1]. Alpha is implicitly 1.
type HSVA struct {
	H, S, V float64
}

// Color converts to RGBA using the standard HSV transform.
func (h HSVA) Color() Color {
	c := colorful.Hsv(h.H, h.S, h.V)
	return Color{R: c.R, G: c.G, B: c.B, A: 1}
}

// Vec2 is a 2D point in screen coordinates. Y increases downward.
type Vec2 struct {
	X, Y float64
}

// Offset returns the point length units away from v in direction angle.
// Angles are counter-clockwise from +X, so positive sin moves up the screen.
func (v Vec2) Offset(angle, length float64) Vec2 {
	return Vec2{
		X: v.X + length*math.Cos(angle),
		Y: v.Y - length*math.Sin(angle),
	}
}

// Rect is an axis-aligned rectangle with its origin at the top-left.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	x0 := math.Min(r.X, other.X)
	y0 := math.Min(r.Y, other.Y)
	x1 := math.Max(r.X+r.Width, other.X+other.Width)
	y1 := math.Max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Range is a half-open [Min, Max) interval.
type Range struct {
	Min, Max float64
}

// Contains reports whether Min <= v < Max.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v < r.Max
}
