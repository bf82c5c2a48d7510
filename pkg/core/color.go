package core

// Color is an RGB triple of single-precision floats
type Color struct {
	R, G, B float32
}

// Predefined colors
var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
	Red   = Color{1, 0, 0}
	Green = Color{0, 1, 0}
	Blue  = Color{0, 0, 1}
)

// NewColor creates a new Color
func NewColor(r, g, b float32) Color {
	return Color{R: r, G: g, B: b}
}

// Add returns the component-wise sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Mul returns the component-wise product of two colors
func (c Color) Mul(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Scale returns the color scaled by a scalar
func (c Color) Scale(scalar float64) Color {
	s := float32(scalar)
	return Color{c.R * s, c.G * s, c.B * s}
}

// IsBlack reports whether the largest component is below EpsilonBlack
func (c Color) IsBlack() bool {
	return max(c.R, max(c.G, c.B)) < EpsilonBlack
}
