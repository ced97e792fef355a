// Package presentation holds the cosmetic adapters that turn model state
// into HUD, camera and scene values. Nothing here feeds back into the
// simulation.
package presentation

import "github.com/petstore/bossfight/internal/geom"

type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

var (
	Green  = Color{0, 1, 0, 1}
	Yellow = Color{1, 0.92, 0.016, 1}
	Red    = Color{1, 0, 0, 1}
	White  = Color{1, 1, 1, 1}
)

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// LerpColor blends every channel; t is clamped to [0,1].
func LerpColor(a, b Color, t float64) Color {
	t = geom.Clamp01(t)
	return Color{
		R: geom.LerpF(a.R, b.R, t),
		G: geom.LerpF(a.G, b.G, t),
		B: geom.LerpF(a.B, b.B, t),
		A: geom.LerpF(a.A, b.A, t),
	}
}
