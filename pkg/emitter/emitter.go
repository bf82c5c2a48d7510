package emitter

import (
	"github.com/amitkumarghb/bpt-veach/pkg/core"
)

// Type identifies the kind of emitter
type Type uint8

const (
	Area Type = iota
	Point
	Directional
	Spot
)

// EmissionSample is the result of sampling an emitting point and direction
type EmissionSample struct {
	Energy    core.Color // Emitted radiance
	Point     core.Vec3  // Point on the emitter
	Direction core.Vec3  // Direction away from the emitter
	Normal    core.Vec3  // Emitter normal at the point, if the emitter has one
	PdfW      float64    // Solid-angle pdf of the direction
	PdfA      float64    // Area pdf of the point
	CosTheta  float64    // Cosine between direction and normal
}

// Emitter is the contract for light sources
type Emitter interface {
	// Emit samples an emitting point and outgoing direction
	Emit(rng *core.Random) EmissionSample

	// Radiance returns the radiance leaving evalPoint along evalDirection.
	// The direction points away from the emitter; the back side is black.
	Radiance(evalPoint, evalDirection core.Vec3) core.Color

	// PdfLe evaluates the emission densities for a point and direction
	PdfLe(evalPoint, evalDirection core.Vec3) (pdfW, pdfA, cosTheta float64)

	// PdfW is the solid-angle emission density for a direction
	PdfW(evalPoint, evalDirection core.Vec3) float64

	// PdfA is the area density of the emitting point
	PdfA(evalPoint, evalDirection core.Vec3) float64

	// Type returns the emitter kind
	Type() Type

	// IsDirac is true for emitters that cannot be intersected (point, directional)
	IsDirac() bool
}
