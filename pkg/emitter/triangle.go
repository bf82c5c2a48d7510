package emitter

import (
	"github.com/amitkumarghb/bpt-veach/pkg/core"
)

// Triangle is an area emitter with uniform position sampling and
// cosine-weighted direction sampling over its front hemisphere
type Triangle struct {
	position core.Vec3 // a
	edge1    core.Vec3 // b-a
	edge2    core.Vec3 // c-a
	normal   core.Vec3

	frame core.Frame

	energy core.Color

	pdfArea float64
}

// NewTriangle creates a triangle emitter from three vertices and its energy
func NewTriangle(a, b, c core.Vec3, energy core.Color) *Triangle {
	edge1 := b.Subtract(a)
	edge2 := c.Subtract(a)
	cross := edge1.Cross(edge2)
	normal := cross.Normalize()
	return &Triangle{
		position: a,
		edge1:    edge1,
		edge2:    edge2,
		normal:   normal,
		frame:    core.NewFrame(normal),
		energy:   energy,
		pdfArea:  1.0 / (0.5 * cross.Length()),
	}
}

// Emit samples a uniform point on the triangle and a cosine-weighted
// direction over the geometric normal
func (t *Triangle) Emit(rng *core.Random) EmissionSample {
	u, v := core.SampleUniformTriangle(rng)
	point := t.position.Add(t.edge1.Multiply(u)).Add(t.edge2.Multiply(v))
	local := core.SampleCosineHemisphere(rng)
	direction := t.frame.ToWorld(local)
	return EmissionSample{
		Energy:    t.energy,
		Point:     point,
		Direction: direction,
		Normal:    t.normal,
		PdfW:      local.Z * core.InvPi,
		PdfA:      t.pdfArea,
		CosTheta:  local.Z,
	}
}

// Radiance returns the energy on the front side, black on the back
func (t *Triangle) Radiance(evalPoint, evalDirection core.Vec3) core.Color {
	if t.normal.Dot(evalDirection) > 0 {
		return t.energy
	}
	return core.Black
}

// PdfLe evaluates the emission densities for a point on the triangle
func (t *Triangle) PdfLe(evalPoint, evalDirection core.Vec3) (float64, float64, float64) {
	cosTheta := t.normal.Dot(evalDirection)
	if cosTheta < core.EpsilonCosTheta {
		return 0, 0, 0
	}
	return cosTheta * core.InvPi, t.pdfArea, cosTheta
}

// PdfW is the cosine-weighted hemisphere density of the direction
func (t *Triangle) PdfW(evalPoint, evalDirection core.Vec3) float64 {
	cosTheta := t.normal.Dot(evalDirection)
	if cosTheta < core.EpsilonCosTheta {
		return 0
	}
	return cosTheta * core.InvPi
}

// PdfA is the uniform area density, one over the triangle area
func (t *Triangle) PdfA(evalPoint, evalDirection core.Vec3) float64 {
	return t.pdfArea
}

// Type reports an area emitter
func (t *Triangle) Type() Type { return Area }

// IsDirac is false, the triangle can be intersected
func (t *Triangle) IsDirac() bool { return false }
