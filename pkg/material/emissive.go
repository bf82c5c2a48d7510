package material

import (
	"github.com/amitkumarghb/bpt-veach/pkg/core"
)

// Emission is a one-sided diffuse emitter with no reflection. Radiance and
// pdfs are handled by the emitter the id refers to; the material exists so
// a camera walk can recognize a light hit.
type Emission struct {
	id uint32
}

// NewEmission creates an emissive material bound to the given emitter id
func NewEmission(id uint32) *Emission {
	return &Emission{id: id}
}

// Sample reports an emission event when hit on the front face
func (e *Emission) Sample(idata *core.Intersection, mode TransportMode, rng *core.Random) (core.Color, core.Vec3, Event, float64, float64) {
	cosTheta := idata.FromDirection.Dot(idata.ShadingNormal)
	if cosTheta < core.EpsilonCosTheta {
		return core.Black, core.Zero3, EventNone, 0, 0
	}
	return core.Black, core.Zero3, EventEmission, 0, 0
}

// Evaluate returns black, emission carries no reflection
func (e *Emission) Evaluate(evalDirection, fromDirection core.Vec3, idata *core.Intersection, mode TransportMode) (core.Color, float64, float64) {
	return core.Black, 0, 0
}

// Factor returns black
func (e *Emission) Factor(evalDirection, fromDirection core.Vec3, idata *core.Intersection, mode TransportMode) core.Color {
	return core.Black
}

// PDF returns zero
func (e *Emission) PDF(evalDirection, fromDirection core.Vec3, idata *core.Intersection) float64 {
	return 0
}

// EmitterID returns the bound emitter id
func (e *Emission) EmitterID() uint32 {
	return e.id
}
