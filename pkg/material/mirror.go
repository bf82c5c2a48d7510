package material

import (
	"github.com/amitkumarghb/bpt-veach/pkg/core"
)

// Mirror is a one-sided delta dirac reflector. Not physically based.
type Mirror struct {
	reflectance core.Color
}

// NewMirror creates a new perfect mirror with the given reflectance
func NewMirror(reflectance core.Color) *Mirror {
	return &Mirror{reflectance: reflectance}
}

// Sample reflects the incoming direction around the shading normal
func (m *Mirror) Sample(idata *core.Intersection, mode TransportMode, rng *core.Random) (core.Color, core.Vec3, Event, float64, float64) {
	cosTheta := idata.FromDirection.Dot(idata.ShadingNormal)
	if cosTheta < core.EpsilonCosTheta {
		return core.Black, core.Zero3, EventNone, 0, 0
	}
	direction := idata.FromDirection.Negate().Add(idata.ShadingNormal.Multiply(2.0 * cosTheta))
	return m.reflectance, direction, EventReflect, 1, direction.Dot(idata.ShadingNormal)
}

// Evaluate of a delta distribution is never meaningful
func (m *Mirror) Evaluate(evalDirection, fromDirection core.Vec3, idata *core.Intersection, mode TransportMode) (core.Color, float64, float64) {
	return core.Black, 0, 0
}

// Factor of a delta distribution is never meaningful
func (m *Mirror) Factor(evalDirection, fromDirection core.Vec3, idata *core.Intersection, mode TransportMode) core.Color {
	return core.Black
}

// PDF of a delta distribution is zero
func (m *Mirror) PDF(evalDirection, fromDirection core.Vec3, idata *core.Intersection) float64 {
	return 0
}

// EmitterID reports that a mirror is not emissive
func (m *Mirror) EmitterID() uint32 {
	return NoEmitter
}
