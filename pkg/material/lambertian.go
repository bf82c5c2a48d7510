package material

import (
	"github.com/amitkumarghb/bpt-veach/pkg/core"
)

// Lambert is a one-sided perfectly diffuse reflector
type Lambert struct {
	albedo core.Color
}

// NewLambert creates a new diffuse material with the given albedo
func NewLambert(albedo core.Color) *Lambert {
	return &Lambert{albedo: albedo}
}

// Sample draws a cosine-weighted direction in the hemisphere around the
// shading normal
func (l *Lambert) Sample(idata *core.Intersection, mode TransportMode, rng *core.Random) (core.Color, core.Vec3, Event, float64, float64) {
	cosTheta := idata.FromDirection.Dot(idata.ShadingNormal)
	if cosTheta < core.EpsilonCosTheta {
		return core.Black, core.Zero3, EventNone, 0, 0
	}
	local := core.SampleCosineHemisphere(rng)
	direction := idata.Frame.ToWorld(local)
	return l.albedo.Scale(core.InvPi), direction, EventDiffuse, local.Z * core.InvPi, local.Z
}

// Evaluate returns albedo/pi when both directions are above the surface
func (l *Lambert) Evaluate(evalDirection, fromDirection core.Vec3, idata *core.Intersection, mode TransportMode) (core.Color, float64, float64) {
	cosTheta := evalDirection.Dot(idata.Frame.Normal())
	fromCosTheta := fromDirection.Dot(idata.Frame.Normal())
	if cosTheta < core.EpsilonCosTheta || fromCosTheta < core.EpsilonCosTheta {
		return core.Black, 0, 0
	}
	return l.albedo.Scale(core.InvPi), cosTheta * core.InvPi, cosTheta
}

// Factor returns the BxDF value only
func (l *Lambert) Factor(evalDirection, fromDirection core.Vec3, idata *core.Intersection, mode TransportMode) core.Color {
	cosTheta := evalDirection.Dot(idata.Frame.Normal())
	fromCosTheta := fromDirection.Dot(idata.Frame.Normal())
	if cosTheta < core.EpsilonCosTheta || fromCosTheta < core.EpsilonCosTheta {
		return core.Black
	}
	return l.albedo.Scale(core.InvPi)
}

// PDF is the cosine-weighted hemisphere density, cos(theta)/pi
func (l *Lambert) PDF(evalDirection, fromDirection core.Vec3, idata *core.Intersection) float64 {
	evalCosTheta := evalDirection.Dot(idata.Frame.Normal())
	fromCosTheta := fromDirection.Dot(idata.Frame.Normal())
	if evalCosTheta < core.EpsilonCosTheta || fromCosTheta < core.EpsilonCosTheta {
		return 0
	}
	return evalCosTheta * core.InvPi
}

// EmitterID reports that a diffuse surface is not emissive
func (l *Lambert) EmitterID() uint32 {
	return NoEmitter
}
