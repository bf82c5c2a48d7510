package material

import (
	"math"

	"github.com/amitkumarghb/bpt-veach/pkg/core"
)

// TransportMode tags which subpath a BxDF query serves. The concrete
// materials here are symmetric, but the mode drives the shading-normal
// correction applied while tracing importance.
type TransportMode uint8

const (
	// Importance is the light subpath: the from direction points to the emitter
	Importance TransportMode = iota
	// Radiance is the camera subpath: the from direction points to the camera
	Radiance
)

// Event categorizes the outcome of sampling a BxDF
type Event uint8

const (
	EventNone Event = iota
	EventDiffuse
	EventEmission
	EventReflect
	EventTransmit
)

// NoEmitter is returned by EmitterID for materials that do not emit
const NoEmitter = math.MaxUint32

// BxDF is the scattering contract shared by all materials.
// Directions are world-space unit vectors pointing away from the surface.
type BxDF interface {
	// Sample draws an outgoing direction for the intersection. Returns the
	// BxDF factor, the sampled world-space direction, the event category,
	// the solid-angle pdf of the sample, and the cosine between the sampled
	// direction and the shading normal.
	Sample(idata *core.Intersection, mode TransportMode, rng *core.Random) (f core.Color, direction core.Vec3, event Event, pdfW, cosTheta float64)

	// Evaluate computes the BxDF for a given outgoing direction.
	// Delta materials return black with zero pdf.
	Evaluate(evalDirection, fromDirection core.Vec3, idata *core.Intersection, mode TransportMode) (f core.Color, pdfW, cosTheta float64)

	// Factor returns the BxDF value only
	Factor(evalDirection, fromDirection core.Vec3, idata *core.Intersection, mode TransportMode) core.Color

	// PDF returns the solid-angle probability of generating evalDirection
	// given the direction back toward the previous vertex
	PDF(evalDirection, fromDirection core.Vec3, idata *core.Intersection) float64

	// EmitterID returns the emitter index for emissive materials,
	// NoEmitter otherwise
	EmitterID() uint32
}
