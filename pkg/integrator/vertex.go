package integrator

import (
	"github.com/amitkumarghb/bpt-veach/pkg/core"
	"github.com/amitkumarghb/bpt-veach/pkg/emitter"
	"github.com/amitkumarghb/bpt-veach/pkg/material"
)

// Vertex is a single element of a transport subpath. Vertices live for the
// duration of one pixel sample; materials and emitters are borrowed from the
// immutable scene.
type Vertex struct {
	Idata core.Intersection

	// Monte Carlo estimate of the path contribution from the endpoint
	// through this vertex, excluding this vertex's outgoing BxDF factor
	Throughput core.Color

	// Projected solid-angle densities: the sampling pdf divided by the
	// outgoing cosine
	PdfForward float64
	PdfReverse float64

	// Geometry term to the previous vertex; only defined between
	// non-dirac vertices
	G float64

	Dirac     bool
	IsEmitter bool
	// Only a dirac camera is implemented, so emission subpaths never
	// terminate on the lens; the flag is kept for the bookkeeping symmetry
	IsCamera bool

	Light     emitter.Emitter
	Material  material.BxDF
	EmitterID uint32
}

// Point returns the vertex location
func (v *Vertex) Point() core.Vec3 {
	return v.Idata.Point
}

// Normal returns the vertex normal, the z axis of its local frame
func (v *Vertex) Normal() core.Vec3 {
	return v.Idata.Frame.Normal()
}
