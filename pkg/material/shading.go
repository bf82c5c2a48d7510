package material

import (
	"math"

	"github.com/amitkumarghb/bpt-veach/pkg/core"
)

// ShadingCorrection compensates for the asymmetry between shading and
// geometric normals when tracing the importance (light) subpath.
// Radiance transport needs no correction. Veach 5.3.
func ShadingCorrection(evalDirection, fromDirection core.Vec3, idata *core.Intersection, mode TransportMode) float64 {
	if mode != Importance {
		return 1
	}
	numerator := math.Abs(evalDirection.Dot(idata.ShadingNormal) * fromDirection.Dot(idata.GeometricNormal))
	denominator := math.Abs(evalDirection.Dot(idata.GeometricNormal) * fromDirection.Dot(idata.ShadingNormal))
	if denominator < core.EpsilonBlack {
		return 0
	}
	return numerator / denominator
}
