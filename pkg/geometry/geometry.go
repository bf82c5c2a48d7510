package geometry

import (
	"github.com/amitkumarghb/bpt-veach/pkg/core"
)

// Geometry is the contract for intersectable shapes
type Geometry interface {
	// Intersect returns the distance along the ray to the closest hit.
	// ok is false when the ray misses.
	Intersect(ray core.Ray) (distance float64, ok bool)

	// PostIntersect fills in the intersection data for a confirmed hit.
	// Should only be called for the winning geometry.
	PostIntersect(ray core.Ray, distance float64) core.Intersection
}
