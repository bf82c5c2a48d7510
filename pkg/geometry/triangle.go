package geometry

import (
	"math"

	"github.com/amitkumarghb/bpt-veach/pkg/core"
)

// Minimum determinant and hit distance for the intersection test
const intersectEpsilon = 1e-6

// Triangle is a single triangle with a flat normal and a material binding
type Triangle struct {
	position core.Vec3 // a
	edge1    core.Vec3 // b-a
	edge2    core.Vec3 // c-a
	normal   core.Vec3

	frame core.Frame

	materialID uint32
}

// NewTriangle creates a triangle from three vertices and a material id
func NewTriangle(a, b, c core.Vec3, materialID uint32) *Triangle {
	edge1 := b.Subtract(a)
	edge2 := c.Subtract(a)
	normal := edge1.Cross(edge2).Normalize()
	return &Triangle{
		position:   a,
		edge1:      edge1,
		edge2:      edge2,
		normal:     normal,
		frame:      core.NewFrame(normal),
		materialID: materialID,
	}
}

// Intersect runs the Möller-Trumbore ray-triangle test.
// Fast, minimum storage ray/triangle intersection, 1997.
func (t *Triangle) Intersect(ray core.Ray) (float64, bool) {
	p := ray.Direction.Cross(t.edge2)
	d := t.edge1.Dot(p)

	// Determinant near zero means the ray lies in the triangle plane
	if math.Abs(d) < intersectEpsilon {
		return 0, false
	}
	invD := 1.0 / d

	diff := ray.Origin.Subtract(t.position)

	u := diff.Dot(p) * invD
	if u < 0 || u > 1 {
		return 0, false
	}

	q := diff.Cross(t.edge1)
	v := ray.Direction.Dot(q) * invD
	if v < 0 || u+v > 1 {
		return 0, false
	}

	distance := q.Dot(t.edge2) * invD
	if distance < intersectEpsilon {
		return 0, false
	}

	return distance, true
}

// PostIntersect fills in the intersection record for a confirmed hit
func (t *Triangle) PostIntersect(ray core.Ray, distance float64) core.Intersection {
	return core.Intersection{
		Point:           ray.At(distance),
		FromDirection:   ray.Direction.Negate(),
		ShadingNormal:   t.normal,
		GeometricNormal: t.normal,
		Frame:           t.frame,
		MaterialID:      t.materialID,
	}
}

// Normal returns the flat geometric normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}
