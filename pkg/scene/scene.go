package scene

import (
	"fmt"

	"github.com/amitkumarghb/bpt-veach/pkg/core"
	"github.com/amitkumarghb/bpt-veach/pkg/emitter"
	"github.com/amitkumarghb/bpt-veach/pkg/geometry"
	"github.com/amitkumarghb/bpt-veach/pkg/material"
)

// Scene owns the geometry, materials and emitters of a render.
// All of it is immutable once built; integrators only borrow references.
type Scene struct {
	geometry  []geometry.Geometry
	materials []material.BxDF
	emitters  []emitter.Emitter
}

// NewScene creates an empty scene
func NewScene() *Scene {
	return &Scene{}
}

// AddGeometry appends a shape to the scene
func (s *Scene) AddGeometry(g geometry.Geometry) {
	s.geometry = append(s.geometry, g)
}

// AddMaterial appends a material and returns its id
func (s *Scene) AddMaterial(m material.BxDF) uint32 {
	s.materials = append(s.materials, m)
	return uint32(len(s.materials) - 1)
}

// AddEmitter appends an emitter and returns its id
func (s *Scene) AddEmitter(e emitter.Emitter) uint32 {
	s.emitters = append(s.emitters, e)
	return uint32(len(s.emitters) - 1)
}

// Intersect finds the closest intersectable object along the ray.
// A linear scan; the closest positive distance wins.
func (s *Scene) Intersect(ray core.Ray) (bool, float64, core.Intersection) {
	closest := 1e42
	objectID := -1
	for i, g := range s.geometry {
		if d, ok := g.Intersect(ray); ok && d < closest {
			closest = d
			objectID = i
		}
	}
	if objectID < 0 {
		return false, 0, core.Intersection{}
	}
	return true, closest, s.geometry[objectID].PostIntersect(ray, closest)
}

// Occluded reports whether any object lies within (0, distance) along the ray
func (s *Scene) Occluded(ray core.Ray, distance float64) bool {
	for _, g := range s.geometry {
		if d, ok := g.Intersect(ray); ok && d < distance {
			return true
		}
	}
	return false
}

// Material returns the material with the given id
func (s *Scene) Material(id uint32) (material.BxDF, error) {
	if id >= uint32(len(s.materials)) {
		return nil, fmt.Errorf("material id %d is out of bounds (%d materials)", id, len(s.materials))
	}
	return s.materials[id], nil
}

// Emitter returns the emitter with the given id and its selection probability
func (s *Scene) Emitter(id uint32) (emitter.Emitter, float64, error) {
	if id >= uint32(len(s.emitters)) {
		return nil, 0, fmt.Errorf("emitter id %d is out of bounds (%d emitters)", id, len(s.emitters))
	}
	return s.emitters[id], 1.0 / float64(len(s.emitters)), nil
}

// EmitterSelectProbability returns the uniform selection probability of an emitter
func (s *Scene) EmitterSelectProbability(id uint32) (float64, error) {
	if id >= uint32(len(s.emitters)) {
		return 0, fmt.Errorf("emitter id %d is out of bounds (%d emitters)", id, len(s.emitters))
	}
	// All emitters are sampled equally
	return 1.0 / float64(len(s.emitters)), nil
}

// RandomEmitter draws a uniform emitter id
func (s *Scene) RandomEmitter(rng *core.Random) uint32 {
	return rng.Uint32() % uint32(len(s.emitters))
}

// IsValid reports whether the scene can be rendered
func (s *Scene) IsValid() bool {
	return len(s.geometry) > 0 && len(s.emitters) > 0 && len(s.materials) > 0
}

// GeometryCount returns the number of shapes
func (s *Scene) GeometryCount() int { return len(s.geometry) }

// MaterialCount returns the number of materials
func (s *Scene) MaterialCount() int { return len(s.materials) }

// EmitterCount returns the number of emitters
func (s *Scene) EmitterCount() int { return len(s.emitters) }
