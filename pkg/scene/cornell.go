package scene

import (
	"github.com/amitkumarghb/bpt-veach/pkg/core"
	"github.com/amitkumarghb/bpt-veach/pkg/emitter"
	"github.com/amitkumarghb/bpt-veach/pkg/geometry"
	"github.com/amitkumarghb/bpt-veach/pkg/material"
)

// NewCornellBox builds the classic Cornell box from triangles.
// https://www.graphics.cornell.edu/online/box/
//
// The order, and sign, of the measured data is altered here, as world up is
// the z axis. diffuseTallBlock selects a diffuse or a mirror tall block;
// simpleEmitter selects two or four ceiling light triangles. Both ceiling
// configurations cover the same area with the same energy, so renders must
// converge to the same image.
func NewCornellBox(diffuseTallBlock, simpleEmitter bool) *Scene {
	s := NewScene()

	white := s.AddMaterial(material.NewLambert(core.NewColor(0.8, 0.8, 0.8)))
	red := s.AddMaterial(material.NewLambert(core.NewColor(0.6, 0.01, 0.01)))
	green := s.AddMaterial(material.NewLambert(core.NewColor(0.01, 0.25, 0.01)))
	mirror := s.AddMaterial(material.NewMirror(core.White))

	tallBlockMaterial := white
	if !diffuseTallBlock {
		tallBlockMaterial = mirror
	}

	energy := core.NewColor(0, 0.929, 0.659).Scale(8).
		Add(core.NewColor(1, 0.447, 0).Scale(15.6)).
		Add(core.NewColor(0.376, 0, 0).Scale(18.4))

	// Big box
	cbox := [8]core.Vec3{
		core.NewVec3(0.0, 0.0, 0.0),
		core.NewVec3(0.0, 0.0, 548.8),
		core.NewVec3(0.0, 559.2, 0.0),
		core.NewVec3(0.0, 559.2, 548.8),
		core.NewVec3(-552.8, 0.0, 0.0),
		core.NewVec3(-556.0, 0.0, 548.8),
		core.NewVec3(-549.6, 559.2, 0.0),
		core.NewVec3(-556.0, 559.2, 548.8),
	}
	// Back
	s.AddGeometry(geometry.NewTriangle(cbox[2], cbox[3], cbox[7], white))
	s.AddGeometry(geometry.NewTriangle(cbox[2], cbox[7], cbox[6], white))
	// Top
	s.AddGeometry(geometry.NewTriangle(cbox[1], cbox[5], cbox[7], white))
	s.AddGeometry(geometry.NewTriangle(cbox[1], cbox[7], cbox[3], white))
	// Bottom
	s.AddGeometry(geometry.NewTriangle(cbox[0], cbox[2], cbox[6], white))
	s.AddGeometry(geometry.NewTriangle(cbox[0], cbox[6], cbox[4], white))
	// Left
	s.AddGeometry(geometry.NewTriangle(cbox[4], cbox[6], cbox[7], red))
	s.AddGeometry(geometry.NewTriangle(cbox[4], cbox[7], cbox[5], red))
	// Right
	s.AddGeometry(geometry.NewTriangle(cbox[0], cbox[1], cbox[3], green))
	s.AddGeometry(geometry.NewTriangle(cbox[0], cbox[3], cbox[2], green))

	// Short block
	sbox := [8]core.Vec3{
		core.NewVec3(-82.0, 225.0, 0.0),
		core.NewVec3(-82.0, 225.0, 165.0),
		core.NewVec3(-130.0, 65.0, 0.0),
		core.NewVec3(-130.0, 65.0, 165.0),
		core.NewVec3(-240.0, 272.0, 0.0),
		core.NewVec3(-240.0, 272.0, 165.0),
		core.NewVec3(-290.0, 114.0, 0.0),
		core.NewVec3(-290.0, 114.0, 165.0),
	}
	// Back
	s.AddGeometry(geometry.NewTriangle(sbox[4], sbox[5], sbox[1], white))
	s.AddGeometry(geometry.NewTriangle(sbox[4], sbox[1], sbox[0], white))
	// Front
	s.AddGeometry(geometry.NewTriangle(sbox[2], sbox[3], sbox[7], white))
	s.AddGeometry(geometry.NewTriangle(sbox[2], sbox[7], sbox[6], white))
	// Top
	s.AddGeometry(geometry.NewTriangle(sbox[3], sbox[1], sbox[5], white))
	s.AddGeometry(geometry.NewTriangle(sbox[3], sbox[5], sbox[7], white))
	// Left
	s.AddGeometry(geometry.NewTriangle(sbox[6], sbox[7], sbox[5], white))
	s.AddGeometry(geometry.NewTriangle(sbox[6], sbox[5], sbox[4], white))
	// Right
	s.AddGeometry(geometry.NewTriangle(sbox[0], sbox[1], sbox[3], white))
	s.AddGeometry(geometry.NewTriangle(sbox[0], sbox[3], sbox[2], white))

	// Tall block
	tbox := [8]core.Vec3{
		core.NewVec3(-265.0, 296.0, 0.0),
		core.NewVec3(-265.0, 296.0, 330.0),
		core.NewVec3(-314.0, 456.0, 0.0),
		core.NewVec3(-314.0, 456.0, 330.0),
		core.NewVec3(-423.0, 247.0, 0.0),
		core.NewVec3(-423.0, 247.0, 330.0),
		core.NewVec3(-472.0, 406.0, 0.0),
		core.NewVec3(-472.0, 406.0, 330.0),
	}
	// Back
	s.AddGeometry(geometry.NewTriangle(tbox[6], tbox[7], tbox[3], tallBlockMaterial))
	s.AddGeometry(geometry.NewTriangle(tbox[6], tbox[3], tbox[2], tallBlockMaterial))
	// Front
	s.AddGeometry(geometry.NewTriangle(tbox[0], tbox[1], tbox[5], tallBlockMaterial))
	s.AddGeometry(geometry.NewTriangle(tbox[0], tbox[5], tbox[4], tallBlockMaterial))
	// Top
	s.AddGeometry(geometry.NewTriangle(tbox[5], tbox[1], tbox[3], tallBlockMaterial))
	s.AddGeometry(geometry.NewTriangle(tbox[5], tbox[3], tbox[7], tallBlockMaterial))
	// Left
	s.AddGeometry(geometry.NewTriangle(tbox[4], tbox[5], tbox[7], tallBlockMaterial))
	s.AddGeometry(geometry.NewTriangle(tbox[4], tbox[7], tbox[6], tallBlockMaterial))
	// Right
	s.AddGeometry(geometry.NewTriangle(tbox[2], tbox[3], tbox[1], tallBlockMaterial))
	s.AddGeometry(geometry.NewTriangle(tbox[2], tbox[1], tbox[0], tallBlockMaterial))

	// Ceiling light corners, offset below the ceiling to avoid z fighting
	light := [5]core.Vec3{
		core.NewVec3(-213.0, 227.0, 548.8-0.01),
		core.NewVec3(-213.0, 332.0, 548.8-0.01),
		core.NewVec3(-343.0, 227.0, 548.8-0.01),
		core.NewVec3(-343.0, 332.0, 548.8-0.01),
		// Center point for the four triangle configuration
		core.NewVec3(
			(-213.0+-213.0+-343.0+-343.0)*0.25,
			(227.0+332.0+227.0+332.0)*0.25,
			548.8-0.01,
		),
	}

	if simpleEmitter {
		// Two triangles as ceiling emitter
		em0 := s.AddEmitter(emitter.NewTriangle(light[2], light[3], light[1], energy))
		em1 := s.AddEmitter(emitter.NewTriangle(light[2], light[1], light[0], energy))
		// Visible emitters
		s.AddGeometry(geometry.NewTriangle(light[2], light[3], light[1], s.AddMaterial(material.NewEmission(em0))))
		s.AddGeometry(geometry.NewTriangle(light[2], light[1], light[0], s.AddMaterial(material.NewEmission(em1))))
	} else {
		// Four triangles as ceiling emitter
		em0 := s.AddEmitter(emitter.NewTriangle(light[1], light[0], light[4], energy))
		em1 := s.AddEmitter(emitter.NewTriangle(light[0], light[2], light[4], energy))
		em2 := s.AddEmitter(emitter.NewTriangle(light[2], light[3], light[4], energy))
		em3 := s.AddEmitter(emitter.NewTriangle(light[3], light[1], light[4], energy))
		// Visible emitters
		s.AddGeometry(geometry.NewTriangle(light[1], light[0], light[4], s.AddMaterial(material.NewEmission(em0))))
		s.AddGeometry(geometry.NewTriangle(light[0], light[2], light[4], s.AddMaterial(material.NewEmission(em1))))
		s.AddGeometry(geometry.NewTriangle(light[2], light[3], light[4], s.AddMaterial(material.NewEmission(em2))))
		s.AddGeometry(geometry.NewTriangle(light[3], light[1], light[4], s.AddMaterial(material.NewEmission(em3))))
	}

	return s
}
