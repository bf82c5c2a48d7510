package integrator

import (
	"math"

	"github.com/amitkumarghb/bpt-veach/pkg/core"
	"github.com/amitkumarghb/bpt-veach/pkg/material"
	"github.com/amitkumarghb/bpt-veach/pkg/renderer"
	"github.com/amitkumarghb/bpt-veach/pkg/scene"
)

// BDPT is a Veach style bidirectional path tracer. One instance serves one
// worker; the only shared state it touches is the sensor.
type BDPT struct {
	camera *renderer.Camera
	scene  *scene.Scene
	sensor *renderer.Sensor

	maxPathLength int
	maxSamples    int

	rng *core.Random
}

// NewBDPT creates an integrator for one worker thread
func NewBDPT(camera *renderer.Camera, sensor *renderer.Sensor, sc *scene.Scene, maxSamples, maxPathLength int) *BDPT {
	if maxSamples < 1 {
		maxSamples = 1
	}
	if maxPathLength < 3 {
		maxPathLength = 3
	}
	return &BDPT{
		camera:        camera,
		scene:         sc,
		sensor:        sensor,
		maxPathLength: maxPathLength,
		maxSamples:    maxSamples,
	}
}

// Process estimates the radiance for pixel (x,y) and writes it to the
// sensor. For every sample an emission subpath and a camera subpath are
// built and connected at every admissible prefix pair.
func (b *BDPT) Process(x, y int) error {
	b.rng = core.NewRandom(core.PixelSeed(x, y))

	accumulate := core.Black

	for sample := 0; sample < b.maxSamples; sample++ {
		emissionPath, err := b.traceEmissionPath()
		if err != nil {
			return err
		}
		cameraPath, err := b.traceCameraPath(x, y)
		if err != nil {
			return err
		}

		// Check if a path hit an element type sampled from the other path.
		// A lens hit is only possible for cameras with an area lens.
		hitCamera := emissionPath[len(emissionPath)-1].IsCamera
		hitEmitter := cameraPath[len(cameraPath)-1].IsEmitter
		// Such terminal vertices only take part in the full-path strategies
		nEmission := len(emissionPath)
		if hitCamera {
			nEmission--
		}
		nCamera := len(cameraPath)
		if hitEmitter {
			nCamera--
		}

		// Type 1) Direct hit on an area emitter.
		// Fully traced camera path, no visibility check needed.
		if nCamera > 0 && hitEmitter {
			t := nCamera + 1
			vertex := &cameraPath[t-1]
			if !vertex.Dirac {
				previous := &cameraPath[t-2]
				evalDirection := previous.Point().Subtract(vertex.Point()).Normalize()
				w, err := b.weight(0, t, emissionPath, cameraPath)
				if err != nil {
					return err
				}
				accumulate = accumulate.Add(
					vertex.Throughput.
						Mul(vertex.Light.Radiance(vertex.Point(), evalDirection)).
						Scale(w))
			}
		}

		// Type 1) A fully traced emission path hitting the camera lens
		// would be handled here, but needs a lens with nonzero radius.

		// Type 2) Connect camera path vertices to the sampled emitter,
		// the next event estimator.
		if nCamera > 0 {
			vertexEmitter := &emissionPath[0]
			selectProb, err := b.scene.EmitterSelectProbability(vertexEmitter.EmitterID)
			if err != nil {
				return err
			}
			emitterPoint := vertexEmitter.Point()
			for t := 1; t < nCamera; t++ {
				vertex := &cameraPath[t]
				if vertex.Dirac {
					continue
				}
				surfacePoint := vertex.Point()
				delta := emitterPoint.Subtract(surfacePoint)
				evalDirection := delta.Normalize()
				evalDistance := delta.Length()
				ray := core.NewRayOffset(surfacePoint, evalDirection, core.EpsilonRay)
				if b.scene.Occluded(ray, evalDistance-2*core.EpsilonRay) {
					continue
				}
				previousDirection := cameraPath[t-1].Point().Subtract(surfacePoint).Normalize()
				w, err := b.weight(1, t+1, emissionPath, cameraPath)
				if err != nil {
					return err
				}
				pdfA := vertexEmitter.Light.PdfA(emitterPoint, evalDirection.Negate())
				accumulate = accumulate.Add(
					vertex.Throughput.
						Mul(vertexEmitter.Light.Radiance(emitterPoint, evalDirection.Negate())).
						Mul(vertex.Material.Factor(evalDirection, previousDirection, &vertex.Idata, material.Radiance)).
						Scale(gPrime(vertex, vertexEmitter) * w / (pdfA * selectProb)))
			}
		}

		// Type 2) Connect emission path vertices to the camera lens,
		// the particle/light trace. The result lands in the splat buffer,
		// usually on another pixel.
		if nEmission > 0 {
			vertexCamera := &cameraPath[0]
			lensPoint := b.camera.SampleLens(b.rng)
			for s := 1; s < nEmission; s++ {
				vertex := &emissionPath[s]
				if vertex.Dirac {
					continue
				}
				px, py, valid := b.camera.Sensor(vertex.Point(), lensPoint)
				if !valid {
					continue
				}
				delta := vertex.Point().Subtract(lensPoint)
				evalDirection := delta.Normalize()
				evalDistance := delta.Length()
				ray := core.NewRayOffset(lensPoint, evalDirection, core.EpsilonRay)
				if b.scene.Occluded(ray, evalDistance-2*core.EpsilonRay) {
					continue
				}
				previousDirection := emissionPath[s-1].Point().Subtract(vertex.Point()).Normalize()
				w, err := b.weight(s+1, 1, emissionPath, cameraPath)
				if err != nil {
					return err
				}
				b.sensor.Splat(int(px), int(py),
					vertex.Throughput.
						Scale(material.ShadingCorrection(evalDirection, vertex.Idata.FromDirection, &vertex.Idata, material.Importance)).
						Mul(vertex.Material.Factor(evalDirection.Negate(), previousDirection, &vertex.Idata, material.Importance)).
						Scale(gPrime(vertex, vertexCamera)*w/b.camera.We(lensPoint, evalDirection)))
			}
		}

		// Type 3) Connect every pair of non dirac material vertices.
		if nEmission < 2 && nCamera < 2 {
			continue
		}
		for s := 2; s <= nEmission; s++ {
			sVertex := &emissionPath[s-1]
			if sVertex.Dirac {
				continue
			}
			for t := 2; t <= nCamera; t++ {
				tVertex := &cameraPath[t-1]
				if tVertex.Dirac {
					continue
				}

				// Connecting edge, Veach 301. The visibility term of G is
				// evaluated independently.
				delta := tVertex.Point().Subtract(sVertex.Point())
				evalDirection := delta.Normalize()
				evalDistance := delta.Length()
				ray := core.NewRayOffset(sVertex.Point(), evalDirection, core.EpsilonRay)
				if b.scene.Occluded(ray, evalDistance-2*core.EpsilonRay) {
					continue
				}

				previousDirectionEmission := emissionPath[s-2].Point().Subtract(sVertex.Point()).Normalize()
				previousDirectionCamera := cameraPath[t-2].Point().Subtract(tVertex.Point()).Normalize()
				w, err := b.weight(s, t, emissionPath, cameraPath)
				if err != nil {
					return err
				}

				accumulate = accumulate.Add(
					// Flow from the emitter
					sVertex.Throughput.
						Scale(material.ShadingCorrection(evalDirection, sVertex.Idata.FromDirection, &sVertex.Idata, material.Importance)).
						Mul(sVertex.Material.Factor(evalDirection, previousDirectionEmission, &sVertex.Idata, material.Importance)).
						// Flow from the camera
						Mul(tVertex.Throughput).
						Mul(tVertex.Material.Factor(evalDirection.Negate(), previousDirectionCamera, &tVertex.Idata, material.Radiance)).
						// G and MIS weight
						Scale(gPrime(sVertex, tVertex) * w))
			}
		}
	}

	b.sensor.Pixel(x, y, accumulate)
	return nil
}

// traceEmissionPath builds the light subpath. Veach 92, particle tracing:
// from the emitter the BxDF samples the outgoing direction.
func (b *BDPT) traceEmissionPath() ([]Vertex, error) {
	vertices := make([]Vertex, 0, b.maxPathLength+2)

	emitterID := b.scene.RandomEmitter(b.rng)
	em, selectProbability, err := b.scene.Emitter(emitterID)
	if err != nil {
		return nil, err
	}

	sample := em.Emit(b.rng)
	throughput := sample.Energy.Scale(sample.CosTheta / (selectProbability * sample.PdfW * sample.PdfA))

	// Light vertex is y0
	idata := core.Intersection{Point: sample.Point}
	if !em.IsDirac() {
		idata.Frame = core.NewFrame(sample.Normal)
		idata.ShadingNormal = sample.Normal
		idata.GeometricNormal = sample.Normal
	}
	pdfReverse := selectProbability * sample.PdfA
	pdfForward := sample.PdfW
	if !em.IsDirac() {
		pdfForward = sample.PdfW / sample.CosTheta
	}
	vertices = append(vertices, Vertex{
		Idata:      idata,
		Throughput: throughput,
		PdfForward: pdfForward,
		PdfReverse: pdfReverse,
		G:          1,
		Dirac:      em.IsDirac(),
		IsEmitter:  true,
		Light:      em,
		EmitterID:  emitterID,
	})

	ray := core.NewRayOffset(sample.Point, sample.Direction, core.EpsilonRay)
	depth := 1

	for {
		hit, _, idata := b.scene.Intersect(ray)
		if !hit {
			return vertices, nil
		}

		mat, err := b.scene.Material(idata.MaterialID)
		if err != nil {
			return nil, err
		}
		f, direction, event, pdfW, cosTheta := mat.Sample(&idata, material.Importance, b.rng)

		switch event {
		default:
			// None and emission terminate the walk
			return vertices, nil

		case material.EventDiffuse:
			pdfForward = pdfW / cosTheta
			if depth == 1 && em.IsDirac() {
				// Impossible to intersect the source in reverse
				pdfReverse = 0
			} else {
				_, evalPdfW, evalCosTheta := mat.Evaluate(ray.Direction.Negate(), direction, &idata, material.Importance)
				pdfReverse = evalPdfW / evalCosTheta
			}
			vertex := Vertex{
				Idata:      idata,
				Throughput: throughput,
				PdfForward: pdfForward,
				PdfReverse: pdfReverse,
				Material:   mat,
			}
			vertex.G = gPrime(&vertex, &vertices[len(vertices)-1])
			vertices = append(vertices, vertex)
			throughput = throughput.
				Mul(f.Scale(1 / pdfForward)).
				Scale(material.ShadingCorrection(direction, idata.FromDirection, &idata, material.Importance))

		case material.EventReflect:
			pdfForward = pdfW / cosTheta
			if depth == 1 && em.IsDirac() {
				pdfReverse = 0
			} else {
				pdfReverse = pdfForward
			}
			vertex := Vertex{
				Idata:      idata,
				Throughput: throughput,
				PdfForward: pdfForward,
				PdfReverse: pdfReverse,
				Dirac:      true,
				Material:   mat,
			}
			vertex.G = gPrime(&vertex, &vertices[len(vertices)-1])
			vertices = append(vertices, vertex)
			throughput = throughput.
				Mul(f).
				Scale(material.ShadingCorrection(direction, idata.FromDirection, &idata, material.Importance))
		}

		depth++
		if depth > b.maxPathLength {
			break
		}
		ray = core.NewRayOffset(idata.Point, direction, core.EpsilonRay)
	}

	return vertices, nil
}

// traceCameraPath builds the camera subpath for pixel (x,y). Veach 92,
// radiance tracing: from the camera the BxDF samples the incoming direction.
func (b *BDPT) traceCameraPath(x, y int) ([]Vertex, error) {
	vertices := make([]Vertex, 0, b.maxPathLength+2)

	ray := b.camera.GenerateRay(x, y, b.rng)
	pdfW, pdfA, cosTheta := b.camera.Evaluate(ray.Origin, ray.Direction)

	pdfForward := pdfW / cosTheta
	pdfReverse := pdfA

	// Camera vertex is z0
	idata := core.Intersection{
		Point: ray.Origin,
		Frame: core.NewFrame(b.camera.LensNormal(ray.Origin)),
	}
	vertices = append(vertices, Vertex{
		Idata:      idata,
		Throughput: core.White,
		PdfForward: pdfForward,
		PdfReverse: pdfReverse,
		G:          1,
		Dirac:      b.camera.IsDirac(),
		IsCamera:   true,
	})

	depth := 1
	throughput := core.White.Scale(b.camera.We(ray.Origin, ray.Direction) / pdfForward)

	for {
		hit, _, idata := b.scene.Intersect(ray)
		if !hit {
			return vertices, nil
		}

		mat, err := b.scene.Material(idata.MaterialID)
		if err != nil {
			return nil, err
		}
		f, direction, event, pdfW, cosTheta := mat.Sample(&idata, material.Radiance, b.rng)

		switch event {
		default:
			return vertices, nil

		case material.EventEmission:
			light, _, err := b.scene.Emitter(mat.EmitterID())
			if err != nil {
				return nil, err
			}
			vertex := Vertex{
				Idata:      idata,
				Throughput: throughput,
				PdfForward: 1,
				PdfReverse: 1,
				IsEmitter:  true,
				Material:   mat,
				Light:      light,
				EmitterID:  mat.EmitterID(),
			}
			vertex.G = gPrime(&vertex, &vertices[len(vertices)-1])
			vertices = append(vertices, vertex)
			return vertices, nil

		case material.EventDiffuse:
			pdfForward = pdfW / cosTheta
			if depth == 1 && b.camera.IsDirac() {
				pdfReverse = 0
			} else {
				_, evalPdfW, evalCosTheta := mat.Evaluate(ray.Direction.Negate(), direction, &idata, material.Radiance)
				pdfReverse = evalPdfW / evalCosTheta
			}
			vertex := Vertex{
				Idata:      idata,
				Throughput: throughput,
				PdfForward: pdfForward,
				PdfReverse: pdfReverse,
				Material:   mat,
			}
			vertex.G = gPrime(&vertex, &vertices[len(vertices)-1])
			vertices = append(vertices, vertex)
			// No shading correction on the radiance path
			throughput = throughput.Mul(f.Scale(1 / pdfForward))

		case material.EventReflect:
			pdfForward = pdfW / cosTheta
			if depth == 1 && b.camera.IsDirac() {
				pdfReverse = 0
			} else {
				pdfReverse = pdfForward
			}
			vertex := Vertex{
				Idata:      idata,
				Throughput: throughput,
				PdfForward: pdfForward,
				PdfReverse: pdfReverse,
				Dirac:      true,
				Material:   mat,
			}
			vertex.G = gPrime(&vertex, &vertices[len(vertices)-1])
			vertices = append(vertices, vertex)
			throughput = throughput.Mul(f)
		}

		depth++
		if depth > b.maxPathLength {
			break
		}
		ray = core.NewRayOffset(idata.Point, direction, core.EpsilonRay)
	}

	return vertices, nil
}

// gPrime is the geometry term between two non dirac vertices, with the
// cosines clamped to zero. The visibility factor is not included.
func gPrime(a, b *Vertex) float64 {
	delta := b.Point().Subtract(a.Point())
	evalDirection := delta.Normalize()
	return math.Max(0, evalDirection.Dot(a.Normal())) *
		math.Max(0, -evalDirection.Dot(b.Normal())) /
		delta.Dot(delta)
}
