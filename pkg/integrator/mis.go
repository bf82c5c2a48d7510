package integrator

import (
	"math"
)

// node holds the relative generation densities of one full-path vertex,
// each already multiplied by the geometry term to the adjacent vertex
type node struct {
	pForward float64 // Flow from the emitter
	pReverse float64 // Flow from the camera
	dirac    bool
}

// mis maps a relative path probability to its heuristic weight. Veach 273.
func mis(value float64) float64 {
	// Balance
	return value
	// Power, beta=2
	// return value * value
}

// guardPdf clamps NaN and negative densities to zero
func guardPdf(pdf float64) float64 {
	if math.IsNaN(pdf) || pdf < 0 {
		return 0
	}
	return pdf
}

// weight computes the balance heuristic weight of the strategy with s
// emission vertices and t camera vertices, against every other strategy that
// could have produced the same path. Veach 306:
//
//	x_bar = x0 ... xk, starting from emitter to camera
//
//	ps+1 ... pk+1, starting at ps (light sub path)
//
//	p0     PA(x0)
//	--   = --------------------
//	p1     P(x1 -> x0) G(x0,x1)
//
//	pi+1   P(xi-1 -> xi) G(xi-1,xi)
//	---- = -------------------------  , 0<i<k
//	pi     P(xi+1 -> xi) G(xi+1,xi)
//
//	pk+1   P(xk-1 -> xk) G(xk-1,xk)
//	---- = -------------------------
//	pk     PA(xk)
//
//	ps-1 ... p0, starting at ps (eye/camera sub path)
//	uses reciprocal of above equations
func (b *BDPT) weight(s, t int, emissionPath, cameraPath []Vertex) (float64, error) {
	k := s + t - 1

	// Densities of the connecting edge, freshly evaluated at the two
	// connection endpoints
	var pdfSForward, pdfSReverse float64
	var pdfTForward, pdfTReverse float64

	switch {
	case s == 0:
		tVertex := &cameraPath[t-1]
		if tVertex.IsEmitter {
			evalDirection := cameraPath[t-2].Point().Subtract(tVertex.Point()).Normalize()
			emitterPdfW, emitterPdfA, emitterCosTheta := tVertex.Light.PdfLe(tVertex.Point(), evalDirection)
			selectProbability, err := b.scene.EmitterSelectProbability(tVertex.Material.EmitterID())
			if err != nil {
				return 0, err
			}
			pdfTForward = emitterPdfA * selectProbability
			pdfTReverse = emitterPdfW / emitterCosTheta
		}

	case t == 0:
		sVertex := &emissionPath[s-1]
		point := sVertex.Point()
		evalDirection := emissionPath[s-2].Point().Subtract(point).Normalize()
		pdfW, pdfA, cosTheta := b.camera.Evaluate(point, evalDirection)
		pdfSForward = pdfA
		pdfSReverse = pdfW / cosTheta

	default:
		sVertex := &emissionPath[s-1]
		tVertex := &cameraPath[t-1]
		sVertexPoint := sVertex.Point()
		tVertexPoint := tVertex.Point()

		{
			evalDirection := tVertexPoint.Subtract(sVertexPoint).Normalize()
			if s == 1 {
				pdfW := sVertex.Light.PdfW(sVertexPoint, evalDirection)
				if sVertex.Light.IsDirac() {
					pdfSForward = pdfW
				} else {
					pdfSForward = pdfW / sVertex.Normal().Dot(evalDirection)
				}
				pdfSReverse = sVertex.PdfReverse
			} else {
				previousDirection := emissionPath[s-2].Point().Subtract(sVertexPoint).Normalize()
				pdfSForward = sVertex.Material.PDF(evalDirection, previousDirection, &sVertex.Idata) / sVertex.Normal().Dot(evalDirection)
				pdfSReverse = sVertex.Material.PDF(previousDirection, evalDirection, &sVertex.Idata) / sVertex.Normal().Dot(previousDirection)
			}
		}

		{
			evalDirection := sVertexPoint.Subtract(tVertexPoint).Normalize()
			if t == 1 {
				// Dirac camera
				pdfW, _, _ := b.camera.Evaluate(tVertexPoint, evalDirection)
				pdfTForward = pdfW / tVertex.Normal().Dot(evalDirection)
				pdfTReverse = tVertex.PdfReverse
			} else {
				previousDirection := cameraPath[t-2].Point().Subtract(tVertexPoint).Normalize()
				pdfTForward = tVertex.Material.PDF(evalDirection, previousDirection, &tVertex.Idata) / tVertex.Normal().Dot(evalDirection)
				pdfTReverse = tVertex.Material.PDF(previousDirection, evalDirection, &tVertex.Idata) / tVertex.Normal().Dot(previousDirection)
			}
		}
	}

	pdfSForward = guardPdf(pdfSForward)
	pdfSReverse = guardPdf(pdfSReverse)
	pdfTForward = guardPdf(pdfTForward)
	pdfTReverse = guardPdf(pdfTReverse)

	nodes := make([]node, k+2)

	// Fill in the emission prefix
	for i := 0; i < s-1; i++ {
		nodes[i].pForward = emissionPath[i].PdfForward * emissionPath[i+1].G
		if i == 0 {
			nodes[i].pReverse = emissionPath[0].PdfReverse
		} else {
			nodes[i].pReverse = emissionPath[i].PdfReverse * emissionPath[i].G
		}
		nodes[i].dirac = emissionPath[i].Dirac
	}
	if s > 0 {
		if s-1 == k {
			nodes[s-1].pForward = pdfSForward
		} else {
			nodes[s-1].pForward = pdfSForward * gPrime(&emissionPath[s-1], &cameraPath[t-1])
		}
		if s == 1 {
			nodes[s-1].pReverse = pdfSReverse
		} else {
			nodes[s-1].pReverse = pdfSReverse * emissionPath[s-1].G
		}
		nodes[s-1].dirac = emissionPath[s-1].Dirac
	}

	// Fill in the camera suffix, mirrored
	for i := 0; i < t-1; i++ {
		if i == 0 {
			nodes[k-i].pForward = cameraPath[0].PdfReverse
		} else {
			nodes[k-i].pForward = cameraPath[i].PdfReverse * cameraPath[i].G
		}
		nodes[k-i].pReverse = cameraPath[i].PdfForward * cameraPath[i+1].G
		nodes[k-i].dirac = cameraPath[i].Dirac
	}
	if t > 0 {
		if t == 1 {
			nodes[k-(t-1)].pForward = pdfTReverse
		} else {
			nodes[k-(t-1)].pForward = pdfTReverse * cameraPath[t-1].G
		}
		if t-1 == k {
			nodes[k-(t-1)].pReverse = pdfTForward
		} else {
			nodes[k-(t-1)].pReverse = pdfTForward * gPrime(&emissionPath[s-1], &cameraPath[t-1])
		}
		nodes[k-(t-1)].dirac = cameraPath[t-1].Dirac
	}

	// Sum the relative weights of every alternative strategy.
	// The current strategy weighs one.
	sumPath := 1.0

	// March the connection toward the camera
	pk := 1.0
	for i := s; i <= k; i++ {
		if i == 0 {
			pk *= nodes[0].pReverse / nodes[1].pReverse
			if nodes[1].dirac {
				continue
			}
		} else if i == k {
			if b.camera.IsDirac() {
				// The lens cannot be hit, t=0 is not realisable
				break
			}
			pk *= nodes[k-1].pForward / nodes[k].pForward
		} else {
			pk *= nodes[i-1].pForward / nodes[i+1].pReverse
			if nodes[i].dirac || nodes[i+1].dirac {
				continue
			}
		}
		sumPath += mis(pk)
	}

	// March the connection toward the emitter
	pk = 1.0
	for i := s; i > 0; i-- {
		if i == k+1 {
			pk *= nodes[k].pForward / nodes[k-1].pForward
			if nodes[k-1].dirac {
				continue
			}
		} else if i == 1 {
			if emissionPath[0].Light.IsDirac() {
				// The source cannot be intersected, s=0 is not realisable
				break
			}
			pk *= nodes[1].pReverse / nodes[0].pReverse
		} else {
			pk *= nodes[i].pReverse / nodes[i-2].pForward
			if nodes[i-1].dirac || nodes[i-2].dirac {
				continue
			}
		}
		sumPath += mis(pk)
	}

	return 1.0 / sumPath, nil
}
