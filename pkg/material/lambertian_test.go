package material

import (
	"math"
	"testing"

	"github.com/amitkumarghb/bpt-veach/pkg/core"
)

func testIntersection(normal core.Vec3, fromDirection core.Vec3) core.Intersection {
	return core.Intersection{
		Point:           core.Zero3,
		FromDirection:   fromDirection,
		ShadingNormal:   normal,
		GeometricNormal: normal,
		Frame:           core.NewFrame(normal),
	}
}

func TestLambertSample(t *testing.T) {
	albedo := core.NewColor(0.7, 0.5, 0.3)
	lambert := NewLambert(albedo)
	rng := core.NewRandom(3)
	idata := testIntersection(core.UnitZ, core.UnitZ)

	for i := 0; i < 1000; i++ {
		f, direction, event, pdfW, cosTheta := lambert.Sample(&idata, Radiance, rng)
		if event != EventDiffuse {
			t.Fatalf("sample %d: event %v, want diffuse", i, event)
		}
		if direction.Dot(core.UnitZ) < 0 {
			t.Fatalf("sample %d: direction %v below the surface", i, direction)
		}
		wantPdf := cosTheta * core.InvPi
		if math.Abs(pdfW-wantPdf) > 1e-12 {
			t.Fatalf("sample %d: pdf %v, want cos/pi = %v", i, pdfW, wantPdf)
		}
		want := albedo.Scale(core.InvPi)
		if f != want {
			t.Fatalf("sample %d: f = %v, want albedo/pi = %v", i, f, want)
		}
	}
}

func TestLambertSampleGrazing(t *testing.T) {
	lambert := NewLambert(core.White)
	rng := core.NewRandom(3)
	// Incoming direction below the epsilon cosine cutoff
	idata := testIntersection(core.UnitZ, core.NewVec3(1, 0, 1e-6).Normalize())

	f, direction, event, pdfW, cosTheta := lambert.Sample(&idata, Radiance, rng)
	if event != EventNone || f != core.Black || direction != core.Zero3 || pdfW != 0 || cosTheta != 0 {
		t.Errorf("grazing sample should be rejected, got event %v f %v", event, f)
	}
}

// Monte Carlo integrating f*cos over the hemisphere with the material's own
// sampler must reproduce the albedo
func TestLambertEnergy(t *testing.T) {
	albedo := float32(0.63)
	lambert := NewLambert(core.NewColor(albedo, albedo, albedo))
	rng := core.NewRandom(99)
	idata := testIntersection(core.UnitZ, core.UnitZ)

	samples := 1000000
	sum := 0.0
	for i := 0; i < samples; i++ {
		f, _, event, pdfW, cosTheta := lambert.Sample(&idata, Radiance, rng)
		if event != EventDiffuse {
			continue
		}
		sum += float64(f.R) * cosTheta / pdfW
	}
	mean := sum / float64(samples)
	if math.Abs(mean-float64(albedo)) > 0.01*float64(albedo) {
		t.Errorf("integrated reflectance = %v, want %v within 1%%", mean, albedo)
	}
}

func TestLambertEvaluate(t *testing.T) {
	lambert := NewLambert(core.NewColor(0.8, 0.8, 0.8))
	idata := testIntersection(core.UnitZ, core.UnitZ)

	up := core.NewVec3(0.3, 0.1, 0.9).Normalize()
	f, pdfW, cosTheta := lambert.Evaluate(up, core.UnitZ, &idata, Radiance)
	if f.IsBlack() {
		t.Error("evaluate above the surface returned black")
	}
	if math.Abs(pdfW-cosTheta*core.InvPi) > 1e-12 {
		t.Errorf("pdf %v, want cos/pi", pdfW)
	}

	down := core.NewVec3(0.3, 0.1, -0.9).Normalize()
	f, pdfW, _ = lambert.Evaluate(down, core.UnitZ, &idata, Radiance)
	if !f.IsBlack() || pdfW != 0 {
		t.Errorf("evaluate below the surface: f %v pdf %v, want black", f, pdfW)
	}

	// From direction below the surface is also black
	f, _, _ = lambert.Evaluate(up, down, &idata, Radiance)
	if !f.IsBlack() {
		t.Errorf("evaluate with from direction below the surface: f %v, want black", f)
	}
}

func TestLambertPDF(t *testing.T) {
	lambert := NewLambert(core.White)
	idata := testIntersection(core.UnitZ, core.UnitZ)

	dir := core.NewVec3(0, 0.6, 0.8)
	if got := lambert.PDF(dir, core.UnitZ, &idata); math.Abs(got-0.8*core.InvPi) > 1e-12 {
		t.Errorf("PDF = %v, want %v", got, 0.8*core.InvPi)
	}
	if got := lambert.PDF(dir.Negate(), core.UnitZ, &idata); got != 0 {
		t.Errorf("PDF below surface = %v, want 0", got)
	}
}

func TestLambertEmitterID(t *testing.T) {
	if got := NewLambert(core.White).EmitterID(); got != NoEmitter {
		t.Errorf("EmitterID = %d, want NoEmitter", got)
	}
}
