package material

import (
	"math"
	"testing"

	"github.com/amitkumarghb/bpt-veach/pkg/core"
)

func TestShadingCorrectionRadiance(t *testing.T) {
	idata := core.Intersection{
		ShadingNormal:   core.NewVec3(0.2, 0, 1).Normalize(),
		GeometricNormal: core.UnitZ,
	}
	if got := ShadingCorrection(core.UnitZ, core.UnitZ, &idata, Radiance); got != 1 {
		t.Errorf("radiance mode correction = %v, want 1", got)
	}
}

func TestShadingCorrectionMatchedNormals(t *testing.T) {
	idata := core.Intersection{
		ShadingNormal:   core.UnitZ,
		GeometricNormal: core.UnitZ,
	}
	out := core.NewVec3(0.3, 0.2, 0.9).Normalize()
	in := core.NewVec3(-0.1, 0.4, 0.9).Normalize()
	if got := ShadingCorrection(out, in, &idata, Importance); math.Abs(got-1) > 1e-12 {
		t.Errorf("matched normals correction = %v, want 1", got)
	}
}

func TestShadingCorrectionDivergentNormals(t *testing.T) {
	shading := core.NewVec3(0.3, 0, 1).Normalize()
	idata := core.Intersection{
		ShadingNormal:   shading,
		GeometricNormal: core.UnitZ,
	}
	out := core.NewVec3(0, 0.4, 0.9).Normalize()
	in := core.NewVec3(0.5, -0.1, 0.8).Normalize()

	want := math.Abs(out.Dot(shading)*in.Dot(core.UnitZ)) /
		math.Abs(out.Dot(core.UnitZ)*in.Dot(shading))
	if got := ShadingCorrection(out, in, &idata, Importance); math.Abs(got-want) > 1e-12 {
		t.Errorf("correction = %v, want %v", got, want)
	}
}

func TestShadingCorrectionDegenerate(t *testing.T) {
	idata := core.Intersection{
		ShadingNormal:   core.UnitZ,
		GeometricNormal: core.UnitX,
	}
	// Denominator underflows: outgoing perpendicular to the geometric normal
	if got := ShadingCorrection(core.UnitZ, core.UnitZ, &idata, Importance); got != 0 {
		t.Errorf("degenerate correction = %v, want 0", got)
	}
}
