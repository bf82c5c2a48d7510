package material

import (
	"testing"

	"github.com/amitkumarghb/bpt-veach/pkg/core"
)

func TestMirrorSample(t *testing.T) {
	mirror := NewMirror(core.NewColor(0.9, 0.9, 0.9))
	rng := core.NewRandom(5)

	from := core.NewVec3(1, 0, 1).Normalize()
	idata := testIntersection(core.UnitZ, from)

	f, direction, event, pdfW, cosTheta := mirror.Sample(&idata, Radiance, rng)
	if event != EventReflect {
		t.Fatalf("event %v, want reflect", event)
	}
	// Perfect reflection around the normal
	want := core.NewVec3(-1, 0, 1).Normalize()
	if direction.Subtract(want).Length() > 1e-12 {
		t.Errorf("reflected direction %v, want %v", direction, want)
	}
	if pdfW != 1 {
		t.Errorf("pdf %v, want 1 for a dirac sample", pdfW)
	}
	if f != core.NewColor(0.9, 0.9, 0.9) {
		t.Errorf("f = %v, want reflectance", f)
	}
	if cosTheta != direction.Dot(core.UnitZ) {
		t.Errorf("cosTheta %v does not match the sampled direction", cosTheta)
	}
}

func TestMirrorBackFace(t *testing.T) {
	mirror := NewMirror(core.White)
	rng := core.NewRandom(5)
	idata := testIntersection(core.UnitZ, core.NewVec3(0, 0, -1))

	_, _, event, _, _ := mirror.Sample(&idata, Radiance, rng)
	if event != EventNone {
		t.Errorf("back face sample: event %v, want none", event)
	}
}

// A delta distribution cannot be evaluated, only sampled
func TestMirrorDelta(t *testing.T) {
	mirror := NewMirror(core.White)
	idata := testIntersection(core.UnitZ, core.UnitZ)

	f, pdfW, cosTheta := mirror.Evaluate(core.UnitZ, core.UnitZ, &idata, Radiance)
	if !f.IsBlack() || pdfW != 0 || cosTheta != 0 {
		t.Errorf("evaluate of a delta: f %v pdf %v cos %v, want zeros", f, pdfW, cosTheta)
	}
	if got := mirror.Factor(core.UnitZ, core.UnitZ, &idata, Radiance); !got.IsBlack() {
		t.Errorf("factor of a delta: %v, want black", got)
	}
	if got := mirror.PDF(core.UnitZ, core.UnitZ, &idata); got != 0 {
		t.Errorf("pdf of a delta: %v, want 0", got)
	}
	if got := mirror.EmitterID(); got != NoEmitter {
		t.Errorf("EmitterID = %d, want NoEmitter", got)
	}
}
