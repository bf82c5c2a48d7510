package material

import (
	"testing"

	"github.com/amitkumarghb/bpt-veach/pkg/core"
)

func TestEmissionEvents(t *testing.T) {
	emission := NewEmission(3)
	rng := core.NewRandom(1)

	front := testIntersection(core.UnitZ, core.NewVec3(0.2, 0, 1).Normalize())
	_, _, event, _, _ := emission.Sample(&front, Radiance, rng)
	if event != EventEmission {
		t.Errorf("front face: event %v, want emission", event)
	}

	back := testIntersection(core.UnitZ, core.NewVec3(0.2, 0, -1).Normalize())
	_, _, event, _, _ = emission.Sample(&back, Radiance, rng)
	if event != EventNone {
		t.Errorf("back face: event %v, want none", event)
	}
}

func TestEmissionID(t *testing.T) {
	if got := NewEmission(3).EmitterID(); got != 3 {
		t.Errorf("EmitterID = %d, want 3", got)
	}
}

func TestEmissionNoReflection(t *testing.T) {
	emission := NewEmission(0)
	idata := testIntersection(core.UnitZ, core.UnitZ)
	if f, pdfW, _ := emission.Evaluate(core.UnitZ, core.UnitZ, &idata, Radiance); !f.IsBlack() || pdfW != 0 {
		t.Error("emission material must not reflect")
	}
	if got := emission.PDF(core.UnitZ, core.UnitZ, &idata); got != 0 {
		t.Errorf("pdf = %v, want 0", got)
	}
}
