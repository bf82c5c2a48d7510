package renderer

import (
	"math"
	"sync"
	"testing"

	"github.com/amitkumarghb/bpt-veach/pkg/core"
)

func TestNewSensorValidation(t *testing.T) {
	if _, err := NewSensor(4, 4, 0); err == nil {
		t.Error("zero samples must fail")
	}
	if _, err := NewSensor(0, 4, 1); err == nil {
		t.Error("zero width must fail")
	}
}

func TestSensorNormalization(t *testing.T) {
	s, err := NewSensor(4, 4, 8)
	if err != nil {
		t.Fatal(err)
	}

	s.Pixel(1, 2, core.NewColor(8, 4, 2))
	s.Splat(1, 2, core.NewColor(8, 0, 0))

	// Read time returns (pixel + splat) / max_samples
	got := s.At(1, 2)
	want := core.NewColor(2, 0.5, 0.25)
	if got != want {
		t.Errorf("At(1,2) = %v, want %v", got, want)
	}
	if s.At(0, 0) != core.Black {
		t.Errorf("untouched cell = %v, want black", s.At(0, 0))
	}
}

func TestSensorBounds(t *testing.T) {
	s, err := NewSensor(2, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	// Out of bounds writes are ignored, reads are black
	s.Pixel(5, 0, core.White)
	s.Splat(-1, 0, core.White)
	s.Splat(0, 2, core.White)
	if got := s.At(5, 0); got != core.Black {
		t.Errorf("out of bounds read = %v", got)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if s.At(x, y) != core.Black {
				t.Errorf("cell (%d,%d) touched by out of bounds write", x, y)
			}
		}
	}
}

// Splat writes race across workers; the striped locks must keep the sums exact
func TestSensorConcurrentSplats(t *testing.T) {
	s, err := NewSensor(8, 8, 1)
	if err != nil {
		t.Fatal(err)
	}

	workers := 8
	perWorker := 1000
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				s.Splat(3, 5, core.NewColor(1, 0, 0))
			}
		}()
	}
	wg.Wait()

	want := float32(workers * perWorker)
	if got := s.At(3, 5).R; got != want {
		t.Errorf("accumulated splat = %v, want %v", got, want)
	}
}

func TestEncodeChannel(t *testing.T) {
	tests := []struct {
		in   float32
		want uint8
	}{
		{0, 0},
		{1, 255},
		{2, 255},  // clamped
		{-0.5, 0}, // clamped
		{0.5, uint8(math.Round(255 * math.Pow(0.5, 1.0/2.2)))},
	}
	for _, tt := range tests {
		if got := encodeChannel(tt.in); got != tt.want {
			t.Errorf("encodeChannel(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
