package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/amitkumarghb/bpt-veach/pkg/core"
)

// Splat writes land on random cells, so accumulation is guarded by a set of
// striped locks rather than one coarse mutex
const sensorLockShards = 64

// Sensor holds the two accumulation buffers of a render. The pixel buffer is
// written by exactly one worker per pixel; the splat buffer receives light
// traced contributions addressed anywhere in the image and is serialized per
// cell through striped mutexes.
type Sensor struct {
	pixel []core.Color
	splat []core.Color

	imageWidth  int
	imageHeight int

	// Per-sample normalization applied at read time
	scalar float64

	locks [sensorLockShards]sync.Mutex
}

// NewSensor creates a sensor for the given resolution and sample count
func NewSensor(imageWidth, imageHeight, maxSamples int) (*Sensor, error) {
	if maxSamples < 1 {
		return nil, fmt.Errorf("invalid sensor config: needs at least one sample")
	}
	if imageWidth < 1 || imageHeight < 1 {
		return nil, fmt.Errorf("invalid sensor config: resolution %dx%d", imageWidth, imageHeight)
	}
	n := imageWidth * imageHeight
	return &Sensor{
		pixel:       make([]core.Color, n),
		splat:       make([]core.Color, n),
		imageWidth:  imageWidth,
		imageHeight: imageHeight,
		scalar:      1.0 / float64(maxSamples),
	}, nil
}

// Pixel stores the accumulated camera-path result for a pixel.
// Each pixel has a single writer, so no locking is needed.
func (s *Sensor) Pixel(x, y int, c core.Color) {
	if x < 0 || x >= s.imageWidth || y < 0 || y >= s.imageHeight {
		return
	}
	s.pixel[x+y*s.imageWidth] = c
}

// Splat accumulates a light-traced contribution into an arbitrary cell.
// Writes to the same cell are serialized by a striped lock.
func (s *Sensor) Splat(x, y int, c core.Color) {
	if x < 0 || x >= s.imageWidth || y < 0 || y >= s.imageHeight {
		return
	}
	index := x + y*s.imageWidth
	shard := index & (sensorLockShards - 1)
	s.locks[shard].Lock()
	s.splat[index] = s.splat[index].Add(c)
	s.locks[shard].Unlock()
}

// At returns the normalized color of a cell, pixel and splat combined
func (s *Sensor) At(x, y int) core.Color {
	if x < 0 || x >= s.imageWidth || y < 0 || y >= s.imageHeight {
		return core.Black
	}
	index := x + y*s.imageWidth
	return s.pixel[index].Add(s.splat[index]).Scale(s.scalar)
}

// Width returns the image width in pixels
func (s *Sensor) Width() int { return s.imageWidth }

// Height returns the image height in pixels
func (s *Sensor) Height() int { return s.imageHeight }

// encodeChannel gamma encodes a linear channel to an 8-bit value
func encodeChannel(v float32) uint8 {
	clamped := math.Min(1, math.Max(0, float64(v)))
	return uint8(math.Round(255.0 * math.Pow(clamped, 1.0/2.2)))
}

// Image converts the sensor to a gamma-encoded RGBA image
func (s *Sensor) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.imageWidth, s.imageHeight))
	for y := 0; y < s.imageHeight; y++ {
		for x := 0; x < s.imageWidth; x++ {
			c := s.At(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: encodeChannel(c.R),
				G: encodeChannel(c.G),
				B: encodeChannel(c.B),
				A: 255,
			})
		}
	}
	return img
}
