package renderer

import (
	"fmt"
	"math"

	"github.com/amitkumarghb/bpt-veach/pkg/core"
)

// Camera is a pinhole camera.
//
// In the real world the image plane is behind the pinhole, but it is simpler
// to reason about when placed in front of it. The sensor plane is rescaled to
// a distance of one unit from the lens, which simplifies the pdf evaluations:
// areas and sensor vectors are scaled accordingly.
type Camera struct {
	// Sensor width in mm, a 35mm full-frame film back
	sensorWidth float64

	aspectRatio float64

	imageWidth  int
	imageHeight int

	position core.Vec3

	// View direction
	forward core.Vec3

	// Image plane vectors
	right core.Vec3
	up    core.Vec3

	sensorArea float64

	// Pinhole lens has no area; a value of one means no effect
	lensArea float64

	// Ratio of sensor width to focal length, sizes the unit-distance sensor
	scalar float64

	// Pixel to sensor-plane conversion factors
	dx float64
	dy float64
}

// NewCamera creates a pinhole camera at position looking at lookAt, with the
// focal length given in mm. Fails when position and target coincide.
func NewCamera(position, lookAt core.Vec3, focalLength float64, imageWidth, imageHeight int) (*Camera, error) {
	delta := lookAt.Subtract(position)
	if delta.Length() < core.EpsilonRay {
		return nil, fmt.Errorf("camera position and view target are too close together")
	}
	forward := delta.Normalize()

	// If the view direction is near collinear with world up (the z axis),
	// switch the helper axis
	worldUp := core.UnitZ
	if math.Abs(forward.Dot(core.UnitZ)) >= 0.99 {
		worldUp = core.UnitX
	}
	right := forward.Cross(worldUp).Normalize()
	up := right.Cross(forward).Normalize().Negate()

	aspectRatio := float64(imageWidth) / float64(imageHeight)
	scalar := 36.0 / focalLength

	return &Camera{
		sensorWidth: 36.0,
		aspectRatio: aspectRatio,
		imageWidth:  imageWidth,
		imageHeight: imageHeight,
		position:    position,
		forward:     forward,
		right:       right,
		up:          up,
		sensorArea:  scalar * scalar / aspectRatio,
		lensArea:    1.0,
		scalar:      scalar,
		dx:          1.0 / float64(imageWidth-1),
		dy:          1.0 / float64(imageHeight-1),
	}, nil
}

// GenerateRay builds a primary ray through pixel (x,y) with stratified jitter
func (c *Camera) GenerateRay(x, y int, rng *core.Random) core.Ray {
	rndX := rng.Float64() - 0.5
	rndY := rng.Float64() - 0.5

	dir := c.forward.
		Add(c.right.Multiply(c.scalar * ((float64(x)+rndX)*c.dx - 0.5))).
		Add(c.up.Multiply(c.scalar / c.aspectRatio * ((float64(y)+rndY)*c.dy - 0.5)))

	return core.NewRay(c.position, dir.Normalize())
}

// We evaluates the importance emitted by the camera for a point on the lens
// and a direction away from it. Veach 115.
func (c *Camera) We(evalPoint, evalDirection core.Vec3) float64 {
	cosTheta := c.forward.Dot(evalDirection)
	if cosTheta <= 0 {
		return 0
	}

	// Check the direction hits the unit-distance sensor
	x := evalDirection.Dot(c.right) / (cosTheta * c.scalar)
	y := evalDirection.Dot(c.up) / (cosTheta * c.scalar / c.aspectRatio)
	if math.Abs(x) > 0.5 || math.Abs(y) > 0.5 {
		return 0
	}

	// Lens point to sensor plane distance = 1 / cos_theta
	// pdf_W(sensor) = pdf_sensor_A * distance^2 / cos_theta
	//               = 1 / ( sensor_area * cos_theta^3 )
	// We = pdf_W(sensor) * pdf_A(lens) / cos_theta
	return 1.0 / (c.sensorArea * c.lensArea * cosTheta * cosTheta * cosTheta * cosTheta)
}

// Evaluate returns the sensor and lens densities for a lens point and a
// direction: pdf_W(sensor), pdf_A(lens), cos_theta. All zero when the point
// is off the lens or the direction misses the sensor.
func (c *Camera) Evaluate(lensPoint, evalDirection core.Vec3) (float64, float64, float64) {
	if lensPoint.Subtract(c.position).Length() > core.EpsilonRay {
		return 0, 0, 0
	}

	cosTheta := c.forward.Dot(evalDirection)
	if cosTheta < 0 {
		return 0, 0, 0
	}

	x := evalDirection.Dot(c.right) / (cosTheta * c.scalar)
	y := evalDirection.Dot(c.up) / (cosTheta * c.scalar / c.aspectRatio)
	if math.Abs(x) > 0.5 || math.Abs(y) > 0.5 {
		return 0, 0, 0
	}

	return 1.0 / (c.sensorArea * cosTheta * cosTheta * cosTheta), 1.0 / c.lensArea, cosTheta
}

// SampleLens returns a point on the lens, degenerate for a pinhole
func (c *Camera) SampleLens(rng *core.Random) core.Vec3 {
	return c.position
}

// LensNormal returns the lens normal at a point, zero when off the lens
func (c *Camera) LensNormal(lensPoint core.Vec3) core.Vec3 {
	if lensPoint.Subtract(c.position).Length() > core.EpsilonRay {
		return core.Zero3
	}
	return c.forward
}

// Sensor projects a world point through the lens onto the sensor plane and
// returns pixel coordinates
func (c *Camera) Sensor(worldPoint, lensPoint core.Vec3) (px, py float64, ok bool) {
	evalDirection := worldPoint.Subtract(c.position).Normalize()
	cosTheta := evalDirection.Dot(c.forward)
	if cosTheta <= 0 {
		return 0, 0, false
	}

	x := evalDirection.Dot(c.right) / (cosTheta * c.scalar)
	y := evalDirection.Dot(c.up) / (cosTheta * c.scalar / c.aspectRatio)
	if math.Abs(x) > 0.5 || math.Abs(y) > 0.5 {
		return 0, 0, false
	}

	return (x + 0.5) * float64(c.imageWidth), (y + 0.5) * float64(c.imageHeight), true
}

// IsDirac is true for a pinhole, no ray can hit the lens
func (c *Camera) IsDirac() bool { return true }
