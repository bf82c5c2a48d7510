package renderer

import "time"

// RenderStats summarizes a completed render
type RenderStats struct {
	TotalPixels int           // Number of pixels rendered
	Workers     int           // Number of parallel workers used
	Elapsed     time.Duration // Wall clock render time
}
