package renderer

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Integrator estimates the radiance arriving at a single pixel and writes
// the result to the sensor
type Integrator interface {
	Process(x, y int) error
}

// rowResult carries a finished row back to the driver
type rowResult struct {
	row int
	err error
}

// Render drives the integrators over the image with a pool of worker
// goroutines (one per CPU by default), rows partitioned over a task channel. Every worker owns its own integrator
// instance; the only shared mutable state is the sensor. Per-pixel PRNG
// seeding keeps the output independent of scheduling order.
func Render(newIntegrator func() Integrator, width, height, workers int, logger *zap.Logger) (RenderStats, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	logger.Info("render start",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("workers", workers),
	)
	startTime := time.Now()

	tasks := make(chan int, height)
	results := make(chan rowResult, height)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			integrator := newIntegrator()
			for y := range tasks {
				var rowErr error
				for x := 0; x < width; x++ {
					if err := integrator.Process(x, y); err != nil {
						rowErr = err
						break
					}
				}
				results <- rowResult{row: y, err: rowErr}
			}
		}()
	}

	for y := 0; y < height; y++ {
		tasks <- y
	}
	close(tasks)

	go func() {
		wg.Wait()
		close(results)
	}()

	rowsDone := 0
	var firstErr error
	for result := range results {
		if result.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("row %d: %w", result.row, result.err)
		}
		rowsDone++
		if rowsDone%100 == 0 {
			logger.Debug("render progress", zap.Int("rows", rowsDone), zap.Int("total", height))
		}
	}

	stats := RenderStats{
		TotalPixels: width * height,
		Workers:     workers,
		Elapsed:     time.Since(startTime),
	}
	if firstErr != nil {
		return stats, firstErr
	}

	logger.Info("render complete",
		zap.Int("pixels", stats.TotalPixels),
		zap.Duration("elapsed", stats.Elapsed),
	)
	return stats, nil
}
