package main

import (
	"flag"
	"os"

	"go.uber.org/zap"

	"github.com/amitkumarghb/bpt-veach/pkg/config"
	"github.com/amitkumarghb/bpt-veach/pkg/core"
	"github.com/amitkumarghb/bpt-veach/pkg/integrator"
	"github.com/amitkumarghb/bpt-veach/pkg/logger"
	"github.com/amitkumarghb/bpt-veach/pkg/renderer"
	"github.com/amitkumarghb/bpt-veach/pkg/scene"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	outputFile := flag.String("output", "", "Output path without extension (overrides config)")
	format := flag.String("format", "", "Output format: tga, png, bmp or webp (overrides config)")
	samples := flag.Int("spp", 0, "Samples per pixel (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			zap.NewExample().Error("could not load config", zap.Error(err))
			os.Exit(1)
		}
		cfg = loaded
	}
	if *outputFile != "" {
		cfg.Output.File = *outputFile
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	if *samples > 0 {
		cfg.Render.MaxSamples = *samples
	}

	log := logger.New(cfg.Logging.Level, logger.DefaultFileConfig(cfg.Logging.File))
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", zap.Error(err))
		os.Exit(1)
	}

	sc := scene.NewCornellBox(cfg.Scene.DiffuseTallBlock, cfg.Scene.SimpleEmitter)
	if !sc.IsValid() {
		log.Error("nothing to render, no light and/or objects")
		os.Exit(1)
	}

	camera, err := renderer.NewCamera(
		core.NewVec3(cfg.Camera.Position[0], cfg.Camera.Position[1], cfg.Camera.Position[2]),
		core.NewVec3(cfg.Camera.LookAt[0], cfg.Camera.LookAt[1], cfg.Camera.LookAt[2]),
		cfg.Camera.FocalLength,
		cfg.Render.ImageWidth,
		cfg.Render.ImageHeight,
	)
	if err != nil {
		log.Error("invalid camera", zap.Error(err))
		os.Exit(1)
	}

	sensor, err := renderer.NewSensor(cfg.Render.ImageWidth, cfg.Render.ImageHeight, cfg.Render.MaxSamples)
	if err != nil {
		log.Error("invalid sensor", zap.Error(err))
		os.Exit(1)
	}

	newIntegrator := func() renderer.Integrator {
		return integrator.NewBDPT(camera, sensor, sc, cfg.Render.MaxSamples, cfg.Render.MaxPathLength)
	}

	stats, err := renderer.Render(newIntegrator, cfg.Render.ImageWidth, cfg.Render.ImageHeight, cfg.Render.Workers, log)
	if err != nil {
		log.Error("render failed", zap.Error(err))
		os.Exit(1)
	}

	log.Info("saving image", zap.String("format", cfg.Output.Format))
	fileName, err := renderer.SaveImage(cfg.Output.File, sensor, cfg.Output.Format, cfg.Output.LibgdkWorkaround)
	if err != nil {
		log.Error("PANIC! could not save image", zap.Error(err))
		os.Exit(1)
	}

	log.Info("work complete",
		zap.String("file", fileName),
		zap.Duration("elapsed", stats.Elapsed),
		zap.Int("pixels", stats.TotalPixels),
	)
}
