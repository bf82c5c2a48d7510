// Package config handles render configuration loading and validation.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all render settings
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Scene   SceneConfig   `yaml:"scene"`
	Camera  CameraConfig  `yaml:"camera"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// RenderConfig holds image resolution and sampling settings
type RenderConfig struct {
	ImageWidth  int `yaml:"image_width"`
	ImageHeight int `yaml:"image_height"`
	// Samples per pixel
	MaxSamples int `yaml:"max_samples"`
	// Maximum number of surface hits on each subpath
	MaxPathLength int `yaml:"max_path_length"`
	// Parallel workers, zero means one per CPU
	Workers int `yaml:"workers"`
}

// SceneConfig selects the Cornell box variant
type SceneConfig struct {
	// True for a diffuse tall block, false for a mirror
	DiffuseTallBlock bool `yaml:"diffuse_tall_block"`
	// True for two ceiling light triangles, false for four
	SimpleEmitter bool `yaml:"simple_emitter"`
}

// CameraConfig holds the pinhole camera placement
type CameraConfig struct {
	Position [3]float64 `yaml:"position"`
	LookAt   [3]float64 `yaml:"look_at"`
	// Lens focal length in mm
	FocalLength float64 `yaml:"focal_length"`
}

// OutputConfig holds the image output settings
type OutputConfig struct {
	// Output path without extension
	File string `yaml:"file"`
	// tga, png, bmp or webp
	Format string `yaml:"format"`
	// Write the 19 byte TGA header variant some libgdk loaders need
	LibgdkWorkaround bool `yaml:"libgdk_workaround"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns a Config with the stock Cornell render settings
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			ImageWidth:    400,
			ImageHeight:   400,
			MaxSamples:    25,
			MaxPathLength: 5,
			Workers:       0,
		},
		Scene: SceneConfig{
			DiffuseTallBlock: true,
			SimpleEmitter:    true,
		},
		Camera: CameraConfig{
			// Cornell camera, coordinates for world up on the z axis
			Position:    [3]float64{-278, -800, 273},
			LookAt:      [3]float64{-278, 0, 273},
			FocalLength: 50,
		},
		Output: OutputConfig{
			File:   "result",
			Format: "tga",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML file over the defaults
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate clamps the sampling settings and rejects unusable values
func (c *Config) Validate() error {
	if c.Render.ImageWidth < 1 || c.Render.ImageHeight < 1 {
		return fmt.Errorf("invalid resolution %dx%d", c.Render.ImageWidth, c.Render.ImageHeight)
	}
	if c.Render.MaxSamples < 1 {
		c.Render.MaxSamples = 1
	}
	if c.Render.MaxPathLength < 3 {
		c.Render.MaxPathLength = 3
	}
	if c.Camera.FocalLength <= 0 {
		return fmt.Errorf("invalid focal length %g", c.Camera.FocalLength)
	}
	switch c.Output.Format {
	case "tga", "png", "bmp", "webp":
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	return nil
}
