package config

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Shape selects the geometry the video is mapped onto.
type Shape string

const (
	ShapeQuad Shape = "quad"
	ShapeCube Shape = "cube"
)

// Profile selects the shader dialect and texture target.
type Profile string

const (
	// ProfileExternal samples a platform external image (GLES + OES_EGL_image_external).
	ProfileExternal Profile = "external"
	// ProfileGLES samples a regular 2D texture on GLES2.
	ProfileGLES Profile = "gles"
	// ProfileDesktop samples a 2D texture on a desktop 4.1 core context.
	ProfileDesktop Profile = "desktop"
)

// RenderConfig configures one render surface.
type RenderConfig struct {
	Shape          Shape      `yaml:"shape"`
	Profile        Profile    `yaml:"profile"`
	ClearColor     [4]float32 `yaml:"clear_color"`
	FieldOfView    float32    `yaml:"field_of_view"` // degrees
	Near           float32    `yaml:"near"`
	Far            float32    `yaml:"far"`
	CameraDistance float32    `yaml:"camera_distance"`
	RotationStep   float32    `yaml:"rotation_step"` // degrees, applied twice per frame
	TextureUnit    int        `yaml:"texture_unit"`
	Debug          bool       `yaml:"debug"`
}

// SourceConfig configures the synthetic frame source used by the preview hosts.
type SourceConfig struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	FPS    int   `yaml:"fps"`
	Seed   int64 `yaml:"seed"`
}

// Config is the on-disk configuration file.
type Config struct {
	Render RenderConfig `yaml:"render"`
	Source SourceConfig `yaml:"source"`
}

// DefaultRenderConfig returns the cube setup: 45° perspective over
// [0.1, 100], object pushed 5 units away, one degree per rotation step.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Shape:          ShapeCube,
		Profile:        ProfileExternal,
		ClearColor:     [4]float32{0, 0, 0, 0},
		FieldOfView:    45,
		Near:           0.1,
		Far:            100,
		CameraDistance: 5,
		RotationStep:   1,
		TextureUnit:    0,
	}
}

func DefaultSourceConfig() SourceConfig {
	return SourceConfig{
		Width:  320,
		Height: 180,
		FPS:    30,
		Seed:   1,
	}
}

func Default() Config {
	return Config{
		Render: DefaultRenderConfig(),
		Source: DefaultSourceConfig(),
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	return multierr.Combine(c.Render.Validate(), c.Source.Validate())
}

var ErrInvalid = errors.New("invalid configuration")

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalid}, args...)...)
}

func (c RenderConfig) Validate() error {
	var err error
	switch c.Shape {
	case ShapeQuad, ShapeCube:
	default:
		err = multierr.Append(err, invalid("shape %q", c.Shape))
	}
	switch c.Profile {
	case ProfileExternal, ProfileGLES, ProfileDesktop:
	default:
		err = multierr.Append(err, invalid("profile %q", c.Profile))
	}
	if c.FieldOfView <= 0 || c.FieldOfView >= 180 {
		err = multierr.Append(err, invalid("field_of_view %v must be in (0, 180)", c.FieldOfView))
	}
	if c.Near <= 0 {
		err = multierr.Append(err, invalid("near %v must be positive", c.Near))
	}
	if c.Far <= c.Near {
		err = multierr.Append(err, invalid("far %v must be greater than near %v", c.Far, c.Near))
	}
	if c.TextureUnit < 0 || c.TextureUnit > 7 {
		// GLES2 only guarantees eight combined units.
		err = multierr.Append(err, invalid("texture_unit %d must be in [0, 7]", c.TextureUnit))
	}
	for i, v := range c.ClearColor {
		if v < 0 || v > 1 {
			err = multierr.Append(err, invalid("clear_color[%d] %v must be in [0, 1]", i, v))
		}
	}
	return err
}

func (c SourceConfig) Validate() error {
	var err error
	if c.Width <= 0 || c.Height <= 0 {
		err = multierr.Append(err, invalid("source size %dx%d must be positive", c.Width, c.Height))
	}
	if c.FPS <= 0 {
		err = multierr.Append(err, invalid("source fps %d must be positive", c.FPS))
	}
	return err
}
