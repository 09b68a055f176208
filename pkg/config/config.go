package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shirou/gopsutil/cpu"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/output"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "PT_"

// Config is the complete process configuration for a render
type Config struct {
	Width        int
	Height       int
	RaysPerPixel int
	WorkChunks   int
	MaxThreads   int
	MaxDepth     int
	Seed         int64
	Scene        string
	Output       string
	PreviewWidth int

	// Camera overrides applied on top of the scene's camera. Nil fields keep
	// the scene's value; AspectRatio is always derived from Width and Height.
	Camera renderer.CameraOverride

	S3 output.S3Config
}

// Default returns the reference render configuration
func Default() Config {
	render := renderer.DefaultConfig()
	return Config{
		Width:        render.Width,
		Height:       render.Height,
		RaysPerPixel: render.RaysPerPixel,
		WorkChunks:   render.WorkChunks,
		MaxThreads:   DefaultThreads(),
		MaxDepth:     render.MaxDepth,
		Scene:        scene.DefaultSceneID,
		Output:       "output/render.png",
		PreviewWidth: 400,
		S3:           output.S3Config{Region: "us-east-1"},
	}
}

// DefaultThreads returns the number of logical CPUs
func DefaultThreads() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// Load reads envFile if it exists, then applies PT_* environment variables on top
// of the defaults. Variables already set in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Default()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	ints := map[string]*int{
		"WIDTH":          &c.Width,
		"HEIGHT":         &c.Height,
		"RAYS_PER_PIXEL": &c.RaysPerPixel,
		"WORK_CHUNKS":    &c.WorkChunks,
		"MAX_THREADS":    &c.MaxThreads,
		"MAX_DEPTH":      &c.MaxDepth,
		"PREVIEW_WIDTH":  &c.PreviewWidth,
	}
	floats := map[string]**float64{
		"FOV":      &c.Camera.FOV,
		"APERTURE": &c.Camera.Aperture,
		"FOCUS":    &c.Camera.FocusMultiplier,
	}
	vectors := map[string]**core.Vec3{
		"LOOK_FROM": &c.Camera.LookFrom,
		"LOOK_AT":   &c.Camera.LookAt,
		"UP":        &c.Camera.Up,
	}
	strs := map[string]*string{
		"SCENE":         &c.Scene,
		"OUTPUT":        &c.Output,
		"S3_BUCKET":     &c.S3.Bucket,
		"S3_KEY":        &c.S3.Key,
		"S3_REGION":     &c.S3.Region,
		"S3_ENDPOINT":   &c.S3.Endpoint,
		"S3_ACCESS_KEY": &c.S3.AccessKey,
		"S3_SECRET_KEY": &c.S3.SecretKey,
	}

	for name, dst := range ints {
		if value, ok := lookup(EnvPrefix + name); ok {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
			}
			*dst = n
		}
	}
	for name, dst := range floats {
		if value, ok := lookup(EnvPrefix + name); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
			}
			*dst = &f
		}
	}
	for name, dst := range vectors {
		if value, ok := lookup(EnvPrefix + name); ok {
			v, err := ParseVec3(value)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
			}
			*dst = &v
		}
	}
	for name, dst := range strs {
		if value, ok := lookup(EnvPrefix + name); ok {
			*dst = value
		}
	}
	if value, ok := lookup(EnvPrefix + "SEED"); ok {
		seed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return fmt.Errorf("%sSEED: %w", EnvPrefix, err)
		}
		c.Seed = seed
	}

	return nil
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	if err := c.RenderConfig().Validate(); err != nil {
		return err
	}
	camera := c.Camera
	switch {
	case c.MaxDepth < 0:
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	case camera.FOV != nil && (*camera.FOV <= 0 || *camera.FOV >= 180):
		return fmt.Errorf("fov must be in (0, 180) degrees, got %v", *camera.FOV)
	case camera.Aperture != nil && *camera.Aperture < 0:
		return fmt.Errorf("aperture must not be negative, got %v", *camera.Aperture)
	case camera.FocusMultiplier != nil && *camera.FocusMultiplier <= 0:
		return fmt.Errorf("focus multiplier must be positive, got %v", *camera.FocusMultiplier)
	case c.PreviewWidth < 0:
		return fmt.Errorf("preview width must not be negative, got %d", c.PreviewWidth)
	case c.Output == "" && !c.S3.Enabled():
		return errors.New("no output configured")
	case c.S3.Enabled() && c.S3.Key == "":
		return errors.New("S3 bucket set without an object key")
	}
	if c.Output != "" {
		if _, err := output.FormatFromPath(c.Output); err != nil {
			return err
		}
	}
	return nil
}

// RenderConfig returns the renderer settings
func (c Config) RenderConfig() renderer.Config {
	return renderer.Config{
		Width:        c.Width,
		Height:       c.Height,
		RaysPerPixel: c.RaysPerPixel,
		WorkChunks:   c.WorkChunks,
		MaxThreads:   c.MaxThreads,
		MaxDepth:     c.MaxDepth,
		Seed:         c.Seed,
	}
}

// CameraOverrides returns the camera settings with the aspect ratio of the image
func (c Config) CameraOverrides() renderer.CameraOverride {
	camera := c.Camera
	if c.Height > 0 {
		aspect := float64(c.Width) / float64(c.Height)
		camera.AspectRatio = &aspect
	}
	return camera
}
