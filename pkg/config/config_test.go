package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

func float64Ptr(v float64) *float64 { return &v }

func TestParseVec3(t *testing.T) {
	tests := []struct {
		input   string
		want    core.Vec3
		wantErr bool
	}{
		{"6,1.2,3", core.NewVec3(6, 1.2, 3), false},
		{" -1 , 0.5 ,0 ", core.NewVec3(-1, 0.5, 0), false},
		{"1e-3,2,3", core.NewVec3(0.001, 2, 3), false},
		{"1,2", core.Vec3{}, true},
		{"1,2,3,4", core.Vec3{}, true},
		{"a,b,c", core.Vec3{}, true},
		{"", core.Vec3{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVec3(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVec3(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !got.Equals(tt.want) {
				t.Errorf("ParseVec3(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatVec3RoundTrip(t *testing.T) {
	v := core.NewVec3(6, 1.2, -3)
	got, err := ParseVec3(FormatVec3(v))
	if err != nil || !got.Equals(v) {
		t.Errorf("Round trip of %v gave %v, %v", v, got, err)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Width != 800 || cfg.Height != 600 || cfg.RaysPerPixel != 1000 {
		t.Errorf("Expected 800x600 at 1000 rays, got %dx%d at %d", cfg.Width, cfg.Height, cfg.RaysPerPixel)
	}
	if cfg.MaxDepth != 50 || cfg.WorkChunks != 64 {
		t.Errorf("Expected depth 50 and 64 chunks, got %d and %d", cfg.MaxDepth, cfg.WorkChunks)
	}
	if cfg.MaxThreads <= 0 {
		t.Errorf("Expected a positive thread count, got %d", cfg.MaxThreads)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PT_WIDTH":     "320",
		"PT_HEIGHT":    "240",
		"PT_SEED":      "99",
		"PT_SCENE":     "simple",
		"PT_LOOK_FROM": "1,2,3",
		"PT_FOV":       "40",
		"PT_APERTURE":  "0",
		"PT_S3_BUCKET": "renders",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := Default()
	if err := cfg.applyEnv(lookup); err != nil {
		t.Fatalf("applyEnv failed: %v", err)
	}

	if cfg.Width != 320 || cfg.Height != 240 || cfg.Seed != 99 || cfg.Scene != "simple" {
		t.Errorf("Environment not applied: %+v", cfg)
	}
	if cfg.Camera.LookFrom == nil || !cfg.Camera.LookFrom.Equals(core.NewVec3(1, 2, 3)) {
		t.Errorf("Expected look-from override, got %v", cfg.Camera.LookFrom)
	}
	if cfg.Camera.FOV == nil || *cfg.Camera.FOV != 40 {
		t.Errorf("Expected fov override, got %v", cfg.Camera.FOV)
	}
	if cfg.Camera.Aperture == nil || *cfg.Camera.Aperture != 0 {
		t.Errorf("Expected explicit zero aperture, got %v", cfg.Camera.Aperture)
	}
	if cfg.Camera.Up != nil || cfg.Camera.FocusMultiplier != nil {
		t.Errorf("Expected unset camera fields to stay nil, got %+v", cfg.Camera)
	}
	if cfg.S3.Bucket != "renders" {
		t.Errorf("Expected S3 bucket, got %q", cfg.S3.Bucket)
	}
	if cfg.RaysPerPixel != 1000 {
		t.Errorf("Expected unset values to keep defaults, got %d rays", cfg.RaysPerPixel)
	}
}

func TestApplyEnvErrors(t *testing.T) {
	for _, key := range []string{"PT_WIDTH", "PT_FOV", "PT_UP", "PT_SEED"} {
		t.Run(key, func(t *testing.T) {
			lookup := func(k string) (string, bool) {
				if k == key {
					return "bogus", true
				}
				return "", false
			}
			cfg := Default()
			if err := cfg.applyEnv(lookup); err == nil {
				t.Errorf("Expected an error for %s=bogus", key)
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	// Register cleanup for variables godotenv will set, then clear them
	for _, key := range []string{"PT_RAYS_PER_PIXEL", "PT_OUTPUT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("PT_WIDTH", "320")

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "PT_RAYS_PER_PIXEL=16\nPT_OUTPUT=out/frame.tiff\nPT_WIDTH=100\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.RaysPerPixel != 16 || cfg.Output != "out/frame.tiff" {
		t.Errorf("Expected values from the env file, got %d rays and output %q", cfg.RaysPerPixel, cfg.Output)
	}
	if cfg.Width != 320 {
		t.Errorf("Expected the environment to win over the file, got width %d", cfg.Width)
	}
}

func TestLoadMissingEnvFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("Expected a missing env file to be ignored, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero rays", func(c *Config) { c.RaysPerPixel = 0 }, true},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }, true},
		{"fov too wide", func(c *Config) { c.Camera.FOV = float64Ptr(180) }, true},
		{"zero fov", func(c *Config) { c.Camera.FOV = float64Ptr(0) }, true},
		{"negative aperture", func(c *Config) { c.Camera.Aperture = float64Ptr(-0.1) }, true},
		{"pinhole aperture", func(c *Config) { c.Camera.Aperture = float64Ptr(0) }, false},
		{"zero focus", func(c *Config) { c.Camera.FocusMultiplier = float64Ptr(0) }, true},
		{"unsupported output", func(c *Config) { c.Output = "render.gif" }, true},
		{"no output at all", func(c *Config) { c.Output = "" }, true},
		{"s3 only", func(c *Config) { c.Output = ""; c.S3.Bucket = "b"; c.S3.Key = "k.png" }, false},
		{"s3 without key", func(c *Config) { c.S3.Bucket = "b" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegisterFlags(t *testing.T) {
	cfg := Default()
	cfg.RaysPerPixel = 16 // as if loaded from the environment

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	RegisterFlags(fs, &cfg)

	args := []string{"-width", "200", "-height", "100", "-look-at", "0,1,0", "-seed", "5"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Width != 200 || cfg.Height != 100 || cfg.Seed != 5 {
		t.Errorf("Flags not applied: %+v", cfg)
	}
	if cfg.Camera.LookAt == nil || !cfg.Camera.LookAt.Equals(core.NewVec3(0, 1, 0)) {
		t.Errorf("Expected look-at flag to be parsed, got %v", cfg.Camera.LookAt)
	}
	if cfg.Camera.Aperture != nil {
		t.Errorf("Expected aperture to stay unset without its flag, got %v", *cfg.Camera.Aperture)
	}
	if cfg.RaysPerPixel != 16 {
		t.Errorf("Expected loaded value to survive when its flag is absent, got %d", cfg.RaysPerPixel)
	}
	if aspect := cfg.CameraOverrides().AspectRatio; aspect == nil || *aspect != 2 {
		t.Errorf("Expected aspect ratio 2, got %v", aspect)
	}
}

func TestPinholeApertureFlag(t *testing.T) {
	cfg := Default()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	RegisterFlags(fs, &cfg)
	if err := fs.Parse([]string{"-aperture", "0"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Pinhole config should be valid: %v", err)
	}
	s, err := scene.Create("spheres", 1, cfg.CameraOverrides())
	if err != nil {
		t.Fatal(err)
	}
	if s.CameraConfig.Aperture != 0 {
		t.Errorf("Expected camera aperture 0, got %v", s.CameraConfig.Aperture)
	}
	if s.CameraConfig.FOV != renderer.DefaultCameraConfig().FOV {
		t.Errorf("Expected scene fov to be kept, got %v", s.CameraConfig.FOV)
	}
}
