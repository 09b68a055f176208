package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/config"
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/output"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

func main() {
	envFile := os.Getenv("PT_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	config.RegisterFlags(flag.CommandLine, &cfg)
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Sphere Path Tracer")
		fmt.Println("Usage: sphere-tracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		for _, group := range scene.ListAllScenes().Groups {
			for _, info := range group.Scenes {
				fmt.Printf("  %-12s - %s\n", info.ID, info.Description)
			}
		}
		fmt.Println()
		fmt.Println("Every option can also be set as a PT_* environment variable or in a .env file.")
		return
	}

	logger := renderer.NewDefaultLogger()
	logHostInfo(logger)

	if err := run(context.Background(), cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run renders cfg.Scene, rewriting the output file after every chunk and uploading
// the finished image to S3 when a bucket is configured
func run(ctx context.Context, cfg config.Config, logger core.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	selectedScene, err := createScene(cfg)
	if err != nil {
		return err
	}
	logger.Printf("Using %s scene (%d spheres)...\n", cfg.Scene, selectedScene.GetPrimitiveCount())

	var sinks output.MultiSink
	if cfg.Output != "" {
		fileSink, err := output.NewFileSink(cfg.Output)
		if err != nil {
			return err
		}
		sinks = append(sinks, fileSink)
	}

	var uploader *output.S3Sink
	if cfg.S3.Enabled() {
		client, err := output.NewS3Client(cfg.S3)
		if err != nil {
			return err
		}
		if uploader, err = output.NewS3Sink(client, cfg.S3.Bucket, cfg.S3.Key, logger); err != nil {
			return err
		}
	}

	r := renderer.NewRenderer(selectedScene.World, selectedScene.Camera, cfg.RenderConfig(), logger)

	frame, stats, err := r.Render(ctx, sinks)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	logger.Printf("%d pixels, %d samples (%.0f samples/sec) across %d chunks on %d workers\n",
		stats.TotalPixels, stats.TotalSamples, stats.SamplesPerSecond(), stats.Chunks, stats.Workers)

	if cfg.Output != "" {
		logger.Printf("Render saved as %s\n", cfg.Output)
	}
	if uploader != nil {
		if err := uploader.Upload(ctx, cfg.Width, cfg.Height, frame); err != nil {
			return err
		}
	}

	return nil
}

// createScene builds the configured scene with the camera overrides and image aspect ratio
func createScene(cfg config.Config) (*scene.Scene, error) {
	id := strings.TrimSpace(cfg.Scene)
	if id == "" {
		return nil, fmt.Errorf("no scene specified")
	}
	return scene.Create(id, cfg.Seed, cfg.CameraOverrides())
}
