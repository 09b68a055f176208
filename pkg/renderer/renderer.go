package renderer

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// FrameSink receives the whole frame buffer after every completed chunk and
// once more when rendering finishes. Pixels not yet rendered are zero.
// The buffer is owned by the renderer and must not be retained after Flush returns.
type FrameSink interface {
	Flush(width, height int, pixels []byte) error
}

// FrameSinkFunc adapts a function to FrameSink
type FrameSinkFunc func(width, height int, pixels []byte) error

func (f FrameSinkFunc) Flush(width, height int, pixels []byte) error {
	return f(width, height, pixels)
}

// Config contains configuration for a render
type Config struct {
	Width        int   // Image width in pixels
	Height       int   // Image height in pixels
	RaysPerPixel int   // Samples averaged per pixel
	WorkChunks   int   // Number of contiguous pixel ranges the image is split into
	MaxThreads   int   // Maximum concurrent workers (0 = use CPU count)
	MaxDepth     int   // Maximum bounce depth (0 = integrator default)
	Seed         int64 // Base seed for chunk random streams (0 = seed from the clock)
}

// DefaultConfig returns the reference render settings
func DefaultConfig() Config {
	return Config{
		Width:        800,
		Height:       600,
		RaysPerPixel: 1000,
		WorkChunks:   64,
		MaxThreads:   0,
		MaxDepth:     integrator.DefaultMaxDepth,
	}
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("invalid image size %dx%d", c.Width, c.Height)
	case c.RaysPerPixel <= 0:
		return fmt.Errorf("rays per pixel must be positive, got %d", c.RaysPerPixel)
	case c.WorkChunks <= 0:
		return fmt.Errorf("work chunks must be positive, got %d", c.WorkChunks)
	case c.MaxThreads < 0:
		return fmt.Errorf("max threads must not be negative, got %d", c.MaxThreads)
	}
	return nil
}

// Renderer partitions the image into work chunks, renders them on a bounded
// worker pool and assembles the results into a single RGBA frame buffer.
type Renderer struct {
	world      geometry.Hittable
	camera     *Camera
	config     Config
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRenderer creates a renderer for world as seen through camera
func NewRenderer(world geometry.Hittable, camera *Camera, config Config, logger core.Logger) *Renderer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Renderer{
		world:      world,
		camera:     camera,
		config:     config,
		integrator: integrator.NewPathTracingIntegrator(config.MaxDepth),
		logger:     logger,
	}
}

// SetIntegrator replaces the integrator used for every sample
func (r *Renderer) SetIntegrator(integratorInst integrator.Integrator) {
	r.integrator = integratorInst
}

// Config returns the render configuration
func (r *Renderer) Config() Config {
	return r.config
}

// Render renders the full frame and returns the RGBA buffer, row-major with
// 4 bytes per pixel. sink may be nil. A failing flush or chunk aborts the render.
func (r *Renderer) Render(ctx context.Context, sink FrameSink) ([]byte, RenderStats, error) {
	if err := r.config.Validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("render config: %w", err)
	}
	if sink == nil {
		sink = FrameSinkFunc(func(int, int, []byte) error { return nil })
	}

	width, height := r.config.Width, r.config.Height
	chunks := NewWorkChunks(width, height, r.config.WorkChunks)
	frame := make([]byte, width*height*BytesPerPixel)

	numWorkers := r.config.MaxThreads
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	stats := RenderStats{
		RaysPerPixel: r.config.RaysPerPixel,
		Chunks:       len(chunks),
		Workers:      numWorkers,
	}
	startTime := time.Now()

	ctx, cancel := context.WithCancel(ctx)

	tileRenderer := NewTileRenderer(r.world, r.camera, r.integrator, width, height, r.config.RaysPerPixel)
	pool := NewWorkerPool(tileRenderer, numWorkers, len(chunks))
	pool.Start(ctx)
	// cancel runs before Stop so queued chunks are skipped on early return
	defer pool.Stop()
	defer cancel()

	r.logger.Printf("Rendering %dx%d at %d rays/pixel: %d chunks on %d workers\n",
		width, height, r.config.RaysPerPixel, len(chunks), numWorkers)

	baseSeed := r.config.Seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}
	for _, chunk := range chunks {
		pool.SubmitTask(ChunkTask{
			Chunk:  chunk,
			Random: rand.New(rand.NewSource(baseSeed + int64(chunk.Index))),
		})
	}

	results := pool.Results()
	for completed := 0; completed < len(chunks); completed++ {
		var result ChunkResult
		select {
		case <-ctx.Done():
			return nil, stats, ctx.Err()
		case res, ok := <-results:
			if !ok {
				return nil, stats, errors.New("worker pool closed unexpectedly")
			}
			result = res
		}
		if result.Error != nil {
			return nil, stats, result.Error
		}

		chunk := result.Chunk
		copy(frame[chunk.From*BytesPerPixel:chunk.To*BytesPerPixel], result.Pixels)
		stats.addChunk(chunk)

		if err := sink.Flush(width, height, frame); err != nil {
			return nil, stats, fmt.Errorf("flush after chunk %d: %w", chunk.Index, err)
		}
		stats.Flushes++

		r.logger.Printf("Chunk %d/%d done by worker %d (%.1f%%)\n",
			completed+1, len(chunks), result.WorkerID, 100*float64(stats.TotalPixels)/float64(width*height))
	}

	if err := sink.Flush(width, height, frame); err != nil {
		return nil, stats, fmt.Errorf("final flush: %w", err)
	}
	stats.Flushes++
	stats.Elapsed = time.Since(startTime)

	r.logger.Printf("Render completed in %v (%.0f samples/sec)\n", stats.Elapsed, stats.SamplesPerSecond())

	return frame, stats, nil
}
