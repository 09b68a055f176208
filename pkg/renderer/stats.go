package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels  int           // Total number of pixels rendered
	TotalSamples int           // Total number of camera rays traced
	RaysPerPixel int           // Samples averaged per pixel
	Chunks       int           // Number of work chunks
	Workers      int           // Number of workers in the pool
	Flushes      int           // Number of sink flushes, including the final one
	Elapsed      time.Duration // Wall clock time spent rendering
}

// SamplesPerSecond returns the camera ray throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Elapsed.Seconds()
}

// addChunk accounts for one completed chunk
func (s *RenderStats) addChunk(chunk WorkChunk) {
	s.TotalPixels += chunk.Len()
	s.TotalSamples += chunk.Len() * s.RaysPerPixel
}
