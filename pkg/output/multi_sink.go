package output

import (
	"fmt"

	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// MultiSink fans each flush out to several sinks in order, stopping at the first failure
type MultiSink []renderer.FrameSink

// Flush implements renderer.FrameSink
func (m MultiSink) Flush(width, height int, pixels []byte) error {
	for i, sink := range m {
		if err := sink.Flush(width, height, pixels); err != nil {
			return fmt.Errorf("sink %d: %w", i, err)
		}
	}
	return nil
}
