package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/output"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	sceneParams
	RaysPerPixel int // Samples averaged per pixel
	WorkChunks   int // Number of progressive updates
	MaxDepth     int // Maximum bounce depth
	PreviewWidth int // Width of streamed previews
}

// FrameUpdate is sent via SSE after every completed chunk
type FrameUpdate struct {
	Sequence    int    `json:"sequence"`    // 1-based flush number
	TotalChunks int    `json:"totalChunks"` // Flushes expected before the final one
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG of the whole frame so far
	ElapsedMs   int64  `json:"elapsedMs"`
	Seed        int64  `json:"seed"` // Pass to /api/inspect to query the same world
}

// CompleteUpdate summarizes a finished render
type CompleteUpdate struct {
	TotalPixels    int   `json:"totalPixels"`
	TotalSamples   int   `json:"totalSamples"`
	Chunks         int   `json:"chunks"`
	Workers        int   `json:"workers"`
	Flushes        int   `json:"flushes"`
	ElapsedMs      int64 `json:"elapsedMs"`
	PrimitiveCount int   `json:"primitiveCount"`
	Seed           int64 `json:"seed"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "frame", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleRender renders a scene and streams each flushed frame via SSE
func (s *Server) handleRender(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
	}
	sceneObj, err := req.createScene()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	s.setSSEHeaders(c.Response())
	c.Response().WriteHeader(http.StatusOK)

	ctx := c.Request().Context()

	// Single writer goroutine owns the response
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(c.Response(), ctx, sseEventChan)
	}()

	// Console messages are forwarded until the render returns
	consoleCtx, stopConsole := context.WithCancel(ctx)
	consoleChan, webLogger := s.setupConsoleLogging()
	var consoleWG sync.WaitGroup
	consoleWG.Add(1)
	go func() {
		defer consoleWG.Done()
		s.streamConsoleMessages(consoleCtx, consoleChan, sseEventChan)
	}()

	startTime := time.Now()
	config := renderer.Config{
		Width:        req.Width,
		Height:       req.Height,
		RaysPerPixel: req.RaysPerPixel,
		WorkChunks:   req.WorkChunks,
		MaxThreads:   s.maxThreads,
		MaxDepth:     req.MaxDepth,
		Seed:         req.Seed,
	}
	r := renderer.NewRenderer(sceneObj.World, sceneObj.Camera, config, webLogger)
	numChunks := len(renderer.NewWorkChunks(req.Width, req.Height, req.WorkChunks))

	preview := output.NewPreviewSink(req.PreviewWidth, func(frame output.PreviewFrame) error {
		data, err := json.Marshal(FrameUpdate{
			Sequence:    frame.Sequence,
			TotalChunks: numChunks,
			Width:       frame.Width,
			Height:      frame.Height,
			ImageData:   frame.ImageData,
			ElapsedMs:   time.Since(startTime).Milliseconds(),
			Seed:        req.Seed,
		})
		if err != nil {
			return err
		}
		return s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "frame", Data: string(data)})
	})

	_, stats, renderErr := r.Render(ctx, preview)

	stopConsole()
	consoleWG.Wait()
	s.drainConsole(ctx, consoleChan, sseEventChan)
	if dropped := webLogger.Dropped(); dropped > 0 {
		log.Printf("Dropped %d console messages", dropped)
	}

	switch {
	case errors.Is(renderErr, context.Canceled):
		log.Printf("Render cancelled: client disconnected")
	case renderErr != nil:
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", renderErr))
	default:
		s.handleComplete(ctx, sseEventChan, stats, sceneObj, req.Seed)
	}

	close(sseEventChan)
	<-writerDone
	return nil
}

// parseRenderRequest parses request parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	params, err := parseSceneParams(values)
	if err != nil {
		return nil, err
	}
	req := &RenderRequest{sceneParams: params}

	if req.RaysPerPixel, err = parseIntParam(values, "raysPerPixel", 50, 1, 10000); err != nil {
		return nil, err
	}
	if req.WorkChunks, err = parseIntParam(values, "workChunks", 32, 1, 4096); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "maxDepth", integrator.DefaultMaxDepth, 1, 1000); err != nil {
		return nil, err
	}
	if req.PreviewWidth, err = parseIntParam(values, "previewWidth", req.Width, 16, 2000); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.RaysPerPixel > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, *WebLogger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, renderer.NewDefaultLogger(), consoleChan)
	return consoleChan, webLogger
}

// writeSSEEvents writes all SSE events from a single goroutine until the channel is closed.
// Once the client is gone remaining events are discarded.
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan <-chan SSEEvent) {
	for event := range sseEventChan {
		if ctx.Err() != nil {
			continue
		}

		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			continue
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

// streamConsoleMessages forwards console messages as SSE events until ctx is done
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for {
		select {
		case consoleMsg := <-consoleChan:
			s.forwardConsole(ctx, consoleMsg, sseEventChan)
		case <-ctx.Done():
			return
		}
	}
}

// drainConsole forwards messages still buffered after the render returned
func (s *Server) drainConsole(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for {
		select {
		case consoleMsg := <-consoleChan:
			s.forwardConsole(ctx, consoleMsg, sseEventChan)
		default:
			return
		}
	}
}

func (s *Server) forwardConsole(ctx context.Context, consoleMsg ConsoleMessage, sseEventChan chan<- SSEEvent) {
	data, err := json.Marshal(consoleMsg)
	if err != nil {
		log.Printf("Error marshaling console message: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
	case <-ctx.Done():
	default:
		// Channel full, skip message to avoid blocking
	}
}

// sendEvent queues an event, giving up when the client disconnects
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan<- SSEEvent, event SSEEvent) error {
	select {
	case sseEventChan <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// handleComplete sends the completion event with final statistics
func (s *Server) handleComplete(ctx context.Context, sseEventChan chan<- SSEEvent, stats renderer.RenderStats, sceneObj *scene.Scene, seed int64) {
	data, err := json.Marshal(CompleteUpdate{
		TotalPixels:    stats.TotalPixels,
		TotalSamples:   stats.TotalSamples,
		Chunks:         stats.Chunks,
		Workers:        stats.Workers,
		Flushes:        stats.Flushes,
		ElapsedMs:      stats.Elapsed.Milliseconds(),
		PrimitiveCount: sceneObj.GetPrimitiveCount(),
		Seed:           seed,
	})
	if err != nil {
		log.Printf("Error marshaling completion: %v", err)
		return
	}
	_ = s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "complete", Data: string(data)})
}

// ErrorUpdate is sent via SSE when a render fails
type ErrorUpdate struct {
	Message string `json:"message"`
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan<- SSEEvent, message string) {
	data, err := json.Marshal(ErrorUpdate{Message: message})
	if err != nil {
		log.Printf("Error marshaling error event: %v", err)
		return
	}
	_ = s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "error", Data: string(data)})
}
