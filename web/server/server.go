package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// Server handles web requests for the sphere tracer preview
type Server struct {
	port       int
	maxThreads int
	echo       *echo.Echo
}

// NewServer creates a new web server. maxThreads bounds the workers of every render (0 = CPU count).
func NewServer(port, maxThreads int) *Server {
	s := &Server{port: port, maxThreads: maxThreads, echo: echo.New()}
	s.echo.HideBanner = true
	s.echo.Use(corsMiddleware)

	// Serve static files
	s.echo.Static("/", "static")

	// API endpoints
	s.echo.GET("/api/health", s.handleHealth)
	s.echo.GET("/api/scenes", s.handleScenes)
	s.echo.GET("/api/render", s.handleRender)
	s.echo.GET("/api/inspect", s.handleInspect)

	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the web server and blocks until it stops
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for active ones, including streaming renders
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")
		return next(c)
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes grouped by category
func (s *Server) handleScenes(c echo.Context) error {
	return c.JSON(http.StatusOK, scene.ListAllScenes())
}

// DefaultSeed is used when a request has no seed (or seed 0), so that a render and
// a later inspect of the same scene see the same world
const DefaultSeed int64 = 1

// sceneParams holds the query parameters shared by render and inspect requests
type sceneParams struct {
	Scene  string
	Width  int
	Height int
	Seed   int64
}

// parseSceneParams parses the scene selection and image size
func parseSceneParams(values url.Values) (sceneParams, error) {
	params := sceneParams{Scene: values.Get("scene")}
	if params.Scene == "" {
		params.Scene = scene.DefaultSceneID
	}

	var err error
	if params.Width, err = parseIntParam(values, "width", 400, 16, 2000); err != nil {
		return params, err
	}
	if params.Height, err = parseIntParam(values, "height", 300, 16, 2000); err != nil {
		return params, err
	}
	if value := values.Get("seed"); value != "" {
		if params.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return params, fmt.Errorf("invalid seed: %s", value)
		}
	}
	if params.Seed == 0 {
		params.Seed = DefaultSeed
	}
	return params, nil
}

// createScene builds the requested scene with the aspect ratio of the requested image
func (p sceneParams) createScene() (*scene.Scene, error) {
	return scene.Create(p.Scene, p.Seed, scene.AspectOverride(p.Width, p.Height))
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
