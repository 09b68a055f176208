package scene

import (
	"math/rand"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera       *renderer.Camera
	World        *geometry.HittableList // Objects in the scene
	CameraConfig renderer.CameraConfig
}

// newScene builds the camera from defaults with the overrides applied in order
func newScene(defaultCameraConfig renderer.CameraConfig, cameraOverrides ...renderer.CameraOverride) *Scene {
	cameraConfig := defaultCameraConfig
	for _, override := range cameraOverrides {
		cameraConfig = override.Apply(cameraConfig)
	}

	return &Scene{
		Camera:       renderer.NewCamera(cameraConfig),
		World:        geometry.NewHittableList(),
		CameraConfig: cameraConfig,
	}
}

// newSceneRandom returns the generator used for scene layout. Seed 0 draws from the clock.
func newSceneRandom(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// AddSphere adds a sphere to the world
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) {
	s.World.Add(geometry.NewSphere(center, radius, mat))
}

// GetPrimitiveCount returns the total number of spheres in the scene, counting inside nested lists
func (s *Scene) GetPrimitiveCount() int {
	return countPrimitives(s.World)
}

func countPrimitives(h geometry.Hittable) int {
	switch obj := h.(type) {
	case *geometry.HittableList:
		count := 0
		for _, child := range obj.Objects() {
			count += countPrimitives(child)
		}
		return count
	default:
		return 1
	}
}

// AspectOverride returns a camera override that only sets the aspect ratio of a width x height image
func AspectOverride(width, height int) renderer.CameraOverride {
	if height <= 0 {
		return renderer.CameraOverride{}
	}
	aspect := float64(width) / float64(height)
	return renderer.CameraOverride{AspectRatio: &aspect}
}
