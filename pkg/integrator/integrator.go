package integrator

import (
	"math/rand"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray. depth is the bounce
	// count the ray starts at; camera rays start at 1.
	RayColor(world geometry.Hittable, ray core.Ray, random *rand.Rand, depth int) core.Vec3
}
