package integrator

import (
	"math"
	"math/rand"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

const (
	// DefaultMaxDepth is the last bounce that still scatters
	DefaultMaxDepth = 50

	// ShadowEpsilon keeps scattered rays from re-hitting the surface they left
	ShadowEpsilon = 0.001
)

var (
	horizonColor = core.NewVec3(1.0, 1.0, 1.0)
	zenithColor  = core.NewVec3(0.5, 0.7, 1.0)
)

// PathTracingIntegrator implements unidirectional path tracing with multiplicative attenuation
type PathTracingIntegrator struct {
	MaxDepth int
}

// NewPathTracingIntegrator creates a new path tracing integrator.
// A non-positive maxDepth selects DefaultMaxDepth.
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &PathTracingIntegrator{MaxDepth: maxDepth}
}

// RayColor follows the ray through the scene, multiplying in each material's attenuation,
// until it escapes to the sky or the depth exceeds MaxDepth (black).
func (pt *PathTracingIntegrator) RayColor(world geometry.Hittable, ray core.Ray, random *rand.Rand, depth int) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)

	for ; depth <= pt.MaxDepth; depth++ {
		hit := world.Hit(ray, ShadowEpsilon, math.Inf(1))
		if !hit.IsHit() {
			return throughput.MultiplyVec(BackgroundGradient(ray))
		}

		var mat material.Material = material.Default{}
		if hit.Material != nil {
			mat = hit.Material
		}

		scattered, attenuation := mat.Scatter(ray, hit, random)
		throughput = throughput.MultiplyVec(attenuation)
		ray = scattered
	}

	return core.Vec3{}
}

// BackgroundGradient blends white at the horizon into sky blue at the zenith
func BackgroundGradient(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)
	return horizonColor.Lerp(zenithColor, t)
}
