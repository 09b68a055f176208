package material

import (
	"math/rand"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo core.Vec3 // Metal color
	Fuzz   float64   // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material, clamping fuzz to [0,1]
func NewMetal(albedo core.Vec3, fuzz float64) *Metal {
	return &Metal{Albedo: albedo, Fuzz: max(0.0, min(1.0, fuzz))}
}

// Scatter mirrors the incoming direction about the normal and perturbs it by Fuzz.
// Rays that end up below the surface are returned as-is; the next bounce absorbs them.
func (m *Metal) Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (core.Ray, core.Vec3) {
	reflected := Reflect(rayIn.Direction.Normalize(), hit.Normal)
	direction := reflected.Add(core.RandomInUnitSphere(random).Multiply(m.Fuzz))
	return core.NewRay(rayIn.At(hit.T), direction), m.Albedo
}
