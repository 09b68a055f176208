package material

import (
	"math/rand"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// Material decides how a ray continues after it hits a surface.
//
// The variant set is Default, Lambertian, Metal and Dielectric. Implementations
// must be safe for concurrent use; all randomness comes from the caller's generator.
type Material interface {
	// Scatter returns the next ray and the color attenuation it carries
	Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (core.Ray, core.Vec3)
}

// HitRecord contains information about a ray-object intersection.
// A record with T <= 0 is a miss.
type HitRecord struct {
	T        float64   // Parameter t along the ray
	Normal   core.Vec3 // Unit outward normal, never flipped toward the ray
	Material Material  // Material of the hit object, nil for a miss
}

// Miss returns the sentinel record for rays that hit nothing
func Miss() HitRecord {
	return HitRecord{T: -1}
}

// IsHit reports whether the record describes an actual intersection
func (h HitRecord) IsHit() bool {
	return h.T > 0
}
