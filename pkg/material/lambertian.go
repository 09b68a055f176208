package material

import (
	"math/rand"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// Lambertian represents a matte diffuse material
type Lambertian struct {
	Albedo core.Vec3 // Base color/reflectance
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter sends the ray toward normal + a random point in the unit sphere
func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (core.Ray, core.Vec3) {
	return diffuseRay(rayIn, hit, random), l.Albedo
}

// Default is the fallback used for hits without a material: 50% grey diffuse
type Default struct{}

// Scatter implements the Material interface
func (Default) Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (core.Ray, core.Vec3) {
	return diffuseRay(rayIn, hit, random), core.NewVec3(0.5, 0.5, 0.5)
}

func diffuseRay(rayIn core.Ray, hit HitRecord, random *rand.Rand) core.Ray {
	direction := hit.Normal.Add(core.RandomInUnitSphere(random))
	return core.NewRay(rayIn.At(hit.T), direction)
}
