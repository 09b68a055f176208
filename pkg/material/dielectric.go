package material

import (
	"math/rand"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	Albedo          core.Vec3 // Tint applied to every reflected or refracted ray
	RefractiveIndex float64   // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(albedo core.Vec3, refractiveIndex float64) *Dielectric {
	return &Dielectric{Albedo: albedo, RefractiveIndex: refractiveIndex}
}

// Scatter refracts with probability 1-Schlick and reflects otherwise,
// falling back to reflection under total internal reflection.
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (core.Ray, core.Vec3) {
	point := rayIn.At(hit.T)

	// Sphere normals always point outward, so the sign of dir.n tells inside from outside
	var outwardNormal core.Vec3
	var niOverNt, cosine float64
	if dn := rayIn.Direction.Dot(hit.Normal); dn > 0 {
		outwardNormal = hit.Normal.Negate()
		niOverNt = d.RefractiveIndex
		cosine = d.RefractiveIndex * dn / rayIn.Direction.Length()
	} else {
		outwardNormal = hit.Normal
		niOverNt = 1.0 / d.RefractiveIndex
		cosine = -dn / rayIn.Direction.Length()
	}

	if random.Float64() > Schlick(cosine, d.RefractiveIndex) {
		if refracted, ok := Refract(rayIn.Direction, outwardNormal, niOverNt); ok {
			return core.NewRay(point, refracted), d.Albedo
		}
	}

	return core.NewRay(point, Reflect(rayIn.Direction.Normalize(), hit.Normal)), d.Albedo
}
