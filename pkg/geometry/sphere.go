package geometry

import (
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere. Negative radii are clamped to zero.
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   max(0, radius),
		Material: mat,
	}
}

// Hit tests if a ray intersects with the sphere.
// The normal always points away from the center, whichever side the ray came from.
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) material.HitRecord {
	// Quadratic equation coefficients: at² + bt + c = 0
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return material.Miss()
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first, then the farther one
	t := (-b - sqrtD) / (2 * a)
	if t < tMin || t > tMax {
		t = (-b + sqrtD) / (2 * a)
		if t < tMin || t > tMax {
			return material.Miss()
		}
	}

	return material.HitRecord{
		T:        t,
		Normal:   ray.At(t).Subtract(s.Center).Normalize(),
		Material: s.Material,
	}
}
