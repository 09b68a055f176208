package geometry

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// Hittable is anything a ray can intersect.
// Hit returns material.Miss() when nothing lies within [tMin, tMax].
type Hittable interface {
	Hit(ray core.Ray, tMin, tMax float64) material.HitRecord
}
