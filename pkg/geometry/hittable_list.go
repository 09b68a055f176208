package geometry

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// HittableList is an unordered collection that reports the nearest hit among its members.
// Lists can contain other lists. A list is read-only once rendering starts.
type HittableList struct {
	objects []Hittable
}

// NewHittableList creates a list from the given objects
func NewHittableList(objects ...Hittable) *HittableList {
	return &HittableList{objects: append([]Hittable(nil), objects...)}
}

// Add appends objects to the list
func (l *HittableList) Add(objects ...Hittable) {
	l.objects = append(l.objects, objects...)
}

// Len returns the number of direct members
func (l *HittableList) Len() int {
	return len(l.objects)
}

// Objects returns the direct members
func (l *HittableList) Objects() []Hittable {
	return l.objects
}

// Hit scans every member and keeps the hit with the smallest positive t
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) material.HitRecord {
	closest := material.Miss()
	for _, object := range l.objects {
		hit := object.Hit(ray, tMin, tMax)
		if hit.IsHit() && (!closest.IsHit() || hit.T < closest.T) {
			closest = hit
		}
	}
	return closest
}
