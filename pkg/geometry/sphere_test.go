package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

func TestSphere_Hit_Exact(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5, material.Default{})
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	hit := sphere.Hit(ray, 0.0, math.MaxFloat64)
	if hit.T != 0.5 {
		t.Fatalf("Expected t=0.5, got t=%f", hit.T)
	}
	if !hit.Normal.Equals(core.NewVec3(0, 0, 1)) {
		t.Errorf("Expected normal (0,0,1), got %v", hit.Normal)
	}
	if hit.Material != sphere.Material {
		t.Error("Hit record should borrow the sphere's material")
	}
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5, material.Default{})
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	hit := sphere.Hit(ray, 0.0, math.MaxFloat64)
	if hit.T != -1 {
		t.Errorf("Expected miss sentinel t=-1, got t=%f", hit.T)
	}
	if hit.IsHit() {
		t.Error("Expected miss")
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, material.Default{})
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	tests := []struct {
		name       string
		tMin, tMax float64
		expectedT  float64
	}{
		{"near root", 0.001, 1000, 1.0},
		{"far root when near root below tMin", 1.5, 1000, 3.0},
		{"miss below tMax", 0.001, 0.5, -1},
		{"miss above tMin", 3.5, 1000, -1},
		{"inclusive bounds", 1.0, 1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := sphere.Hit(ray, tt.tMin, tt.tMax)
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.IsHit() && (hit.T < tt.tMin || hit.T > tt.tMax) {
				t.Errorf("t=%f outside [%f, %f]", hit.T, tt.tMin, tt.tMax)
			}
		})
	}
}

func TestSphere_Hit_NormalNotFlippedInside(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, material.Default{})
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	hit := sphere.Hit(ray, 0.001, 1000)
	if math.Abs(hit.T-1.0) > 1e-9 {
		t.Fatalf("Expected t=1, got %f", hit.T)
	}
	// outward normal, pointing along the ray rather than against it
	if hit.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
		t.Errorf("Expected outward normal (0,0,1), got %v", hit.Normal)
	}
}

func TestSphere_Hit_UnitNormals(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	sphere := NewSphere(core.NewVec3(0.3, -0.2, -3), 1.7, material.Default{})

	hits := 0
	for i := 0; i < 2000; i++ {
		origin := core.RandomInUnitSphere(random).Multiply(0.5)
		target := sphere.Center.Add(core.RandomInUnitSphere(random).Multiply(2))
		ray := core.NewRay(origin, target.Subtract(origin).Multiply(0.1+random.Float64()))

		hit := sphere.Hit(ray, 0.001, math.Inf(1))
		if !hit.IsHit() {
			continue
		}
		hits++
		if math.Abs(hit.Normal.Length()-1) > 1e-9 {
			t.Fatalf("Normal %v is not unit length", hit.Normal)
		}
	}
	if hits == 0 {
		t.Fatal("Expected at least some hits")
	}
}

func TestNewSphere_ClampsRadius(t *testing.T) {
	if s := NewSphere(core.NewVec3(0, 0, 0), -2, nil); s.Radius != 0 {
		t.Errorf("Expected radius 0, got %f", s.Radius)
	}
}
