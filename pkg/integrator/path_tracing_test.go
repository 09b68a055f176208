package integrator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// countingWorld always reports a hit one unit along the ray
type countingWorld struct {
	material material.Material
	calls    int
}

func (w *countingWorld) Hit(ray core.Ray, tMin, tMax float64) material.HitRecord {
	w.calls++
	return material.HitRecord{T: 1, Normal: core.NewVec3(0, 1, 0), Material: w.material}
}

// fixedMaterial scatters straight up with a constant attenuation
type fixedMaterial struct {
	attenuation core.Vec3
}

func (m fixedMaterial) Scatter(rayIn core.Ray, hit material.HitRecord, random *rand.Rand) (core.Ray, core.Vec3) {
	return core.NewRay(rayIn.At(hit.T), core.NewVec3(0, 1, 0)), m.attenuation
}

// onceWorld hits on the first query and misses afterwards
type onceWorld struct {
	hit  material.HitRecord
	used bool
}

func (w *onceWorld) Hit(ray core.Ray, tMin, tMax float64) material.HitRecord {
	if w.used {
		return material.Miss()
	}
	w.used = true
	return w.hit
}

func TestBackgroundGradient(t *testing.T) {
	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight down is white", core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 1)},
		{"straight up is sky blue", core.NewVec3(0, 3, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"horizontal is halfway", core.NewVec3(1, 0, 0), core.NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BackgroundGradient(core.NewRay(core.NewVec3(0, 0, 0), tt.direction))
			if got.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestRayColor_EmptySceneIsConvexBlend(t *testing.T) {
	pt := NewPathTracingIntegrator(0)
	world := geometry.NewHittableList()
	random := rand.New(rand.NewSource(42))

	for i := 0; i < 100; i++ {
		direction := core.RandomInUnitSphere(random)
		got := pt.RayColor(world, core.NewRay(core.NewVec3(0, 0, 0), direction), random, 1)

		w := 0.5 * (direction.Normalize().Y + 1)
		expected := core.NewVec3(1, 1, 1).Multiply(1 - w).Add(core.NewVec3(0.5, 0.7, 1.0).Multiply(w))
		if got.Subtract(expected).Length() > 1e-12 {
			t.Fatalf("Direction %v: expected %v, got %v", direction, expected, got)
		}
	}
}

func TestRayColor_DepthCutoff(t *testing.T) {
	pt := NewPathTracingIntegrator(0)
	world := &countingWorld{material: fixedMaterial{attenuation: core.NewVec3(1, 1, 1)}}
	random := rand.New(rand.NewSource(42))

	got := pt.RayColor(world, core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), random, 51)
	if !got.Equals(core.Vec3{}) {
		t.Errorf("Expected exact black past the depth limit, got %v", got)
	}
	if world.calls != 0 {
		t.Errorf("Expected no intersection queries past the depth limit, got %d", world.calls)
	}
}

func TestRayColor_EndlessBouncesTerminate(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultMaxDepth)
	world := &countingWorld{material: fixedMaterial{attenuation: core.NewVec3(1, 1, 1)}}
	random := rand.New(rand.NewSource(42))

	got := pt.RayColor(world, core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), random, 1)
	if !got.Equals(core.Vec3{}) {
		t.Errorf("Expected black for a path that never escapes, got %v", got)
	}
	if world.calls != DefaultMaxDepth {
		t.Errorf("Expected %d bounces, got %d", DefaultMaxDepth, world.calls)
	}
}

func TestRayColor_AttenuationMultipliesSky(t *testing.T) {
	pt := NewPathTracingIntegrator(0)
	attenuation := core.NewVec3(0.5, 0.25, 1.0)
	world := &onceWorld{hit: material.HitRecord{
		T:        1,
		Normal:   core.NewVec3(0, 1, 0),
		Material: fixedMaterial{attenuation: attenuation},
	}}

	got := pt.RayColor(world, core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), rand.New(rand.NewSource(1)), 1)

	// scattered straight up, into the zenith color
	expected := core.NewVec3(0.5, 0.7, 1.0).MultiplyVec(attenuation)
	if got.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestRayColor_NilMaterialUsesDefault(t *testing.T) {
	pt := NewPathTracingIntegrator(0)
	world := &onceWorld{hit: material.HitRecord{T: 1, Normal: core.NewVec3(0, 1, 0)}}

	got := pt.RayColor(world, core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), rand.New(rand.NewSource(5)), 1)

	// Default halves whatever sky color the diffuse bounce reaches
	for _, c := range []float64{got.X, got.Y, got.Z} {
		if c < 0.25-1e-12 || c > 0.5+1e-12 || math.IsNaN(c) {
			t.Fatalf("Expected half of a sky color, got %v", got)
		}
	}
}
