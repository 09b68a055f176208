package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// Big sphere layout shared by the spheres and simple scenes
var bigSphereBases = []core.Vec3{
	core.NewVec3(-1, 0, 0),
	core.NewVec3(0, 0, 0),
	core.NewVec3(1, 0, 0),
}

const (
	smallSphereRadius = 0.1
	smallSphereRange  = 5.0  // small spheres stay within this distance of the origin
	bigSphereClear    = 0.25 // squared clearance from each big sphere's base point
)

// NewSimpleScene creates the three large spheres on a ground sphere
func NewSimpleScene(cameraOverrides ...renderer.CameraOverride) *Scene {
	s := newScene(renderer.DefaultCameraConfig(), cameraOverrides...)
	addBigSpheres(s)
	return s
}

// NewSpheresScene creates the three large spheres surrounded by a jittered grid of
// small diffuse and metal spheres. The layout is reproducible for a non-zero seed.
func NewSpheresScene(seed int64, cameraOverrides ...renderer.CameraOverride) *Scene {
	s := newScene(renderer.DefaultCameraConfig(), cameraOverrides...)
	addBigSpheres(s)

	random := newSceneRandom(seed)
	for x := -11; x < 5; x++ {
		for z := -11; z < 5; z++ {
			center := core.NewVec3(
				0.5*(float64(x)+0.8*random.Float64()),
				smallSphereRadius,
				0.5*(float64(z)+0.8*random.Float64()),
			)
			if !smallSphereFits(center) {
				continue
			}

			var mat material.Material
			if random.Float64() > 0.5 {
				albedo := core.NewVec3(random.Float64(), random.Float64(), random.Float64())
				mat = material.NewMetal(albedo, random.Float64())
			} else {
				mat = material.NewLambertian(core.NewVec3(random.Float64(), random.Float64(), random.Float64()))
			}
			s.AddSphere(center, smallSphereRadius, mat)
		}
	}

	return s
}

func addBigSpheres(s *Scene) {
	s.AddSphere(core.NewVec3(-1, 0.5, 0), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.7, 0.5)))
	s.AddSphere(core.NewVec3(0, 0.5, 0), 0.5, material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.1))
	s.AddSphere(core.NewVec3(1, 0.5, 0), 0.5, material.NewDielectric(core.NewVec3(0.9, 0.9, 0.9), 1.5))

	// Ground
	s.AddSphere(core.NewVec3(0, -500, 0), 500, material.NewLambertian(core.NewVec3(0.3, 0.35, 0.4)))
}

// smallSphereFits rejects centers outside the placement disc or too close to a big sphere
func smallSphereFits(center core.Vec3) bool {
	if center.LengthSquared() >= smallSphereRange*smallSphereRange {
		return false
	}
	for _, base := range bigSphereBases {
		if center.Subtract(base).LengthSquared() <= bigSphereClear {
			return false
		}
	}
	return true
}
