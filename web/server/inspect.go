package server

import (
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = [3]float64{m.Albedo.X, m.Albedo.Y, m.Albedo.Z}
		properties["color"] = hexColor(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = [3]float64{m.Albedo.X, m.Albedo.Y, m.Albedo.Z}
		properties["color"] = hexColor(m.Albedo)
		properties["fuzz"] = m.Fuzz
		return "metal", properties

	case *material.Dielectric:
		properties["albedo"] = [3]float64{m.Albedo.X, m.Albedo.Y, m.Albedo.Z}
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = hexColor(m.Albedo)
		return "dielectric", properties

	case nil, material.Default:
		properties["albedo"] = [3]float64{0.5, 0.5, 0.5}
		properties["color"] = hexColor(core.NewVec3(0.5, 0.5, 0.5))
		return "default", properties

	default:
		return "unknown", properties
	}
}

// InspectResult contains information about the object hit by an inspection ray
type InspectResult struct {
	Hit    bool
	Ray    core.Ray
	Record material.HitRecord
	Sphere *geometry.Sphere // nil if the hit object is not a sphere
}

// inspectPixel casts a ray through the center of the pixel and returns the first object hit
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResult {
	// Pinhole copy of the scene camera so the ray is deterministic
	cameraConfig := sceneObj.CameraConfig
	cameraConfig.Aperture = 0
	camera := renderer.NewCamera(cameraConfig)

	s := (float64(pixelX) + 0.5) / float64(width)
	t := 1.0 - (float64(pixelY)+0.5)/float64(height)
	ray := camera.GetRay(s, t, rand.New(rand.NewSource(0)))

	record := sceneObj.World.Hit(ray, integrator.ShadowEpsilon, math.Inf(1))
	if !record.IsHit() {
		return InspectResult{Ray: ray, Record: record}
	}

	return InspectResult{
		Hit:    true,
		Ray:    ray,
		Record: record,
		Sphere: findHitSphere(sceneObj.World, ray, record.T),
	}
}

// findHitSphere finds the sphere responsible for the hit at t, searching nested lists
func findHitSphere(h geometry.Hittable, ray core.Ray, t float64) *geometry.Sphere {
	switch obj := h.(type) {
	case *geometry.Sphere:
		if obj.Hit(ray, integrator.ShadowEpsilon, math.Inf(1)).T == t {
			return obj
		}
	case *geometry.HittableList:
		for _, child := range obj.Objects() {
			if sphere := findHitSphere(child, ray, t); sphere != nil {
				return sphere
			}
		}
	}
	return nil
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(sphere *geometry.Sphere) (string, map[string]interface{}) {
	properties := make(map[string]interface{})
	if sphere == nil {
		return "unknown", properties
	}
	properties["center"] = [3]float64{sphere.Center.X, sphere.Center.Y, sphere.Center.Z}
	properties["radius"] = sphere.Radius
	return "sphere", properties
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(c echo.Context) error {
	params, err := parseSceneParams(c.QueryParams())
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
	}

	pixelX, err := strconv.Atoi(c.QueryParam("x"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
	}
	pixelY, err := strconv.Atoi(c.QueryParam("y"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
	}
	if pixelX < 0 || pixelX >= params.Width || pixelY < 0 || pixelY >= params.Height {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
	}

	sceneObj, err := params.createScene()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	result := inspectPixel(sceneObj, params.Width, params.Height, pixelX, pixelY)
	if !result.Hit {
		return c.JSON(http.StatusOK, InspectResponse{Hit: false})
	}

	materialType, materialProps := extractMaterialInfo(result.Record.Material)
	geometryType, geometryProps := extractGeometryInfo(result.Sphere)

	point := result.Ray.At(result.Record.T)
	normal := result.Record.Normal

	return c.JSON(http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        [3]float64{point.X, point.Y, point.Z},
		Normal:       [3]float64{normal.X, normal.Y, normal.Z},
		Distance:     result.Record.T,
		FrontFace:    result.Ray.Direction.Dot(normal) < 0,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
