package renderer

import (
	"math"
	"math/rand"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	LookFrom        core.Vec3 // Eye position
	LookAt          core.Vec3 // Point the camera looks at
	Up              core.Vec3 // Up direction (not necessarily orthogonal to the view direction)
	FOV             float64   // Field of view across the image width, in degrees
	AspectRatio     float64   // Width / height
	Aperture        float64   // Lens diameter; 0 disables depth of field
	FocusMultiplier float64   // Focus distance as a fraction of |LookAt - LookFrom|
}

// DefaultCameraConfig returns the camera used by the reference render
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		LookFrom:        core.NewVec3(6.0, 1.2, 3.0),
		LookAt:          core.NewVec3(0.0, 0.5, 0.0),
		Up:              core.NewVec3(0.0, 1.0, 0.0),
		FOV:             25.0,
		AspectRatio:     800.0 / 600.0,
		Aperture:        0.1,
		FocusMultiplier: 0.9,
	}
}

// CameraOverride replaces the fields of a camera configuration that are set.
// A nil field keeps the base value, so an explicit zero (a pinhole aperture) can be requested.
type CameraOverride struct {
	LookFrom        *core.Vec3
	LookAt          *core.Vec3
	Up              *core.Vec3
	FOV             *float64
	AspectRatio     *float64
	Aperture        *float64
	FocusMultiplier *float64
}

// Apply returns base with every set field of o applied
func (o CameraOverride) Apply(base CameraConfig) CameraConfig {
	if o.LookFrom != nil {
		base.LookFrom = *o.LookFrom
	}
	if o.LookAt != nil {
		base.LookAt = *o.LookAt
	}
	if o.Up != nil {
		base.Up = *o.Up
	}
	if o.FOV != nil {
		base.FOV = *o.FOV
	}
	if o.AspectRatio != nil {
		base.AspectRatio = *o.AspectRatio
	}
	if o.Aperture != nil {
		base.Aperture = *o.Aperture
	}
	if o.FocusMultiplier != nil {
		base.FocusMultiplier = *o.FocusMultiplier
	}
	return base
}

// Camera generates rays for rendering. It is immutable once built and safe to
// share between workers.
type Camera struct {
	origin     core.Vec3
	horizontal core.Vec3
	vertical   core.Vec3
	lowerLeft  core.Vec3
	lensRadius float64
	u, v       core.Vec3
	config     CameraConfig
}

// NewCamera derives the image plane basis from the configuration
func NewCamera(config CameraConfig) *Camera {
	theta := config.FOV * math.Pi / 180.0
	halfWidth := math.Tan(0.5 * theta)
	halfHeight := halfWidth / config.AspectRatio

	// Orthonormal basis: w points backwards, u right, v up
	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u).Normalize()

	focusDistance := config.FocusMultiplier * config.LookAt.Subtract(config.LookFrom).Length()

	lowerLeft := config.LookFrom.
		Subtract(u.Multiply(halfWidth * focusDistance)).
		Subtract(v.Multiply(halfHeight * focusDistance)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:     config.LookFrom,
		horizontal: u.Multiply(2 * halfWidth * focusDistance),
		vertical:   v.Multiply(2 * halfHeight * focusDistance),
		lowerLeft:  lowerLeft,
		lensRadius: 0.5 * config.Aperture,
		u:          u,
		v:          v,
		config:     config,
	}
}

// GetRay generates a ray for image plane coordinates (s, t) where 0 <= s,t <= 1,
// (0,0) being the lower left corner. The origin is jittered across the lens.
func (c *Camera) GetRay(s, t float64, random *rand.Rand) core.Ray {
	rd := core.RandomInUnitDisk(random).Multiply(c.lensRadius)
	offset := c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))

	direction := c.lowerLeft.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin).
		Subtract(offset)

	return core.NewRay(c.origin.Add(offset), direction)
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}
