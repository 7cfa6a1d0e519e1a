package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	AspectRatio  float64    // Ratio of image width over height
	ImageWidth   int        // Rendered image width in pixel count
	VFov         float64    // Vertical field of view in degrees
	LookFrom     core.Point // Point camera is looking from
	LookAt       core.Point // Point camera is looking at
	VUp          core.Vec3  // Camera-relative "up" direction
	DefocusAngle float64    // Variation angle of rays through each pixel, in degrees (0 = pinhole)
	FocusDist    float64    // Distance from camera lookfrom point to plane of perfect focus
}

// DefaultCameraConfig returns the default camera: a 100 pixel wide square image
// looking down -Z from the origin with a 90° field of view
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AspectRatio:  1.0,
		ImageWidth:   100,
		VFov:         90,
		LookFrom:     core.NewVec3(0, 0, 0),
		LookAt:       core.NewVec3(0, 0, -1),
		VUp:          core.NewVec3(0, 1, 0),
		DefocusAngle: 0,
		FocusDist:    10,
	}
}

// MergeCameraConfig merges override values into a base config.
// Zero-valued fields in override are ignored.
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base

	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.ImageWidth != 0 {
		result.ImageWidth = override.ImageWidth
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.LookFrom != (core.Vec3{}) {
		result.LookFrom = override.LookFrom
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.VUp != (core.Vec3{}) {
		result.VUp = override.VUp
	}
	if override.DefocusAngle != 0 {
		result.DefocusAngle = override.DefocusAngle
	}
	if override.FocusDist != 0 {
		result.FocusDist = override.FocusDist
	}

	return result
}

// Camera maps pixel coordinates to world-space rays
type Camera struct {
	config CameraConfig

	imageHeight  int        // Rendered image height
	center       core.Point // Camera center
	pixel00Loc   core.Point // Location of pixel 0, 0
	pixelDeltaU  core.Vec3  // Offset to pixel to the right
	pixelDeltaV  core.Vec3  // Offset to pixel below
	u, v, w      core.Vec3  // Camera frame basis vectors
	defocusDiskU core.Vec3  // Defocus disk horizontal radius
	defocusDiskV core.Vec3  // Defocus disk vertical radius
}

// NewCamera creates a camera and derives its viewing geometry
func NewCamera(config CameraConfig) (*Camera, error) {
	c := &Camera{config: config}
	if err := c.Initialize(); err != nil {
		return nil, err
	}
	return c, nil
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// SetConfig replaces the configuration and re-derives the viewing geometry
func (c *Camera) SetConfig(config CameraConfig) error {
	c.config = config
	return c.Initialize()
}

// Initialize derives the image height, viewport, camera basis and defocus disk
// from the configuration. Calling it again without changing the config yields
// the same camera.
func (c *Camera) Initialize() error {
	cfg := c.config
	if err := validateCameraConfig(cfg); err != nil {
		return err
	}

	c.imageHeight = max(1, int(float64(cfg.ImageWidth)/cfg.AspectRatio))
	c.center = cfg.LookFrom

	// Determine viewport dimensions
	theta := core.DegreesToRadians(cfg.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * cfg.FocusDist
	viewportWidth := viewportHeight * (float64(cfg.ImageWidth) / float64(c.imageHeight))

	// Calculate the u,v,w unit basis vectors for the camera coordinate frame
	c.w = cfg.LookFrom.Subtract(cfg.LookAt).Normalize()
	c.u = cfg.VUp.Cross(c.w).Normalize()
	c.v = c.w.Cross(c.u)

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := c.u.Multiply(viewportWidth)
	viewportV := c.v.Negate().Multiply(viewportHeight)

	// Horizontal and vertical delta vectors from pixel to pixel
	c.pixelDeltaU = viewportU.Divide(float64(cfg.ImageWidth))
	c.pixelDeltaV = viewportV.Divide(float64(c.imageHeight))

	// Location of the upper left pixel
	viewportUpperLeft := c.center.
		Subtract(c.w.Multiply(cfg.FocusDist)).
		Subtract(viewportU.Divide(2)).
		Subtract(viewportV.Divide(2))
	c.pixel00Loc = viewportUpperLeft.Add(c.pixelDeltaU.Add(c.pixelDeltaV).Multiply(0.5))

	// Camera defocus disk basis vectors
	defocusRadius := cfg.FocusDist * math.Tan(core.DegreesToRadians(cfg.DefocusAngle/2))
	c.defocusDiskU = c.u.Multiply(defocusRadius)
	c.defocusDiskV = c.v.Multiply(defocusRadius)

	return nil
}

func validateCameraConfig(cfg CameraConfig) error {
	if cfg.ImageWidth <= 0 {
		return fmt.Errorf("%w: image width must be positive, got %d", ErrInvalidConfig, cfg.ImageWidth)
	}
	if !(cfg.AspectRatio > 0) || math.IsInf(cfg.AspectRatio, 0) {
		return fmt.Errorf("%w: aspect ratio must be positive and finite, got %g", ErrInvalidConfig, cfg.AspectRatio)
	}
	if !(cfg.VFov > 0 && cfg.VFov < 180) {
		return fmt.Errorf("%w: vertical field of view must be in (0, 180) degrees, got %g", ErrInvalidConfig, cfg.VFov)
	}
	if !(cfg.FocusDist > 0) || math.IsInf(cfg.FocusDist, 0) {
		return fmt.Errorf("%w: focus distance must be positive and finite, got %g", ErrInvalidConfig, cfg.FocusDist)
	}
	if math.IsNaN(cfg.DefocusAngle) || cfg.DefocusAngle >= 180 {
		return fmt.Errorf("%w: defocus angle must be below 180 degrees, got %g", ErrInvalidConfig, cfg.DefocusAngle)
	}
	if !cfg.LookFrom.IsFinite() || !cfg.LookAt.IsFinite() || !cfg.VUp.IsFinite() {
		return fmt.Errorf("%w: camera vectors must be finite", ErrInvalidConfig)
	}

	viewDir := cfg.LookFrom.Subtract(cfg.LookAt)
	if viewDir.LengthSquared() == 0 {
		return fmt.Errorf("%w: lookfrom and lookat must differ, both are %v", ErrInvalidConfig, cfg.LookFrom)
	}
	if cfg.VUp.Cross(viewDir).LengthSquared() <= 1e-24*cfg.VUp.LengthSquared()*viewDir.LengthSquared() {
		return fmt.Errorf("%w: up vector %v must not be parallel to the view direction", ErrInvalidConfig, cfg.VUp)
	}
	return nil
}

// ImageWidth returns the rendered image width in pixels
func (c *Camera) ImageWidth() int {
	return c.config.ImageWidth
}

// ImageHeight returns the rendered image height in pixels
func (c *Camera) ImageHeight() int {
	return c.imageHeight
}

// Center returns the camera center (the lookfrom point)
func (c *Camera) Center() core.Point {
	return c.center
}

// Basis returns the orthonormal camera frame: right, up and backward
func (c *Camera) Basis() (u, v, w core.Vec3) {
	return c.u, c.v, c.w
}

// pixelCenter returns the world position of the center of pixel (i, j)
func (c *Camera) pixelCenter(i, j int) core.Point {
	return c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(i))).
		Add(c.pixelDeltaV.Multiply(float64(j)))
}

// GetRay constructs a camera ray originating from the defocus disk and
// directed at a randomly sampled point around the pixel location i, j
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := sampleSquare(sampler)
	pixelSample := c.pixelCenter(i, j).
		Add(c.pixelDeltaU.Multiply(offset.X)).
		Add(c.pixelDeltaV.Multiply(offset.Y))

	rayOrigin := c.center
	if c.config.DefocusAngle > 0 {
		rayOrigin = c.defocusDiskSample(sampler)
	}

	return core.NewRay(rayOrigin, pixelSample.Subtract(rayOrigin))
}

// sampleSquare returns a random point in the [-.5,-.5]-[+.5,+.5] unit square
func sampleSquare(sampler core.Sampler) core.Vec2 {
	s := sampler.Get2D()
	return core.NewVec2(s.X-0.5, s.Y-0.5)
}

// defocusDiskSample returns a random point in the camera defocus disk
func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Point {
	p := core.RandomInUnitDisk(sampler)
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}
