package integrator

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the radiance arriving along a ray from the world
	RayColor(ray core.Ray, world core.Shape, sampler core.Sampler) core.Color
}

// Sky gradient end points
var (
	skyHorizon = core.NewColor(1.0, 1.0, 1.0)
	skyZenith  = core.NewColor(0.5, 0.7, 1.0)
)

// SkyGradient returns the background color seen along a ray that escapes the scene.
// It blends white to pale blue based on the height of the normalized direction.
func SkyGradient(ray core.Ray) core.Color {
	unitDirection := ray.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	a := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-a)*horizon + a*zenith
	return skyHorizon.Multiply(1.0 - a).Add(skyZenith.Multiply(a))
}
