package integrator

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// ShadowAcneEpsilon is the smallest ray parameter accepted as a hit, so a
// scattered ray does not re-hit the surface it just left
const ShadowAcneEpsilon = 0.001

// PathTracingIntegrator implements recursive Monte Carlo path tracing
type PathTracingIntegrator struct {
	maxDepth int
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		maxDepth: maxDepth,
	}
}

// RayColor computes the color for a single camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world core.Shape, sampler core.Sampler) core.Color {
	return pt.rayColor(ray, pt.maxDepth, world, sampler)
}

// rayColor follows a ray through the world for at most depth bounces
func (pt *PathTracingIntegrator) rayColor(ray core.Ray, depth int, world core.Shape, sampler core.Sampler) core.Color {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Color{}
	}

	hit, isHit := world.Hit(ray, core.NewInterval(ShadowAcneEpsilon, math.Inf(1)))
	if !isHit {
		return SkyGradient(ray)
	}

	if hit.Material == nil {
		return core.Color{}
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return core.Color{} // Material absorbed the ray
	}

	return scatter.Attenuation.MultiplyVec(pt.rayColor(scatter.Scattered, depth-1, world, sampler))
}
