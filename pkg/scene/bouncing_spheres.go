package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// Material mix of the small spheres
const (
	diffuseChance = 0.8
	metalChance   = 0.95 // cumulative; the rest is glass
)

// NewBouncingSpheresScene creates a 22x22 grid of small randomly placed spheres
// around three large ones. The layout and materials are drawn from sampler.
func NewBouncingSpheresScene(sampler core.Sampler, cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := renderer.CameraConfig{
		AspectRatio:  16.0 / 9.0,
		ImageWidth:   400,
		VFov:         20,
		LookFrom:     core.NewVec3(13, 2, 3),
		LookAt:       core.NewVec3(0, 0, 0),
		VUp:          core.NewVec3(0, 1, 0),
		DefocusAngle: 0.6,
		FocusDist:    10.0,
	}

	samplingConfig := renderer.SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}

	world := geometry.NewShapeList()

	groundMaterial := material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))
	world.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, groundMaterial))

	clearing := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(float64(a)+0.9*sampler.Get1D(), 0.2, float64(b)+0.9*sampler.Get1D())

			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var sphereMaterial core.Material
			switch {
			case chooseMat < diffuseChance:
				albedo := core.RandomVec3(sampler).MultiplyVec(core.RandomVec3(sampler))
				sphereMaterial = material.NewLambertian(albedo)
			case chooseMat < metalChance:
				albedo := core.RandomVec3InRange(sampler, 0.5, 1)
				fuzz := core.RandomFloat(sampler, 0, 0.5)
				sphereMaterial = material.NewMetal(albedo, fuzz)
			default:
				sphereMaterial = material.NewDielectric(1.5)
			}
			world.Add(geometry.NewSphere(center, 0.2, sphereMaterial))
		}
	}

	world.Add(geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)))
	world.Add(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewColor(0.4, 0.2, 0.1))))
	world.Add(geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewColor(0.7, 0.6, 0.5), 0.0)))

	return newScene("bouncing-spheres", world, cameraConfig, samplingConfig, cameraOverrides)
}
