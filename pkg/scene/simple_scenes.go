package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// NewSingleSphereScene creates a white diffuse sphere of radius 0.5 at (0,0,-1)
// viewed by the default camera
func NewSingleSphereScene(sampler core.Sampler, cameraOverrides ...renderer.CameraConfig) *Scene {
	white := material.NewLambertian(core.NewColor(1, 1, 1))
	world := geometry.NewShapeList(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, white))

	return newScene("single-sphere", world, renderer.DefaultCameraConfig(), renderer.DefaultSamplingConfig(), cameraOverrides)
}

// NewRandomSphereScene creates a radius 2 sphere with a random center in the
// unit cube and a random albedo, so the default camera usually sits inside it
func NewRandomSphereScene(sampler core.Sampler, cameraOverrides ...renderer.CameraConfig) *Scene {
	center := core.RandomVec3(sampler)
	albedo := core.RandomVec3(sampler).MultiplyVec(core.RandomVec3(sampler))
	world := geometry.NewShapeList(geometry.NewSphere(center, 2.0, material.NewLambertian(albedo)))

	return newScene("random-sphere", world, renderer.DefaultCameraConfig(), renderer.DefaultSamplingConfig(), cameraOverrides)
}

// NewEmptyScene creates a scene without objects; every ray sees the sky
func NewEmptyScene(sampler core.Sampler, cameraOverrides ...renderer.CameraConfig) *Scene {
	return newScene("empty", geometry.NewShapeList(), renderer.DefaultCameraConfig(), renderer.DefaultSamplingConfig(), cameraOverrides)
}
