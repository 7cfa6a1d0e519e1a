package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	World          *geometry.ShapeList
	CameraConfig   renderer.CameraConfig
	SamplingConfig renderer.SamplingConfig
}

// NewCamera builds the camera described by the scene's camera config
func (s *Scene) NewCamera() (*renderer.Camera, error) {
	return renderer.NewCamera(s.CameraConfig)
}

// GetPrimitiveCount returns the number of objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}

// Builder creates a built-in scene. Scenes with a random layout draw it from sampler.
type Builder func(sampler core.Sampler, cameraOverrides ...renderer.CameraConfig) *Scene

type builtin struct {
	builder     Builder
	displayName string
	description string
}

var builtins = map[string]builtin{
	"single-sphere": {
		builder:     NewSingleSphereScene,
		displayName: "Single Sphere",
		description: "One white diffuse sphere in front of the camera",
	},
	"random-sphere": {
		builder:     NewRandomSphereScene,
		displayName: "Random Sphere",
		description: "A large diffuse sphere with random position and color",
	},
	"default": {
		builder:     NewDefaultScene,
		displayName: "Default Scene",
		description: "Diffuse, glass bubble and fuzzy metal spheres on a ground sphere",
	},
	"bouncing-spheres": {
		builder:     NewBouncingSpheresScene,
		displayName: "Bouncing Spheres",
		description: "Random field of small spheres around three large ones",
	},
	"empty": {
		builder:     NewEmptyScene,
		displayName: "Empty",
		description: "Nothing but sky",
	},
}

// Create builds the built-in scene with the given name
func Create(name string, sampler core.Sampler, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, ListScenes())
	}
	if sampler == nil {
		return nil, fmt.Errorf("scene %q: sampler is nil", name)
	}
	return b.builder(sampler, cameraOverrides...), nil
}

// ListScenes returns the names of all built-in scenes, sorted
func ListScenes() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// newScene applies camera overrides to a scene's default camera
func newScene(name string, world *geometry.ShapeList, cameraConfig renderer.CameraConfig, samplingConfig renderer.SamplingConfig, cameraOverrides []renderer.CameraConfig) *Scene {
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}
	return &Scene{
		Name:           name,
		World:          world,
		CameraConfig:   cameraConfig,
		SamplingConfig: samplingConfig,
	}
}
