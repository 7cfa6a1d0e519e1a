package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// Vec3Cfg is a vector written as a JSON array [x, y, z]
type Vec3Cfg [3]float64

func (v Vec3Cfg) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// CameraCfg holds optional camera settings; omitted fields keep the default camera's values
type CameraCfg struct {
	AspectRatio  *float64 `json:"aspectRatio,omitempty"`
	ImageWidth   *int     `json:"imageWidth,omitempty"`
	VFov         *float64 `json:"vfov,omitempty"`
	LookFrom     *Vec3Cfg `json:"lookFrom,omitempty"`
	LookAt       *Vec3Cfg `json:"lookAt,omitempty"`
	VUp          *Vec3Cfg `json:"vup,omitempty"`
	DefocusAngle *float64 `json:"defocusAngle,omitempty"`
	FocusDist    *float64 `json:"focusDist,omitempty"`
}

// SamplingCfg holds optional sampling settings
type SamplingCfg struct {
	SamplesPerPixel *int `json:"samplesPerPixel,omitempty"`
	MaxDepth        *int `json:"maxDepth,omitempty"`
	ScanlineDelayMs *int `json:"scanlineDelayMs,omitempty"`
}

// MaterialCfg describes one named material.
// Type is one of "lambertian", "metal" or "dielectric".
type MaterialCfg struct {
	Type            string  `json:"type"`
	Albedo          Vec3Cfg `json:"albedo"`
	Fuzz            float64 `json:"fuzz,omitempty"`
	RefractionIndex float64 `json:"refractionIndex,omitempty"`
}

// SphereCfg places a sphere with a material referenced by name
type SphereCfg struct {
	Center   Vec3Cfg `json:"center"`
	Radius   float64 `json:"radius"`
	Material string  `json:"material"`
}

// Config is the JSON scene file layout
type Config struct {
	Name        string                 `json:"name,omitempty"`
	Description string                 `json:"description,omitempty"`
	Camera      CameraCfg              `json:"camera"`
	Sampling    SamplingCfg            `json:"sampling"`
	Materials   map[string]MaterialCfg `json:"materials"`
	Spheres     []SphereCfg            `json:"spheres"`
}

// Build creates the material
func (mc MaterialCfg) Build() (core.Material, error) {
	switch strings.ToLower(mc.Type) {
	case "lambertian":
		return material.NewLambertian(mc.Albedo.Vec3()), nil
	case "metal":
		if mc.Fuzz < 0 || mc.Fuzz > 1 {
			return nil, fmt.Errorf("metal fuzz must be in [0, 1], got %g", mc.Fuzz)
		}
		return material.NewMetal(mc.Albedo.Vec3(), mc.Fuzz), nil
	case "dielectric":
		if !(mc.RefractionIndex > 0) {
			return nil, fmt.Errorf("dielectric refraction index must be positive, got %g", mc.RefractionIndex)
		}
		return material.NewDielectric(mc.RefractionIndex), nil
	default:
		return nil, fmt.Errorf("unknown material type %q", mc.Type)
	}
}

// Build creates the sphere, looking its material up by name
func (sc SphereCfg) Build(materials map[string]core.Material) (*geometry.Sphere, error) {
	if sc.Radius == 0 || math.IsNaN(sc.Radius) || math.IsInf(sc.Radius, 0) {
		return nil, fmt.Errorf("sphere radius must be non-zero and finite, got %g", sc.Radius)
	}
	mat, ok := materials[sc.Material]
	if !ok {
		return nil, fmt.Errorf("unknown material %q", sc.Material)
	}
	return geometry.NewSphere(sc.Center.Vec3(), sc.Radius, mat), nil
}

// Apply overlays the configured camera fields on base
func (cc CameraCfg) Apply(base renderer.CameraConfig) renderer.CameraConfig {
	result := base
	if cc.AspectRatio != nil {
		result.AspectRatio = *cc.AspectRatio
	}
	if cc.ImageWidth != nil {
		result.ImageWidth = *cc.ImageWidth
	}
	if cc.VFov != nil {
		result.VFov = *cc.VFov
	}
	if cc.LookFrom != nil {
		result.LookFrom = cc.LookFrom.Vec3()
	}
	if cc.LookAt != nil {
		result.LookAt = cc.LookAt.Vec3()
	}
	if cc.VUp != nil {
		result.VUp = cc.VUp.Vec3()
	}
	if cc.DefocusAngle != nil {
		result.DefocusAngle = *cc.DefocusAngle
	}
	if cc.FocusDist != nil {
		result.FocusDist = *cc.FocusDist
	}
	return result
}

// Apply overlays the configured sampling fields on base
func (sc SamplingCfg) Apply(base renderer.SamplingConfig) renderer.SamplingConfig {
	result := base
	if sc.SamplesPerPixel != nil {
		result.SamplesPerPixel = *sc.SamplesPerPixel
	}
	if sc.MaxDepth != nil {
		result.MaxDepth = *sc.MaxDepth
	}
	if sc.ScanlineDelayMs != nil {
		result.ScanlineDelay = time.Duration(*sc.ScanlineDelayMs) * time.Millisecond
	}
	return result
}

// Build turns the config into a scene
func (c *Config) Build(cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	materials := make(map[string]core.Material, len(c.Materials))
	for name, mc := range c.Materials {
		mat, err := mc.Build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	world := geometry.NewShapeList()
	for i, sc := range c.Spheres {
		sphere, err := sc.Build(materials)
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		world.Add(sphere)
	}

	cameraConfig := c.Camera.Apply(renderer.DefaultCameraConfig())
	samplingConfig := c.Sampling.Apply(renderer.DefaultSamplingConfig())
	return newScene(c.Name, world, cameraConfig, samplingConfig, cameraOverrides), nil
}

// ParseJSON decodes a scene file. Unknown fields are rejected.
func ParseJSON(r io.Reader, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	cfg, err := decodeConfig(r)
	if err != nil {
		return nil, err
	}
	return cfg.Build(cameraOverrides...)
}

// LoadJSON reads a scene file from disk. A scene without a name is named after the file.
func LoadJSON(path string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer f.Close()

	s, err := ParseJSON(f, cameraOverrides...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

func decodeConfig(r io.Reader) (*Config, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	return &cfg, nil
}
