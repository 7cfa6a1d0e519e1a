package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

func TestDielectricBasicBehavior(t *testing.T) {
	glass := NewDielectric(1.5)

	rayDirection := core.NewVec3(1, -1, 0).Normalize() // 45-degree angle
	ray := core.NewRay(core.NewVec3(-1, 1, 0), rayDirection)

	hit := core.HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0), // Normal pointing up
		T:         1.0,
		FrontFace: true,
		Material:  glass,
	}

	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))
	result, scattered := glass.Scatter(ray, hit, sampler)

	if !scattered {
		t.Error("Dielectric should always scatter")
	}

	// Check that attenuation is white (no color absorption)
	expectedAttenuation := core.NewVec3(1.0, 1.0, 1.0)
	if result.Attenuation != expectedAttenuation {
		t.Errorf("Expected attenuation %v, got %v", expectedAttenuation, result.Attenuation)
	}
	if result.Scattered.Origin != hit.Point {
		t.Errorf("Scattered ray should start at the hit point")
	}
}

func TestDielectric_NormalIncidenceRefracts(t *testing.T) {
	glass := NewDielectric(1.5)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit := core.HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		FrontFace: true,
	}

	// At normal incidence Schlick gives r0 = (0.5/2.5)^2 = 0.04
	r0 := Reflectance(1.0, 1.0/1.5)
	if math.Abs(r0-0.04) > 1e-12 {
		t.Fatalf("Expected reflectance 0.04, got %f", r0)
	}

	tests := []struct {
		name           string
		draw           float64
		expectedDirY   float64
		expectReflects bool
	}{
		{"draw above reflectance refracts", 0.5, -1, false},
		{"draw just above reflectance refracts", 0.041, -1, false},
		{"draw below reflectance reflects", 0.01, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, scattered := glass.Scatter(ray, hit, core.NewConstantSampler(tt.draw))
			if !scattered {
				t.Fatal("Dielectric should always scatter")
			}
			dir := result.Scattered.Direction
			if math.Abs(dir.Y-tt.expectedDirY) > 1e-9 || math.Abs(dir.X) > 1e-9 || math.Abs(dir.Z) > 1e-9 {
				t.Errorf("Expected direction (0,%f,0), got %v", tt.expectedDirY, dir)
			}
		})
	}
}

func TestDielectricTotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Shallow ray going from glass to air
	rayDirection := core.NewVec3(1, -0.1, 0).Normalize()
	ray := core.NewRay(core.NewVec3(0, 0, 0), rayDirection)

	// Back face hit: the ray is exiting the material
	hit := core.HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: false,
		Material:  glass,
	}

	cosTheta := -rayDirection.Dot(hit.Normal)
	refractionRatio := 1.5 // glass to air
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)
	if refractionRatio*sinTheta <= 1.0 {
		t.Fatalf("Test setup error: this angle should cause total internal reflection")
	}

	// Even a draw that would otherwise force refraction must reflect
	for _, draw := range []float64{0, 0.25, 0.5, 0.999} {
		result, scattered := glass.Scatter(ray, hit, core.NewConstantSampler(draw))
		if !scattered {
			t.Error("Dielectric should always scatter")
		}

		expected := core.Reflect(rayDirection, hit.Normal)
		if result.Scattered.Direction.Subtract(expected).Length() > 1e-12 {
			t.Errorf("draw %f: expected reflection %v, got %v", draw, expected, result.Scattered.Direction)
		}
	}
}

func TestDielectric_RefractionFollowsSnell(t *testing.T) {
	glass := NewDielectric(1.5)
	rayDirection := core.NewVec3(1, -1, 0).Normalize()
	ray := core.NewRay(core.NewVec3(-1, 1, 0), rayDirection)
	hit := core.HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		FrontFace: true,
	}

	// Draw of 0.999 is above any reflectance at 45°, so the ray refracts
	result, _ := glass.Scatter(ray, hit, core.NewConstantSampler(0.999))
	out := result.Scattered.Direction.Normalize()

	sinIn := math.Abs(rayDirection.X)
	sinOut := math.Abs(out.X)
	if math.Abs(1.0*sinIn-1.5*sinOut) > 1e-9 {
		t.Errorf("Snell's law violated: sinIn=%f sinOut=%f", sinIn, sinOut)
	}
	if out.Y >= 0 {
		t.Errorf("Refracted ray should continue into the glass, got %v", out)
	}
}

func TestReflectance(t *testing.T) {
	// Grazing incidence reflects everything
	if r := Reflectance(0, 1.0/1.5); math.Abs(r-1) > 1e-12 {
		t.Errorf("Expected reflectance 1 at grazing incidence, got %f", r)
	}

	// Reflectance grows monotonically as the angle becomes more grazing
	prev := Reflectance(1, 1.0/1.5)
	for cos := 0.9; cos >= 0; cos -= 0.1 {
		r := Reflectance(cos, 1.0/1.5)
		if r < prev {
			t.Errorf("Reflectance should increase towards grazing: cos=%f r=%f prev=%f", cos, r, prev)
		}
		prev = r
	}
}
