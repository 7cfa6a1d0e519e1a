package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestRandomFloat_Range(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))
	for i := 0; i < 1000; i++ {
		x := RandomFloat(sampler, -2, 3)
		if x < -2 || x >= 3 {
			t.Fatalf("RandomFloat out of range: %f", x)
		}
	}
}

func TestRandomVec3InRange(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))
	for i := 0; i < 1000; i++ {
		v := RandomVec3InRange(sampler, 0.5, 1)
		for _, c := range []float64{v.X, v.Y, v.Z} {
			if c < 0.5 || c >= 1 {
				t.Fatalf("Component out of range: %v", v)
			}
		}
	}
}

func TestRandomUnitVector(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))

	var sum Vec3
	const n = 20000
	for i := 0; i < n; i++ {
		v := RandomUnitVector(sampler)
		if math.Abs(v.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit vector, got length %f", v.Length())
		}
		sum = sum.Add(v)
	}

	// Uniform directions average out to the origin
	mean := sum.Multiply(1.0 / n)
	if mean.Length() > 0.03 {
		t.Errorf("Mean direction too far from origin: %v", mean)
	}
}

func TestRandomInUnitDisk(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(7)))
	for i := 0; i < 1000; i++ {
		p := RandomInUnitDisk(sampler)
		if p.Z != 0 {
			t.Fatalf("Disk sample should lie in the z=0 plane, got %v", p)
		}
		if p.LengthSquared() >= 1 {
			t.Fatalf("Disk sample outside unit disk: %v", p)
		}
	}
}

func TestRejectionSamplers_TerminateWithConstantSampler(t *testing.T) {
	tests := []struct {
		name  string
		value float64
	}{
		{"zero", 0},
		{"half", 0.5},
		{"almost one", 0.999999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sampler := NewConstantSampler(tt.value)

			v := RandomUnitVector(sampler)
			if math.Abs(v.Length()-1) > 1e-9 {
				t.Errorf("Expected unit vector, got %v", v)
			}

			p := RandomInUnitDisk(sampler)
			if p.LengthSquared() >= 1 || p.Z != 0 {
				t.Errorf("Expected point inside unit disk, got %v", p)
			}
		})
	}
}

func TestRandomUnitVector_ZeroSamplerFallback(t *testing.T) {
	v := RandomUnitVector(NewConstantSampler(0))
	if !vecNear(v, NewVec3(0, 0, 1), tolerance) {
		t.Errorf("Expected +Z fallback direction, got %v", v)
	}
}

func TestSampleOnUnitSphere(t *testing.T) {
	samples := []Vec2{{0, 0}, {0.5, 0.25}, {0.9, 0.1}, {0.999, 0.999}}
	for _, s := range samples {
		v := SampleOnUnitSphere(s)
		if math.Abs(v.Length()-1) > 1e-9 {
			t.Errorf("SampleOnUnitSphere(%v) has length %f", s, v.Length())
		}
	}
}

func TestSeededSampler_Deterministic(t *testing.T) {
	a := NewSeededSampler(99)
	b := NewSeededSampler(99)
	for i := 0; i < 10; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatal("Samplers with the same seed should produce the same sequence")
		}
	}
}
