package core

import (
	"math"
	"math/rand"
)

// maxRejectionAttempts bounds the rejection samplers below. A sampler that can
// never produce an accepted candidate falls back to a direct mapping instead of
// spinning forever.
const maxRejectionAttempts = 64

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler backed by a new generator with the given seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// ConstantSampler returns the same value for every draw
type ConstantSampler struct {
	Value float64
}

// NewConstantSampler creates a sampler that always returns value
func NewConstantSampler(value float64) *ConstantSampler {
	return &ConstantSampler{Value: value}
}

// Get1D returns the constant
func (c *ConstantSampler) Get1D() float64 {
	return c.Value
}

// Get2D returns the constant in both components
func (c *ConstantSampler) Get2D() Vec2 {
	return NewVec2(c.Value, c.Value)
}

// Get3D returns the constant in all components
func (c *ConstantSampler) Get3D() Vec3 {
	return NewVec3(c.Value, c.Value, c.Value)
}

// RandomFloat returns a random float64 in [min, max)
func RandomFloat(sampler Sampler, minVal, maxVal float64) float64 {
	return minVal + (maxVal-minVal)*sampler.Get1D()
}

// RandomVec3 returns a vector with every component in [0, 1)
func RandomVec3(sampler Sampler) Vec3 {
	return sampler.Get3D()
}

// RandomVec3InRange returns a vector with every component in [min, max)
func RandomVec3InRange(sampler Sampler, minVal, maxVal float64) Vec3 {
	u := sampler.Get3D()
	return Vec3{
		X: minVal + (maxVal-minVal)*u.X,
		Y: minVal + (maxVal-minVal)*u.Y,
		Z: minVal + (maxVal-minVal)*u.Z,
	}
}

// RandomUnitVector returns a uniformly distributed unit vector.
// Candidates are drawn from the [-1,1]³ cube and kept when they fall inside the
// unit sphere; tiny candidates are rejected so normalizing them cannot overflow.
func RandomUnitVector(sampler Sampler) Vec3 {
	for i := 0; i < maxRejectionAttempts; i++ {
		p := RandomVec3InRange(sampler, -1, 1)
		lensq := p.LengthSquared()
		if 1e-160 < lensq && lensq <= 1 {
			return p.Divide(math.Sqrt(lensq))
		}
	}
	return SampleOnUnitSphere(sampler.Get2D())
}

// RandomInUnitDisk returns a random point with x²+y² < 1 and z = 0 (for depth of field)
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for i := 0; i < maxRejectionAttempts; i++ {
		// Generate random point in [-1,1] x [-1,1] square
		s := sampler.Get2D()
		p := NewVec3(2*s.X-1, 2*s.Y-1, 0)
		// Accept if inside unit disk
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
	return SamplePointInUnitDisk(sampler.Get2D())
}

// SampleOnUnitSphere maps a 2D sample to a uniform direction on the unit sphere
func SampleOnUnitSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	x := r * math.Cos(phi)
	y := r * math.Sin(phi)
	return NewVec3(x, y, z)
}

// SamplePointInUnitDisk maps a 2D sample to the unit disk using concentric mapping.
// Points on the boundary square map to the rim of the disk, so the result is
// scaled by a hair to keep x²+y² < 1.
func SamplePointInUnitDisk(sample Vec2) Vec3 {
	// Map sample to [-1,1]² and handle degeneracy at the origin
	uOffset := NewVec2(2*sample.X-1, 2*sample.Y-1)
	if uOffset.X == 0 && uOffset.Y == 0 {
		return NewVec3(0, 0, 0)
	}

	// Apply concentric mapping to point
	var theta, r float64
	if math.Abs(uOffset.X) > math.Abs(uOffset.Y) {
		r = uOffset.X
		theta = math.Pi / 4 * (uOffset.Y / uOffset.X)
	} else {
		r = uOffset.Y
		theta = math.Pi/2 - math.Pi/4*(uOffset.X/uOffset.Y)
	}

	const shrink = 1 - 1e-9
	return NewVec3(r*math.Cos(theta)*shrink, r*math.Sin(theta)*shrink, 0)
}
