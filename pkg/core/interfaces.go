package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit reports whether the ray strikes the shape at a parameter t that lies
	// strictly inside rayT. The record describes the nearest such hit.
	Hit(ray Ray, rayT Interval) (*HitRecord, bool)
}

// Material interface for objects that can scatter rays
type Material interface {
	// Scatter returns false when the incoming ray is absorbed
	Scatter(rayIn Ray, hit HitRecord, sampler Sampler) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray   // The scattered ray
	Attenuation Color // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     Point    // Point of intersection
	Normal    Vec3     // Unit surface normal, always opposing the incoming ray
	Material  Material // Material of the hit object, shared with the shape
	T         float64  // Parameter t along the ray
	FrontFace bool     // Whether ray hit the front face
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal is assumed to have unit length.
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
