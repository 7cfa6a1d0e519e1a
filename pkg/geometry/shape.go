package geometry

import "github.com/df07/go-weekend-raytracer/pkg/core"

// ShapeList is an ordered collection of shapes that is itself a shape.
// A hit reports the nearest intersection over all members.
type ShapeList struct {
	Shapes []core.Shape
}

// NewShapeList creates a list holding the given shapes
func NewShapeList(shapes ...core.Shape) *ShapeList {
	return &ShapeList{Shapes: append([]core.Shape(nil), shapes...)}
}

// Add appends a shape to the list
func (l *ShapeList) Add(shape core.Shape) {
	l.Shapes = append(l.Shapes, shape)
}

// Clear removes every shape
func (l *ShapeList) Clear() {
	l.Shapes = nil
}

// Len returns the number of shapes in the list
func (l *ShapeList) Len() int {
	return len(l.Shapes)
}

// Hit checks the ray against every member, narrowing the search interval to
// the closest hit found so far so farther shapes are skipped
func (l *ShapeList) Hit(ray core.Ray, rayT core.Interval) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := rayT.Max

	for _, shape := range l.Shapes {
		if hit, isHit := shape.Hit(ray, rayT.WithMax(closestSoFar)); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
