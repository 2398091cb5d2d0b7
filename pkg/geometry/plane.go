package geometry

import (
	"math"

	"github.com/df07/go-bounce-tracer/pkg/core"
)

// Plane represents an infinite plane N·P + D = 0
type Plane struct {
	Normal        core.Vec3 // Unit normal
	D             float64   // Signed offset
	MaterialIndex int
}

// NewPlane creates a new plane
func NewPlane(normal core.Vec3, d float64, materialIndex int) Plane {
	return Plane{
		Normal:        normal,
		D:             d,
		MaterialIndex: materialIndex,
	}
}

// NewPlaneThroughPoint creates the plane with the given normal passing through point
func NewPlaneThroughPoint(point, normal core.Vec3, materialIndex int) Plane {
	n := normal.Normalize()
	return NewPlane(n, -n.Dot(point), materialIndex)
}

// Intersect returns the ray parameter where the ray crosses the plane.
// Rays parallel to the plane and crossings at or behind the origin miss.
func (p Plane) Intersect(ray core.Ray) (float64, bool) {
	denominator := p.Normal.Dot(ray.Direction)
	if math.Abs(denominator) <= Tolerance {
		return 0, false
	}

	t := (-p.D - p.Normal.Dot(ray.Origin)) / denominator
	if t <= Tolerance {
		return 0, false
	}
	return t, true
}

// Hit tests if a ray intersects with the plane closer than tMax
func (p Plane) Hit(ray core.Ray, tMax float64) (Hit, bool) {
	t, ok := p.Intersect(ray)
	if !ok || t >= tMax {
		return Hit{}, false
	}

	return Hit{
		T:             t,
		Point:         ray.At(t),
		Normal:        p.Normal,
		MaterialIndex: p.MaterialIndex,
	}, true
}
