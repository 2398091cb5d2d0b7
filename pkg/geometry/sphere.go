package geometry

import (
	"math"

	"github.com/df07/go-bounce-tracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center        core.Vec3
	Radius        float64
	MaterialIndex int
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, materialIndex int) Sphere {
	return Sphere{
		Center:        center,
		Radius:        radius,
		MaterialIndex: materialIndex,
	}
}

// Intersect solves the ray/sphere quadratic and returns the chosen root.
// Grazing rays (root term within Tolerance) count as misses, and the near
// root is only used when it lies in front of the origin.
func (s Sphere) Intersect(ray core.Ray) (float64, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant <= 0 {
		return 0, false
	}

	rootTerm := math.Sqrt(discriminant)
	if rootTerm <= Tolerance {
		return 0, false
	}

	denominator := 2 * a
	tp := (-b + rootTerm) / denominator
	tn := (-b - rootTerm) / denominator

	t := tp
	if tn > Tolerance && tn < tp {
		t = tn
	}
	if t <= Tolerance {
		return 0, false
	}
	return t, true
}

// Hit tests if a ray intersects with the sphere closer than tMax
func (s Sphere) Hit(ray core.Ray, tMax float64) (Hit, bool) {
	t, ok := s.Intersect(ray)
	if !ok || t >= tMax {
		return Hit{}, false
	}

	point := ray.At(t)
	// Outward normal, not flipped for rays starting inside
	normal := point.Subtract(s.Center).Normalize()
	return Hit{
		T:             t,
		Point:         point,
		Normal:        normal,
		MaterialIndex: s.MaterialIndex,
	}, true
}
