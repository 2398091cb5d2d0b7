package geometry

import (
	"github.com/df07/go-bounce-tracer/pkg/core"
)

// Tolerance guards against self-intersection at the ray origin and
// against dividing by near-zero denominators.
const Tolerance = 1e-4

// Hit describes the nearest surface a ray struck
type Hit struct {
	T             float64   // Distance along the ray, in units of the ray direction
	Point         core.Vec3 // World-space hit point
	Normal        core.Vec3 // Unit surface normal (outward for spheres, plane normal for planes)
	MaterialIndex int       // Index into the world's material table
}

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit reports an intersection with Tolerance < t < tMax
	Hit(ray core.Ray, tMax float64) (Hit, bool)
}
