package geometry

import (
	"math"

	"github.com/df07/go-bounce-tracer/pkg/core"
)

// Closest scans every plane and then every sphere and returns the nearest
// hit in front of the ray origin. A later primitive only replaces the
// current best when it is strictly closer.
func Closest(ray core.Ray, planes []Plane, spheres []Sphere) (Hit, bool) {
	var closest Hit
	closestSoFar := math.MaxFloat64

	hitPlane := closestIn(ray, planes, &closest, &closestSoFar)
	hitSphere := closestIn(ray, spheres, &closest, &closestSoFar)

	return closest, hitPlane || hitSphere
}

// closestIn narrows closest to any shape hit nearer than closestSoFar
func closestIn[S Shape](ray core.Ray, shapes []S, closest *Hit, closestSoFar *float64) bool {
	hitAnything := false
	for i := range shapes {
		if hit, isHit := shapes[i].Hit(ray, *closestSoFar); isHit {
			hitAnything = true
			*closestSoFar = hit.T
			*closest = hit
		}
	}
	return hitAnything
}
