package integrator

import (
	"github.com/df07/go-bounce-tracer/pkg/core"
	"github.com/df07/go-bounce-tracer/pkg/scene"
)

// DefaultMaxBounces is the bounce cap used when none is configured
const DefaultMaxBounces = 8

// BounceIntegrator traces a single path with a fixed bounce budget.
// Each surface adds its emission weighted by the path attenuation, then
// scales the attenuation by cos(theta) times its reflectance. The next
// direction blends a perturbed normal (diffuse) and the mirror direction
// by the material's scatter value. Paths stop when they escape to the
// background or run out of bounces; there is no Russian roulette.
type BounceIntegrator struct {
	maxBounces int
}

// NewBounceIntegrator creates an integrator that follows at most maxBounces bounces
func NewBounceIntegrator(maxBounces int) *BounceIntegrator {
	return &BounceIntegrator{maxBounces: maxBounces}
}

// MaxBounces returns the bounce cap
func (bi *BounceIntegrator) MaxBounces() int {
	return bi.maxBounces
}

// RayColor computes the radiance arriving along ray
func (bi *BounceIntegrator) RayColor(ray core.Ray, world *scene.World, sampler core.Sampler) (core.Vec3, int) {
	result := core.Vec3{}
	attenuation := core.NewVec3(1, 1, 1)
	bounces := 0

	for bounces < bi.maxBounces {
		bounces++

		hit, isHit := world.Closest(ray)
		if !isHit {
			// Escaped: the background terminates the path
			result = result.Add(attenuation.MultiplyVec(world.Background().Emit))
			break
		}

		mat := world.Material(hit.MaterialIndex)
		cosTerm := max(0, ray.Direction.Negate().Dot(hit.Normal))

		// Emission is added before the cosine-weighted attenuation update
		result = result.Add(attenuation.MultiplyVec(mat.Emit))
		attenuation = attenuation.MultiplyVec(mat.Reflect.Multiply(cosTerm))

		ray = core.NewRay(hit.Point, bounceDirection(ray.Direction, hit.Normal, mat.Scatter, sampler))
	}

	return result, bounces
}

// bounceDirection blends a diffuse and a mirror bounce. The result is always
// a unit vector; degenerate blends fall back to the surface normal.
func bounceDirection(incoming, normal core.Vec3, scatter float64, sampler core.Sampler) core.Vec3 {
	mirror := incoming.Reflect(normal)

	// One 3D sample per bounce, mirrors included
	random := normal.Add(core.SampleInUnitCube(sampler.Get3D())).Normalize()
	if random == (core.Vec3{}) {
		random = normal
	}

	direction := random.Lerp(mirror, scatter).Normalize()
	if direction == (core.Vec3{}) {
		return normal
	}
	return direction
}
