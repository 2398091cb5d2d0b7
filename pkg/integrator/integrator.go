package integrator

import (
	"github.com/df07/go-bounce-tracer/pkg/core"
	"github.com/df07/go-bounce-tracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns one radiance sample for the ray and the number of
	// bounce iterations it took. The sampler must not be shared between goroutines.
	RayColor(ray core.Ray, world *scene.World, sampler core.Sampler) (core.Vec3, int)
}
