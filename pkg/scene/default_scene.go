package scene

import (
	"math/rand"

	"github.com/df07/go-bounce-tracer/pkg/core"
	"github.com/df07/go-bounce-tracer/pkg/geometry"
)

// NewDefaultScene creates the default scene: a grey ground plane, a row of
// eight coloured spheres and a teal sky. Sphere heights and radii are drawn
// from a generator seeded with seed, so a given seed always yields the same layout.
func NewDefaultScene(seed int64) (*Scene, error) {
	random := rand.New(rand.NewSource(seed))
	uniform := func(lo, hi float64) float64 {
		return lo + (hi-lo)*random.Float64()
	}

	materials := []Material{
		NewEmissive(core.NewVec3(0.3, 0.5, 0.5)),      // 0: sky
		NewDiffuse(core.NewVec3(0.5, 0.5, 0.5), 0),    // 1: ground
		NewDiffuse(core.NewVec3(0.7, 0.5, 0.3), 0),    // 2
		NewDiffuse(core.NewVec3(0.3, 0.8, 0.3), 0.7),  // 3
		NewEmissive(core.NewVec3(4.0, 4.0, 4.0)),      // 4: light
		NewDiffuse(core.NewVec3(0.3, 0.3, 0.8), 0.85), // 5
		NewDiffuse(core.NewVec3(0.3, 0.7, 0.9), 1.0),  // 6: mirror
		NewDiffuse(core.NewVec3(0.5, 0.8, 0.3), 0.5),  // 7
		NewDiffuse(core.NewVec3(0.2, 0.5, 0.3), 0.6),  // 8
		NewDiffuse(core.NewVec3(0.5, 0.3, 0.8), 0.9),  // 9
	}

	planes := []geometry.Plane{
		geometry.NewPlane(core.NewVec3(0, 0, 1), 0, 1),
	}

	spheres := make([]geometry.Sphere, 8)
	for i := range spheres {
		center := core.NewVec3(-13.0+float64(i)*4.0, 5, uniform(0.5, 3))
		spheres[i] = geometry.NewSphere(center, uniform(0.75, 2.0), i+2)
	}

	world, err := NewWorld(materials, planes, spheres)
	if err != nil {
		return nil, err
	}

	camera, err := NewLookAtCamera(
		core.NewVec3(0, -10, 1),
		core.NewVec3(0, -10, 1).Add(core.NewVec3(0, 1, 0.2)), // looking along +Y, slightly up
		core.NewVec3(0, 0, 1),
	)
	if err != nil {
		return nil, err
	}

	return NewScene("default", camera, world)
}
