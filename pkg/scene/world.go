package scene

import (
	"fmt"
	"math"
	"slices"
	"sync/atomic"

	"github.com/df07/go-bounce-tracer/pkg/core"
	"github.com/df07/go-bounce-tracer/pkg/geometry"
)

// normalTolerance bounds how far a plane normal may be from unit length
const normalTolerance = 1e-6

// World is the validated, read-only geometry and material table of a scene.
// Material 0 is the background: it is used when a ray escapes and may not
// be assigned to a primitive. The bounce counter is the only mutable state
// and is updated atomically, so a World can be shared by any number of workers.
type World struct {
	materials []Material
	planes    []geometry.Plane
	spheres   []geometry.Sphere

	raysBounced atomic.Uint64
}

// NewWorld copies and validates the scene tables. Material indices and plane
// normals are checked here once so the render loop can trust them.
func NewWorld(materials []Material, planes []geometry.Plane, spheres []geometry.Sphere) (*World, error) {
	if len(materials) == 0 {
		return nil, ErrMissingBackground
	}
	for i, m := range materials {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("material %d: %w", i, err)
		}
	}

	for i, p := range planes {
		if !p.Normal.IsFinite() || math.Abs(p.Normal.Length()-1) > normalTolerance {
			return nil, fmt.Errorf("plane %d: %w (|N| = %g)", i, ErrNonUnitNormal, p.Normal.Length())
		}
		if math.IsNaN(p.D) || math.IsInf(p.D, 0) {
			return nil, fmt.Errorf("plane %d: offset %v is not finite", i, p.D)
		}
		if err := checkMaterialIndex(p.MaterialIndex, len(materials)); err != nil {
			return nil, fmt.Errorf("plane %d: %w", i, err)
		}
	}

	for i, s := range spheres {
		if !(s.Radius > 0) || math.IsInf(s.Radius, 0) || !s.Center.IsFinite() {
			return nil, fmt.Errorf("sphere %d: %w (r = %g)", i, ErrInvalidRadius, s.Radius)
		}
		if err := checkMaterialIndex(s.MaterialIndex, len(materials)); err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
	}

	return &World{
		materials: slices.Clone(materials),
		planes:    slices.Clone(planes),
		spheres:   slices.Clone(spheres),
	}, nil
}

// checkMaterialIndex rejects the background slot and anything past the table
func checkMaterialIndex(index, count int) error {
	if index < 1 || index >= count {
		return fmt.Errorf("%w: %d (valid range 1..%d)", ErrInvalidMaterialIndex, index, count-1)
	}
	return nil
}

// Closest returns the nearest surface hit by the ray, if any
func (w *World) Closest(ray core.Ray) (geometry.Hit, bool) {
	return geometry.Closest(ray, w.planes, w.spheres)
}

// Material returns the material at a validated index
func (w *World) Material(index int) Material {
	return w.materials[index]
}

// Background returns the material seen by rays that escape the scene
func (w *World) Background() Material {
	return w.materials[0]
}

// Materials returns a copy of the material table
func (w *World) Materials() []Material {
	return slices.Clone(w.materials)
}

// Planes returns a copy of the plane list
func (w *World) Planes() []geometry.Plane {
	return slices.Clone(w.planes)
}

// Spheres returns a copy of the sphere list
func (w *World) Spheres() []geometry.Sphere {
	return slices.Clone(w.spheres)
}

// PrimitiveCount returns the number of planes and spheres
func (w *World) PrimitiveCount() int {
	return len(w.planes) + len(w.spheres)
}

// AddBounces adds n bounce iterations to the diagnostic counter
func (w *World) AddBounces(n uint64) {
	w.raysBounced.Add(n)
}

// RaysBounced returns the total bounce iterations recorded so far
func (w *World) RaysBounced() uint64 {
	return w.raysBounced.Load()
}
