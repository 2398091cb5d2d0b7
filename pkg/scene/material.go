package scene

import (
	"fmt"

	"github.com/df07/go-bounce-tracer/pkg/core"
)

// Material blends between diffuse and mirror scattering.
// Scatter 0 is pure diffuse, 1 is a perfect mirror.
type Material struct {
	Scatter float64
	Emit    core.Vec3 // Emitted radiance, added regardless of incoming light
	Reflect core.Vec3 // Reflectance applied to light arriving along the bounced path
}

// NewDiffuse creates a non-emissive material with the given reflectance and scatter blend
func NewDiffuse(reflect core.Vec3, scatter float64) Material {
	return Material{Scatter: scatter, Reflect: reflect}
}

// NewEmissive creates a light-emitting material that does not reflect
func NewEmissive(emit core.Vec3) Material {
	return Material{Emit: emit}
}

// Validate checks that the scatter blend is in [0,1] and colors are non-negative
func (m Material) Validate() error {
	if !(m.Scatter >= 0 && m.Scatter <= 1) {
		return fmt.Errorf("%w: scatter %v outside [0,1]", ErrInvalidMaterial, m.Scatter)
	}
	if !nonNegative(m.Emit) {
		return fmt.Errorf("%w: emit color %v", ErrInvalidMaterial, m.Emit)
	}
	if !nonNegative(m.Reflect) {
		return fmt.Errorf("%w: reflect color %v", ErrInvalidMaterial, m.Reflect)
	}
	return nil
}

func nonNegative(v core.Vec3) bool {
	return v.IsFinite() && v.X >= 0 && v.Y >= 0 && v.Z >= 0
}
