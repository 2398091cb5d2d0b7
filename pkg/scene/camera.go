package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-bounce-tracer/pkg/core"
)

// basisTolerance bounds how far a camera basis may drift from orthonormal
const basisTolerance = 1e-6

// Camera is a pinhole camera with a right-handed orthonormal basis.
// The camera looks along -Z; X points right and Y points up on the film.
type Camera struct {
	Position core.Vec3
	X        core.Vec3
	Y        core.Vec3
	Z        core.Vec3
}

// NewLookAtCamera builds a camera at position looking towards target
func NewLookAtCamera(position, target, up core.Vec3) (Camera, error) {
	z := position.Subtract(target).Normalize()
	if z == (core.Vec3{}) {
		return Camera{}, fmt.Errorf("%w: position equals target", ErrInvalidCamera)
	}

	x := up.Cross(z)
	if x.Length() < basisTolerance {
		return Camera{}, ErrDegenerateOrientation
	}
	x = x.Normalize()
	y := z.Cross(x).Normalize()

	return Camera{Position: position, X: x, Y: y, Z: z}, nil
}

// Validate checks the basis is unit length, mutually orthogonal and right-handed
func (c Camera) Validate() error {
	if !c.Position.IsFinite() {
		return fmt.Errorf("%w: position %v", ErrInvalidCamera, c.Position)
	}
	for _, axis := range []core.Vec3{c.X, c.Y, c.Z} {
		if math.Abs(axis.Length()-1) > basisTolerance {
			return fmt.Errorf("%w: axis %v is not unit length", ErrInvalidCamera, axis)
		}
	}
	if math.Abs(c.X.Dot(c.Y)) > basisTolerance ||
		math.Abs(c.Y.Dot(c.Z)) > basisTolerance ||
		math.Abs(c.Z.Dot(c.X)) > basisTolerance {
		return fmt.Errorf("%w: axes are not orthogonal", ErrInvalidCamera)
	}
	if c.X.Cross(c.Y).Subtract(c.Z).Length() > basisTolerance {
		return fmt.Errorf("%w: basis is left-handed", ErrInvalidCamera)
	}
	return nil
}

// Forward returns the viewing direction
func (c Camera) Forward() core.Vec3 {
	return c.Z.Negate()
}
