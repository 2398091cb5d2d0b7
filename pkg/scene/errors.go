package scene

import "errors"

var (
	ErrMissingBackground     = errors.New("material table must contain the background entry at index 0")
	ErrInvalidMaterial       = errors.New("invalid material")
	ErrInvalidMaterialIndex  = errors.New("material index out of range")
	ErrNonUnitNormal         = errors.New("plane normal is not unit length")
	ErrInvalidRadius         = errors.New("sphere radius must be positive and finite")
	ErrInvalidCamera         = errors.New("camera basis is not orthonormal and right-handed")
	ErrDegenerateOrientation = errors.New("camera up vector is parallel to the view direction")
	ErrUnknownScene          = errors.New("unknown scene")
)
