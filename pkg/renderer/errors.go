package renderer

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid sampling config")
	ErrOutOfMemory   = errors.New("out of memory: image buffer too large")
)
