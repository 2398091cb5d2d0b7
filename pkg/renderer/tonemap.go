package renderer

import (
	"image/color"
	"math"

	"github.com/df07/go-bounce-tracer/pkg/core"
)

// LinearToSRGB clamps a linear channel to [0,1] and applies the exact sRGB transfer curve
func LinearToSRGB(l float64) float64 {
	if !(l > 0) {
		return 0 // also catches NaN
	}
	if l > 1 {
		l = 1
	}

	if l <= 0.0031308 {
		return 12.92 * l
	}
	return 1.055*math.Pow(l, 1.0/2.4) - 0.055
}

// channelToByte scales an encoded channel in [0,1] to 0..255 with rounding
func channelToByte(s float64) uint32 {
	return uint32(math.Round(255 * s))
}

// ToneMap converts linear radiance to a packed pixel.
// Layout is A<<24 | R<<16 | G<<8 | B with alpha always 255; stored
// little-endian this is the B,G,R,A byte order of a 32-bit BMP.
func ToneMap(c core.Vec3) uint32 {
	encoded := core.NewVec3(LinearToSRGB(c.X), LinearToSRGB(c.Y), LinearToSRGB(c.Z)).Clamp(0, 1)
	r := channelToByte(encoded.X)
	g := channelToByte(encoded.Y)
	b := channelToByte(encoded.Z)
	return 0xFF<<24 | r<<16 | g<<8 | b
}

// UnpackARGB splits a packed pixel into its channels
func UnpackARGB(p uint32) color.NRGBA {
	return color.NRGBA{
		R: uint8(p >> 16),
		G: uint8(p >> 8),
		B: uint8(p),
		A: uint8(p >> 24),
	}
}
