package renderer

import (
	"fmt"
	"image"
	"image/color"
)

// MaxPixels caps the image buffer at 1 GiB of packed pixels
const MaxPixels = 1 << 28

// Image is a buffer of packed 32-bit pixels (see ToneMap for the layout).
// Rows are stored in render order: row 0 is the bottom of the film.
// It implements image.Image with the usual top-down orientation.
type Image struct {
	Width  int
	Height int
	Pix    []uint32
}

// NewImage allocates a width x height buffer. Sizes that cannot be
// allocated fail with ErrOutOfMemory instead of panicking.
func NewImage(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, width, height)
	}
	if int64(width)*int64(height) > MaxPixels {
		return nil, fmt.Errorf("%w (%dx%d)", ErrOutOfMemory, width, height)
	}

	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]uint32, width*height),
	}, nil
}

// PixelCount returns width * height
func (img *Image) PixelCount() int {
	return img.Width * img.Height
}

// Set stores a packed pixel at render coordinates (row 0 = bottom)
func (img *Image) Set(x, y int, p uint32) {
	img.Pix[y*img.Width+x] = p
}

// PixelAt returns the packed pixel at render coordinates (row 0 = bottom)
func (img *Image) PixelAt(x, y int) uint32 {
	return img.Pix[y*img.Width+x]
}

// Fill sets every pixel to the same packed value
func (img *Image) Fill(p uint32) {
	for i := range img.Pix {
		img.Pix[i] = p
	}
}

func (img *Image) ColorModel() color.Model {
	return color.NRGBAModel
}

func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Width, img.Height)
}

// At returns the pixel with y measured from the top, as image.Image expects
func (img *Image) At(x, y int) color.Color {
	if !image.Pt(x, y).In(img.Bounds()) {
		return color.NRGBA{}
	}
	return UnpackARGB(img.PixelAt(x, img.Height-1-y))
}
