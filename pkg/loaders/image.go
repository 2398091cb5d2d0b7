package loaders

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-bounce-tracer/pkg/core"
	"github.com/df07/go-bounce-tracer/pkg/renderer"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// FormatFromPath returns "bmp" or "png" based on the file extension
func FormatFromPath(path string) (string, error) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format != "bmp" && format != "png" {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	return format, nil
}

// SaveImage writes img to filename in the given format ("bmp" or "png").
// An empty format is inferred from the file extension.
func SaveImage(filename, format string, img *renderer.Image) error {
	if format == "" {
		var err error
		if format, err = FormatFromPath(filename); err != nil {
			return err
		}
	}

	var encode func(*os.File) error
	switch strings.ToLower(format) {
	case "bmp":
		encode = func(f *os.File) error { return EncodeBMP(f, img) }
	case "png":
		encode = func(f *os.File) error { return png.Encode(f, img) }
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := encode(file); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

// SaveBMP writes img as a 32-bit BMP file
func SaveBMP(filename string, img *renderer.Image) error {
	return SaveImage(filename, "bmp", img)
}

// SavePNG writes img as a PNG file
func SavePNG(filename string, img *renderer.Image) error {
	return SaveImage(filename, "png", img)
}

// LoadImage loads a BMP or PNG image and converts it to Vec3 color array.
// Pixels are in top-down row-major order with display-encoded values in [0,1].
func LoadImage(filename string) (*ImageData, error) {
	// Open file
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects the format from the file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	// Convert to Vec3 array
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}
