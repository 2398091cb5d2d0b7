package loaders

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-bounce-tracer/pkg/core"
)

func abs(x float64) float64 {
	return math.Abs(x)
}

func TestSaveAndLoadImage(t *testing.T) {
	// Render order: row 0 is the bottom of the picture
	//   bottom: white, red    top: green, blue
	src := newTestImage(t, 2, 2, 0xFFFFFFFF, 0xFFFF0000, 0xFF00FF00, 0xFF0000FF)

	white := core.NewVec3(1.0, 1.0, 1.0)
	red := core.NewVec3(1.0, 0.0, 0.0)
	green := core.NewVec3(0.0, 1.0, 0.0)
	blue := core.NewVec3(0.0, 0.0, 1.0)

	for _, format := range []string{"bmp", "png"} {
		t.Run(format, func(t *testing.T) {
			testFile := filepath.Join(t.TempDir(), "test."+format)
			if err := SaveImage(testFile, "", src); err != nil {
				t.Fatalf("SaveImage failed: %v", err)
			}

			imageData, err := LoadImage(testFile)
			if err != nil {
				t.Fatalf("LoadImage failed: %v", err)
			}

			// Verify dimensions
			if imageData.Width != 2 || imageData.Height != 2 {
				t.Fatalf("Expected 2x2 image, got %dx%d", imageData.Width, imageData.Height)
			}

			// Helper function to check color with tolerance for precision
			checkColor := func(name string, got, expected core.Vec3) {
				const tolerance = 0.01
				if abs(got.X-expected.X) > tolerance ||
					abs(got.Y-expected.Y) > tolerance ||
					abs(got.Z-expected.Z) > tolerance {
					t.Errorf("%s: expected %v, got %v", name, expected, got)
				}
			}

			// Loaded pixels are top-down
			checkColor("Top-left (green)", imageData.Pixels[0], green)
			checkColor("Top-right (blue)", imageData.Pixels[1], blue)
			checkColor("Bottom-left (white)", imageData.Pixels[2], white)
			checkColor("Bottom-right (red)", imageData.Pixels[3], red)
		})
	}
}

func TestSaveBMPAndPNG(t *testing.T) {
	img := newTestImage(t, 4, 4)
	dir := t.TempDir()

	if err := SaveBMP(filepath.Join(dir, "out.img"), img); err != nil {
		t.Fatalf("SaveBMP failed: %v", err)
	}
	if err := SavePNG(filepath.Join(dir, "out.png"), img); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "out.img"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 54+4*4*4 {
		t.Errorf("Expected BMP size %d, got %d", 54+4*4*4, info.Size())
	}
}

func TestSaveImage_Errors(t *testing.T) {
	img := newTestImage(t, 1, 1)
	dir := t.TempDir()

	tests := []struct {
		name     string
		filename string
		format   string
		wantErr  error
	}{
		{"unknown extension", filepath.Join(dir, "out.tga"), "", ErrUnsupportedFormat},
		{"unknown format", filepath.Join(dir, "out.bmp"), "gif", ErrUnsupportedFormat},
		{"missing directory", filepath.Join(dir, "missing", "out.bmp"), "", os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := SaveImage(tt.filename, tt.format, img); !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	// The in-memory image survives a failed write
	if img.PixelCount() != 1 {
		t.Error("Image buffer changed after failed save")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"render.bmp", "bmp"},
		{"out/Render.PNG", "png"},
	}

	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if err != nil || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v; expected %q", tt.path, got, err, tt.want)
		}
	}

	if _, err := FormatFromPath("render"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoadImage_MissingFile(t *testing.T) {
	if _, err := LoadImage(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("Expected error for missing file")
	}
}
