package renderer

import (
	"github.com/df07/go-bounce-tracer/pkg/core"
	"github.com/df07/go-bounce-tracer/pkg/scene"
)

// FilmDistance is how far the film plane sits in front of the camera
const FilmDistance = 1.0

// Film maps pixels onto a film plane in front of the camera and generates
// the rays through them. The reference film is 2x2 world units; the shorter
// side shrinks to keep the image aspect ratio.
type Film struct {
	camera    scene.Camera
	width     int
	height    int
	center    core.Vec3
	halfFilmW float64
	halfFilmH float64
	halfPixW  float64 // Jitter half-extent in normalized film units
	halfPixH  float64
}

// NewFilm creates the film for a width x height image
func NewFilm(camera scene.Camera, width, height int) *Film {
	filmW, filmH := 2.0, 2.0
	if width > height {
		filmH = filmW * float64(height) / float64(width)
	} else if height > width {
		filmW = filmH * float64(width) / float64(height)
	}

	return &Film{
		camera:    camera,
		width:     width,
		height:    height,
		center:    camera.Position.Subtract(camera.Z.Multiply(FilmDistance)),
		halfFilmW: 0.5 * filmW,
		halfFilmH: 0.5 * filmH,
		halfPixW:  0.5 / float64(width),
		halfPixH:  0.5 / float64(height),
	}
}

// FilmCoords returns the normalized [-1,1] film coordinates of pixel (x, y).
// Row 0 is the bottom of the film.
func (f *Film) FilmCoords(x, y int) (float64, float64) {
	filmX := -1.0 + 2.0*float64(x)/float64(f.width)
	filmY := -1.0 + 2.0*float64(y)/float64(f.height)
	return filmX, filmY
}

// RayAt returns the unit-direction ray from the camera through normalized film coordinates
func (f *Film) RayAt(filmX, filmY float64) core.Ray {
	filmP := f.center.
		Add(f.camera.X.Multiply(filmX * f.halfFilmW)).
		Add(f.camera.Y.Multiply(filmY * f.halfFilmH))

	return core.NewRay(f.camera.Position, filmP.Subtract(f.camera.Position).Normalize())
}

// GetRay generates a jittered ray for pixel (x, y)
func (f *Film) GetRay(x, y int, sampler core.Sampler) core.Ray {
	filmX, filmY := f.FilmCoords(x, y)
	jitter := sampler.Get2D()
	filmX += core.Bilateral(jitter.X) * f.halfPixW
	filmY += core.Bilateral(jitter.Y) * f.halfPixH
	return f.RayAt(filmX, filmY)
}

// Size returns the image dimensions the film was built for
func (f *Film) Size() (int, int) {
	return f.width, f.height
}
