package renderer

import (
	"image"

	"github.com/df07/go-bounce-tracer/pkg/core"
	"github.com/df07/go-bounce-tracer/pkg/integrator"
	"github.com/df07/go-bounce-tracer/pkg/scene"
)

// TileRenderer renders pixels through the film with an integrator.
// It holds no mutable state and may be shared by all workers.
type TileRenderer struct {
	world      *scene.World
	film       *Film
	integrator integrator.Integrator
}

// NewTileRenderer creates a new tile renderer
func NewTileRenderer(world *scene.World, film *Film, integratorInst integrator.Integrator) *TileRenderer {
	return &TileRenderer{
		world:      world,
		film:       film,
		integrator: integratorInst,
	}
}

// RenderTileBounds renders every pixel in bounds with the given number of samples.
// Pixels are visited row by row so a given sampler always produces the same tile.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler, samples int) RenderStats {
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			stats.TotalBounces += tr.SamplePixel(i, j, &pixelStats[j][i], sampler, samples)
			stats.TotalSamples += samples
		}
	}

	return stats
}

// SamplePixel adds samples jittered radiance estimates for pixel (i, j)
// to ps and returns the bounce iterations they took
func (tr *TileRenderer) SamplePixel(i, j int, ps *PixelStats, sampler core.Sampler, samples int) uint64 {
	var bounces uint64
	for s := 0; s < samples; s++ {
		ray := tr.film.GetRay(i, j, sampler)
		color, n := tr.integrator.RayColor(ray, tr.world, sampler)
		ps.AddSample(color)
		bounces += uint64(n)
	}
	return bounces
}
