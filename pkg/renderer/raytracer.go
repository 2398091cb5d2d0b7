package renderer

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/df07/go-bounce-tracer/pkg/core"
	"github.com/df07/go-bounce-tracer/pkg/geometry"
	"github.com/df07/go-bounce-tracer/pkg/integrator"
	"github.com/df07/go-bounce-tracer/pkg/scene"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum bounce iterations per path
	Seed            int64 // Global seed for the per-tile generators
	TileSize        int   // Tile side in pixels
	NumWorkers      int   // Number of parallel workers (0 = auto-detect)
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           1280,
		Height:          720,
		SamplesPerPixel: 16,
		MaxDepth:        integrator.DefaultMaxBounces,
		Seed:            42,
		TileSize:        64,
		NumWorkers:      0,
	}
}

// Validate reports the first out-of-range field
func (c SamplingConfig) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel %d", ErrInvalidConfig, c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max depth %d", ErrInvalidConfig, c.MaxDepth)
	case c.TileSize <= 0:
		return fmt.Errorf("%w: tile size %d", ErrInvalidConfig, c.TileSize)
	case c.NumWorkers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.NumWorkers)
	}
	return nil
}

// Raytracer renders a scene into an Image
type Raytracer struct {
	scene        *scene.Scene
	config       SamplingConfig
	film         *Film
	tileRenderer *TileRenderer
	logger       core.Logger
}

// NewRaytracer creates a new raytracer for a validated scene
func NewRaytracer(sc *scene.Scene, config SamplingConfig, logger core.Logger) (*Raytracer, error) {
	if sc == nil {
		return nil, fmt.Errorf("%w: scene is nil", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = NewDiscardLogger()
	}

	film := NewFilm(sc.Camera, config.Width, config.Height)
	return &Raytracer{
		scene:        sc,
		config:       config,
		film:         film,
		tileRenderer: NewTileRenderer(sc.World, film, integrator.NewBounceIntegrator(config.MaxDepth)),
		logger:       logger,
	}, nil
}

// Config returns the sampling configuration
func (rt *Raytracer) Config() SamplingConfig {
	return rt.config
}

// Render traces every pixel and returns the tone-mapped image.
// The image buffer is allocated before any tracing so an oversized request
// fails fast with ErrOutOfMemory. Cancelling ctx stops the render between tiles.
func (rt *Raytracer) Render(ctx context.Context) (*Image, RenderStats, error) {
	start := time.Now()
	width, height := rt.config.Width, rt.config.Height

	img, err := NewImage(width, height)
	if err != nil {
		return nil, RenderStats{}, err
	}

	pixelStats := make([][]PixelStats, height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, width)
	}

	tiles := NewTileGrid(width, height, rt.config.TileSize)
	numWorkers := rt.config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	numWorkers = min(numWorkers, len(tiles))

	pool := NewWorkerPool(rt.tileRenderer, rt.config.Seed, numWorkers, len(tiles))
	pool.Start(ctx)

	rt.logger.Printf("Rendering %s: %dx%d, %d samples per pixel, %d tiles (using %d workers)...\n",
		rt.scene.Name, width, height, rt.config.SamplesPerPixel, len(tiles), pool.GetNumWorkers())

	for taskID, tile := range tiles {
		pool.SubmitTask(TileTask{
			Tile:       tile,
			Samples:    rt.config.SamplesPerPixel,
			TaskID:     taskID,
			PixelStats: pixelStats,
		})
	}

	// Every task yields exactly one result, even after cancellation
	stats := RenderStats{NumWorkers: pool.GetNumWorkers(), NumTiles: len(tiles)}
	var renderErr error
	lastDecile := 0
	for i := 0; i < len(tiles); i++ {
		result, ok := pool.GetResult()
		if !ok {
			renderErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}
		stats.Add(result.Stats)

		if decile := (i + 1) * 10 / len(tiles); decile > lastDecile {
			lastDecile = decile
			rt.logger.Printf("Rendered %d%%\n", decile*10)
		}
	}
	pool.Stop()

	// Bounces of finished tiles still count towards the world total
	rt.scene.World.AddBounces(stats.TotalBounces)
	stats.Elapsed = time.Since(start)

	if renderErr != nil {
		rt.logger.Printf("Rendering cancelled after %v\n", stats.Elapsed)
		return nil, stats, fmt.Errorf("render %s: %w", rt.scene.Name, renderErr)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, ToneMap(pixelStats[y][x].GetColor()))
		}
	}

	return img, stats, nil
}

// RenderPixel estimates the linear color of a single pixel with the given
// sampler. The bounces it takes are added to the world counter.
func (rt *Raytracer) RenderPixel(x, y, samples int, sampler core.Sampler) core.Vec3 {
	var ps PixelStats
	bounces := rt.tileRenderer.SamplePixel(x, y, &ps, sampler, samples)
	rt.scene.World.AddBounces(bounces)
	return ps.GetColor()
}

// InspectPixel returns the unjittered primary hit for pixel (x, y)
func (rt *Raytracer) InspectPixel(x, y int) (geometry.Hit, bool) {
	if x < 0 || x >= rt.config.Width || y < 0 || y >= rt.config.Height {
		return geometry.Hit{}, false
	}
	ray := rt.film.RayAt(rt.film.FilmCoords(x, y))
	return rt.scene.World.Closest(ray)
}
