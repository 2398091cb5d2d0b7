package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/go-bounce-tracer/pkg/core"
	"github.com/df07/go-bounce-tracer/pkg/loaders"
	"github.com/df07/go-bounce-tracer/pkg/renderer"
	"github.com/df07/go-bounce-tracer/pkg/scene"
)

// Config holds the command line options
type Config struct {
	SceneType string
	Output    string
	Format    string
	Sampling  renderer.SamplingConfig
	Help      bool
}

// errHelp signals that usage was printed and nothing should be rendered
var errHelp = errors.New("help requested")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	config, err := parseFlags(os.Args[1:], os.Stdout)
	if errors.Is(err, errHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := run(ctx, config, renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags maps command line arguments onto a Config
func parseFlags(args []string, out io.Writer) (Config, error) {
	defaults := renderer.DefaultSamplingConfig()
	config := Config{Sampling: defaults}

	fs := flag.NewFlagSet("bounce-tracer", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&config.SceneType, "scene", "default", "Scene: 'default', a scene name from scenes/, or a path to a .json file")
	fs.IntVar(&config.Sampling.Width, "width", defaults.Width, "Image width in pixels")
	fs.IntVar(&config.Sampling.Height, "height", defaults.Height, "Image height in pixels")
	fs.IntVar(&config.Sampling.SamplesPerPixel, "spp", defaults.SamplesPerPixel, "Samples per pixel")
	fs.IntVar(&config.Sampling.MaxDepth, "depth", defaults.MaxDepth, "Maximum bounces per path")
	fs.Int64Var(&config.Sampling.Seed, "seed", defaults.Seed, "Random seed (same seed, same image)")
	fs.IntVar(&config.Sampling.NumWorkers, "workers", defaults.NumWorkers, "Number of parallel workers (0 = auto-detect CPU count)")
	fs.IntVar(&config.Sampling.TileSize, "tile", defaults.TileSize, "Tile size in pixels")
	fs.StringVar(&config.Output, "out", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	fs.StringVar(&config.Format, "format", "", "Output format: 'bmp' or 'png' (default from -out extension, else bmp)")
	fs.BoolVar(&config.Help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return config, errHelp
		}
		return config, err
	}

	if config.Help {
		printHelp(fs, out)
		return config, errHelp
	}

	if err := config.Sampling.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

func printHelp(fs *flag.FlagSet, out io.Writer) {
	fmt.Fprintln(out, "Bounce Tracer")
	fmt.Fprintln(out, "Usage: bounce-tracer [options]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Available scenes:")
	scenes := scene.BuiltinScenes()
	if jsonScenes, err := scene.ListJSONScenes("scenes"); err == nil {
		scenes = append(scenes, jsonScenes...)
	}
	for _, info := range scenes {
		fmt.Fprintf(out, "  %-12s - %s\n", info.ID, info.Description)
	}
}

// outputPath picks the output file and format from the config
func outputPath(config Config, now time.Time) (string, string, error) {
	format := config.Format
	if config.Output != "" {
		if format == "" {
			f, err := loaders.FormatFromPath(config.Output)
			if err != nil {
				return "", "", err
			}
			format = f
		}
		return config.Output, format, nil
	}

	if format == "" {
		format = "bmp"
	}
	name := filepath.Base(config.SceneType)
	name = name[:len(name)-len(filepath.Ext(name))]
	filename := fmt.Sprintf("render_%s.%s", now.Format("20060102_150405"), format)
	return filepath.Join("output", name, filename), format, nil
}

func run(ctx context.Context, config Config, logger core.Logger) error {
	logger.Printf("Starting Bounce Tracer...\n")

	sc, err := scene.ResolveScene(config.SceneType, config.Sampling.Seed)
	if err != nil {
		return err
	}
	logger.Printf("Using %s scene (%d primitives)...\n", sc.Name, sc.World.PrimitiveCount())

	filename, format, err := outputPath(config, time.Now())
	if err != nil {
		return err
	}

	raytracer, err := renderer.NewRaytracer(sc, config.Sampling, logger)
	if err != nil {
		return err
	}

	img, stats, err := raytracer.Render(ctx)
	if err != nil {
		return err
	}

	logger.Printf("Render completed in %v\n", stats.Elapsed)
	logger.Printf("Samples per pixel: %.1f\n", stats.AverageSamples())
	logger.Printf("Rays bounced: %d (%.6f ms/bounce)\n", sc.World.RaysBounced(), stats.MsPerBounce())

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}
	if err := loaders.SaveImage(filename, format, img); err != nil {
		return fmt.Errorf("error saving %s: %w", filename, err)
	}

	if err := verifyOutput(filename, img); err != nil {
		return err
	}

	logger.Printf("Render saved as %s\n", filename)
	return nil
}

// verifyOutput reads the saved file back and checks it decodes to the rendered size
func verifyOutput(filename string, img *renderer.Image) error {
	saved, err := loaders.LoadImage(filename)
	if err != nil {
		return fmt.Errorf("error verifying %s: %w", filename, err)
	}
	if saved.Width != img.Width || saved.Height != img.Height {
		return fmt.Errorf("error verifying %s: decoded %dx%d, rendered %dx%d",
			filename, saved.Width, saved.Height, img.Width, img.Height)
	}
	return nil
}
