package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/imageio"
	"github.com/df07/go-stochastic-raytracer/pkg/renderer"
	"github.com/df07/go-stochastic-raytracer/pkg/scene"
)

// renderOptions holds the command line configuration. Zero values mean
// "use the scene's default".
type renderOptions struct {
	sceneType string
	width     int
	height    int
	pixelSize float64
	samples   int
	depth     int
	workers   int
	seed      int64
	format    string
	snapshots bool
	frames    int
	outputDir string
}

func main() {
	// Parse command line flags
	opts := renderOptions{outputDir: "output"}
	flag.StringVar(&opts.sceneType, "scene", "default", "Scene type (see -help for the list)")
	flag.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	flag.IntVar(&opts.height, "height", 0, "Image height in pixels (0 = scene default)")
	flag.Float64Var(&opts.pixelSize, "pixel-size", 0, "World size of one pixel (0 = keep the scene's field of view)")
	flag.IntVar(&opts.samples, "samples", 0, "Samples per pixel, a perfect square (0 = scene default)")
	flag.IntVar(&opts.depth, "depth", renderer.DefaultTracerConfig().MaxDepth, "Maximum path depth")
	flag.IntVar(&opts.workers, "workers", 0, "Number of band workers (0 = CPU count)")
	flag.Int64Var(&opts.seed, "seed", renderer.DefaultTracerConfig().Seed, "Random seed")
	flag.StringVar(&opts.format, "format", "png", "Output format: png, jpeg, bmp or tiff")
	flag.BoolVar(&opts.snapshots, "snapshots", false, "Save a snapshot each time progress crosses 10%")
	flag.IntVar(&opts.frames, "frames", 1, "Number of frames; more than 1 renders an animated GIF")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		showHelp()
		return
	}

	fmt.Println("Starting Stochastic Raytracer...")

	if err := run(opts, renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Println("Stochastic Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.List() {
		fmt.Printf("  %-13s - %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene_type>/render_<timestamp>.<format>")
}

// createScene looks up a built-in scene and applies the view plane overrides
func createScene(opts renderOptions) (scene.WorldFactory, error) {
	factory, err := scene.Lookup(opts.sceneType)
	if err != nil {
		return nil, err
	}

	defaults := factory(0).ViewPlane
	vp := defaults
	if opts.width > 0 {
		vp.HRes = opts.width
	}
	if opts.height > 0 {
		vp.VRes = opts.height
	}
	if opts.samples > 0 {
		vp.Samples = opts.samples
	}
	if opts.pixelSize > 0 {
		vp.PixelSize = opts.pixelSize
	} else {
		// Keep the vertical field of view when the height changes
		vp.PixelSize = defaults.PixelSize * float64(defaults.VRes) / float64(vp.VRes)
	}

	vp, err = scene.NewViewPlane(vp.HRes, vp.VRes, vp.PixelSize, vp.Samples)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", opts.sceneType, err)
	}

	return scene.WithViewPlane(factory, vp), nil
}

// run renders the configured scene and writes the results to disk
func run(opts renderOptions, logger core.Logger) error {
	format, err := imageio.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	if opts.frames <= 0 {
		return fmt.Errorf("invalid frame count %d: must be positive", opts.frames)
	}

	factory, err := createScene(opts)
	if err != nil {
		return err
	}

	config := renderer.DefaultTracerConfig()
	config.MaxDepth = opts.depth
	config.NumWorkers = opts.workers
	config.Seed = opts.seed

	tracer, err := renderer.NewTracer(config, logger)
	if err != nil {
		return err
	}

	// Create output directory for this scene type
	outputDir := filepath.Join(opts.outputDir, opts.sceneType)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}
	timestamp := time.Now().Format("20060102_150405")

	if opts.frames > 1 {
		frames, err := tracer.RenderSequence(factory, opts.frames, nil)
		if err != nil {
			return err
		}
		filename := filepath.Join(outputDir, fmt.Sprintf("sequence_%s.gif", timestamp))
		if err := imageio.SaveGIF(filename, frames, 10); err != nil {
			return err
		}
		logger.Printf("Sequence of %d frames saved as %s\n", len(frames), filename)
		return nil
	}

	var snapshotErr error
	var onSnapshot func(renderer.Snapshot)
	if opts.snapshots {
		onSnapshot = func(s renderer.Snapshot) {
			if snapshotErr != nil {
				return
			}
			filename := filepath.Join(outputDir, fmt.Sprintf("snapshot_%03d%s", int(s.Progress*100+0.5), format.Extension()))
			snapshotErr = imageio.Save(filename, s.Image)
		}
	}

	img, stats, err := tracer.Render(factory, 0, onSnapshot)
	if err != nil {
		return err
	}
	if snapshotErr != nil {
		return fmt.Errorf("error saving snapshot: %w", snapshotErr)
	}

	logger.Printf("Samples per pixel: %.1f (range %d - %d)\n",
		stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed)

	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s%s", timestamp, format.Extension()))
	if err := imageio.Save(filename, img); err != nil {
		return err
	}

	logger.Printf("Render saved as %s\n", filename)
	return nil
}
