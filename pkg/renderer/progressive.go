package renderer

import (
	"fmt"
	"image"
	"runtime"
	"time"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/integrator"
	"github.com/df07/go-stochastic-raytracer/pkg/scene"
)

// TracerConfig contains configuration for progressive rendering
type TracerConfig struct {
	MaxDepth    int          // Recursion budget per path
	NumWorkers  int          // Number of band workers (0 = use CPU count)
	Seed        int64        // Base seed; worker i uses Seed+i
	Eye         core.Point3D // Fixed eye point
	ImagePlaneZ float64      // Depth of the image plane the rays start on
}

// DefaultTracerConfig returns sensible default values
func DefaultTracerConfig() TracerConfig {
	return TracerConfig{
		MaxDepth:    integrator.DefaultMaxDepth,
		NumWorkers:  0, // Auto-detect CPU count
		Seed:        42,
		Eye:         core.NewPoint3D(0, 0, 10),
		ImagePlaneZ: 5,
	}
}

// Snapshot is a progressive preview of a render in flight
type Snapshot struct {
	Image    *image.RGBA
	Progress float64 // Fraction complete, in [0, 1]
	Stats    RenderStats
}

// Tracer renders worlds with one band worker per CPU feeding a single
// accumulator, reporting a snapshot each time progress crosses a decile
type Tracer struct {
	config TracerConfig
	logger core.Logger
}

// NewTracer creates a tracer, validating its configuration
func NewTracer(config TracerConfig, logger core.Logger) (*Tracer, error) {
	if config.MaxDepth < 0 {
		return nil, fmt.Errorf("invalid max depth %d: must not be negative", config.MaxDepth)
	}
	if config.NumWorkers < 0 {
		return nil, fmt.Errorf("invalid worker count %d: must not be negative", config.NumWorkers)
	}
	if config.Eye.Z <= config.ImagePlaneZ {
		return nil, fmt.Errorf("eye z=%g must be in front of the image plane z=%g", config.Eye.Z, config.ImagePlaneZ)
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Tracer{config: config, logger: logger}, nil
}

// Config returns the tracer configuration
func (t *Tracer) Config() TracerConfig {
	return t.config
}

// NumWorkers returns the number of workers a render of vres rows would use
func (t *Tracer) NumWorkers(vres int) int {
	workers := t.config.NumWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return min(workers, vres)
}

// Camera returns the camera the tracer would use for a view plane
func (t *Tracer) Camera(viewPlane scene.ViewPlane) (*Camera, error) {
	return NewCamera(t.config.Eye, t.config.ImagePlaneZ, viewPlane)
}

// Render renders the world the factory builds at time tm and returns the
// final image. onSnapshot, if not nil, is called from the calling goroutine
// each time overall progress crosses a decile, the last call at 100%.
// A render always runs to completion.
func (t *Tracer) Render(factory scene.WorldFactory, tm float64, onSnapshot func(Snapshot)) (*image.RGBA, RenderStats, error) {
	startTime := time.Now()

	world := factory(tm)
	if world == nil {
		return nil, RenderStats{}, fmt.Errorf("scene factory returned no world for t=%g", tm)
	}
	vp := world.ViewPlane

	camera, err := t.Camera(vp)
	if err != nil {
		return nil, RenderStats{}, err
	}

	bands := SplitBands(vp.VRes, t.NumWorkers(vp.VRes))
	pathTracer := integrator.NewPathTracer(t.config.MaxDepth)

	t.logger.Printf("Rendering %dx%d with %d samples/pixel (%dx%d grid) on %d workers...\n",
		vp.HRes, vp.VRes, vp.Samples, camera.GridSize(), camera.GridSize(), len(bands))

	// Every worker rebuilds the world so none share scene state
	pool := NewWorkerPool(bands, factory, tm, camera, pathTracer, t.config.Seed)
	acc := NewAccumulator(vp.HRes, vp.VRes, vp.Samples, bands)
	pool.Start()

	lastDecile := 0
	for msg := range pool.Messages() {
		done := acc.Handle(msg)

		if msg.Kind == SampleCompleteKind {
			progress := acc.Progress()
			if decile := progressDecile(progress); decile > lastDecile {
				lastDecile = decile
				t.logger.Printf("Progress %3d%% (%v)\n", decile*10, time.Since(startTime).Round(time.Millisecond))
				if onSnapshot != nil {
					stats := acc.Stats()
					stats.Duration = time.Since(startTime)
					onSnapshot(Snapshot{Image: acc.Snapshot(), Progress: progress, Stats: stats})
				}
			}
		}

		if done {
			break
		}
	}
	pool.Wait()

	stats := acc.Stats()
	stats.Duration = time.Since(startTime)
	t.logger.Printf("Render completed in %v (%d samples, %.1f/pixel)\n",
		stats.Duration.Round(time.Millisecond), stats.TotalSamples, stats.AverageSamples)

	return acc.Image(), stats, nil
}

// progressDecile returns how many tenths of the render are complete
func progressDecile(progress float64) int {
	// Tolerate rounding in the row×pass ratio
	return min(10, int(progress*10+1e-9))
}
