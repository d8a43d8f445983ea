package renderer

import (
	"sync"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/integrator"
	"github.com/df07/go-stochastic-raytracer/pkg/scene"
)

// WorkerPool runs one band worker per band, all feeding a single message channel
type WorkerPool struct {
	workers  []*Worker
	messages chan Message
	wg       sync.WaitGroup
}

// Worker renders every sample pass for one band. It owns its world, camera
// and sampler, so it shares no mutable state with other workers.
type Worker struct {
	ID         int
	band       Band
	world      *scene.World
	camera     *Camera
	integrator integrator.Integrator
	sampler    core.Sampler
	messages   chan<- Message
}

// NewWorkerPool creates a worker per band. Each worker builds its own world
// from the factory and seeds its sampler with seed + band ID.
func NewWorkerPool(bands []Band, factory scene.WorldFactory, t float64, camera *Camera, integ integrator.Integrator, seed int64) *WorkerPool {
	// Room for one row per worker keeps workers from stalling on the accumulator
	bufferSize := len(bands) * camera.viewPlane.HRes

	wp := &WorkerPool{
		messages: make(chan Message, bufferSize),
	}

	for _, band := range bands {
		wp.workers = append(wp.workers, &Worker{
			ID:         band.ID,
			band:       band,
			world:      factory(t),
			camera:     camera,
			integrator: integ,
			sampler:    core.NewSeededSampler(seed + int64(band.ID)),
			messages:   wp.messages,
		})
	}

	return wp
}

// Start launches every worker
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Messages returns the channel all workers send on
func (wp *WorkerPool) Messages() <-chan Message {
	return wp.messages
}

// Wait blocks until every worker has returned
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return len(wp.workers)
}

// run is the main worker loop: for each cell of the n×n sub-pixel grid,
// sample every pixel of the band once, then report the pass complete
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	n := w.camera.GridSize()
	width := w.camera.viewPlane.HRes
	sample := 0

	for subY := 0; subY < n; subY++ {
		for subX := 0; subX < n; subX++ {
			sample++

			for y := w.band.StartRow; y < w.band.EndRow; y++ {
				for x := 0; x < width; x++ {
					ray := w.camera.GetRay(x, y, subX, subY, w.sampler)
					color := w.integrator.RayColor(ray, w.world, w.sampler).Sqrt()

					w.messages <- Message{Kind: PixelKind, Band: w.ID, X: x, Y: y, Color: color, Sample: sample}
				}
			}

			w.messages <- Message{Kind: SampleCompleteKind, Band: w.ID, Sample: sample}
		}
	}

	w.messages <- Message{Kind: EndKind, Band: w.ID}
}
