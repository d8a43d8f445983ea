package renderer

import (
	"image"
	"math"
	"testing"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
	"github.com/df07/go-stochastic-raytracer/pkg/scene"
)

// testLogger routes tracer output to the test log
type testLogger struct {
	t *testing.T
}

func (l testLogger) Printf(format string, args ...interface{}) {
	l.t.Logf(format, args...)
}

func newTestTracer(t *testing.T, workers int) *Tracer {
	t.Helper()
	config := DefaultTracerConfig()
	config.NumWorkers = workers
	tracer, err := NewTracer(config, testLogger{t})
	if err != nil {
		t.Fatalf("NewTracer() error: %v", err)
	}
	return tracer
}

// emitterScene is free of material randomness: every path ends at the
// emitter or the sky after one segment
func emitterScene(t float64) *scene.World {
	w := scene.NewWorld(scene.MustViewPlane(16, 12, 0.1, 16), scene.DefaultBackground())
	w.Add(geometry.NewSphere(core.NewPoint3D(0, 0, -2), 1.0, material.NewEmissive(core.NewRGBColor(0.9, 0.2, 0.2))))
	return w
}

func TestTracerConfig(t *testing.T) {
	config := DefaultTracerConfig()

	if config.MaxDepth != 20 {
		t.Errorf("Expected default max depth 20, got %d", config.MaxDepth)
	}
	if config.NumWorkers != 0 {
		t.Errorf("Expected default workers 0 (CPU count), got %d", config.NumWorkers)
	}
	if config.Eye != core.NewPoint3D(0, 0, 10) {
		t.Errorf("Expected default eye (0,0,10), got %v", config.Eye)
	}
	if config.ImagePlaneZ != 5 {
		t.Errorf("Expected default image plane z=5, got %f", config.ImagePlaneZ)
	}
}

func TestNewTracerErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*TracerConfig)
	}{
		{"negative depth", func(c *TracerConfig) { c.MaxDepth = -1 }},
		{"negative workers", func(c *TracerConfig) { c.NumWorkers = -2 }},
		{"eye behind image plane", func(c *TracerConfig) { c.ImagePlaneZ = 12 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultTracerConfig()
			tt.modify(&config)
			if _, err := NewTracer(config, nil); err == nil {
				t.Error("Expected configuration error")
			}
		})
	}
}

func TestRenderCompletes(t *testing.T) {
	tracer := newTestTracer(t, 3)
	vp := scene.MustViewPlane(10, 7, 0.2, 4)

	img, stats, err := tracer.Render(scene.WithViewPlane(scene.NewDefaultScene, vp), 0, nil)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 10, 7) {
		t.Errorf("Image bounds = %v, want 10x7", img.Bounds())
	}
	if stats.TotalSamples != 10*7*4 {
		t.Errorf("TotalSamples = %d, want %d", stats.TotalSamples, 10*7*4)
	}
	if stats.MinSamples != 4 || stats.MaxSamplesUsed != 4 {
		t.Errorf("Every pixel should have 4 samples, got min %d max %d", stats.MinSamples, stats.MaxSamplesUsed)
	}
	if stats.Workers != 3 {
		t.Errorf("Workers = %d, want 3", stats.Workers)
	}
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 255 {
			t.Fatal("Every pixel should be opaque")
		}
	}
}

func TestRenderWorkersCappedAtRows(t *testing.T) {
	tracer := newTestTracer(t, 16)
	vp := scene.MustViewPlane(4, 2, 0.5, 1)

	_, stats, err := tracer.Render(scene.WithViewPlane(scene.NewEmptyScene, vp), 0, nil)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if stats.Workers != 2 {
		t.Errorf("Workers = %d, want 2", stats.Workers)
	}
}

func TestRenderInvalidViewPlane(t *testing.T) {
	tracer := newTestTracer(t, 1)
	bad := scene.ViewPlane{HRes: 4, VRes: 4, PixelSize: 0.5, Samples: 5}

	if _, _, err := tracer.Render(scene.WithViewPlane(scene.NewEmptyScene, bad), 0, nil); err == nil {
		t.Error("Expected error for a non-square sample count")
	}
}

func TestRenderSnapshots(t *testing.T) {
	tracer := newTestTracer(t, 1)

	var snapshots []Snapshot
	_, _, err := tracer.Render(emitterScene, 0, func(s Snapshot) {
		snapshots = append(snapshots, s)
	})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	// One worker over 16 passes crosses every decile
	if len(snapshots) != 10 {
		t.Fatalf("Got %d snapshots, want 10", len(snapshots))
	}
	for i := 1; i < len(snapshots); i++ {
		if snapshots[i].Progress <= snapshots[i-1].Progress {
			t.Errorf("Snapshot progress should increase: %f then %f", snapshots[i-1].Progress, snapshots[i].Progress)
		}
	}
	last := snapshots[len(snapshots)-1]
	if math.Abs(last.Progress-1) > 1e-12 {
		t.Errorf("Last snapshot progress = %f, want 1", last.Progress)
	}
	if last.Stats.TotalSamples != 16*12*16 {
		t.Errorf("Last snapshot samples = %d, want %d", last.Stats.TotalSamples, 16*12*16)
	}
	if snapshots[0].Image == snapshots[1].Image {
		t.Error("Snapshots should not share an image buffer")
	}
}

func TestRenderDeterministic(t *testing.T) {
	vp := scene.MustViewPlane(8, 6, 0.3, 4)
	factory := scene.WithViewPlane(scene.NewDefaultScene, vp)

	a, _, err := newTestTracer(t, 2).Render(factory, 0, nil)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	b, _, err := newTestTracer(t, 2).Render(factory, 0, nil)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("Renders with the same seed and workers differ at byte %d", i)
		}
	}
}

func TestRenderWorkerCountConverges(t *testing.T) {
	single, _, err := newTestTracer(t, 1).Render(emitterScene, 0, nil)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	multi, _, err := newTestTracer(t, 4).Render(emitterScene, 0, nil)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	// Only sub-pixel jitter differs, so disagreement is confined to the
	// sphere's silhouette
	totalDiff := 0.0
	for i := range single.Pix {
		totalDiff += math.Abs(float64(single.Pix[i]) - float64(multi.Pix[i]))
	}
	meanDiff := totalDiff / float64(len(single.Pix))
	if meanDiff > 8 {
		t.Errorf("Mean per-channel difference between 1 and 4 workers = %f, want <= 8", meanDiff)
	}

	lumSingle := CalculateAverageLuminance(single)
	lumMulti := CalculateAverageLuminance(multi)
	if math.Abs(lumSingle-lumMulti) > 0.02 {
		t.Errorf("Average luminance differs: %f vs %f", lumSingle, lumMulti)
	}
}

func TestRenderEmptySceneIsGradient(t *testing.T) {
	vp := scene.MustViewPlane(4, 8, 0.5, 1)
	img, _, err := newTestTracer(t, 2).Render(scene.WithViewPlane(scene.NewEmptyScene, vp), 0, nil)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	// Bluer toward the top: red falls while blue stays saturated
	top := img.RGBAAt(0, 0)
	bottom := img.RGBAAt(0, 7)
	if top.R >= bottom.R {
		t.Errorf("Top row should be bluer than bottom row: top %v bottom %v", top, bottom)
	}
	if top.B != 255 || bottom.B != 255 {
		t.Errorf("Blue channel should stay saturated: top %v bottom %v", top, bottom)
	}
}

func TestRenderSequence(t *testing.T) {
	tracer := newTestTracer(t, 2)
	vp := scene.MustViewPlane(6, 4, 0.4, 1)

	var frames []int
	images, err := tracer.RenderSequence(scene.WithViewPlane(scene.NewOrbitScene, vp), 3, func(frame int, img *image.RGBA, stats RenderStats) {
		frames = append(frames, frame)
	})
	if err != nil {
		t.Fatalf("RenderSequence() error: %v", err)
	}
	if len(images) != 3 {
		t.Fatalf("Got %d frames, want 3", len(images))
	}
	if len(frames) != 3 || frames[0] != 0 || frames[2] != 2 {
		t.Errorf("onFrame called with %v, want [0 1 2]", frames)
	}

	if _, err := tracer.RenderSequence(scene.NewOrbitScene, 0, nil); err == nil {
		t.Error("Expected error for zero frames")
	}
}
