package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-stochastic-raytracer/pkg/renderer"
	"github.com/df07/go-stochastic-raytracer/pkg/scene"
)

// Request limits
const (
	minResolution = 16
	maxResolution = 2000
	maxSamples    = 4096
	maxDepth      = 100
)

// Server handles web requests for the stochastic raytracer
type Server struct {
	port      int
	staticDir string
	config    renderer.TracerConfig // Base tracer configuration for every render
}

// NewServer creates a new web server serving the UI from staticDir
func NewServer(port int, staticDir string) *Server {
	return &Server{
		port:      port,
		staticDir: staticDir,
		config:    renderer.DefaultTracerConfig(),
	}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string `json:"scene"`   // Scene name (e.g., "default")
	Width   int    `json:"width"`   // Image width (0 = scene default)
	Height  int    `json:"height"`  // Image height (0 = scene default)
	Samples int    `json:"samples"` // Samples per pixel, a perfect square (0 = scene default)
	Depth   int    `json:"depth"`   // Maximum path depth
	Seed    int64  `json:"seed"`    // Random seed

	PixelSize float64 `json:"pixelSize"` // World size of one pixel (0 = keep the field of view)
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int64   `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	MaxSamples     int     `json:"maxSamples"`
	MinSamples     int     `json:"minSamples"`
	MaxSamplesUsed int     `json:"maxSamplesUsed"`
	Workers        int     `json:"workers"`
}

func statsFromRender(stats renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:    stats.TotalPixels,
		TotalSamples:   int64(stats.TotalSamples),
		AverageSamples: stats.AverageSamples,
		MaxSamples:     stats.MaxSamples,
		MinSamples:     stats.MinSamples,
		MaxSamplesUsed: stats.MaxSamplesUsed,
		Workers:        stats.Workers,
	}
}

// Handler returns the HTTP handler serving the static UI and the API
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))

	// API endpoints
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/inspect", s.handleInspect)

	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes with their default view planes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	type sceneEntry struct {
		scene.SceneInfo
		Width   int `json:"width"`
		Height  int `json:"height"`
		Samples int `json:"samples"`
	}

	var scenes []sceneEntry
	for _, info := range scene.List() {
		vp := info.Factory(0).ViewPlane
		scenes = append(scenes, sceneEntry{
			SceneInfo: info,
			Width:     vp.HRes,
			Height:    vp.VRes,
			Samples:   vp.Samples,
		})
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{"scenes": scenes})
}

// parseCommonSceneParams parses the scene and view plane parameters shared by
// the render and inspect endpoints
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()

	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = "default" // Default scene
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, minResolution, maxResolution); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", 0, minResolution, maxResolution); err != nil {
		return err
	}
	if req.Samples, err = parseIntParam(query, "samples", 0, 1, maxSamples); err != nil {
		return err
	}
	if req.PixelSize, err = parseFloatParam(query, "pixelSize", 0, 1e-5, 10); err != nil {
		return err
	}
	return nil
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}

	if err := s.parseCommonSceneParams(r, req); err != nil {
		return nil, err
	}

	var err error
	if req.Depth, err = parseIntParam(r.URL.Query(), "depth", s.config.MaxDepth, 0, maxDepth); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(r.URL.Query(), "seed", int(s.config.Seed), 0, 1<<31-1)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Samples > 256 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation.
// An absent parameter yields defaultValue without range checks.
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene looks up the requested scene and applies view plane overrides.
// Without an explicit pixel size, changing the height keeps the scene's
// vertical field of view.
func (s *Server) createScene(req *RenderRequest) (scene.WorldFactory, scene.ViewPlane, error) {
	factory, err := scene.Lookup(req.Scene)
	if err != nil {
		return nil, scene.ViewPlane{}, err
	}

	defaults := factory(0).ViewPlane
	hres, vres, samples := defaults.HRes, defaults.VRes, defaults.Samples
	if req.Width > 0 {
		hres = req.Width
	}
	if req.Height > 0 {
		vres = req.Height
	}
	if req.Samples > 0 {
		samples = req.Samples
	}
	pixelSize := defaults.PixelSize * float64(defaults.VRes) / float64(vres)
	if req.PixelSize > 0 {
		pixelSize = req.PixelSize
	}

	vp, err := scene.NewViewPlane(hres, vres, pixelSize, samples)
	if err != nil {
		return nil, scene.ViewPlane{}, err
	}
	return scene.WithViewPlane(factory, vp), vp, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// writeJSONError writes a JSON error body with the given status
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
