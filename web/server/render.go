package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/renderer"
)

// ProgressUpdate represents a single progressive snapshot sent via SSE
type ProgressUpdate struct {
	Percent    int    `json:"percent"`   // Completed tenths of the render × 10
	ImageData  string `json:"imageData"` // Base64 encoded PNG
	Stats      Stats  `json:"stats"`
	IsComplete bool   `json:"isComplete"`
	ElapsedMs  int64  `json:"elapsedMs"`
}

// CompleteUpdate is the final SSE event of a render
type CompleteUpdate struct {
	Stats     Stats `json:"stats"`
	ElapsedMs int64 `json:"elapsedMs"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "progress", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleRender renders a scene and streams a snapshot each time progress
// crosses a decile. A render is never cancelled; if the client goes away the
// remaining events are dropped.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	// Set SSE headers
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Create unified SSE event channel for thread-safe writing
	sseEventChan := make(chan SSEEvent, 100)

	// Start single SSE writer goroutine
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()

	// The writer must drain before the handler returns and w becomes invalid
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	// Parse and validate request
	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Setup console logging and streaming
	consoleChan, webLogger := s.setupConsoleLogging()
	var consoleWG sync.WaitGroup
	consoleWG.Add(1)
	go func() {
		defer consoleWG.Done()
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()
	defer func() {
		close(consoleChan)
		consoleWG.Wait()
	}()

	if err := s.renderAndStream(ctx, req, webLogger, sseEventChan); err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
	}
}

// renderAndStream runs the tracer and queues progress and completion events
func (s *Server) renderAndStream(ctx context.Context, req *RenderRequest, logger core.Logger, sseEventChan chan SSEEvent) error {
	factory, _, err := s.createScene(req)
	if err != nil {
		return err
	}

	config := s.config
	config.MaxDepth = req.Depth
	config.Seed = req.Seed

	tracer, err := renderer.NewTracer(config, logger)
	if err != nil {
		return err
	}

	startTime := time.Now()
	_, stats, err := tracer.Render(factory, 0, func(snapshot renderer.Snapshot) {
		s.handleSnapshot(ctx, sseEventChan, snapshot, startTime)
	})
	if err != nil {
		return fmt.Errorf("rendering failed: %w", err)
	}

	data, err := json.Marshal(CompleteUpdate{
		Stats:     statsFromRender(stats),
		ElapsedMs: time.Since(startTime).Milliseconds(),
	})
	if err != nil {
		return err
	}
	s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "complete", Data: string(data)})
	return nil
}

// handleSnapshot encodes a snapshot and queues it as a progress event
func (s *Server) handleSnapshot(ctx context.Context, sseEventChan chan SSEEvent, snapshot renderer.Snapshot, startTime time.Time) {
	// Skip encoding once the client is gone
	select {
	case <-ctx.Done():
		return
	default:
	}

	imageData, err := s.imageToBase64PNG(snapshot.Image)
	if err != nil {
		log.Printf("Error encoding snapshot: %v", err)
		return
	}

	percent := int(snapshot.Progress*100 + 0.5)
	update := ProgressUpdate{
		Percent:    percent,
		ImageData:  imageData,
		Stats:      statsFromRender(snapshot.Stats),
		IsComplete: percent >= 100,
		ElapsedMs:  time.Since(startTime).Milliseconds(),
	}

	data, err := json.Marshal(update)
	if err != nil {
		log.Printf("Error marshaling progress update: %v", err)
		return
	}

	s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "progress", Data: string(data)})
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// writeSSEEvents writes all SSE events from a single goroutine until the
// channel is closed. After the client disconnects events are drained and dropped.
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	disconnected := false
	for event := range sseEventChan {
		if disconnected {
			continue
		}

		// Check if client is still connected before writing
		select {
		case <-ctx.Done():
			disconnected = true
			continue
		default:
		}

		// Write SSE event
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			// Client disconnected during write
			disconnected = true
			continue
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

// streamConsoleMessages forwards console messages until consoleChan is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			continue
		}

		// Send to unified SSE channel
		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
		default:
			// Channel full, skip message to avoid blocking
		}
	}
}

// sendEvent queues an event unless the client has disconnected
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan SSEEvent, event SSEEvent) {
	select {
	case sseEventChan <- event:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "error", Data: message})
}
