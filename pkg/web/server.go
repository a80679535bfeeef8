package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/ritzau/network-navigator/pkg/camera"
	"github.com/ritzau/network-navigator/pkg/logging"
	"github.com/ritzau/network-navigator/pkg/metrics"
	"github.com/ritzau/network-navigator/pkg/network"
	"github.com/ritzau/network-navigator/pkg/pipeline"
	"github.com/ritzau/network-navigator/pkg/pubsub"
	"github.com/ritzau/network-navigator/pkg/store"
	"github.com/ritzau/network-navigator/pkg/theme"
)

//go:embed static/*
var staticFiles embed.FS

// ErrNoDocument is reported while the store is still empty.
var ErrNoDocument = errors.New("no document loaded")

// Options configures a Server. Zero values fall back to defaults.
type Options struct {
	Store     *store.Store
	Pipeline  *pipeline.Pipeline      // default theme and label table
	Themes    map[string]theme.Theme  // selectable by ?theme=, built-ins when nil
	Zoom      camera.Range            // slider settings reported to the viewer
	Metrics   *metrics.Registry       // DefaultRegistry when nil
	Publisher *pubsub.StatusPublisher // created when nil
}

// ViewerConfig is what the viewer needs before its first render.
type ViewerConfig struct {
	Zoom    camera.Range `json:"zoom"`
	Theme   string       `json:"theme"`
	Themes  []string     `json:"themes"`
	Title   string       `json:"title"`
	Version uint64       `json:"version"`
}

// ThemeList is the /api/themes response.
type ThemeList struct {
	Default string        `json:"default"`
	Themes  []theme.Theme `json:"themes"`
}

// SummaryResponse is the /api/summary response.
type SummaryResponse struct {
	Version    uint64          `json:"version"`
	Source     string          `json:"source"`
	Summary    network.Summary `json:"summary"`
	Components [][]string      `json:"components"`
}

// Server represents the web server
type Server struct {
	router    *mux.Router
	store     *store.Store
	pipeline  *pipeline.Pipeline
	themes    map[string]theme.Theme
	zoom      camera.Range
	metrics   *metrics.Registry
	publisher *pubsub.StatusPublisher
}

// NewServer creates a new web server
func NewServer(opts Options) (*Server, error) {
	s := &Server{
		router:    mux.NewRouter(),
		store:     opts.Store,
		pipeline:  opts.Pipeline,
		themes:    opts.Themes,
		zoom:      opts.Zoom,
		metrics:   opts.Metrics,
		publisher: opts.Publisher,
	}
	if s.store == nil {
		s.store = store.New()
	}
	if s.pipeline == nil {
		s.pipeline = pipeline.Default()
	}
	if s.themes == nil {
		s.themes = theme.All()
	}
	if _, ok := s.themes[s.pipeline.Theme().Name]; !ok {
		s.themes = maps.Clone(s.themes)
		s.themes[s.pipeline.Theme().Name] = s.pipeline.Theme()
	}
	if s.zoom == (camera.Range{}) {
		s.zoom = camera.DefaultRange
	}
	if err := s.zoom.Check(); err != nil {
		return nil, err
	}
	if s.metrics == nil {
		s.metrics = metrics.DefaultRegistry()
	}
	if s.publisher == nil {
		s.publisher = pubsub.NewStatusPublisher()
	}

	if err := s.setupRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// PublishDocumentStatus tells viewers about the served document.
func (s *Server) PublishDocumentStatus(state, message string) error {
	doc, version := s.store.Current()
	status := pubsub.DocumentStatus{
		State:   state,
		Version: version,
		Message: message,
	}
	if doc != nil {
		status.Traces = len(doc.Data)
		s.metrics.SetDocument(version, status.Traces)
	}
	return s.publisher.Publish(status)
}

func (s *Server) setupRoutes() error {
	s.router.Use(logging.Middleware(s.observe))

	// SSE subscription endpoints
	s.router.HandleFunc("/api/subscribe/document", s.handleSubscribeDocument).Methods("GET")

	// API routes
	s.router.HandleFunc("/api/figure", s.handleFigure).Methods("GET")
	s.router.HandleFunc("/api/summary", s.handleSummary).Methods("GET")
	s.router.HandleFunc("/api/labels", s.handleLabels).Methods("GET")
	s.router.HandleFunc("/api/themes", s.handleThemes).Methods("GET")
	s.router.HandleFunc("/api/config", s.handleConfig).Methods("GET")
	s.router.Handle("/metrics", s.metrics.Handler()).Methods("GET")

	// Serve static files
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return fmt.Errorf("static files: %w", err)
	}
	s.router.PathPrefix("/").Handler(http.FileServer(http.FS(staticFS)))
	return nil
}

// observe records request metrics under the route template so that query
// strings do not create new series.
func (s *Server) observe(r *http.Request, status int, duration time.Duration) {
	route := r.URL.Path
	if cur := mux.CurrentRoute(r); cur != nil {
		if tpl, err := cur.GetPathTemplate(); err == nil {
			route = tpl
		}
	}
	s.metrics.RecordHTTPRequest(r.Method, route, status, duration)
}

func (s *Server) handleSubscribeDocument(w http.ResponseWriter, r *http.Request) {
	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	// Send initial comment to establish connection (Safari compatibility)
	fmt.Fprintf(w, ": connected\n\n")
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	sub, err := s.publisher.Subscribe(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	defer sub.Close()

	s.metrics.Subscribers.Inc()
	defer s.metrics.Subscribers.Dec()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			if err := pubsub.WriteSSE(w, event); err != nil {
				logging.WarnContext(r.Context(), "error writing SSE event", "error", err)
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}
		}
	}
}

func (s *Server) handleFigure(w http.ResponseWriter, r *http.Request) {
	zoom, err := s.parseZoom(r.URL.Query().Get("zoom"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	th, err := s.lookupTheme(r.URL.Query().Get("theme"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snap := s.store.Snapshot()
	if snap == nil {
		http.Error(w, ErrNoDocument.Error(), http.StatusServiceUnavailable)
		return
	}

	start := time.Now()
	out, err := s.pipeline.WithTheme(th).Render(snap.Document, zoom)
	s.metrics.RecordRender(th.Name, err, time.Since(start))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("X-Document-Version", strconv.FormatUint(snap.Version, 10))
	writeJSON(w, r, out)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	if snap == nil {
		http.Error(w, ErrNoDocument.Error(), http.StatusServiceUnavailable)
		return
	}

	n := network.Build(snap.Document, s.pipeline.Labels())
	writeJSON(w, r, SummaryResponse{
		Version:    snap.Version,
		Source:     snap.Source,
		Summary:    n.Summary(snap.Document, network.DefaultTopDegree),
		Components: n.Components(),
	})
}

func (s *Server) handleLabels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, s.pipeline.Labels().Entries())
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	list := ThemeList{Default: s.pipeline.Theme().Name}
	for _, name := range slices.Sorted(maps.Keys(s.themes)) {
		list.Themes = append(list.Themes, s.themes[name])
	}
	writeJSON(w, r, list)
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	_, version := s.store.Current()
	writeJSON(w, r, ViewerConfig{
		Zoom:    s.zoom,
		Theme:   s.pipeline.Theme().Name,
		Themes:  slices.Sorted(maps.Keys(s.themes)),
		Title:   s.pipeline.Theme().TitleText,
		Version: version,
	})
}

// parseZoom reads the zoom query parameter. An absent value means the
// configured default; anything else must be a valid zoom, which is then
// held to the slider range.
func (s *Server) parseZoom(raw string) (float64, error) {
	if raw == "" {
		return s.zoom.Default, nil
	}
	zoom, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", camera.ErrInvalidZoom, raw)
	}
	if err := camera.Validate(zoom); err != nil {
		return 0, err
	}
	return camera.Clamp(zoom, s.zoom.Min, s.zoom.Max), nil
}

func (s *Server) lookupTheme(name string) (theme.Theme, error) {
	if name == "" {
		return s.pipeline.Theme(), nil
	}
	th, ok := s.themes[name]
	if !ok {
		return theme.Theme{}, fmt.Errorf("%w: %q", theme.ErrUnknownTheme, name)
	}
	return th, nil
}

// writeJSON encodes v before writing anything, so an unencodable value is
// reported as a 500 rather than an empty 200.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logging.ErrorContext(r.Context(), "failed to encode response", "error", err)
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := buf.WriteTo(w); err != nil {
		logging.WarnContext(r.Context(), "failed to write response", "error", err)
	}
}

// Start serves on port until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("starting web server", "url", fmt.Sprintf("http://localhost:%d", port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info("shutting down web server")
	s.publisher.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
