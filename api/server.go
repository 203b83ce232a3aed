// Package api serves the widget page and its JSON API over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"weather-widget/fetcher"
	"weather-widget/view"
	"weather-widget/widget"
)

// DefaultShutdownTimeout bounds graceful shutdown
const DefaultShutdownTimeout = 5 * time.Second

// Server represents the widget HTTP server
type Server struct {
	widget          *widget.Widget
	page            *view.HTML
	logger          *slog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

// NewServer creates a new server for w on port
func NewServer(w *widget.Widget, page *view.HTML, port int, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	server := &Server{
		widget:          w,
		page:            page,
		logger:          logger,
		shutdownTimeout: DefaultShutdownTimeout,
	}
	server.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           server.withLogging(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Page and form posts
	mux.HandleFunc("/", server.handlePage)
	mux.HandleFunc("/search", server.handleSearchForm)
	mux.HandleFunc("/theme/toggle", server.handleThemeForm)

	// JSON API
	mux.HandleFunc("/api/state", server.handleGetState)
	mux.HandleFunc("/api/search", server.handleSearch)
	mux.HandleFunc("/api/theme/toggle", server.handleThemeToggle)

	// Health check and metrics
	mux.HandleFunc("/api/health", server.handleHealthCheck)
	mux.Handle("/metrics", promhttp.Handler())

	return server
}

// SetShutdownTimeout changes how long Run waits for in-flight requests
func (s *Server) SetShutdownTimeout(timeout time.Duration) {
	s.shutdownTimeout = timeout
}

// Handler returns the root handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Run listens on the configured port until ctx is canceled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.server.Addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is canceled
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	s.logger.Info("starting HTTP server", "addr", listener.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// handlePage renders the widget page
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Render(w, s.widget.Snapshot()); err != nil {
		s.logger.ErrorContext(r.Context(), "failed to render page", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// handleSearchForm searches for the posted location and redirects back to the page.
// Failures are shown on the page through the widget state.
func (s *Server) handleSearchForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	if err := s.widget.SearchFor(r.Context(), r.PostForm.Get("location")); err != nil {
		s.logger.DebugContext(r.Context(), "form search did not complete", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleThemeForm flips the theme and redirects back to the page
func (s *Server) handleThemeForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// The new mode is kept in memory even when saving fails
	if _, err := s.widget.ToggleTheme(r.Context()); err != nil {
		s.logger.WarnContext(r.Context(), "theme toggled but not saved", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleGetState returns the widget state
func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.widget.Snapshot())
}

type searchRequest struct {
	Location string `json:"location"`
}

// handleSearch runs a search and returns the resulting state
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req searchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	err := s.widget.SearchFor(r.Context(), req.Location)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, s.widget.Snapshot())
	case errors.Is(err, widget.ErrEmptyLocation):
		writeError(w, http.StatusBadRequest, "Location is required")
	case errors.Is(err, widget.ErrSearchInProgress):
		writeError(w, http.StatusConflict, "A search is already in progress")
	default:
		writeError(w, http.StatusBadGateway, fetcher.UserMessage)
	}
}

// handleThemeToggle flips the theme and reports the new mode
func (s *Server) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	dark, err := s.widget.ToggleTheme(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"darkMode": dark,
			"error":    "Theme changed but could not be saved",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"darkMode": dark})
}

// handleHealthCheck provides a simple health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging logs each request at debug level
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.DebugContext(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
