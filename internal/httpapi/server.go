// Package httpapi wires HTTP handlers to the chart services.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"songcharts/internal/logging"
	"songcharts/internal/toptracks"
)

// ChartService captures the chart operations needed by the HTTP
// handlers.
type ChartService interface {
	TopTracks(ctx context.Context, date, limit string) (*toptracks.Result, error)
}

// StatusStore reports on the chart table for the health handler.
type StatusStore interface {
	EntryCount(ctx context.Context) (int64, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	charts ChartService
	status StatusStore
}

// New configures a Server. status may be nil, in which case the health
// handler skips the database probe.
func New(charts ChartService, status StatusStore) *Server {
	return &Server{charts: charts, status: status}
}

// Routes exposes the HTTP handlers.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleWelcome)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/top-tracks", s.handleTopTracks)

	return mux
}

func (s *Server) handleWelcome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Write([]byte("Welcome to Song Charts API!"))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.status != nil {
		count, err := s.status.EntryCount(r.Context())
		if err != nil {
			logging.WithContext(r.Context()).Error().Err(err).Msg("Health check failed")
			http.Error(w, "chart store unavailable", http.StatusServiceUnavailable)
			return
		}
		if count == 0 {
			http.Error(w, "chart store is empty", http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

type errorResponse struct {
	Error string `json:"error"`
}
