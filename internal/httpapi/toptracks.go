package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"songcharts/internal/chartdate"
	"songcharts/internal/logging"
	"songcharts/internal/store"
	"songcharts/internal/toptracks"
)

// handleTopTracks handles GET /top-tracks?date=YYYY-MM-DD&limit=N.
func (s *Server) handleTopTracks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	date := query.Get("date")
	limit := query.Get("limit")

	logger := logging.WithContext(r.Context())

	result, err := s.charts.TopTracks(r.Context(), date, limit)
	if err != nil {
		switch {
		case errors.Is(err, toptracks.ErrDateRequired):
			logger.Warn().Msg("Date is required")
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Date is required"})
		case errors.Is(err, toptracks.ErrLimitRequired):
			logger.Warn().Msg("Limit is required")
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Limit is required"})
		case errors.Is(err, chartdate.ErrInvalidDate):
			logger.Warn().Str("date", date).Msg("Invalid date format")
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid date format"})
		case errors.Is(err, store.ErrNoSongs):
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "No songs found"})
		default:
			logger.Error().Err(err).Msg("Top tracks request failed")
			http.Error(w, fmt.Sprintf("Server Error: %v", err), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}
