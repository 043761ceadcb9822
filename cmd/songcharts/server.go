package main

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"songcharts/internal/http/middleware"
	"songcharts/internal/httpapi"
	"songcharts/internal/musicapi"
	"songcharts/internal/store"
	"songcharts/internal/toptracks"
)

func newHTTPHandler(cfg Config, dataStore *store.Store) http.Handler {
	chartsSvc := toptracks.New(dataStore, newTrackFinder(cfg))
	routes := httpapi.New(chartsSvc, dataStore).Routes()

	return chain(routes,
		middleware.CORS(cfg.AllowedOrigins),
		middleware.Recovery(),
		middleware.RequestLogging(),
	)
}

func newTrackFinder(cfg Config) musicapi.TrackFinder {
	if cfg.SpotifyClientID == "" || cfg.SpotifyClientSecret == "" {
		log.Warn().Msg("Spotify credentials not provided, track lookups disabled")
		return nil
	}

	log.Info().Msg("Spotify client ready")
	return musicapi.NewSpotifyClient(cfg.SpotifyClientID, cfg.SpotifyClientSecret)
}

// chain applies middlewares so the first listed runs innermost.
func chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
