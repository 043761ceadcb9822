// Package toptracks resolves a calendar date to a weekly chart snapshot
// and enriches each chart entry with a Spotify track ID.
package toptracks

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"songcharts/internal/chartdate"
	"songcharts/internal/logging"
	"songcharts/internal/musicapi"
	"songcharts/internal/store"
)

var (
	// ErrDateRequired signals a request without a date parameter.
	ErrDateRequired = errors.New("date is required")
	// ErrLimitRequired signals a missing or unusable limit parameter.
	ErrLimitRequired = errors.New("limit is required")
)

// ChartStore is the slice of the store this service needs.
type ChartStore interface {
	FetchWeek(ctx context.Context, week time.Time, limit int) ([]store.ChartEntry, error)
}

// Song is one enriched chart entry. SpotifyID is nil when the lookup
// failed or found no match; that is a valid terminal state, not an
// error.
type Song struct {
	Index        int     `json:"index"`
	Title        string  `json:"title"`
	Artist       string  `json:"artist"`
	WeeksOnChart int     `json:"weeksOnChart"`
	SpotifyID    *string `json:"spotifyId"`
}

// Result is the full response for one top-tracks request. Date and
// Limit echo the caller's parameters verbatim.
type Result struct {
	Date  string `json:"date"`
	Limit string `json:"limit"`
	Songs []Song `json:"songs"`
}

// Service orchestrates date resolution, the chart fetch and the
// concurrent Spotify fan-out.
type Service struct {
	store  ChartStore
	finder musicapi.TrackFinder
}

// New configures a Service. finder may be nil, in which case every song
// comes back without a Spotify ID.
func New(chartStore ChartStore, finder musicapi.TrackFinder) *Service {
	return &Service{store: chartStore, finder: finder}
}

// TopTracks returns the top chart songs for the week covering date,
// capped at limit, each enriched with a Spotify track ID where one
// could be found. Lookup failures degrade single rows, never the
// request.
func (s *Service) TopTracks(ctx context.Context, date, limit string) (*Result, error) {
	if date == "" {
		return nil, ErrDateRequired
	}
	if limit == "" {
		return nil, ErrLimitRequired
	}

	n, err := strconv.Atoi(limit)
	if err != nil || n <= 0 {
		return nil, ErrLimitRequired
	}

	resolved, err := chartdate.Resolve(date)
	if err != nil {
		return nil, fmt.Errorf("resolve date: %w", err)
	}

	logger := logging.WithContext(ctx)
	logger.Debug().
		Str("date", resolved.Date.Format(chartdate.Layout)).
		Str("chart_week", resolved.Week.Format(chartdate.Layout)).
		Int("limit", n).
		Msg("Fetching top tracks")

	entries, err := s.store.FetchWeek(ctx, resolved.Week, n)
	if err != nil {
		if errors.Is(err, store.ErrNoSongs) {
			logger.Info().
				Str("chart_week", resolved.Week.Format(chartdate.Layout)).
				Msg("No songs found for chart week")
		}
		return nil, fmt.Errorf("fetch chart week: %w", err)
	}

	ids := s.lookupTracks(ctx, entries)

	songs := make([]Song, 0, len(entries))
	for i, entry := range entries {
		song := Song{
			Index:        i,
			Title:        entry.Title,
			Artist:       entry.Performer,
			WeeksOnChart: parseWeeksOnChart(entry.WeeksOnChart).value(),
		}
		if id, ok := ids[queryKey(entry)]; ok {
			song.SpotifyID = &id
		}
		songs = append(songs, song)
	}

	logger.Info().Int("songs", len(songs)).Msg("Returning top tracks")

	return &Result{Date: date, Limit: limit, Songs: songs}, nil
}

// lookupTracks fans out one Spotify search per entry and collects the
// completed lookups into a map keyed by composite query key. Rows whose
// lookup errors or finds nothing are simply absent from the map.
func (s *Service) lookupTracks(ctx context.Context, entries []store.ChartEntry) map[string]string {
	ids := make(map[string]string, len(entries))
	if s.finder == nil {
		return ids
	}

	logger := logging.WithContext(ctx)

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, entry := range entries {
		wg.Add(1)
		go func(key, title, artist string) {
			defer wg.Done()

			track, err := s.finder.FindTrack(ctx, key, title, artist)
			if err != nil {
				logger.Warn().Err(err).Str("query", key).Msg("Track lookup failed")
				return
			}
			if track == nil {
				logger.Debug().Str("query", key).Msg("No track found")
				return
			}

			mu.Lock()
			ids[track.QueryKey] = track.ID
			mu.Unlock()
		}(queryKey(entry), entry.Title, entry.Performer)
	}
	wg.Wait()

	return ids
}

// queryKey builds the composite title+artist key that correlates a
// chart row with its asynchronous lookup result. Duplicate rows share a
// key and therefore share whichever lookup result lands.
func queryKey(entry store.ChartEntry) string {
	return entry.Title + " " + entry.Performer
}
