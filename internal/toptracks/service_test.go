package toptracks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"songcharts/internal/chartdate"
	"songcharts/internal/musicapi"
	"songcharts/internal/store"
)

type stubStore struct {
	entries []store.ChartEntry
	err     error

	lastWeek  time.Time
	lastLimit int
}

func (s *stubStore) FetchWeek(_ context.Context, week time.Time, limit int) ([]store.ChartEntry, error) {
	s.lastWeek = week
	s.lastLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	return s.entries, nil
}

// stubFinder resolves lookups from a fixed table. Keys in failures
// error out, keys absent from both maps come back as no match. delay
// staggers completions so assembly order cannot ride on lookup order.
type stubFinder struct {
	tracks   map[string]string
	failures map[string]error
	delay    map[string]time.Duration
}

func (f *stubFinder) FindTrack(_ context.Context, queryKey, _, _ string) (*musicapi.Track, error) {
	if d, ok := f.delay[queryKey]; ok {
		time.Sleep(d)
	}
	if err, ok := f.failures[queryKey]; ok {
		return nil, err
	}
	id, ok := f.tracks[queryKey]
	if !ok {
		return nil, nil
	}
	return &musicapi.Track{ID: id, QueryKey: queryKey}, nil
}

func chartWeek(t *testing.T, date string) time.Time {
	t.Helper()
	week, err := time.Parse(chartdate.Layout, date)
	require.NoError(t, err)
	return week
}

func TestTopTracksMissingParameters(t *testing.T) {
	svc := New(&stubStore{}, &stubFinder{})

	_, err := svc.TopTracks(context.Background(), "", "3")
	require.ErrorIs(t, err, ErrDateRequired)

	_, err = svc.TopTracks(context.Background(), "2024-03-02", "")
	require.ErrorIs(t, err, ErrLimitRequired)
}

func TestTopTracksRejectsUnusableLimit(t *testing.T) {
	svc := New(&stubStore{}, &stubFinder{})

	for _, limit := range []string{"0", "-1", "ten", "3.5"} {
		_, err := svc.TopTracks(context.Background(), "2024-03-02", limit)
		require.ErrorIs(t, err, ErrLimitRequired, "limit %q", limit)
	}
}

func TestTopTracksInvalidDate(t *testing.T) {
	st := &stubStore{}
	svc := New(st, &stubFinder{})

	_, err := svc.TopTracks(context.Background(), "03/02/2024", "3")
	require.ErrorIs(t, err, chartdate.ErrInvalidDate)
	assert.True(t, st.lastWeek.IsZero(), "store must not be queried for a bad date")
}

func TestTopTracksQueriesResolvedSaturday(t *testing.T) {
	st := &stubStore{err: store.ErrNoSongs}
	svc := New(st, &stubFinder{})

	// 2024-03-04 is a Monday; the snapshot key is the following Saturday.
	_, err := svc.TopTracks(context.Background(), "2024-03-04", "10")
	require.ErrorIs(t, err, store.ErrNoSongs)

	assert.Equal(t, chartWeek(t, "2024-03-09"), st.lastWeek)
	assert.Equal(t, 10, st.lastLimit)
}

func TestTopTracksEnrichesInRankOrder(t *testing.T) {
	st := &stubStore{entries: []store.ChartEntry{
		{Title: "Texas Hold 'Em", Performer: "Beyonce", WeeksOnChart: "3"},
		{Title: "Lose Control", Performer: "Teddy Swims", WeeksOnChart: "32"},
		{Title: "Carnival", Performer: "Kanye West & Ty Dolla $ign", WeeksOnChart: "NA"},
	}}
	finder := &stubFinder{
		tracks: map[string]string{
			"Texas Hold 'Em Beyonce":              "spotify-1",
			"Lose Control Teddy Swims":            "spotify-2",
			"Carnival Kanye West & Ty Dolla $ign": "spotify-3",
		},
		// Complete in reverse rank order.
		delay: map[string]time.Duration{
			"Texas Hold 'Em Beyonce":   30 * time.Millisecond,
			"Lose Control Teddy Swims": 15 * time.Millisecond,
		},
	}
	svc := New(st, finder)

	result, err := svc.TopTracks(context.Background(), "2024-03-02", "3")
	require.NoError(t, err)

	assert.Equal(t, "2024-03-02", result.Date)
	assert.Equal(t, "3", result.Limit)
	require.Len(t, result.Songs, 3)

	for i, song := range result.Songs {
		assert.Equal(t, i, song.Index)
	}
	assert.Equal(t, "Texas Hold 'Em", result.Songs[0].Title)
	assert.Equal(t, "Lose Control", result.Songs[1].Title)
	assert.Equal(t, "Carnival", result.Songs[2].Title)

	require.NotNil(t, result.Songs[0].SpotifyID)
	assert.Equal(t, "spotify-1", *result.Songs[0].SpotifyID)
	require.NotNil(t, result.Songs[2].SpotifyID)
	assert.Equal(t, "spotify-3", *result.Songs[2].SpotifyID)

	assert.Equal(t, 3, result.Songs[0].WeeksOnChart)
	assert.Equal(t, 0, result.Songs[2].WeeksOnChart, "NA sentinel normalizes to zero")
}

func TestTopTracksToleratesPartialLookupFailure(t *testing.T) {
	st := &stubStore{entries: []store.ChartEntry{
		{Title: "Song A", Performer: "Artist A", WeeksOnChart: "1"},
		{Title: "Song B", Performer: "Artist B", WeeksOnChart: "2"},
		{Title: "Song C", Performer: "Artist C", WeeksOnChart: "3"},
	}}
	finder := &stubFinder{
		tracks: map[string]string{
			"Song A Artist A": "id-a",
			"Song C Artist C": "id-c",
		},
		failures: map[string]error{
			"Song B Artist B": errors.New("spotify api error: 429 Too Many Requests"),
		},
	}
	svc := New(st, finder)

	result, err := svc.TopTracks(context.Background(), "2024-03-02", "3")
	require.NoError(t, err, "a failed lookup must not fail the request")
	require.Len(t, result.Songs, 3)

	assert.NotNil(t, result.Songs[0].SpotifyID)
	assert.Nil(t, result.Songs[1].SpotifyID, "failed lookup degrades to no ID")
	assert.NotNil(t, result.Songs[2].SpotifyID)
}

func TestTopTracksDuplicateEntriesShareLookup(t *testing.T) {
	st := &stubStore{entries: []store.ChartEntry{
		{Title: "Same Song", Performer: "Same Artist", WeeksOnChart: "5"},
		{Title: "Same Song", Performer: "Same Artist", WeeksOnChart: "5"},
	}}
	finder := &stubFinder{
		tracks: map[string]string{"Same Song Same Artist": "shared-id"},
	}
	svc := New(st, finder)

	result, err := svc.TopTracks(context.Background(), "2024-03-02", "2")
	require.NoError(t, err)
	require.Len(t, result.Songs, 2)

	require.NotNil(t, result.Songs[0].SpotifyID)
	require.NotNil(t, result.Songs[1].SpotifyID)
	assert.Equal(t, *result.Songs[0].SpotifyID, *result.Songs[1].SpotifyID)
}

func TestTopTracksWithoutFinder(t *testing.T) {
	st := &stubStore{entries: []store.ChartEntry{
		{Title: "Song A", Performer: "Artist A", WeeksOnChart: "7"},
	}}
	svc := New(st, nil)

	result, err := svc.TopTracks(context.Background(), "2024-03-02", "1")
	require.NoError(t, err)
	require.Len(t, result.Songs, 1)
	assert.Nil(t, result.Songs[0].SpotifyID)
	assert.Equal(t, 7, result.Songs[0].WeeksOnChart)
}

func TestParseWeeksOnChart(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{raw: "12", want: 12},
		{raw: "0", want: 0},
		{raw: "NA", want: 0},
		{raw: " 3 ", want: 3},
		{raw: "-1", want: 0},
		{raw: "garbage", want: 0},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, parseWeeksOnChart(tc.raw).value(), "raw %q", tc.raw)
	}
}
