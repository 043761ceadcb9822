// Package musicapi talks to external streaming services to resolve
// chart entries to playable track IDs.
package musicapi

import (
	"context"
)

// Track is the lookup result for one chart entry. QueryKey carries the
// caller's composite title+artist key back so results can be matched to
// rows regardless of completion order.
type Track struct {
	ID       string
	QueryKey string
}

// TrackFinder resolves a song title and artist to an external track.
// Implementations return (nil, nil) when the service has no match;
// errors are reserved for transport and API failures.
type TrackFinder interface {
	FindTrack(ctx context.Context, queryKey, title, artist string) (*Track, error)
}
