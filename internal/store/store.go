// Package store provides read access to the weekly chart table in
// Postgres. Chart ingestion happens out of band; this layer only reads.
package store

import (
	"database/sql"
	"errors"
)

// ErrNoSongs signals that the chart table holds no rows for the
// requested week.
var ErrNoSongs = errors.New("no songs found")

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}
