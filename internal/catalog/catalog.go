// Package catalog defines the movie-dialogue corpus model and the
// resolution logic that maps human-readable identifiers to movies.
//
// The corpus itself lives in an external store (Postgres in production);
// this package owns only the record shapes and the lookup policy.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/vasanam/vasanam/internal/language"
)

// ErrNotFound is returned when a lookup names nothing. It is a normal
// outcome, not a failure: store errors are never collapsed into it.
var ErrNotFound = errors.New("catalog: not found")

// Movie is one content item: a full movie upload on YouTube.
type Movie struct {
	ID             string
	Title          string
	TitleTamil     string
	Year           int
	YouTubeVideoID string
	ChannelID      string
	DurationMs     int64
	PosterURL      string
	Actors         []string
	Director       string
	Genre          []string
	// Slug is the stored canonical slug, empty until back-filled.
	Slug      string
	CreatedAt time.Time
}

// Segment is a timestamped span of dialogue belonging to one movie.
type Segment struct {
	ID         string
	MovieID    string
	Text       string
	StartMs    int64
	DurationMs int64
	Register   language.Register
}

// SearchResult is one ranked row from the full-text search function,
// a segment joined with its movie.
type SearchResult struct {
	SegmentID      string
	MovieID        string
	Text           string
	StartMs        int64
	DurationMs     int64
	Register       language.Register
	MovieTitle     string
	MovieYear      int
	YouTubeVideoID string
	PosterURL      string
	Actors         []string
	Director       string
	Rank           float64
}

// MovieFinder is the minimal collaborator surface the resolver needs.
type MovieFinder interface {
	// MovieBySlug returns the movie whose stored canonical slug equals
	// slug verbatim, or ErrNotFound.
	MovieBySlug(ctx context.Context, slug string) (*Movie, error)

	// MovieByTitleYear returns the first movie whose title matches the
	// ILIKE pattern and whose year equals year exactly, or ErrNotFound.
	MovieByTitleYear(ctx context.Context, pattern string, year int) (*Movie, error)
}

// Store is the full corpus surface consumed by the API layer.
type Store interface {
	MovieFinder

	// SearchDialogues invokes the managed full-text search function and
	// returns ranked segment matches.
	SearchDialogues(ctx context.Context, query string, limit, offset int) ([]SearchResult, error)

	// SegmentsByMovie returns up to limit segments for a movie ordered
	// by start time.
	SegmentsByMovie(ctx context.Context, movieID string, limit int) ([]Segment, error)

	// SegmentByID returns one segment and its movie, or ErrNotFound.
	SegmentByID(ctx context.Context, id string) (*Segment, *Movie, error)
}
