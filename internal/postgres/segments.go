package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vasanam/vasanam/internal/catalog"
	"github.com/vasanam/vasanam/internal/language"
)

// SegmentsByMovie returns up to limit segments for a movie ordered by
// start time.
func (s *Store) SegmentsByMovie(ctx context.Context, movieID string, limit int) ([]catalog.Segment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, movie_id, text, start_ms, duration_ms, language
		 FROM vasanam_segments
		 WHERE movie_id = $1
		 ORDER BY start_ms
		 LIMIT $2`, movieID, limit)
	if err != nil {
		return nil, fmt.Errorf("segments by movie: %w", err)
	}
	defer rows.Close()

	var segments []catalog.Segment
	for rows.Next() {
		var (
			seg      catalog.Segment
			register string
		)
		if err := rows.Scan(&seg.ID, &seg.MovieID, &seg.Text, &seg.StartMs,
			&seg.DurationMs, &register); err != nil {
			return nil, fmt.Errorf("segments by movie: %w", err)
		}
		seg.Register = language.Register(register)
		segments = append(segments, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("segments by movie: %w", err)
	}
	return segments, nil
}

// SegmentByID returns one segment and its movie, or catalog.ErrNotFound.
// Backs the share deep links (/d/{id} in the original site).
func (s *Store) SegmentByID(ctx context.Context, id string) (*catalog.Segment, *catalog.Movie, error) {
	var (
		seg      catalog.Segment
		register string
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, movie_id, text, start_ms, duration_ms, language
		 FROM vasanam_segments
		 WHERE id = $1`, id).
		Scan(&seg.ID, &seg.MovieID, &seg.Text, &seg.StartMs, &seg.DurationMs, &register)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, catalog.ErrNotFound
		}
		return nil, nil, fmt.Errorf("segment by id: %w", err)
	}
	seg.Register = language.Register(register)

	row := s.pool.QueryRow(ctx,
		`SELECT `+movieColumns+` FROM vasanam_movies WHERE id = $1`, seg.MovieID)
	movie, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, catalog.ErrNotFound
		}
		return nil, nil, fmt.Errorf("segment by id: %w", err)
	}

	return &seg, movie, nil
}
