package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/vasanam/vasanam/internal/catalog"
)

const movieColumns = `id, title, title_tamil, year, youtube_video_id, channel_id,
	duration_ms, poster_url, actors, director, genre, slug, created_at`

// MovieBySlug returns the movie whose stored canonical slug matches
// exactly, or catalog.ErrNotFound.
func (s *Store) MovieBySlug(ctx context.Context, slug string) (*catalog.Movie, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+movieColumns+` FROM vasanam_movies WHERE slug = $1`, slug)

	movie, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("movie by slug: %w", err)
	}
	return movie, nil
}

// MovieByTitleYear returns the first movie whose title matches the ILIKE
// pattern with the exact year. Year equality is a hard filter: it is the
// primary disambiguator between same-titled re-releases. Ordering makes
// the pick deterministic when a title+year pair collides; such records
// should get a stored slug to disambiguate.
func (s *Store) MovieByTitleYear(ctx context.Context, pattern string, year int) (*catalog.Movie, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+movieColumns+` FROM vasanam_movies
		 WHERE title ILIKE $1 AND year = $2
		 ORDER BY created_at, id
		 LIMIT 1`, pattern, year)

	movie, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("movie by title and year: %w", err)
	}
	return movie, nil
}

func scanMovie(row pgx.Row) (*catalog.Movie, error) {
	var (
		m          catalog.Movie
		titleTamil *string
		channelID  *string
		durationMs *int64
		posterURL  *string
		director   *string
		slug       *string
		createdAt  time.Time
	)

	err := row.Scan(&m.ID, &m.Title, &titleTamil, &m.Year, &m.YouTubeVideoID,
		&channelID, &durationMs, &posterURL, &m.Actors, &director, &m.Genre,
		&slug, &createdAt)
	if err != nil {
		return nil, err
	}

	m.TitleTamil = deref(titleTamil)
	m.ChannelID = deref(channelID)
	m.PosterURL = deref(posterURL)
	m.Director = deref(director)
	m.Slug = deref(slug)
	if durationMs != nil {
		m.DurationMs = *durationMs
	}
	m.CreatedAt = createdAt
	return &m, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
