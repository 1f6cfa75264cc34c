package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vasanam/vasanam/internal/catalog"
)

// segmentBatchSize bounds one insert round trip during ingestion.
const segmentBatchSize = 500

// UpsertMovie inserts a movie keyed by its YouTube video ID, updating
// metadata in place on re-ingestion. Returns the movie's ID.
func (s *Store) UpsertMovie(ctx context.Context, m *catalog.Movie) (string, error) {
	var id string
	err := s.pool.QueryRow(ctx,
		`INSERT INTO vasanam_movies
		   (id, title, title_tamil, year, youtube_video_id, channel_id,
		    duration_ms, poster_url, actors, director, genre, slug)
		 VALUES ($1, $2, NULLIF($3, ''), $4, $5, NULLIF($6, ''),
		         NULLIF($7, 0), NULLIF($8, ''), $9, NULLIF($10, ''), $11, NULLIF($12, ''))
		 ON CONFLICT (youtube_video_id) DO UPDATE SET
		   title = EXCLUDED.title,
		   title_tamil = EXCLUDED.title_tamil,
		   year = EXCLUDED.year,
		   channel_id = EXCLUDED.channel_id,
		   duration_ms = EXCLUDED.duration_ms,
		   poster_url = EXCLUDED.poster_url,
		   actors = EXCLUDED.actors,
		   director = EXCLUDED.director,
		   genre = EXCLUDED.genre,
		   slug = EXCLUDED.slug
		 RETURNING id`,
		m.ID, m.Title, m.TitleTamil, m.Year, m.YouTubeVideoID, m.ChannelID,
		m.DurationMs, m.PosterURL, m.Actors, m.Director, m.Genre, m.Slug).
		Scan(&id)
	if err != nil {
		return "", fmt.Errorf("upsert movie %q: %w", m.Title, err)
	}
	return id, nil
}

// DeleteSegments removes a movie's segments ahead of re-ingestion.
func (s *Store) DeleteSegments(ctx context.Context, movieID string) error {
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM vasanam_segments WHERE movie_id = $1`, movieID); err != nil {
		return fmt.Errorf("delete segments: %w", err)
	}
	return nil
}

// InsertSegments writes segments in batches of segmentBatchSize.
func (s *Store) InsertSegments(ctx context.Context, segments []catalog.Segment) error {
	for start := 0; start < len(segments); start += segmentBatchSize {
		end := min(start+segmentBatchSize, len(segments))

		batch := &pgx.Batch{}
		for _, seg := range segments[start:end] {
			batch.Queue(
				`INSERT INTO vasanam_segments
				   (id, movie_id, text, start_ms, duration_ms, language)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				seg.ID, seg.MovieID, seg.Text, seg.StartMs, seg.DurationMs,
				string(seg.Register))
		}

		if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert segments: %w", err)
		}
	}
	return nil
}
