package postgres

import (
	"context"
	"fmt"

	"github.com/vasanam/vasanam/internal/catalog"
	"github.com/vasanam/vasanam/internal/language"
)

// SearchDialogues invokes the managed full-text search function.
//
// search_dialogues(search_query, result_limit, result_offset) ranks
// segments across Tamil, Tanglish and English text using the simple
// (language-agnostic) dictionary and returns them joined with their
// movies. The ranking internals belong to the database; this is only the
// calling contract.
func (s *Store) SearchDialogues(ctx context.Context, query string, limit, offset int) ([]catalog.SearchResult, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT segment_id, movie_id, text, start_ms, duration_ms, language,
		        movie_title, movie_year, youtube_video_id, poster_url,
		        actors, director, rank
		 FROM search_dialogues($1, $2, $3)`, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search dialogues: %w", err)
	}
	defer rows.Close()

	var results []catalog.SearchResult
	for rows.Next() {
		var (
			res       catalog.SearchResult
			register  string
			posterURL *string
			director  *string
		)
		if err := rows.Scan(&res.SegmentID, &res.MovieID, &res.Text,
			&res.StartMs, &res.DurationMs, &register, &res.MovieTitle,
			&res.MovieYear, &res.YouTubeVideoID, &posterURL, &res.Actors,
			&director, &res.Rank); err != nil {
			return nil, fmt.Errorf("search dialogues: %w", err)
		}
		res.Register = language.Register(register)
		res.PosterURL = deref(posterURL)
		res.Director = deref(director)
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search dialogues: %w", err)
	}
	return results, nil
}
