// Command vasanam-ingest loads transcript files into the corpus.
//
// Each input file holds one movie's metadata and its transcript segments
// as JSON. Every segment is tagged with its script register and the movie
// gets its canonical slug before everything is upserted into Postgres:
//
//	vasanam-ingest -db "$DATABASE_URL" transcripts/*.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/vasanam/vasanam/internal/catalog"
	"github.com/vasanam/vasanam/internal/language"
	"github.com/vasanam/vasanam/internal/postgres"
	"github.com/vasanam/vasanam/internal/slug"
)

type transcriptFile struct {
	Title          string   `json:"title"`
	TitleTamil     string   `json:"title_tamil"`
	Year           int      `json:"year"`
	YouTubeVideoID string   `json:"youtube_video_id"`
	ChannelID      string   `json:"channel_id"`
	DurationMs     int64    `json:"duration_ms"`
	PosterURL      string   `json:"poster_url"`
	Actors         []string `json:"actors"`
	Director       string   `json:"director"`
	Genre          []string `json:"genre"`
	Segments       []struct {
		Text       string `json:"text"`
		StartMs    int64  `json:"start_ms"`
		DurationMs int64  `json:"duration_ms"`
	} `json:"segments"`
}

func main() {
	dbURL := flag.String("db", os.Getenv("DATABASE_URL"), "Postgres connection string")
	flag.Parse()

	if *dbURL == "" {
		slog.Error("missing -db flag and DATABASE_URL")
		os.Exit(1)
	}
	if flag.NArg() == 0 {
		slog.Error("no transcript files given")
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := postgres.NewStore(ctx, *dbURL, 4)
	if err != nil {
		slog.Error("connect", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	failed := 0
	for _, path := range flag.Args() {
		n, err := ingestFile(ctx, db, path)
		if err != nil {
			slog.Error("ingest failed", "file", path, "error", err)
			failed++
			continue
		}
		slog.Info("ingested", "file", path, "segments", n)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func ingestFile(ctx context.Context, db *postgres.Store, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var tf transcriptFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	if tf.Title == "" || tf.Year == 0 || tf.YouTubeVideoID == "" {
		return 0, fmt.Errorf("%s: title, year and youtube_video_id are required", path)
	}

	movie := &catalog.Movie{
		ID:             uuid.NewString(),
		Title:          tf.Title,
		TitleTamil:     tf.TitleTamil,
		Year:           tf.Year,
		YouTubeVideoID: tf.YouTubeVideoID,
		ChannelID:      tf.ChannelID,
		DurationMs:     tf.DurationMs,
		PosterURL:      tf.PosterURL,
		Actors:         tf.Actors,
		Director:       tf.Director,
		Genre:          tf.Genre,
		Slug:           slug.Generate(tf.Title, tf.Year),
	}

	movieID, err := db.UpsertMovie(ctx, movie)
	if err != nil {
		return 0, err
	}

	segments := make([]catalog.Segment, 0, len(tf.Segments))
	for _, s := range tf.Segments {
		if s.Text == "" {
			continue
		}
		segments = append(segments, catalog.Segment{
			ID:         uuid.NewString(),
			MovieID:    movieID,
			Text:       s.Text,
			StartMs:    s.StartMs,
			DurationMs: s.DurationMs,
			Register:   language.Detect(s.Text),
		})
	}

	// Re-ingesting a movie replaces its segments wholesale.
	if err := db.DeleteSegments(ctx, movieID); err != nil {
		return 0, err
	}
	if err := db.InsertSegments(ctx, segments); err != nil {
		return 0, err
	}
	return len(segments), nil
}
