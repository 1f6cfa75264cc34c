package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vasanam/vasanam/internal/api/respond"
	"github.com/vasanam/vasanam/internal/catalog"
)

type segmentResponse struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	StartMs      int64  `json:"start_ms"`
	DurationMs   int64  `json:"duration_ms"`
	Language     string `json:"language"`
	Timestamp    string `json:"timestamp"`
	MovieID      string `json:"movie_id"`
	MovieTitle   string `json:"movie_title"`
	MovieYear    int    `json:"movie_year"`
	MovieSlug    string `json:"movie_slug,omitempty"`
	EmbedURL     string `json:"embed_url"`
	WatchURL     string `json:"watch_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	ShareURL     string `json:"share_url"`
	ShareText    string `json:"share_text"`
}

// Segment serves the scene deep link: one dialogue segment with enough
// movie context to render and share it.
func (h *Handlers) Segment(_ http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	seg, movie, err := h.store.SegmentByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respond.Error(r, respond.ErrNotFound.With("Scene not found"))
			return
		}
		respond.Error(r, respond.ErrInternal.With("Could not load scene"))
		return
	}

	shareURL := h.publicURL + "/d/" + seg.ID

	respond.OK(r, http.StatusOK, segmentResponse{
		ID:           seg.ID,
		Text:         seg.Text,
		StartMs:      seg.StartMs,
		DurationMs:   seg.DurationMs,
		Language:     string(seg.Register),
		Timestamp:    catalog.FormatTimestamp(seg.StartMs),
		MovieID:      movie.ID,
		MovieTitle:   movie.Title,
		MovieYear:    movie.Year,
		MovieSlug:    movie.Slug,
		EmbedURL:     catalog.EmbedURL(movie.YouTubeVideoID, seg.StartMs),
		WatchURL:     catalog.WatchURL(movie.YouTubeVideoID, seg.StartMs),
		ThumbnailURL: catalog.ThumbnailURL(movie.YouTubeVideoID),
		ShareURL:     shareURL,
		ShareText:    shareText(seg.Text, movie.Title, movie.Year, shareURL),
	})
}

// shareText builds the WhatsApp-flavored share message for a scene.
func shareText(dialogue, movieTitle string, year int, shareURL string) string {
	return fmt.Sprintf("🎬 *%s (%d)*\n\n\"%s\"\n\nWatch the scene → %s",
		movieTitle, year, dialogue, shareURL)
}
