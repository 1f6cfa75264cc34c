package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vasanam/vasanam/internal/api/respond"
	"github.com/vasanam/vasanam/internal/catalog"
	"github.com/vasanam/vasanam/internal/metrics"
)

// movieSegmentLimit caps how many segments a movie page loads.
const movieSegmentLimit = 100

type movieResponse struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	TitleTamil     string        `json:"title_tamil,omitempty"`
	Year           int           `json:"year"`
	Slug           string        `json:"slug"`
	YouTubeVideoID string        `json:"youtube_video_id"`
	ThumbnailURL   string        `json:"thumbnail_url"`
	PosterURL      string        `json:"poster_url,omitempty"`
	Actors         []string      `json:"actors"`
	Director       string        `json:"director,omitempty"`
	Genre          []string      `json:"genre,omitempty"`
	Segments       []segmentItem `json:"segments"`
}

type segmentItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	StartMs   int64  `json:"start_ms"`
	Language  string `json:"language"`
	Timestamp string `json:"timestamp"`
	EmbedURL  string `json:"embed_url"`
}

// Movie resolves a movie by its human-readable slug and returns it with
// its first segments in start order.
func (h *Handlers) Movie(_ http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "slug")

	movie, err := h.resolver.Resolve(r.Context(), identifier)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			metrics.ResolutionsTotal.WithLabelValues("not_found").Inc()
			respond.Error(r, respond.ErrNotFound.With("Movie not found"))
			return
		}
		metrics.ResolutionsTotal.WithLabelValues("failure").Inc()
		respond.Error(r, respond.ErrInternal.With("Could not load movie"))
		return
	}

	stage := "fuzzy"
	if movie.Slug == identifier {
		stage = "exact"
	}
	metrics.ResolutionsTotal.WithLabelValues(stage).Inc()

	segments, err := h.store.SegmentsByMovie(r.Context(), movie.ID, movieSegmentLimit)
	if err != nil {
		respond.Error(r, respond.ErrInternal.With("Could not load movie"))
		return
	}

	items := make([]segmentItem, len(segments))
	for i, seg := range segments {
		items[i] = segmentItem{
			ID:        seg.ID,
			Text:      seg.Text,
			StartMs:   seg.StartMs,
			Language:  string(seg.Register),
			Timestamp: catalog.FormatTimestamp(seg.StartMs),
			EmbedURL:  catalog.EmbedURL(movie.YouTubeVideoID, seg.StartMs),
		}
	}

	respond.OK(r, http.StatusOK, movieResponse{
		ID:             movie.ID,
		Title:          movie.Title,
		TitleTamil:     movie.TitleTamil,
		Year:           movie.Year,
		Slug:           movie.Slug,
		YouTubeVideoID: movie.YouTubeVideoID,
		ThumbnailURL:   catalog.ThumbnailURL(movie.YouTubeVideoID),
		PosterURL:      movie.PosterURL,
		Actors:         movie.Actors,
		Director:       movie.Director,
		Genre:          movie.Genre,
		Segments:       items,
	})
}
