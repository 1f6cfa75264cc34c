// Package api wires the HTTP surface: routing, query binding, and the
// JSON handlers over the catalog store.
package api

import (
	"net/http"
	"strings"

	"github.com/vasanam/vasanam/internal/api/respond"
	"github.com/vasanam/vasanam/internal/catalog"
	"github.com/vasanam/vasanam/internal/metrics"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 50
)

// Handlers holds the dependencies shared by the HTTP handlers.
type Handlers struct {
	store     catalog.Store
	resolver  *catalog.Resolver
	publicURL string
}

// NewHandlers creates the handler set. publicURL is the site base used in
// share links.
func NewHandlers(store catalog.Store, publicURL string) *Handlers {
	return &Handlers{
		store:     store,
		resolver:  catalog.NewResolver(store),
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

type searchQuery struct {
	Query  string `query:"q" validate:"max=200"`
	Limit  int    `query:"limit" validate:"omitempty,min=1"`
	Offset int    `query:"offset" validate:"omitempty,min=0"`
}

type searchResponse struct {
	Query   string             `json:"query"`
	Results []searchResultItem `json:"results"`
}

type searchResultItem struct {
	SegmentID      string   `json:"segment_id"`
	MovieID        string   `json:"movie_id"`
	Text           string   `json:"text"`
	StartMs        int64    `json:"start_ms"`
	DurationMs     int64    `json:"duration_ms"`
	Language       string   `json:"language"`
	Timestamp      string   `json:"timestamp"`
	MovieTitle     string   `json:"movie_title"`
	MovieYear      int      `json:"movie_year"`
	YouTubeVideoID string   `json:"youtube_video_id"`
	EmbedURL       string   `json:"embed_url"`
	ThumbnailURL   string   `json:"thumbnail_url"`
	PosterURL      string   `json:"poster_url,omitempty"`
	Actors         []string `json:"actors"`
	Director       string   `json:"director,omitempty"`
	Rank           float64  `json:"rank"`
}

// Search handles dialogue search for both the JSON endpoint and the
// server-rendered search page; the two call sites differ only in their
// admission buckets.
func (h *Handlers) Search(_ http.ResponseWriter, r *http.Request) {
	var q searchQuery
	if !bindQuery(r, &q) {
		return
	}

	query := strings.TrimSpace(q.Query)
	if query == "" {
		// Blank queries never reach the store.
		respond.OK(r, http.StatusOK, searchResponse{Query: "", Results: []searchResultItem{}})
		return
	}

	limit := q.Limit
	if limit == 0 {
		limit = defaultSearchLimit
	}
	limit = min(limit, maxSearchLimit)

	results, err := h.store.SearchDialogues(r.Context(), query, limit, q.Offset)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("failure").Inc()
		respond.Error(r, respond.ErrInternal.With("Search failed"))
		return
	}

	outcome := "success"
	if len(results) == 0 {
		outcome = "empty"
	}
	metrics.SearchesTotal.WithLabelValues(outcome).Inc()

	items := make([]searchResultItem, len(results))
	for i, res := range results {
		items[i] = searchResultItem{
			SegmentID:      res.SegmentID,
			MovieID:        res.MovieID,
			Text:           res.Text,
			StartMs:        res.StartMs,
			DurationMs:     res.DurationMs,
			Language:       string(res.Register),
			Timestamp:      catalog.FormatTimestamp(res.StartMs),
			MovieTitle:     res.MovieTitle,
			MovieYear:      res.MovieYear,
			YouTubeVideoID: res.YouTubeVideoID,
			EmbedURL:       catalog.EmbedURL(res.YouTubeVideoID, res.StartMs),
			ThumbnailURL:   catalog.ThumbnailURL(res.YouTubeVideoID),
			PosterURL:      res.PosterURL,
			Actors:         res.Actors,
			Director:       res.Director,
			Rank:           res.Rank,
		}
	}

	respond.OK(r, http.StatusOK, searchResponse{Query: query, Results: items})
}
