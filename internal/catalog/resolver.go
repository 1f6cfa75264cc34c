package catalog

import (
	"context"
	"errors"

	"github.com/vasanam/vasanam/internal/slug"
)

// Resolver maps an inbound identifier to a movie with a two-stage policy:
// an exact match on the stored canonical slug, then a fuzzy title-pattern
// match with the year as a hard filter. The exact stage is the fast path
// for back-filled records; the fuzzy stage covers everything ingested
// before slugs were stored.
type Resolver struct {
	finder MovieFinder
}

// NewResolver creates a resolver over the given collaborator store.
func NewResolver(finder MovieFinder) *Resolver {
	return &Resolver{finder: finder}
}

// Resolve looks up the movie named by identifier.
//
// A malformed identifier resolves to ErrNotFound without ever reaching the
// fuzzy lookup: an identifier that cannot decode simply names nothing.
// Store failures from either stage propagate unchanged so callers can tell
// "it does not exist" from "we could not check".
func (r *Resolver) Resolve(ctx context.Context, identifier string) (*Movie, error) {
	movie, err := r.finder.MovieBySlug(ctx, identifier)
	if err == nil {
		return movie, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	key, ok := slug.Parse(identifier)
	if !ok {
		return nil, ErrNotFound
	}

	movie, err = r.finder.MovieByTitleYear(ctx, key.TitlePattern, key.Year)
	if err != nil {
		return nil, err
	}
	return movie, nil
}
