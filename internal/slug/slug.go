// Package slug converts between canonical movie identifiers and lookup keys.
//
// The canonical slug format is lower-kebab-title-year, e.g. "Baasha" (1995)
// becomes "baasha-1995". Generate and Parse are not inverses: Generate
// collapses case and punctuation, and Parse reconstructs only a fuzzy
// title pattern plus the year. Exact resolution relies on a stored slug
// column when one exists; these helpers back the ILIKE fallback.
package slug

import (
	"regexp"
	"strconv"
	"strings"
)

// Plausible production-year range for the corpus.
const (
	MinYear = 1920
	MaxYear = 2099
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Key is the decoded form of a slug: an ILIKE title pattern and a year.
type Key struct {
	// TitlePattern joins the slug's title tokens with "%" so the stored
	// title matches with any separators in between, e.g.
	// "7g-rainbow-colony-2004" yields "7g%rainbow%colony".
	TitlePattern string
	Year         int
}

// Generate builds the canonical slug for a title and year.
func Generate(title string, year int) string {
	s := nonAlphanumeric.ReplaceAllString(strings.ToLower(title), "-")
	s = strings.Trim(s, "-")
	return s + "-" + strconv.Itoa(year)
}

// Parse decodes a slug back into a title pattern and year.
// It returns false for anything that cannot name a movie: fewer than two
// components, or a final component that is not exactly four ASCII digits
// in [MinYear, MaxYear]. The length check matters on its own; a stray
// short numeric fragment like "99" must not pass as a year.
func Parse(s string) (Key, bool) {
	parts := strings.Split(s, "-")
	if len(parts) < 2 {
		return Key{}, false
	}

	yearStr := parts[len(parts)-1]
	if len(yearStr) != 4 || !isDigits(yearStr) {
		return Key{}, false
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < MinYear || year > MaxYear {
		return Key{}, false
	}

	titleParts := parts[:len(parts)-1]
	if len(titleParts) == 0 {
		return Key{}, false
	}

	return Key{
		TitlePattern: strings.Join(titleParts, "%"),
		Year:         year,
	}, true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
