package slug

import "testing"

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		title string
		year  int
		want  string
	}{
		{
			name:  "simple title",
			title: "Baasha",
			year:  1995,
			want:  "baasha-1995",
		},
		{
			name:  "spaces become hyphens",
			title: "7G Rainbow Colony",
			year:  2004,
			want:  "7g-rainbow-colony-2004",
		},
		{
			name:  "punctuation runs collapse",
			title: "Anbe Sivam!!",
			year:  2003,
			want:  "anbe-sivam-2003",
		},
		{
			name:  "leading and trailing punctuation trimmed",
			title: "...I...",
			year:  2015,
			want:  "i-2015",
		},
		{
			name:  "mixed separators collapse to one hyphen",
			title: "Vaaranam - Aayiram",
			year:  2008,
			want:  "vaaranam-aayiram-2008",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.title, tt.year); got != tt.want {
				t.Errorf("Generate(%q, %d) = %q, want %q", tt.title, tt.year, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		want    Key
		wantOK  bool
	}{
		{
			name:   "simple slug",
			slug:   "baasha-1995",
			want:   Key{TitlePattern: "baasha", Year: 1995},
			wantOK: true,
		},
		{
			name:   "multi-token title",
			slug:   "7g-rainbow-colony-2004",
			want:   Key{TitlePattern: "7g%rainbow%colony", Year: 2004},
			wantOK: true,
		},
		{
			name:   "title ending in a number that is not a year",
			slug:   "baasha-2-1995",
			want:   Key{TitlePattern: "baasha%2", Year: 1995},
			wantOK: true,
		},
		{
			name: "single token without year",
			slug: "x",
		},
		{
			name: "two-digit year rejected by length check",
			slug: "movie-99",
		},
		{
			name: "year above range",
			slug: "movie-2150",
		},
		{
			name: "year below range",
			slug: "movie-1919",
		},
		{
			name: "year with non-digit characters",
			slug: "movie-19a5",
		},
		{
			name: "signed number is not four digits",
			slug: "movie--995",
			// splits to ["movie", "", "995"]; "995" fails the length check
		},
		{
			name: "empty string",
			slug: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.slug)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.slug, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.slug, got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	got, ok := Parse(Generate("Baasha", 1995))
	if !ok {
		t.Fatal("Parse(Generate(...)) failed")
	}
	want := Key{TitlePattern: "baasha", Year: 1995}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	// Re-slugging a slug's own title fragment reproduces the same slug.
	first := Generate("Padayappa", 1999)
	key, ok := Parse(first)
	if !ok {
		t.Fatal("Parse failed")
	}
	second := Generate(key.TitlePattern, key.Year)
	if second != first {
		t.Errorf("Generate not idempotent: %q then %q", first, second)
	}
}
