package view

import (
	"strings"
	"testing"

	"github.com/gmorais/marquee/internal/tmdb"
	tuitheme "github.com/gmorais/marquee/internal/tui/theme"
)

func score(f float64) *float64 { return &f }

func TestRenderMovieLine_ContainsTitleYearAndRating(t *testing.T) {
	th := tuitheme.Default()
	line := RenderMovieLine(MovieLineParams{
		Movie: tmdb.Movie{
			Title:       "Arrival",
			ReleaseDate: "2016-11-11",
			VoteAverage: score(7.6),
		},
		Genres: []string{"Science Fiction", "Drama"},
		Width:  100,
	}, th)

	plain := stripANSIText(line)
	for _, want := range []string{"Arrival (2016)", "[7.6]", "Science Fiction, Drama"} {
		if !strings.Contains(plain, want) {
			t.Fatalf("expected %q in line: %q", want, plain)
		}
	}
	if !strings.HasPrefix(plain, "    ") {
		t.Fatalf("inactive line must not carry a cursor marker: %q", plain)
	}
}

func TestRenderMovieLine_ActiveCursorMarker(t *testing.T) {
	th := tuitheme.Default()
	line := RenderMovieLine(MovieLineParams{
		Movie:  tmdb.Movie{Title: "Dune"},
		Active: true,
		Width:  60,
	}, th)
	if !strings.Contains(stripANSIText(line), "> ") {
		t.Fatalf("expected cursor marker: %q", line)
	}
}

func TestRenderMovieLine_MissingFieldsRenderPlaceholders(t *testing.T) {
	th := tuitheme.Default()
	line := RenderMovieLine(MovieLineParams{
		Movie: tmdb.Movie{},
		Width: 60,
	}, th)
	plain := stripANSIText(line)
	if !strings.Contains(plain, "(untitled) (N/A)") {
		t.Fatalf("expected placeholders: %q", plain)
	}
	if !strings.Contains(plain, "[N/A]") {
		t.Fatalf("expected N/A rating: %q", plain)
	}
}

func TestRenderOverviewLine_TruncatesLongSynopsis(t *testing.T) {
	th := tuitheme.Default()
	line := RenderOverviewLine(tmdb.Movie{Overview: strings.Repeat("x", 300)}, 400, th)
	plain := strings.TrimSpace(stripANSIText(line))
	if len(plain) != 123 || !strings.HasSuffix(plain, "...") {
		t.Fatalf("expected card-limit truncation, got %d chars: %q", len(plain), plain)
	}
}

func TestRenderOverviewLine_EmptyOverview(t *testing.T) {
	th := tuitheme.Default()
	if line := RenderOverviewLine(tmdb.Movie{}, 80, th); line != "" {
		t.Fatalf("expected empty line, got %q", line)
	}
}

func TestGenreNames_UnknownIDsDegrade(t *testing.T) {
	table := map[int]string{28: "Action", 35: "Comedy"}
	got := GenreNames([]int{28, 999, 35}, table)
	if len(got) != 3 || got[0] != "Action" || got[1] != "Unknown" || got[2] != "Comedy" {
		t.Fatalf("unexpected names: %v", got)
	}
}

func TestGenreNames_NilTable(t *testing.T) {
	if got := GenreNames([]int{28}, nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
