package view

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gmorais/marquee/internal/format"
	"github.com/gmorais/marquee/internal/render"
	"github.com/gmorais/marquee/internal/tmdb"
	tuitheme "github.com/gmorais/marquee/internal/tui/theme"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

const maxGenresPerLine = 3

type MovieLineParams struct {
	Movie  tmdb.Movie
	Genres []string
	Active bool
	Width  int
}

// RenderMovieLine renders one list row: cursor marker, title with year,
// genre labels, and the rating pinned to the right edge.
func RenderMovieLine(p MovieLineParams, th tuitheme.Theme) string {
	cursorMarker := " "
	if p.Active {
		cursorMarker = ">"
	}
	prefix := fmt.Sprintf("  %s ", cursorMarker)

	rating := "[" + format.Rating(p.Movie.VoteAverage) + "]"
	title := strings.TrimSpace(p.Movie.Title)
	if title == "" {
		title = "(untitled)"
	}
	titleLabel := fmt.Sprintf("%s (%s)", title, format.Year(p.Movie.ReleaseDate))
	genreLabel := strings.Join(capGenres(p.Genres), ", ")

	available := p.Width - visibleLen(prefix) - 1 - visibleLen(rating)
	if available < 1 {
		available = 1
	}

	titleLabel = truncateRunes(titleLabel, available)
	styled := th.MovieTitle.Render(titleLabel)
	used := visibleLen(titleLabel)
	if genreLabel != "" && available-used > 4 {
		genreLabel = truncateRunes(genreLabel, available-used-2)
		styled += "  " + th.Genres.Render(genreLabel)
		used += 2 + visibleLen(genreLabel)
	}

	gap := p.Width - visibleLen(prefix) - used - visibleLen(rating)
	if gap < 1 {
		gap = 1
	}
	return th.RenderActiveLine(p.Active, prefix+styled+strings.Repeat(" ", gap)+th.Rating.Render(rating))
}

// RenderOverviewLine renders the synopsis row under a list entry, bounded by
// the card truncation limit.
func RenderOverviewLine(movie tmdb.Movie, width int, th tuitheme.Theme) string {
	overview := render.Flatten(movie.Overview)
	if overview == "" {
		return ""
	}
	overview = format.Truncate(overview, format.OverviewLimit)
	indent := "      "
	available := width - len(indent)
	if available < 1 {
		available = 1
	}
	return indent + th.Overview.Render(truncateRunes(overview, available))
}

// GenreNames maps genre ids to display names using the shared lookup table.
// Ids missing from a loaded table degrade to "Unknown"; with no table at all
// (the startup load failed) genre labels are omitted entirely.
func GenreNames(ids []int, table map[int]string) []string {
	if len(ids) == 0 || len(table) == 0 {
		return nil
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		name, ok := table[id]
		if !ok {
			name = "Unknown"
		}
		out = append(out, name)
	}
	return out
}

func capGenres(genres []string) []string {
	if len(genres) > maxGenresPerLine {
		return genres[:maxGenresPerLine]
	}
	return genres
}

func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(stripANSIText(s))
}

func stripANSIText(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}
