package view

import (
	"fmt"
	"strings"

	"github.com/gmorais/marquee/internal/detail"
	"github.com/gmorais/marquee/internal/format"
	"github.com/gmorais/marquee/internal/render"
	"github.com/gmorais/marquee/internal/tmdb"
	"github.com/gmorais/marquee/internal/tui/platform"
	tuitheme "github.com/gmorais/marquee/internal/tui/theme"
)

type PosterPreviewState struct {
	Enabled bool
	Loading bool
	Raw     string
	Err     string
}

// DetailLines renders the full detail panel for one title as a flat slice of
// lines the model can scroll through.
func DetailLines(bundle detail.Bundle, contentWidth, horizontalMargin int, preview PosterPreviewState, th tuitheme.Theme) []string {
	lines := detailMetaLines(bundle, contentWidth, th)
	lines = appendPosterPreview(lines, preview, contentWidth)
	lines = append(lines, detailBodyLines(bundle, contentWidth, th)...)
	return leftPadLines(lines, horizontalMargin)
}

func DetailMaxTop(linesLen, bodyHeight int) int {
	maxTop := linesLen - bodyHeight
	if maxTop < 0 {
		return 0
	}
	return maxTop
}

func RenderDetailLines(lines []string, top, maxLines int) string {
	if len(lines) == 0 {
		return ""
	}
	if top < 0 {
		top = 0
	}
	if top > len(lines)-1 {
		top = len(lines) - 1
	}
	end := len(lines)
	if maxLines > 0 && top+maxLines < end {
		end = top + maxLines
	}
	return strings.Join(lines[top:end], "\n") + "\n"
}

func detailMetaLines(bundle detail.Bundle, width int, th tuitheme.Theme) []string {
	movie := bundle.Movie
	title := strings.TrimSpace(movie.Title)
	if title == "" {
		title = "(untitled)"
	}

	lines := []string{th.MovieTitle.Render(truncateRunes(fmt.Sprintf("%s (%s)", title, format.Year(movie.ReleaseDate)), width))}
	if tagline := strings.TrimSpace(movie.Tagline); tagline != "" {
		lines = append(lines, th.Overview.Render(truncateRunes(tagline, width)))
	}
	lines = append(lines, "")

	meta := th.MetaLabel.Render("rating") + " " + th.Rating.Render(format.Rating(movie.VoteAverage))
	if movie.Runtime > 0 {
		meta += "  " + th.MetaLabel.Render("runtime") + " " + th.MetaValue.Render(fmt.Sprintf("%d min", movie.Runtime))
	}
	lines = append(lines, meta)

	if names := genreDisplayNames(movie.Genres); len(names) > 0 {
		lines = append(lines, th.MetaLabel.Render("genres")+" "+th.Genres.Render(strings.Join(names, ", ")))
	}
	return lines
}

func detailBodyLines(bundle detail.Bundle, width int, th tuitheme.Theme) []string {
	var lines []string

	if overview := render.Lines(bundle.Movie.Overview, width); len(overview) > 0 {
		lines = append(lines, "", th.Section.Render("Overview"))
		lines = append(lines, overview...)
	}

	lines = append(lines, "", th.Section.Render("Trailer"))
	if bundle.Trailer != nil {
		lines = append(lines, platform.TrailerURL(bundle.Trailer.Key))
	} else {
		lines = append(lines, th.Empty.Render("No trailer available"))
	}

	lines = append(lines, "", th.Section.Render("Reviews"))
	if len(bundle.Reviews) == 0 {
		lines = append(lines, th.Empty.Render("No reviews yet"))
	}
	for i, review := range bundle.Reviews {
		if i > 0 {
			lines = append(lines, "")
		}
		author := strings.TrimSpace(review.Author)
		if author == "" {
			author = "anonymous"
		}
		lines = append(lines, th.MetaValue.Render(author+":"))
		lines = append(lines, render.Lines(review.Content, width)...)
	}

	lines = append(lines, "", th.Section.Render("Similar"))
	if len(bundle.Similar) == 0 {
		lines = append(lines, th.Empty.Render("No similar titles"))
	}
	for _, movie := range bundle.Similar {
		lines = append(lines, similarLine(movie, width, th))
	}
	return lines
}

func similarLine(movie tmdb.Movie, width int, th tuitheme.Theme) string {
	title := strings.TrimSpace(movie.Title)
	if title == "" {
		title = "(untitled)"
	}
	label := fmt.Sprintf("%s (%s) [%s]", title, format.Year(movie.ReleaseDate), format.Rating(movie.VoteAverage))
	return th.MetaValue.Render(truncateRunes(label, width))
}

func genreDisplayNames(genres []tmdb.Genre) []string {
	out := make([]string, 0, len(genres))
	for _, g := range genres {
		if name := strings.TrimSpace(g.Name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func appendPosterPreview(lines []string, preview PosterPreviewState, contentWidth int) []string {
	if !preview.Enabled {
		return lines
	}
	previewLines := make([]string, 0, 3)
	if preview.Loading {
		previewLines = append(previewLines, "Loading poster...")
	}
	if len(previewLines) == 0 {
		if raw := strings.TrimSpace(preview.Raw); raw != "" {
			if ContainsKittyGraphicsEscape(preview.Raw) {
				previewLines = append(previewLines, strings.TrimRight(preview.Raw, "\r\n"))
			} else {
				split := strings.Split(strings.TrimRight(preview.Raw, "\r\n"), "\n")
				previewLines = centerLines(split, contentWidth)
			}
		}
	}
	if len(previewLines) == 0 {
		if errMsg := strings.TrimSpace(preview.Err); errMsg != "" {
			previewLines = append(previewLines, "Poster unavailable: "+errMsg)
		}
	}
	if len(previewLines) == 0 {
		return lines
	}
	out := make([]string, 0, len(lines)+len(previewLines)+1)
	out = append(out, lines...)
	out = append(out, "")
	out = append(out, previewLines...)
	return out
}

func leftPadLines(lines []string, padding int) []string {
	if padding <= 0 || len(lines) == 0 {
		return lines
	}
	prefix := strings.Repeat(" ", padding)
	out := make([]string, len(lines))
	for i, line := range lines {
		if ContainsKittyGraphicsEscape(line) {
			out[i] = line
			continue
		}
		out[i] = prefix + line
	}
	return out
}

func centerLines(lines []string, width int) []string {
	if width <= 0 || len(lines) == 0 {
		return lines
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		visible := visibleLen(line)
		if visible >= width {
			out[i] = line
			continue
		}
		pad := (width - visible) / 2
		if pad < 0 {
			pad = 0
		}
		out[i] = strings.Repeat(" ", pad) + line
	}
	return out
}
