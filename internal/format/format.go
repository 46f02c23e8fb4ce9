// Package format holds the presentation rules shared between list cards and
// the detail panel, so the two render paths cannot drift apart.
package format

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// OverviewLimit bounds synopsis text on list cards.
	OverviewLimit = 120
	// ReviewLimit bounds review bodies on the detail panel.
	ReviewLimit = 200
)

// Truncate shortens s to at most limit code points, trims trailing
// whitespace, and appends "...", but only when s actually exceeds the limit.
// Operating on runes keeps multi-byte characters intact.
func Truncate(s string, limit int) string {
	if limit < 1 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimRight(string(runes[:limit]), " \t\n") + "..."
}

// Rating renders a score to one decimal place. A missing or non-numeric
// score renders as "N/A".
func Rating(score *float64) string {
	if score == nil || math.IsNaN(*score) {
		return "N/A"
	}
	return strconv.FormatFloat(*score, 'f', 1, 64)
}

// Year extracts the year component of a release date. Missing and
// unparsable dates both render as "N/A": the two call sites in the app
// share one policy.
func Year(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return "N/A"
	}
	parsed, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return "N/A"
	}
	return strconv.Itoa(parsed.Year())
}
