package view

import (
	"fmt"
	"strings"

	tuitheme "github.com/gmorais/marquee/internal/tui/theme"
)

func Toolbar(inDetail bool) string {
	if inDetail {
		return "j/k scroll | o trailer | y copy link | esc back | q quit"
	}
	return "j/k move | enter details | / search | esc browse | g/G top/bottom | ? help | q quit"
}

func HelpLines() []string {
	return []string{
		"j/k, up/down    move the cursor",
		"pgup/pgdown     jump a screen",
		"g / G           first / last loaded title",
		"/               focus the search box (300ms debounce)",
		"esc             blur search, or back to browsing",
		"enter           open details for the selected title",
		"o               open the trailer in a browser (details)",
		"y               copy the trailer link (details)",
		"?               toggle this help",
		"q, ctrl+c       quit",
	}
}

func Footer(mode string, shown, page int, totalPages int, totalKnown bool, query string, th tuitheme.Theme) string {
	pages := fmt.Sprintf("%d", page)
	if totalKnown {
		pages = fmt.Sprintf("%d/%d", page, totalPages)
	}
	parts := []string{
		th.MetaLabel.Render("mode") + " " + th.MetaValue.Render(mode),
		th.MetaLabel.Render("page") + " " + th.MetaValue.Render(pages),
		th.MetaValue.Render(fmt.Sprintf("%d shown", shown)),
	}
	if query != "" {
		parts = append(parts, th.MetaLabel.Render("query")+" "+th.MetaValue.Render(fmt.Sprintf("%q", query)))
	}
	return strings.Join(parts, " • ")
}

func Message(loading, hasWarning bool, status, warning string, th tuitheme.Theme) string {
	state := "idle"
	if loading {
		state = "loading"
	}
	if hasWarning {
		state = "warning"
	}
	main := "Ready"
	if status != "" {
		main = status
	} else if hasWarning {
		main = warning
	}
	stateLabel := th.StateIdle.Render("state")
	switch state {
	case "warning":
		stateLabel = th.StateWarn.Render("state")
	case "loading":
		stateLabel = th.StateLoad.Render("state")
	}
	return fmt.Sprintf("%s: %s | %s", stateLabel, state, th.MetaValue.Render(main))
}
