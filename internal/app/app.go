// Package app wires configuration, the metadata client, and the TUI together.
package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gmorais/marquee/internal/config"
	"github.com/gmorais/marquee/internal/detail"
	"github.com/gmorais/marquee/internal/feed"
	"github.com/gmorais/marquee/internal/tmdb"
	"github.com/gmorais/marquee/internal/tui"
	"github.com/gmorais/marquee/internal/tui/actions"
	"github.com/gmorais/marquee/internal/tui/platform"
	"github.com/gmorais/marquee/internal/tui/view"
)

func Run() error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}

	client := tmdb.NewClient(cfg.APIBaseURL, cfg.APIKey, nil)
	program := tea.NewProgram(tui.NewModel(buildDeps(client)), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

func buildDeps(client *tmdb.Client) tui.Deps {
	return tui.Deps{
		BrowseSource: feed.SourceFunc(func(ctx context.Context, query string, page int) (tmdb.Page, error) {
			return client.DiscoverMovies(ctx, page)
		}),
		SearchSource: feed.SourceFunc(func(ctx context.Context, query string, page int) (tmdb.Page, error) {
			return client.SearchMovies(ctx, query, page)
		}),
		Aggregator:   detail.NewAggregator(client),
		LoadGenres:   actions.LoadGenresCmd(client),
		RenderPoster: view.RenderPosterPreview,
		OpenURL:      platform.OpenURLInBrowser,
		CopyURL:      platform.CopyURLToClipboard,
	}
}
