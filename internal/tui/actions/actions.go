// Package actions defines the message types and background commands the
// model dispatches. Every fetch carries enough identity (feed request or
// movie id) for the model to discard results that resolve after the state
// they were meant for is gone.
package actions

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gmorais/marquee/internal/detail"
	"github.com/gmorais/marquee/internal/feed"
	"github.com/gmorais/marquee/internal/tmdb"
)

const fetchTimeout = 10 * time.Second

// DebounceInterval is how long typing in the search box must pause before a
// query is committed.
const DebounceInterval = 300 * time.Millisecond

type GenresLoadedMsg struct {
	Table map[int]string
}

type GenresErrorMsg struct {
	Err error
}

type PageLoadedMsg struct {
	Request feed.Request
	Page    tmdb.Page
}

type PageErrorMsg struct {
	Request feed.Request
	Err     error
}

type DetailLoadedMsg struct {
	MovieID int64
	Bundle  detail.Bundle
}

type DetailErrorMsg struct {
	MovieID int64
	Err     error
}

type SearchDebounceMsg struct {
	Seq int
}

type PosterLoadedMsg struct {
	MovieID int64
	Raw     string
}

type PosterErrorMsg struct {
	MovieID int64
	Err     error
}

type StatusExpiredMsg struct {
	ID int
}

func LoadGenresCmd(client *tmdb.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		table, err := client.Genres(ctx)
		if err != nil {
			return GenresErrorMsg{Err: err}
		}
		return GenresLoadedMsg{Table: table}
	}
}

func FetchPageCmd(source feed.Source, req feed.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		page, err := source.FetchPage(ctx, req.Query, req.Page)
		if err != nil {
			return PageErrorMsg{Request: req, Err: err}
		}
		return PageLoadedMsg{Request: req, Page: page}
	}
}

func FetchDetailCmd(aggregator *detail.Aggregator, movieID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		bundle, err := aggregator.Fetch(ctx, movieID)
		if err != nil {
			return DetailErrorMsg{MovieID: movieID, Err: err}
		}
		return DetailLoadedMsg{MovieID: movieID, Bundle: bundle}
	}
}

// DebounceCmd fires after the debounce interval carrying the sequence number
// of the keystroke that scheduled it. The model commits the query only when
// the sequence still matches, so earlier timers are no-ops.
func DebounceCmd(seq int) tea.Cmd {
	return tea.Tick(DebounceInterval, func(time.Time) tea.Msg {
		return SearchDebounceMsg{Seq: seq}
	})
}

func LoadPosterCmd(movieID int64, imageURL string, width int, renderFn func(string, int) (string, error)) tea.Cmd {
	return func() tea.Msg {
		raw, err := renderFn(imageURL, width)
		if err != nil {
			return PosterErrorMsg{MovieID: movieID, Err: err}
		}
		return PosterLoadedMsg{MovieID: movieID, Raw: raw}
	}
}

func ClearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return StatusExpiredMsg{ID: id}
	})
}
