package actions

import (
	"context"
	"errors"
	"testing"

	"github.com/gmorais/marquee/internal/detail"
	"github.com/gmorais/marquee/internal/feed"
	"github.com/gmorais/marquee/internal/tmdb"
)

func TestFetchPageCmd_Success(t *testing.T) {
	var gotQuery string
	var gotPage int
	source := feed.SourceFunc(func(ctx context.Context, query string, page int) (tmdb.Page, error) {
		gotQuery, gotPage = query, page
		return tmdb.Page{Page: page, TotalPages: 3, Results: []tmdb.Movie{{ID: 1}}}, nil
	})
	req := feed.Request{Kind: feed.KindSearch, Generation: 2, Page: 2, Query: "dune"}

	msg := FetchPageCmd(source, req)()
	loaded, ok := msg.(PageLoadedMsg)
	if !ok {
		t.Fatalf("expected PageLoadedMsg, got %T", msg)
	}
	if gotQuery != "dune" || gotPage != 2 {
		t.Fatalf("source called with query=%q page=%d", gotQuery, gotPage)
	}
	if loaded.Request != req {
		t.Fatalf("request identity lost: %+v", loaded.Request)
	}
	if len(loaded.Page.Results) != 1 {
		t.Fatalf("unexpected page: %+v", loaded.Page)
	}
}

func TestFetchPageCmd_Error(t *testing.T) {
	source := feed.SourceFunc(func(ctx context.Context, query string, page int) (tmdb.Page, error) {
		return tmdb.Page{}, errors.New("offline")
	})
	req := feed.Request{Page: 1}

	msg := FetchPageCmd(source, req)()
	failed, ok := msg.(PageErrorMsg)
	if !ok {
		t.Fatalf("expected PageErrorMsg, got %T", msg)
	}
	if failed.Request != req || failed.Err == nil {
		t.Fatalf("unexpected error msg: %+v", failed)
	}
}

type stubDetailService struct {
	err error
}

func (s stubDetailService) MovieDetails(ctx context.Context, id int64) (tmdb.MovieDetails, error) {
	return tmdb.MovieDetails{ID: id, Title: "T"}, s.err
}

func (s stubDetailService) MovieVideos(ctx context.Context, id int64) ([]tmdb.Video, error) {
	return nil, nil
}

func (s stubDetailService) MovieReviews(ctx context.Context, id int64) ([]tmdb.Review, error) {
	return nil, nil
}

func (s stubDetailService) SimilarMovies(ctx context.Context, id int64) ([]tmdb.Movie, error) {
	return nil, nil
}

func TestFetchDetailCmd_CarriesMovieID(t *testing.T) {
	agg := detail.NewAggregator(stubDetailService{})

	msg := FetchDetailCmd(agg, 42)()
	loaded, ok := msg.(DetailLoadedMsg)
	if !ok {
		t.Fatalf("expected DetailLoadedMsg, got %T", msg)
	}
	if loaded.MovieID != 42 || loaded.Bundle.Movie.Title != "T" {
		t.Fatalf("unexpected msg: %+v", loaded)
	}
}

func TestFetchDetailCmd_Error(t *testing.T) {
	agg := detail.NewAggregator(stubDetailService{err: errors.New("boom")})

	msg := FetchDetailCmd(agg, 7)()
	failed, ok := msg.(DetailErrorMsg)
	if !ok {
		t.Fatalf("expected DetailErrorMsg, got %T", msg)
	}
	if failed.MovieID != 7 {
		t.Fatalf("unexpected movie id: %d", failed.MovieID)
	}
}

func TestLoadPosterCmd(t *testing.T) {
	msg := LoadPosterCmd(1, "https://img/p.jpg", 40, func(url string, width int) (string, error) {
		return "art", nil
	})()
	loaded, ok := msg.(PosterLoadedMsg)
	if !ok {
		t.Fatalf("expected PosterLoadedMsg, got %T", msg)
	}
	if loaded.Raw != "art" {
		t.Fatalf("unexpected raw: %q", loaded.Raw)
	}

	msg = LoadPosterCmd(1, "u", 40, func(string, int) (string, error) {
		return "", errors.New("no chafa")
	})()
	if _, ok := msg.(PosterErrorMsg); !ok {
		t.Fatalf("expected PosterErrorMsg, got %T", msg)
	}
}
