package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenres_ParsesTable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/genre/movie/list" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("api_key") != "k" {
			t.Fatalf("missing api_key query: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"genres":[{"id":28,"name":"Action"},{"id":35,"name":"Comedy"}]}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "k", ts.Client())
	table, err := c.Genres(context.Background())
	if err != nil {
		t.Fatalf("Genres returned error: %v", err)
	}
	if len(table) != 2 || table[28] != "Action" || table[35] != "Comedy" {
		t.Fatalf("unexpected table: %+v", table)
	}
}

func TestDiscoverMovies_SendsPageAndParsesResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/discover/movie" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("page") != "3" {
			t.Fatalf("unexpected page query: %s", r.URL.RawQuery)
		}
		if r.URL.Query().Get("sort_by") == "" {
			t.Fatalf("expected sort_by query, got %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":3,"total_pages":10,"results":[{"id":1,"title":"First","release_date":"2026-01-01","genre_ids":[28],"vote_average":7.5,"overview":"A movie."}]}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "k", ts.Client())
	page, err := c.DiscoverMovies(context.Background(), 3)
	if err != nil {
		t.Fatalf("DiscoverMovies returned error: %v", err)
	}

	if page.Page != 3 || page.TotalPages != 10 {
		t.Fatalf("unexpected paging fields: %+v", page)
	}
	if len(page.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(page.Results))
	}
	movie := page.Results[0]
	if movie.Title != "First" {
		t.Fatalf("unexpected title: %s", movie.Title)
	}
	if movie.VoteAverage == nil || *movie.VoteAverage != 7.5 {
		t.Fatalf("unexpected vote average: %+v", movie.VoteAverage)
	}
}

func TestDiscoverMovies_MissingVoteAverageStaysNil(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":1,"total_pages":1,"results":[{"id":2,"title":"Unrated"}]}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "k", ts.Client())
	page, err := c.DiscoverMovies(context.Background(), 1)
	if err != nil {
		t.Fatalf("DiscoverMovies returned error: %v", err)
	}
	if page.Results[0].VoteAverage != nil {
		t.Fatalf("expected nil vote average, got %v", *page.Results[0].VoteAverage)
	}
}

func TestSearchMovies_SendsQuery(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("query") != "dune" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		if r.URL.Query().Get("page") != "1" {
			t.Fatalf("unexpected page: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":1,"total_pages":1,"results":[]}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "k", ts.Client())
	page, err := c.SearchMovies(context.Background(), "dune", 1)
	if err != nil {
		t.Fatalf("SearchMovies returned error: %v", err)
	}
	if len(page.Results) != 0 {
		t.Fatalf("expected empty results, got %d", len(page.Results))
	}
}

func TestMovieDetails_ParsesResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/42" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":42,"title":"Answer","runtime":120,"tagline":"So long","genres":[{"id":878,"name":"Science Fiction"}]}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "k", ts.Client())
	details, err := c.MovieDetails(context.Background(), 42)
	if err != nil {
		t.Fatalf("MovieDetails returned error: %v", err)
	}
	if details.Title != "Answer" || details.Runtime != 120 {
		t.Fatalf("unexpected details: %+v", details)
	}
	if len(details.Genres) != 1 || details.Genres[0].Name != "Science Fiction" {
		t.Fatalf("unexpected genres: %+v", details.Genres)
	}
}

func TestMovieVideos_ParsesWrappedResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/42/videos" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"key":"abc","name":"Official Trailer","site":"YouTube","type":"Trailer"}]}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "k", ts.Client())
	videos, err := c.MovieVideos(context.Background(), 42)
	if err != nil {
		t.Fatalf("MovieVideos returned error: %v", err)
	}
	if len(videos) != 1 || videos[0].Key != "abc" {
		t.Fatalf("unexpected videos: %+v", videos)
	}
}

func TestMovieReviews_ParsesWrappedResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/42/reviews" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"author":"ana","content":"Great."}]}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "k", ts.Client())
	reviews, err := c.MovieReviews(context.Background(), 42)
	if err != nil {
		t.Fatalf("MovieReviews returned error: %v", err)
	}
	if len(reviews) != 1 || reviews[0].Author != "ana" {
		t.Fatalf("unexpected reviews: %+v", reviews)
	}
}

func TestGet_NonSuccessStatusReturnsRequestError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status_message":"Invalid API key"}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "bad", ts.Client())
	_, err := c.DiscoverMovies(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error for 401 response")
	}

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %T: %v", err, err)
	}
	if reqErr.Status != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", reqErr.Status)
	}
	if !strings.Contains(reqErr.Body, "Invalid API key") {
		t.Fatalf("unexpected body: %s", reqErr.Body)
	}
}

func TestGet_MalformedPayload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "k", ts.Client())
	_, err := c.DiscoverMovies(context.Background(), 1)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if !strings.Contains(err.Error(), "decode") {
		t.Fatalf("unexpected error: %v", err)
	}
}
