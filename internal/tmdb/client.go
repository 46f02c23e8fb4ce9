package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Movie is the subset of catalog fields required by the app. Values are
// immutable once decoded; the app never mutates a received Movie.
type Movie struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	PosterPath  string   `json:"poster_path"`
	ReleaseDate string   `json:"release_date"`
	GenreIDs    []int    `json:"genre_ids"`
	VoteAverage *float64 `json:"vote_average"`
	Overview    string   `json:"overview"`
}

// Page is one page of a paginated listing.
type Page struct {
	Page       int     `json:"page"`
	TotalPages int     `json:"total_pages"`
	Results    []Movie `json:"results"`
}

// MovieDetails carries the per-title fields only the detail endpoint returns.
type MovieDetails struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	PosterPath  string   `json:"poster_path"`
	ReleaseDate string   `json:"release_date"`
	VoteAverage *float64 `json:"vote_average"`
	Overview    string   `json:"overview"`
	Tagline     string   `json:"tagline"`
	Runtime     int      `json:"runtime"`
	Genres      []Genre  `json:"genres"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

type Review struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

// RequestError reports a non-success response from the metadata service.
type RequestError struct {
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("metadata service returned status %d: %s", e.Status, e.Body)
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    httpClient,
	}
}

// Genres fetches the category id -> display name table. Loaded once at
// startup and shared read-only between feed controllers.
func (c *Client) Genres(ctx context.Context) (map[int]string, error) {
	var payload struct {
		Genres []Genre `json:"genres"`
	}
	if err := c.get(ctx, "/genre/movie/list", nil, &payload, "genres"); err != nil {
		return nil, err
	}
	table := make(map[int]string, len(payload.Genres))
	for _, g := range payload.Genres {
		table[g.ID] = g.Name
	}
	return table, nil
}

// DiscoverMovies fetches one page of the time-ordered catalog listing.
func (c *Client) DiscoverMovies(ctx context.Context, page int) (Page, error) {
	if page < 1 {
		page = 1
	}
	q := make(url.Values)
	q.Set("sort_by", "primary_release_date.desc")
	q.Set("page", strconv.Itoa(page))

	var result Page
	if err := c.get(ctx, "/discover/movie", q, &result, "discover"); err != nil {
		return Page{}, err
	}
	return result, nil
}

// SearchMovies fetches one page of results for a text query.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (Page, error) {
	if page < 1 {
		page = 1
	}
	q := make(url.Values)
	q.Set("query", query)
	q.Set("page", strconv.Itoa(page))

	var result Page
	if err := c.get(ctx, "/search/movie", q, &result, "search"); err != nil {
		return Page{}, err
	}
	return result, nil
}

func (c *Client) MovieDetails(ctx context.Context, id int64) (MovieDetails, error) {
	var details MovieDetails
	if err := c.get(ctx, "/movie/"+strconv.FormatInt(id, 10), nil, &details, "movie details"); err != nil {
		return MovieDetails{}, err
	}
	return details, nil
}

func (c *Client) MovieVideos(ctx context.Context, id int64) ([]Video, error) {
	var payload struct {
		Results []Video `json:"results"`
	}
	if err := c.get(ctx, "/movie/"+strconv.FormatInt(id, 10)+"/videos", nil, &payload, "movie videos"); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

func (c *Client) MovieReviews(ctx context.Context, id int64) ([]Review, error) {
	var payload struct {
		Results []Review `json:"results"`
	}
	if err := c.get(ctx, "/movie/"+strconv.FormatInt(id, 10)+"/reviews", nil, &payload, "movie reviews"); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

func (c *Client) SimilarMovies(ctx context.Context, id int64) ([]Movie, error) {
	var payload Page
	if err := c.get(ctx, "/movie/"+strconv.FormatInt(id, 10)+"/similar", nil, &payload, "similar movies"); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any, resource string) error {
	if query == nil {
		query = make(url.Values)
	}
	query.Set("api_key", c.apiKey)

	fullURL := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", resource, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("fetch %s: %w", resource, &RequestError{
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(body)),
		})
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", resource, err)
	}
	return nil
}
