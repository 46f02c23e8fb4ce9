// Package detail assembles the per-title detail view from the four
// sub-resources the metadata service exposes separately.
package detail

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/gmorais/marquee/internal/format"
	"github.com/gmorais/marquee/internal/tmdb"
)

const (
	// MaxReviews bounds how many reviews the detail panel shows.
	MaxReviews = 2
	// MaxSimilar bounds how many similar titles the detail panel shows.
	MaxSimilar = 6
)

// Service is the slice of the metadata client the aggregator needs.
type Service interface {
	MovieDetails(ctx context.Context, id int64) (tmdb.MovieDetails, error)
	MovieVideos(ctx context.Context, id int64) ([]tmdb.Video, error)
	MovieReviews(ctx context.Context, id int64) ([]tmdb.Review, error)
	SimilarMovies(ctx context.Context, id int64) ([]tmdb.Movie, error)
}

// Bundle is everything the detail panel renders for one title.
type Bundle struct {
	Movie   tmdb.MovieDetails
	Trailer *tmdb.Video
	Reviews []tmdb.Review
	Similar []tmdb.Movie
}

type Aggregator struct {
	service Service
}

func NewAggregator(service Service) *Aggregator {
	return &Aggregator{service: service}
}

// Fetch loads the four sub-resources concurrently and merges them into a
// Bundle. All or nothing: if any fetch fails the whole call fails, and the
// first error cancels the siblings through the group context.
func (a *Aggregator) Fetch(ctx context.Context, id int64) (Bundle, error) {
	var (
		movie   tmdb.MovieDetails
		videos  []tmdb.Video
		reviews []tmdb.Review
		similar []tmdb.Movie
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		movie, err = a.service.MovieDetails(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		videos, err = a.service.MovieVideos(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		reviews, err = a.service.MovieReviews(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		similar, err = a.service.SimilarMovies(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return Bundle{}, err
	}

	bundle := Bundle{
		Movie:   movie,
		Trailer: pickTrailer(videos),
		Reviews: trimReviews(reviews),
		Similar: similar,
	}
	if len(bundle.Similar) > MaxSimilar {
		bundle.Similar = bundle.Similar[:MaxSimilar]
	}
	return bundle, nil
}

// pickTrailer returns the first official trailer hosted on YouTube, or nil
// when the title has none.
func pickTrailer(videos []tmdb.Video) *tmdb.Video {
	for i := range videos {
		v := videos[i]
		if strings.EqualFold(v.Site, "YouTube") && strings.EqualFold(v.Type, "Trailer") {
			return &videos[i]
		}
	}
	return nil
}

func trimReviews(reviews []tmdb.Review) []tmdb.Review {
	if len(reviews) > MaxReviews {
		reviews = reviews[:MaxReviews]
	}
	out := make([]tmdb.Review, len(reviews))
	for i, r := range reviews {
		r.Content = format.Truncate(r.Content, format.ReviewLimit)
		out[i] = r
	}
	return out
}
