package dto

import (
	"time"

	"github.com/spec-kit/movie-service/internal/domain"
	"github.com/spec-kit/movie-service/internal/valid"
)

// Pagination defaults applied when the query omits skip/take.
const (
	DefaultSkip = 0
	DefaultTake = 20
)

// PaginationQuery constrains list endpoints. Both fields are optional; a
// route with an absent query therefore validates cleanly.
var PaginationQuery = valid.Object().
	Field("skip", valid.Int().Min(0).Optional()).
	Field("take", valid.Int().Min(1).Max(100).Optional())

// MovieIDParams constrains routes with a :movieId path segment.
var MovieIDParams = valid.Object().
	Field("movieId", valid.Int().Min(1))

// ToggleLikeBody constrains POST /movies/:movieId/like.
var ToggleLikeBody = valid.Object().
	Field("like", valid.Bool())

// ToggleFavoriteBody constrains POST /movies/:movieId/favorite.
var ToggleFavoriteBody = valid.Object().
	Field("favorite", valid.Bool())

// MovieOutput is the wire form of a catalog entry.
type MovieOutput struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Overview    string     `json:"overview"`
	PosterURL   string     `json:"posterUrl"`
	ReleaseDate *time.Time `json:"releaseDate,omitempty"`
	LikeCount   int64      `json:"likeCount"`
}

// MovieDetailOutput adds viewer-dependent flags.
type MovieDetailOutput struct {
	MovieOutput
	Liked     bool `json:"liked"`
	Favorited bool `json:"favorited"`
}

// NewMovieOutput maps a domain movie.
func NewMovieOutput(m domain.Movie) MovieOutput {
	return MovieOutput{
		ID:          m.ID,
		Title:       m.Title,
		Overview:    m.Overview,
		PosterURL:   m.PosterURL,
		ReleaseDate: m.ReleaseDate,
		LikeCount:   m.LikeCount,
	}
}

// NewMovieOutputs maps a page of domain movies.
func NewMovieOutputs(movies []domain.Movie) []MovieOutput {
	out := make([]MovieOutput, 0, len(movies))
	for _, m := range movies {
		out = append(out, NewMovieOutput(m))
	}
	return out
}

// NewMovieDetailOutput maps a domain movie detail.
func NewMovieDetailOutput(d domain.MovieDetail) MovieDetailOutput {
	return MovieDetailOutput{
		MovieOutput: NewMovieOutput(d.Movie),
		Liked:       d.Liked,
		Favorited:   d.Favorited,
	}
}
