package handlers

import (
	httpapi "github.com/spec-kit/movie-service/internal/api/http"
	"github.com/spec-kit/movie-service/internal/api/dto"
	"github.com/spec-kit/movie-service/internal/service"
	"github.com/spec-kit/movie-service/internal/valid"
)

// MoviesHandler exposes the catalog and per-user movie state.
type MoviesHandler struct {
	movies *service.MovieService
}

// NewMoviesHandler constructs the handler.
func NewMoviesHandler(movies *service.MovieService) *MoviesHandler {
	return &MoviesHandler{movies: movies}
}

func pagination(q valid.Values) (int64, int64) {
	return q.IntOr("skip", dto.DefaultSkip), q.IntOr("take", dto.DefaultTake)
}

// Movies handles GET /movies.
func (h *MoviesHandler) Movies(req *httpapi.Request) (*httpapi.Result, error) {
	skip, take := pagination(req.Query())

	movies, err := h.movies.Movies(req.Context(), skip, take)
	if err != nil {
		return nil, err
	}
	return httpapi.OK(dto.NewMovieOutputs(movies)), nil
}

// Detail handles GET /movies/:movieId/detail. Authenticated views are
// recorded in the viewer's history.
func (h *MoviesHandler) Detail(req *httpapi.Request) (*httpapi.Result, error) {
	var viewerID int64
	if req.Authenticated() {
		viewerID = req.UserID()
	}

	detail, err := h.movies.MovieDetail(req.Context(), viewerID, req.Params().Int("movieId"))
	if err != nil {
		return nil, err
	}
	return httpapi.OK(dto.NewMovieDetailOutput(*detail)), nil
}

// ToggleLike handles POST /movies/:movieId/like.
func (h *MoviesHandler) ToggleLike(req *httpapi.Request) (*httpapi.Result, error) {
	err := h.movies.ToggleLike(req.Context(), req.UserID(), req.Params().Int("movieId"), req.Body().Bool("like"))
	if err != nil {
		return nil, err
	}
	return httpapi.NoContent(), nil
}

// ToggleFavorite handles POST /movies/:movieId/favorite.
func (h *MoviesHandler) ToggleFavorite(req *httpapi.Request) (*httpapi.Result, error) {
	err := h.movies.ToggleFavorite(req.Context(), req.UserID(), req.Params().Int("movieId"), req.Body().Bool("favorite"))
	if err != nil {
		return nil, err
	}
	return httpapi.NoContent(), nil
}

// DeleteFavorite handles DELETE /movies/:movieId/favorite.
func (h *MoviesHandler) DeleteFavorite(req *httpapi.Request) (*httpapi.Result, error) {
	if err := h.movies.DeleteFavorite(req.Context(), req.UserID(), req.Params().Int("movieId")); err != nil {
		return nil, err
	}
	return httpapi.NoContent(), nil
}

// DeleteHistory handles DELETE /movies/:movieId/histories.
func (h *MoviesHandler) DeleteHistory(req *httpapi.Request) (*httpapi.Result, error) {
	if err := h.movies.DeleteHistory(req.Context(), req.UserID(), req.Params().Int("movieId")); err != nil {
		return nil, err
	}
	return httpapi.NoContent(), nil
}

// Likes handles GET /movies/likes.
func (h *MoviesHandler) Likes(req *httpapi.Request) (*httpapi.Result, error) {
	skip, take := pagination(req.Query())

	movies, err := h.movies.LikedMovies(req.Context(), req.UserID(), skip, take)
	if err != nil {
		return nil, err
	}
	return httpapi.OK(dto.NewMovieOutputs(movies)), nil
}

// Favorites handles GET /movies/favorites.
func (h *MoviesHandler) Favorites(req *httpapi.Request) (*httpapi.Result, error) {
	skip, take := pagination(req.Query())

	movies, err := h.movies.FavoriteMovies(req.Context(), req.UserID(), skip, take)
	if err != nil {
		return nil, err
	}
	return httpapi.OK(dto.NewMovieOutputs(movies)), nil
}

// Histories handles GET /movies/histories.
func (h *MoviesHandler) Histories(req *httpapi.Request) (*httpapi.Result, error) {
	skip, take := pagination(req.Query())

	movies, err := h.movies.Histories(req.Context(), req.UserID(), skip, take)
	if err != nil {
		return nil, err
	}
	return httpapi.OK(dto.NewMovieOutputs(movies)), nil
}
