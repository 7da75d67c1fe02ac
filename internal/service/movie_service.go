package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/movie-service/internal/domain"
	"github.com/spec-kit/movie-service/internal/events"
	"github.com/spec-kit/movie-service/internal/repository"
)

// MovieService serves the catalog and per-user movie state.
type MovieService struct {
	movies     repository.MovieRepository
	activity   repository.MovieActivityRepository
	dispatcher events.Dispatcher
}

// NewMovieService builds the service.
func NewMovieService(movies repository.MovieRepository, activity repository.MovieActivityRepository, dispatcher events.Dispatcher) *MovieService {
	return &MovieService{movies: movies, activity: activity, dispatcher: dispatcher}
}

// Movies returns a catalog page.
func (s *MovieService) Movies(ctx context.Context, skip, take int64) ([]domain.Movie, error) {
	return s.movies.List(ctx, skip, take)
}

// MovieDetail returns a movie with viewer flags. A view by an authenticated
// user emits a MovieViewed event, which records the view history.
func (s *MovieService) MovieDetail(ctx context.Context, viewerID, movieID int64) (*domain.MovieDetail, error) {
	movie, err := s.movies.GetByID(ctx, movieID)
	if err != nil {
		return nil, err
	}

	detail := &domain.MovieDetail{Movie: *movie}
	if viewerID != 0 {
		if detail.Liked, err = s.activity.IsLiked(ctx, viewerID, movieID); err != nil {
			return nil, err
		}
		if detail.Favorited, err = s.activity.IsFavorited(ctx, viewerID, movieID); err != nil {
			return nil, err
		}
		if err := s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventMovieViewed,
			UserID:    viewerID,
			MovieID:   movieID,
			Timestamp: time.Now(),
		}); err != nil {
			return nil, err
		}
	}
	return detail, nil
}

// ToggleLike sets or clears a like.
func (s *MovieService) ToggleLike(ctx context.Context, userID, movieID int64, liked bool) error {
	if _, err := s.movies.GetByID(ctx, movieID); err != nil {
		return err
	}
	return s.activity.SetLike(ctx, userID, movieID, liked)
}

// ToggleFavorite sets or clears a favorite.
func (s *MovieService) ToggleFavorite(ctx context.Context, userID, movieID int64, favorited bool) error {
	if _, err := s.movies.GetByID(ctx, movieID); err != nil {
		return err
	}
	return s.activity.SetFavorite(ctx, userID, movieID, favorited)
}

// DeleteFavorite removes a favorite entry.
func (s *MovieService) DeleteFavorite(ctx context.Context, userID, movieID int64) error {
	return s.activity.DeleteFavorite(ctx, userID, movieID)
}

// DeleteHistory removes the user's view record for a movie.
func (s *MovieService) DeleteHistory(ctx context.Context, userID, movieID int64) error {
	return s.activity.DeleteHistory(ctx, userID, movieID)
}

// LikedMovies returns the page of movies the user liked.
func (s *MovieService) LikedMovies(ctx context.Context, userID, skip, take int64) ([]domain.Movie, error) {
	return s.movies.ListLikedBy(ctx, userID, skip, take)
}

// FavoriteMovies returns the page of movies the user favorited.
func (s *MovieService) FavoriteMovies(ctx context.Context, userID, skip, take int64) ([]domain.Movie, error) {
	return s.movies.ListFavoritedBy(ctx, userID, skip, take)
}

// Histories returns the page of movies the user recently viewed.
func (s *MovieService) Histories(ctx context.Context, userID, skip, take int64) ([]domain.Movie, error) {
	return s.movies.ListViewedBy(ctx, userID, skip, take)
}
