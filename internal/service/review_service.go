package service

import (
	"context"

	"github.com/spec-kit/movie-service/internal/domain"
	"github.com/spec-kit/movie-service/internal/repository"
	apperrors "github.com/spec-kit/movie-service/pkg/util"
)

// ReviewService handles review authoring. Edits and removals are author-only.
type ReviewService struct {
	reviews repository.ReviewRepository
	movies  repository.MovieRepository
}

// NewReviewService builds the service.
func NewReviewService(reviews repository.ReviewRepository, movies repository.MovieRepository) *ReviewService {
	return &ReviewService{reviews: reviews, movies: movies}
}

// ReviewsByMovieID returns a page of reviews for the movie.
func (s *ReviewService) ReviewsByMovieID(ctx context.Context, movieID, skip, take int64) ([]domain.Review, error) {
	return s.reviews.ListByMovieID(ctx, movieID, skip, take)
}

// ReviewDetail returns a single review.
func (s *ReviewService) ReviewDetail(ctx context.Context, reviewID int64) (*domain.Review, error) {
	return s.reviews.GetByID(ctx, reviewID)
}

// Write creates a review on a movie.
func (s *ReviewService) Write(ctx context.Context, userID, movieID int64, title, content string, rating int64) (int64, error) {
	if _, err := s.movies.GetByID(ctx, movieID); err != nil {
		return 0, err
	}

	review := &domain.Review{
		UserID:  userID,
		MovieID: movieID,
		Title:   title,
		Content: content,
		Rating:  rating,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return 0, err
	}
	return review.ID, nil
}

// Edit updates the caller's review; absent fields keep their stored value.
func (s *ReviewService) Edit(ctx context.Context, userID, reviewID int64, title, content *string, rating *int64) error {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != userID {
		return apperrors.NewUnauthorized("not the review author")
	}

	if title != nil {
		review.Title = *title
	}
	if content != nil {
		review.Content = *content
	}
	if rating != nil {
		review.Rating = *rating
	}
	return s.reviews.Update(ctx, review)
}

// Remove deletes the caller's review.
func (s *ReviewService) Remove(ctx context.Context, userID, reviewID int64) error {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != userID {
		return apperrors.NewUnauthorized("not the review author")
	}
	return s.reviews.Delete(ctx, review.ID)
}

// ReviewsByUserID returns a page of the user's reviews.
func (s *ReviewService) ReviewsByUserID(ctx context.Context, userID, skip, take int64) ([]domain.Review, error) {
	return s.reviews.ListByUserID(ctx, userID, skip, take)
}
