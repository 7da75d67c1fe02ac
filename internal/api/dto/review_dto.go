package dto

import (
	"time"

	"github.com/spec-kit/movie-service/internal/domain"
	"github.com/spec-kit/movie-service/internal/valid"
)

// ReviewIDParams constrains routes with a :reviewId path segment.
var ReviewIDParams = valid.Object().
	Field("reviewId", valid.Int().Min(1))

// CreateReviewBody constrains POST /movies/:movieId/reviews.
var CreateReviewBody = valid.Object().
	Field("title", valid.String().MinLen(1).MaxLen(100)).
	Field("content", valid.String().MinLen(1).MaxLen(2000)).
	Field("rating", valid.Int().Min(1).Max(5))

// EditReviewBody constrains PATCH /reviews/:reviewId. Every field is
// optional; absent fields keep their stored value.
var EditReviewBody = valid.Object().
	Field("title", valid.String().MinLen(1).MaxLen(100).Optional()).
	Field("content", valid.String().MinLen(1).MaxLen(2000).Optional()).
	Field("rating", valid.Int().Min(1).Max(5).Optional())

// ReviewOutput is the wire form of a review.
type ReviewOutput struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	MovieID   int64     `json:"movieId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Rating    int64     `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateReviewOutput is the POST /movies/:movieId/reviews response body.
type CreateReviewOutput struct {
	ReviewID int64 `json:"reviewId"`
}

// NewReviewOutput maps a domain review.
func NewReviewOutput(r domain.Review) ReviewOutput {
	return ReviewOutput{
		ID:        r.ID,
		UserID:    r.UserID,
		MovieID:   r.MovieID,
		Title:     r.Title,
		Content:   r.Content,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// NewReviewOutputs maps a page of domain reviews.
func NewReviewOutputs(reviews []domain.Review) []ReviewOutput {
	out := make([]ReviewOutput, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, NewReviewOutput(r))
	}
	return out
}
