package handlers

import (
	httpapi "github.com/spec-kit/movie-service/internal/api/http"
	"github.com/spec-kit/movie-service/internal/api/dto"
	"github.com/spec-kit/movie-service/internal/service"
)

// ReviewsHandler exposes review authoring and browsing.
type ReviewsHandler struct {
	reviews *service.ReviewService
}

// NewReviewsHandler constructs the handler.
func NewReviewsHandler(reviews *service.ReviewService) *ReviewsHandler {
	return &ReviewsHandler{reviews: reviews}
}

// ByMovie handles GET /movies/:movieId/reviews.
func (h *ReviewsHandler) ByMovie(req *httpapi.Request) (*httpapi.Result, error) {
	skip, take := pagination(req.Query())

	reviews, err := h.reviews.ReviewsByMovieID(req.Context(), req.Params().Int("movieId"), skip, take)
	if err != nil {
		return nil, err
	}
	return httpapi.OK(dto.NewReviewOutputs(reviews)), nil
}

// Write handles POST /movies/:movieId/reviews.
func (h *ReviewsHandler) Write(req *httpapi.Request) (*httpapi.Result, error) {
	body := req.Body()

	reviewID, err := h.reviews.Write(req.Context(),
		req.UserID(),
		req.Params().Int("movieId"),
		body.String("title"),
		body.String("content"),
		body.Int("rating"),
	)
	if err != nil {
		return nil, err
	}
	return httpapi.Created(dto.CreateReviewOutput{ReviewID: reviewID}), nil
}

// Edit handles PATCH /reviews/:reviewId.
func (h *ReviewsHandler) Edit(req *httpapi.Request) (*httpapi.Result, error) {
	body := req.Body()

	var title, content *string
	var rating *int64
	if body.Has("title") {
		v := body.String("title")
		title = &v
	}
	if body.Has("content") {
		v := body.String("content")
		content = &v
	}
	if body.Has("rating") {
		v := body.Int("rating")
		rating = &v
	}

	err := h.reviews.Edit(req.Context(), req.UserID(), req.Params().Int("reviewId"), title, content, rating)
	if err != nil {
		return nil, err
	}
	return httpapi.NoContent(), nil
}

// Remove handles DELETE /reviews/:reviewId.
func (h *ReviewsHandler) Remove(req *httpapi.Request) (*httpapi.Result, error) {
	if err := h.reviews.Remove(req.Context(), req.UserID(), req.Params().Int("reviewId")); err != nil {
		return nil, err
	}
	return httpapi.NoContent(), nil
}

// Detail handles GET /reviews/:reviewId.
func (h *ReviewsHandler) Detail(req *httpapi.Request) (*httpapi.Result, error) {
	review, err := h.reviews.ReviewDetail(req.Context(), req.Params().Int("reviewId"))
	if err != nil {
		return nil, err
	}
	return httpapi.OK(dto.NewReviewOutput(*review)), nil
}

// Mine handles GET /users/me/reviews.
func (h *ReviewsHandler) Mine(req *httpapi.Request) (*httpapi.Result, error) {
	skip, take := pagination(req.Query())

	reviews, err := h.reviews.ReviewsByUserID(req.Context(), req.UserID(), skip, take)
	if err != nil {
		return nil, err
	}
	return httpapi.OK(dto.NewReviewOutputs(reviews)), nil
}
