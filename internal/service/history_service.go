package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/movie-service/internal/events"
	"github.com/spec-kit/movie-service/internal/repository"
)

// HistoryService materializes MovieViewed events into view-history rows.
type HistoryService struct {
	dispatcher events.Dispatcher
	activity   repository.MovieActivityRepository
	logger     *zap.Logger
}

// NewHistoryService creates the service.
func NewHistoryService(dispatcher events.Dispatcher, activity repository.MovieActivityRepository, logger *zap.Logger) *HistoryService {
	return &HistoryService{dispatcher: dispatcher, activity: activity, logger: logger}
}

// RegisterHandlers subscribes to events.
func (h *HistoryService) RegisterHandlers() {
	if h.dispatcher == nil {
		return
	}
	h.dispatcher.Subscribe(events.EventMovieViewed, h.handleMovieViewed)
}

func (h *HistoryService) handleMovieViewed(ctx context.Context, event events.Event) error {
	if err := h.activity.RecordView(ctx, event.UserID, event.MovieID); err != nil {
		h.logger.Error("record view history",
			zap.Int64("user_id", event.UserID),
			zap.Int64("movie_id", event.MovieID),
			zap.Error(err))
		return err
	}
	return nil
}
