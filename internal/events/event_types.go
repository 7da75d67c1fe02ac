package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventMovieViewed   EventType = "movie_viewed"
	EventUserWithdrawn EventType = "user_withdrawn"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	UserID    int64     `json:"user_id"`
	MovieID   int64     `json:"movie_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
