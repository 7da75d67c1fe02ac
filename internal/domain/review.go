package domain

import "time"

// Review is a user's review of a movie. Only the author may edit or remove it.
type Review struct {
	ID        int64
	UserID    int64
	MovieID   int64
	Title     string
	Content   string
	Rating    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
