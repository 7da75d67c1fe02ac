package domain

import "time"

// Movie is the catalog entry.
type Movie struct {
	ID           int64
	Title        string
	Overview     string
	PosterURL    string
	ReleaseDate  *time.Time
	LikeCount    int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MovieDetail is a movie plus viewer-dependent flags.
type MovieDetail struct {
	Movie
	Liked     bool
	Favorited bool
}

// MovieHistory records that a user viewed a movie's detail page.
type MovieHistory struct {
	ID       int64
	UserID   int64
	MovieID  int64
	ViewedAt time.Time
}
