package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/movie-service/internal/domain"
)

// MovieRepository defines persistence access for the movie catalog.
type MovieRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Movie, error)
	List(ctx context.Context, skip, take int64) ([]domain.Movie, error)
	ListLikedBy(ctx context.Context, userID, skip, take int64) ([]domain.Movie, error)
	ListFavoritedBy(ctx context.Context, userID, skip, take int64) ([]domain.Movie, error)
	ListViewedBy(ctx context.Context, userID, skip, take int64) ([]domain.Movie, error)
}

type movieRepository struct {
	db Querier
}

// NewMovieRepository returns a Postgres-backed implementation.
func NewMovieRepository(db Querier) MovieRepository {
	return &movieRepository{db: db}
}

const movieColumns = `m.id, m.title, m.overview, m.poster_url, m.release_date, m.like_count, m.created_at, m.updated_at`

func scanMovies(rows pgx.Rows) ([]domain.Movie, error) {
	defer rows.Close()

	movies := make([]domain.Movie, 0)
	for rows.Next() {
		var m domain.Movie
		if err := rows.Scan(
			&m.ID,
			&m.Title,
			&m.Overview,
			&m.PosterURL,
			&m.ReleaseDate,
			&m.LikeCount,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

func (r *movieRepository) GetByID(ctx context.Context, id int64) (*domain.Movie, error) {
	const query = `
        SELECT ` + movieColumns + `
        FROM movies m WHERE m.id=$1`

	var m domain.Movie
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&m.ID,
		&m.Title,
		&m.Overview,
		&m.PosterURL,
		&m.ReleaseDate,
		&m.LikeCount,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *movieRepository) List(ctx context.Context, skip, take int64) ([]domain.Movie, error) {
	const query = `
        SELECT ` + movieColumns + `
        FROM movies m
        ORDER BY m.id
        OFFSET $1 LIMIT $2`

	rows, err := r.db.Query(ctx, query, skip, take)
	if err != nil {
		return nil, err
	}
	return scanMovies(rows)
}

func (r *movieRepository) ListLikedBy(ctx context.Context, userID, skip, take int64) ([]domain.Movie, error) {
	const query = `
        SELECT ` + movieColumns + `
        FROM movies m
        JOIN movie_likes l ON l.movie_id = m.id
        WHERE l.user_id=$1
        ORDER BY l.created_at DESC
        OFFSET $2 LIMIT $3`

	rows, err := r.db.Query(ctx, query, userID, skip, take)
	if err != nil {
		return nil, err
	}
	return scanMovies(rows)
}

func (r *movieRepository) ListFavoritedBy(ctx context.Context, userID, skip, take int64) ([]domain.Movie, error) {
	const query = `
        SELECT ` + movieColumns + `
        FROM movies m
        JOIN movie_favorites f ON f.movie_id = m.id
        WHERE f.user_id=$1
        ORDER BY f.created_at DESC
        OFFSET $2 LIMIT $3`

	rows, err := r.db.Query(ctx, query, userID, skip, take)
	if err != nil {
		return nil, err
	}
	return scanMovies(rows)
}

func (r *movieRepository) ListViewedBy(ctx context.Context, userID, skip, take int64) ([]domain.Movie, error) {
	const query = `
        SELECT ` + movieColumns + `
        FROM movies m
        JOIN movie_histories h ON h.movie_id = m.id
        WHERE h.user_id=$1
        ORDER BY h.viewed_at DESC
        OFFSET $2 LIMIT $3`

	rows, err := r.db.Query(ctx, query, userID, skip, take)
	if err != nil {
		return nil, err
	}
	return scanMovies(rows)
}
