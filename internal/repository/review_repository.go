package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/movie-service/internal/domain"
)

// ReviewRepository defines persistence access for movie reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	Update(ctx context.Context, review *domain.Review) error
	Delete(ctx context.Context, id int64) error
	ListByMovieID(ctx context.Context, movieID, skip, take int64) ([]domain.Review, error)
	ListByUserID(ctx context.Context, userID, skip, take int64) ([]domain.Review, error)
}

type reviewRepository struct {
	db Querier
}

// NewReviewRepository returns a Postgres-backed implementation.
func NewReviewRepository(db Querier) ReviewRepository {
	return &reviewRepository{db: db}
}

const reviewColumns = `id, user_id, movie_id, title, content, rating, created_at, updated_at`

func scanReviews(rows pgx.Rows) ([]domain.Review, error) {
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(
			&rv.ID,
			&rv.UserID,
			&rv.MovieID,
			&rv.Title,
			&rv.Content,
			&rv.Rating,
			&rv.CreatedAt,
			&rv.UpdatedAt,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	const query = `
        INSERT INTO reviews (user_id, movie_id, title, content, rating)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRow(ctx, query,
		review.UserID,
		review.MovieID,
		review.Title,
		review.Content,
		review.Rating,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
}

func (r *reviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	const query = `
        SELECT ` + reviewColumns + `
        FROM reviews WHERE id=$1`

	var rv domain.Review
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&rv.ID,
		&rv.UserID,
		&rv.MovieID,
		&rv.Title,
		&rv.Content,
		&rv.Rating,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *domain.Review) error {
	const query = `
        UPDATE reviews SET title=$1, content=$2, rating=$3, updated_at=NOW()
        WHERE id=$4`

	cmd, err := r.db.Exec(ctx, query,
		review.Title,
		review.Content,
		review.Rating,
		review.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM reviews WHERE id=$1`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reviewRepository) ListByMovieID(ctx context.Context, movieID, skip, take int64) ([]domain.Review, error) {
	const query = `
        SELECT ` + reviewColumns + `
        FROM reviews
        WHERE movie_id=$1
        ORDER BY created_at DESC
        OFFSET $2 LIMIT $3`

	rows, err := r.db.Query(ctx, query, movieID, skip, take)
	if err != nil {
		return nil, err
	}
	return scanReviews(rows)
}

func (r *reviewRepository) ListByUserID(ctx context.Context, userID, skip, take int64) ([]domain.Review, error) {
	const query = `
        SELECT ` + reviewColumns + `
        FROM reviews
        WHERE user_id=$1
        ORDER BY created_at DESC
        OFFSET $2 LIMIT $3`

	rows, err := r.db.Query(ctx, query, userID, skip, take)
	if err != nil {
		return nil, err
	}
	return scanReviews(rows)
}
