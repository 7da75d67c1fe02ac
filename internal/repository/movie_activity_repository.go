package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// MovieActivityRepository covers per-user movie state: likes, favorites, and
// view history.
type MovieActivityRepository interface {
	SetLike(ctx context.Context, userID, movieID int64, liked bool) error
	IsLiked(ctx context.Context, userID, movieID int64) (bool, error)
	SetFavorite(ctx context.Context, userID, movieID int64, favorited bool) error
	IsFavorited(ctx context.Context, userID, movieID int64) (bool, error)
	DeleteFavorite(ctx context.Context, userID, movieID int64) error
	RecordView(ctx context.Context, userID, movieID int64) error
	DeleteHistory(ctx context.Context, userID, movieID int64) error
}

type movieActivityRepository struct {
	db Querier
}

// NewMovieActivityRepository returns a Postgres-backed implementation.
func NewMovieActivityRepository(db Querier) MovieActivityRepository {
	return &movieActivityRepository{db: db}
}

func (r *movieActivityRepository) SetLike(ctx context.Context, userID, movieID int64, liked bool) error {
	if liked {
		const query = `
            INSERT INTO movie_likes (user_id, movie_id)
            VALUES ($1, $2)
            ON CONFLICT (user_id, movie_id) DO NOTHING`
		_, err := r.db.Exec(ctx, query, userID, movieID)
		return err
	}

	const query = `DELETE FROM movie_likes WHERE user_id=$1 AND movie_id=$2`
	_, err := r.db.Exec(ctx, query, userID, movieID)
	return err
}

func (r *movieActivityRepository) IsLiked(ctx context.Context, userID, movieID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM movie_likes WHERE user_id=$1 AND movie_id=$2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, movieID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *movieActivityRepository) SetFavorite(ctx context.Context, userID, movieID int64, favorited bool) error {
	if favorited {
		const query = `
            INSERT INTO movie_favorites (user_id, movie_id)
            VALUES ($1, $2)
            ON CONFLICT (user_id, movie_id) DO NOTHING`
		_, err := r.db.Exec(ctx, query, userID, movieID)
		return err
	}

	const query = `DELETE FROM movie_favorites WHERE user_id=$1 AND movie_id=$2`
	_, err := r.db.Exec(ctx, query, userID, movieID)
	return err
}

func (r *movieActivityRepository) IsFavorited(ctx context.Context, userID, movieID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM movie_favorites WHERE user_id=$1 AND movie_id=$2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, movieID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *movieActivityRepository) DeleteFavorite(ctx context.Context, userID, movieID int64) error {
	const query = `DELETE FROM movie_favorites WHERE user_id=$1 AND movie_id=$2`

	cmd, err := r.db.Exec(ctx, query, userID, movieID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *movieActivityRepository) RecordView(ctx context.Context, userID, movieID int64) error {
	const query = `
        INSERT INTO movie_histories (user_id, movie_id, viewed_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (user_id, movie_id) DO UPDATE SET viewed_at=NOW()`

	_, err := r.db.Exec(ctx, query, userID, movieID)
	return err
}

func (r *movieActivityRepository) DeleteHistory(ctx context.Context, userID, movieID int64) error {
	const query = `DELETE FROM movie_histories WHERE user_id=$1 AND movie_id=$2`

	_, err := r.db.Exec(ctx, query, userID, movieID)
	return err
}
