package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaamsetu/backend/domain"
	"github.com/kaamsetu/backend/repository"
)

type ratingRepository struct {
	pool *pgxpool.Pool
}

// NewRatingRepository returns a Postgres-backed implementation of RatingRepository.
func NewRatingRepository(pool *pgxpool.Pool) repository.RatingRepository {
	return &ratingRepository{pool: pool}
}

func (r *ratingRepository) Create(ctx context.Context, rating *domain.Rating) (*domain.Rating, error) {
	if rating == nil {
		return nil, domain.ErrInvalidPayload
	}
	if rating.ID == "" {
		rating.ID = uuid.NewString()
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const insert = `
	INSERT INTO ratings (id, task_id, given_by, given_to, stars, review)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at
	`
	if err := tx.QueryRow(ctx, insert,
		rating.ID,
		rating.TaskID,
		rating.GivenBy,
		rating.GivenTo,
		rating.Stars,
		rating.Review,
	).Scan(&rating.CreatedAt); err != nil {
		if isUniqueViolation(err, "") {
			return nil, domain.ErrDuplicateRating
		}
		return nil, err
	}

	// The receiver's rating is a running average over every rating
	// they have received, recomputed with the new row in place.
	const refresh = `
	UPDATE users
	SET rating = (SELECT AVG(stars)::float8 FROM ratings WHERE given_to = $1),
		updated_at = NOW()
	WHERE id = $1
	`
	if _, err := tx.Exec(ctx, refresh, rating.GivenTo); err != nil {
		return nil, err
	}

	return rating, tx.Commit(ctx)
}

func (r *ratingRepository) ListByReceiver(ctx context.Context, userID string) ([]domain.Rating, error) {
	const query = `
	SELECT id, task_id, given_by, given_to, stars, review, created_at
	FROM ratings
	WHERE given_to = $1
	ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []domain.Rating
	for rows.Next() {
		var rating domain.Rating
		if err := rows.Scan(
			&rating.ID,
			&rating.TaskID,
			&rating.GivenBy,
			&rating.GivenTo,
			&rating.Stars,
			&rating.Review,
			&rating.CreatedAt,
		); err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
	return ratings, rows.Err()
}
