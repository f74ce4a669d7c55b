package repository

import (
	"context"

	"github.com/kaamsetu/backend/domain"
)

type RatingRepository interface {
	// Create persists the rating and recomputes the receiver's running
	// average in the same transaction. Fails with
	// domain.ErrDuplicateRating when the giver already rated the task.
	Create(ctx context.Context, rating *domain.Rating) (*domain.Rating, error)
	ListByReceiver(ctx context.Context, userID string) ([]domain.Rating, error)
}
