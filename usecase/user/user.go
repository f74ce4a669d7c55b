package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/kaamsetu/backend/domain"
	"github.com/kaamsetu/backend/repository"
)

// Profile is the public projection of a user together with the
// feedback they have received.
type Profile struct {
	domain.User
	Ratings []domain.Rating `json:"ratings"`
}

type UseCase struct {
	users   repository.UserRepository
	ratings repository.RatingRepository
	logger  *zap.Logger
}

func New(users repository.UserRepository, ratings repository.RatingRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:   users,
		ratings: ratings,
		logger:  logger,
	}
}

func (uc *UseCase) GetUser(ctx context.Context, id string) (*Profile, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ratings, err := uc.ratings.ListByReceiver(ctx, id)
	if err != nil {
		return nil, err
	}
	if ratings == nil {
		ratings = []domain.Rating{}
	}

	return &Profile{User: *user, Ratings: ratings}, nil
}
