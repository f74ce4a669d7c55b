package repository

import (
	"context"

	"github.com/kaamsetu/backend/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	// Create persists a new user, failing with domain.ErrPhoneTaken
	// when the phone number is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
