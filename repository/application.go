package repository

import (
	"context"

	"github.com/kaamsetu/backend/domain"
)

type ApplicationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	// ListByTask returns the task's applications newest first, with the
	// applying worker's current name and rating joined in.
	ListByTask(ctx context.Context, taskID string) ([]domain.Application, error)
	ExistsByTaskAndWorker(ctx context.Context, taskID, workerID string) (bool, error)
	Create(ctx context.Context, application *domain.Application) (*domain.Application, error)
}
