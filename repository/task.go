package repository

import (
	"context"

	"github.com/kaamsetu/backend/domain"
)

// TaskFilter narrows List results. Empty fields mean no filter;
// category/urgency/status match case-insensitively, search is a
// case-insensitive substring match over title or description.
type TaskFilter struct {
	Category string
	Urgency  string
	Status   string
	Search   string
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	ListByCreator(ctx context.Context, userID string) ([]domain.Task, error)
	// ListByApplicant returns tasks the worker has applied to,
	// de-duplicated by task identity, newest first.
	ListByApplicant(ctx context.Context, workerID string) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// Accept atomically marks the application accepted, rejects every
	// sibling application, and moves the task to ACCEPTED with the
	// winner recorded. The task row is locked for the duration so a
	// concurrent accept observes a non-OPEN task and fails with
	// domain.ErrTaskNotOpen.
	Accept(ctx context.Context, taskID, applicationID, workerID string) error

	// Complete conditionally moves the task from ACCEPTED to COMPLETED
	// and increments the accepted worker's completed-task counter in
	// the same transaction. Returns the worker id credited, or an
	// empty string when the task had no accepted worker.
	Complete(ctx context.Context, taskID string) (string, error)
}
