package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaamsetu/backend/domain"
	"github.com/kaamsetu/backend/repository"
)

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository returns a Postgres-backed implementation of ApplicationRepository.
func NewApplicationRepository(pool *pgxpool.Pool) repository.ApplicationRepository {
	return &applicationRepository{pool: pool}
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	const query = `
	SELECT id, task_id, worker_id, message, proposed_budget, status, applied_at
	FROM applications
	WHERE id = $1
	`
	var app domain.Application
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&app.ID,
		&app.TaskID,
		&app.WorkerID,
		&app.Message,
		&app.ProposedBudget,
		&app.Status,
		&app.AppliedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) ListByTask(ctx context.Context, taskID string) ([]domain.Application, error) {
	const query = `
	SELECT a.id, a.task_id, a.worker_id, a.message, a.proposed_budget, a.status, a.applied_at,
		u.name, u.rating
	FROM applications a
	JOIN users u ON u.id = a.worker_id
	WHERE a.task_id = $1
	ORDER BY a.applied_at DESC
	`
	rows, err := r.pool.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID,
			&app.TaskID,
			&app.WorkerID,
			&app.Message,
			&app.ProposedBudget,
			&app.Status,
			&app.AppliedAt,
			&app.WorkerName,
			&app.WorkerRating,
		); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (r *applicationRepository) ExistsByTaskAndWorker(ctx context.Context, taskID, workerID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM applications WHERE task_id = $1 AND worker_id = $2)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, taskID, workerID).Scan(&exists)
	return exists, err
}

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) (*domain.Application, error) {
	if app == nil {
		return nil, domain.ErrInvalidPayload
	}
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.Status == "" {
		app.Status = domain.ApplicationStatusPending
	}

	const query = `
	INSERT INTO applications (id, task_id, worker_id, message, proposed_budget, status)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING applied_at
	`

	if err := r.pool.QueryRow(ctx, query,
		app.ID,
		app.TaskID,
		app.WorkerID,
		app.Message,
		app.ProposedBudget,
		string(app.Status),
	).Scan(&app.AppliedAt); err != nil {
		if isUniqueViolation(err, "") {
			return nil, domain.ErrDuplicateApplication
		}
		return nil, err
	}

	return app, nil
}
