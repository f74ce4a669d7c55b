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

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

const taskColumns = `id, title, description, category, budget, urgency, status,
	location_lat, location_lng, location_address,
	created_by, accepted_worker, created_at, updated_at`

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	return scanTask(r.pool.QueryRow(ctx, query, id))
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	query := `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE ($1 = '' OR LOWER(category) = LOWER($1))
	  AND ($2 = '' OR urgency = UPPER($2))
	  AND ($3 = '' OR status = UPPER($3))
	  AND ($4 = '' OR title ILIKE '%' || $4 || '%' OR description ILIKE '%' || $4 || '%')
	ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, filter.Category, filter.Urgency, filter.Status, filter.Search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *taskRepository) ListByCreator(ctx context.Context, userID string) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE created_by = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *taskRepository) ListByApplicant(ctx context.Context, workerID string) ([]domain.Task, error) {
	const query = `
	SELECT DISTINCT t.id, t.title, t.description, t.category, t.budget, t.urgency, t.status,
		t.location_lat, t.location_lng, t.location_address,
		t.created_by, t.accepted_worker, t.created_at, t.updated_at
	FROM tasks t
	JOIN applications a ON a.task_id = t.id
	WHERE a.worker_id = $1
	ORDER BY t.created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.Status == "" {
		task.Status = domain.TaskStatusOpen
	}

	const query = `
	INSERT INTO tasks (id, title, description, category, budget, urgency, status,
		location_lat, location_lng, location_address, created_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING created_at, updated_at
	`

	lat, lng, address := locationColumns(task.Location)

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.Category,
		task.Budget,
		string(task.Urgency),
		string(task.Status),
		lat,
		lng,
		address,
		task.CreatedBy,
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) Accept(ctx context.Context, taskID, applicationID, workerID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Row lock serializes concurrent accepts on the same task; the
	// loser re-reads a non-OPEN status once the winner commits.
	var status domain.TaskStatus
	err = tx.QueryRow(ctx, `SELECT status FROM tasks WHERE id = $1 FOR UPDATE`, taskID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}
	if status != domain.TaskStatusOpen {
		return domain.ErrTaskNotOpen
	}

	tag, err := tx.Exec(ctx,
		`UPDATE applications SET status = 'ACCEPTED' WHERE id = $1 AND task_id = $2 AND status = 'PENDING'`,
		applicationID, taskID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrApplicationNotFound
	}

	if _, err := tx.Exec(ctx,
		`UPDATE applications SET status = 'REJECTED' WHERE task_id = $1 AND id <> $2 AND status = 'PENDING'`,
		taskID, applicationID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE tasks SET status = 'ACCEPTED', accepted_worker = $2, updated_at = NOW() WHERE id = $1`,
		taskID, workerID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *taskRepository) Complete(ctx context.Context, taskID string) (string, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	// Status-guarded update: a concurrent double-complete finds zero
	// affected rows instead of incrementing the counter twice.
	var worker *string
	err = tx.QueryRow(ctx,
		`UPDATE tasks SET status = 'COMPLETED', updated_at = NOW()
		 WHERE id = $1 AND status = 'ACCEPTED'
		 RETURNING accepted_worker`,
		taskID).Scan(&worker)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if checkErr := tx.QueryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1)`, taskID).Scan(&exists); checkErr != nil {
				return "", checkErr
			}
			if !exists {
				return "", domain.ErrTaskNotFound
			}
			return "", domain.ErrTaskNotAccepted
		}
		return "", err
	}

	workerID := ""
	if worker != nil {
		workerID = *worker
		if _, err := tx.Exec(ctx,
			`UPDATE users SET tasks_completed = tasks_completed + 1, updated_at = NOW() WHERE id = $1`,
			workerID); err != nil {
			return "", err
		}
	}

	return workerID, tx.Commit(ctx)
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	var (
		lat, lng *float64
		address  *string
	)

	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Category,
		&task.Budget,
		&task.Urgency,
		&task.Status,
		&lat,
		&lng,
		&address,
		&task.CreatedBy,
		&task.AcceptedWorker,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.Location = locationFromColumns(lat, lng, address)
	return &task, nil
}

func collectTasks(rows pgx.Rows) ([]domain.Task, error) {
	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}
