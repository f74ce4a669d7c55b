package task

import (
	"context"

	"go.uber.org/zap"

	"github.com/kaamsetu/backend/domain"
	"github.com/kaamsetu/backend/repository"
	"github.com/kaamsetu/backend/usecase"
)

// View is the task projection returned to callers: the task row plus a
// fresh application list re-queried from the application store, so the
// caller always observes the latest application states.
type View struct {
	domain.Task
	CreatedByName string               `json:"created_by_name,omitempty"`
	Applications  []domain.Application `json:"applications"`
}

// CreateInput carries the fields needed to post a task.
type CreateInput struct {
	Title       string
	Description string
	Category    string
	Budget      int
	Urgency     string
	Location    *domain.Location
}

// ApplyInput carries a worker's bid. ProposedBudget of zero falls back
// to the task's budget.
type ApplyInput struct {
	Message        string
	ProposedBudget int
}

type UseCase struct {
	tasks        repository.TaskRepository
	applications repository.ApplicationRepository
	users        repository.UserRepository
	ratings      repository.RatingRepository
	recorder     usecase.EventRecorder
	logger       *zap.Logger
}

func New(
	tasks repository.TaskRepository,
	applications repository.ApplicationRepository,
	users repository.UserRepository,
	ratings repository.RatingRepository,
	recorder usecase.EventRecorder,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:        tasks,
		applications: applications,
		users:        users,
		ratings:      ratings,
		recorder:     recorder,
		logger:       logger,
	}
}

func (uc *UseCase) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]View, error) {
	tasks, err := uc.tasks.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return uc.buildViews(ctx, tasks)
}

func (uc *UseCase) GetTask(ctx context.Context, id string) (*View, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.buildView(ctx, task, map[string]string{})
}

func (uc *UseCase) CreateTask(ctx context.Context, in CreateInput, creatorID string) (*View, error) {
	if in.Title == "" || in.Description == "" || in.Category == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "title, description and category are required")
	}
	if in.Budget <= 0 {
		return nil, domain.NewError(domain.ErrCodeInvalid, "budget must be a positive integer")
	}
	urgency, err := domain.ParseUrgency(in.Urgency)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Budget:      in.Budget,
		Urgency:     urgency,
		Status:      domain.TaskStatusOpen,
		Location:    in.Location,
		CreatedBy:   creatorID,
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	uc.record(ctx, usecase.Event{
		Kind:      usecase.EventTaskCreated,
		ActorID:   creatorID,
		SubjectID: created.ID,
		Payload:   map[string]interface{}{"category": created.Category, "budget": created.Budget},
	})

	return uc.buildView(ctx, created, map[string]string{})
}

func (uc *UseCase) Apply(ctx context.Context, taskID, workerID string, in ApplyInput) (*domain.Application, error) {
	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.IsOpen() {
		return nil, domain.ErrTaskNotOpen
	}
	if task.OwnedBy(workerID) {
		return nil, domain.ErrSelfApplication
	}

	exists, err := uc.applications.ExistsByTaskAndWorker(ctx, taskID, workerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateApplication
	}

	proposed := in.ProposedBudget
	if proposed <= 0 {
		proposed = task.Budget
	}

	app := &domain.Application{
		TaskID:         taskID,
		WorkerID:       workerID,
		Message:        in.Message,
		ProposedBudget: proposed,
		Status:         domain.ApplicationStatusPending,
	}

	created, err := uc.applications.Create(ctx, app)
	if err != nil {
		return nil, err
	}

	uc.record(ctx, usecase.Event{
		Kind:      usecase.EventApplicationSubmitted,
		ActorID:   workerID,
		SubjectID: taskID,
		Payload:   map[string]interface{}{"application_id": created.ID, "proposed_budget": created.ProposedBudget},
	})

	return created, nil
}

func (uc *UseCase) AcceptApplication(ctx context.Context, taskID, applicationID, actorID string) (*View, error) {
	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.OwnedBy(actorID) {
		return nil, domain.ErrNotTaskOwner
	}
	if !task.IsOpen() {
		return nil, domain.ErrTaskNotOpen
	}

	app, err := uc.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.TaskID != taskID {
		return nil, domain.ErrApplicationMismatch
	}

	// The store applies the three mutations as one transaction and
	// re-checks OPEN under the row lock, so a concurrent accept on the
	// same task fails here with ErrTaskNotOpen.
	if err := uc.tasks.Accept(ctx, taskID, applicationID, app.WorkerID); err != nil {
		return nil, err
	}

	uc.record(ctx, usecase.Event{
		Kind:      usecase.EventApplicationAccepted,
		ActorID:   actorID,
		SubjectID: taskID,
		Payload:   map[string]interface{}{"application_id": applicationID, "worker_id": app.WorkerID},
	})

	return uc.GetTask(ctx, taskID)
}

func (uc *UseCase) CompleteTask(ctx context.Context, taskID, actorID string) (*View, error) {
	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.OwnedBy(actorID) {
		return nil, domain.ErrNotTaskOwner
	}
	if task.Status != domain.TaskStatusAccepted {
		return nil, domain.ErrTaskNotAccepted
	}

	workerID, err := uc.tasks.Complete(ctx, taskID)
	if err != nil {
		return nil, err
	}

	uc.record(ctx, usecase.Event{
		Kind:      usecase.EventTaskCompleted,
		ActorID:   actorID,
		SubjectID: taskID,
		Payload:   map[string]interface{}{"worker_id": workerID},
	})

	return uc.GetTask(ctx, taskID)
}

func (uc *UseCase) RateTask(ctx context.Context, taskID, giverID string, stars int, review string) (*domain.Rating, error) {
	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.OwnedBy(giverID) {
		return nil, domain.ErrNotTaskOwner
	}
	if task.Status != domain.TaskStatusCompleted {
		return nil, domain.ErrTaskNotCompleted
	}
	if task.AcceptedWorker == nil {
		return nil, domain.ErrNoAcceptedWorker
	}

	rating := &domain.Rating{
		TaskID:  taskID,
		GivenBy: giverID,
		GivenTo: *task.AcceptedWorker,
		Stars:   stars,
		Review:  review,
	}
	if !rating.ValidStars() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "stars must be between 1 and 5")
	}

	created, err := uc.ratings.Create(ctx, rating)
	if err != nil {
		return nil, err
	}

	uc.record(ctx, usecase.Event{
		Kind:      usecase.EventRatingSubmitted,
		ActorID:   giverID,
		SubjectID: taskID,
		Payload:   map[string]interface{}{"stars": created.Stars, "worker_id": created.GivenTo},
	})

	return created, nil
}

func (uc *UseCase) ListTasksByCreator(ctx context.Context, userID string) ([]View, error) {
	if _, err := uc.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	tasks, err := uc.tasks.ListByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.buildViews(ctx, tasks)
}

func (uc *UseCase) ListAppliedTasks(ctx context.Context, userID string) ([]View, error) {
	if _, err := uc.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	tasks, err := uc.tasks.ListByApplicant(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.buildViews(ctx, tasks)
}

func (uc *UseCase) buildViews(ctx context.Context, tasks []domain.Task) ([]View, error) {
	views := make([]View, 0, len(tasks))
	names := map[string]string{}
	for i := range tasks {
		view, err := uc.buildView(ctx, &tasks[i], names)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (uc *UseCase) buildView(ctx context.Context, task *domain.Task, names map[string]string) (*View, error) {
	apps, err := uc.applications.ListByTask(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []domain.Application{}
	}

	name, ok := names[task.CreatedBy]
	if !ok {
		creator, err := uc.users.GetByID(ctx, task.CreatedBy)
		if err == nil {
			name = creator.Name
		}
		names[task.CreatedBy] = name
	}

	return &View{
		Task:          *task,
		CreatedByName: name,
		Applications:  apps,
	}, nil
}

func (uc *UseCase) record(ctx context.Context, event usecase.Event) {
	if uc.recorder == nil {
		return
	}
	if err := uc.recorder.Record(ctx, event); err != nil {
		uc.logger.Warn("failed to record lifecycle event",
			zap.String("kind", event.Kind),
			zap.String("subject_id", event.SubjectID),
			zap.Error(err))
	}
}
