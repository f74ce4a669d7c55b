package task

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaamsetu/backend/domain"
	"github.com/kaamsetu/backend/repository"
)

// memState is the shared backing store for the in-memory fakes. The
// fakes honor the same guards as the Postgres repositories so the
// lifecycle invariants can be exercised without a database.
type memState struct {
	mu      sync.Mutex
	now     time.Time
	users   map[string]domain.User
	tasks   map[string]domain.Task
	apps    map[string]domain.Application
	ratings map[string]domain.Rating
}

func newMemState() *memState {
	return &memState{
		now:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		users:   map[string]domain.User{},
		tasks:   map[string]domain.Task{},
		apps:    map[string]domain.Application{},
		ratings: map[string]domain.Rating{},
	}
}

func (s *memState) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

type fakeUserRepo struct{ s *memState }

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByPhone(_ context.Context, phone string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, user := range r.s.users {
		if user.Phone == phone {
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Phone == user.Phone {
			return nil, domain.ErrPhoneTaken
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = r.s.tick()
	user.UpdatedAt = user.CreatedAt
	r.s.users[user.ID] = *user
	return user, nil
}

type fakeTaskRepo struct{ s *memState }

func (r *fakeTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	task, ok := r.s.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return &task, nil
}

func (r *fakeTaskRepo) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var tasks []domain.Task
	for _, task := range r.s.tasks {
		if filter.Category != "" && !strings.EqualFold(task.Category, filter.Category) {
			continue
		}
		if filter.Urgency != "" && !strings.EqualFold(string(task.Urgency), filter.Urgency) {
			continue
		}
		if filter.Status != "" && !strings.EqualFold(string(task.Status), filter.Status) {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(task.Title), needle) &&
				!strings.Contains(strings.ToLower(task.Description), needle) {
				continue
			}
		}
		tasks = append(tasks, task)
	}
	sortNewestFirst(tasks)
	return tasks, nil
}

func (r *fakeTaskRepo) ListByCreator(_ context.Context, userID string) ([]domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var tasks []domain.Task
	for _, task := range r.s.tasks {
		if task.CreatedBy == userID {
			tasks = append(tasks, task)
		}
	}
	sortNewestFirst(tasks)
	return tasks, nil
}

func (r *fakeTaskRepo) ListByApplicant(_ context.Context, workerID string) ([]domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seen := map[string]bool{}
	var tasks []domain.Task
	for _, app := range r.s.apps {
		if app.WorkerID != workerID || seen[app.TaskID] {
			continue
		}
		seen[app.TaskID] = true
		tasks = append(tasks, r.s.tasks[app.TaskID])
	}
	sortNewestFirst(tasks)
	return tasks, nil
}

func (r *fakeTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	task.CreatedAt = r.s.tick()
	task.UpdatedAt = task.CreatedAt
	r.s.tasks[task.ID] = *task
	return task, nil
}

func (r *fakeTaskRepo) Accept(_ context.Context, taskID, applicationID, workerID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	task, ok := r.s.tasks[taskID]
	if !ok {
		return domain.ErrTaskNotFound
	}
	if task.Status != domain.TaskStatusOpen {
		return domain.ErrTaskNotOpen
	}

	winner, ok := r.s.apps[applicationID]
	if !ok || winner.TaskID != taskID || winner.Status != domain.ApplicationStatusPending {
		return domain.ErrApplicationNotFound
	}

	winner.Status = domain.ApplicationStatusAccepted
	r.s.apps[applicationID] = winner

	for id, app := range r.s.apps {
		if app.TaskID == taskID && id != applicationID && app.Status == domain.ApplicationStatusPending {
			app.Status = domain.ApplicationStatusRejected
			r.s.apps[id] = app
		}
	}

	task.Status = domain.TaskStatusAccepted
	task.AcceptedWorker = &workerID
	task.UpdatedAt = r.s.tick()
	r.s.tasks[taskID] = task
	return nil
}

func (r *fakeTaskRepo) Complete(_ context.Context, taskID string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	task, ok := r.s.tasks[taskID]
	if !ok {
		return "", domain.ErrTaskNotFound
	}
	if task.Status != domain.TaskStatusAccepted {
		return "", domain.ErrTaskNotAccepted
	}

	task.Status = domain.TaskStatusCompleted
	task.UpdatedAt = r.s.tick()
	r.s.tasks[taskID] = task

	if task.AcceptedWorker == nil {
		return "", nil
	}
	worker := r.s.users[*task.AcceptedWorker]
	worker.TasksCompleted++
	r.s.users[worker.ID] = worker
	return worker.ID, nil
}

type fakeApplicationRepo struct{ s *memState }

func (r *fakeApplicationRepo) GetByID(_ context.Context, id string) (*domain.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	app, ok := r.s.apps[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	return &app, nil
}

func (r *fakeApplicationRepo) ListByTask(_ context.Context, taskID string) ([]domain.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var apps []domain.Application
	for _, app := range r.s.apps {
		if app.TaskID != taskID {
			continue
		}
		worker := r.s.users[app.WorkerID]
		app.WorkerName = worker.Name
		app.WorkerRating = worker.Rating
		apps = append(apps, app)
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].AppliedAt.After(apps[j].AppliedAt) })
	return apps, nil
}

func (r *fakeApplicationRepo) ExistsByTaskAndWorker(_ context.Context, taskID, workerID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, app := range r.s.apps {
		if app.TaskID == taskID && app.WorkerID == workerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeApplicationRepo) Create(_ context.Context, app *domain.Application) (*domain.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.apps {
		if existing.TaskID == app.TaskID && existing.WorkerID == app.WorkerID {
			return nil, domain.ErrDuplicateApplication
		}
	}
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	app.AppliedAt = r.s.tick()
	r.s.apps[app.ID] = *app
	return app, nil
}

type fakeRatingRepo struct{ s *memState }

func (r *fakeRatingRepo) Create(_ context.Context, rating *domain.Rating) (*domain.Rating, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.ratings {
		if existing.TaskID == rating.TaskID && existing.GivenBy == rating.GivenBy {
			return nil, domain.ErrDuplicateRating
		}
	}
	if rating.ID == "" {
		rating.ID = uuid.NewString()
	}
	rating.CreatedAt = r.s.tick()
	r.s.ratings[rating.ID] = *rating

	var sum, count float64
	for _, existing := range r.s.ratings {
		if existing.GivenTo == rating.GivenTo {
			sum += float64(existing.Stars)
			count++
		}
	}
	avg := sum / count
	receiver := r.s.users[rating.GivenTo]
	receiver.Rating = &avg
	r.s.users[receiver.ID] = receiver
	return rating, nil
}

func (r *fakeRatingRepo) ListByReceiver(_ context.Context, userID string) ([]domain.Rating, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ratings []domain.Rating
	for _, rating := range r.s.ratings {
		if rating.GivenTo == userID {
			ratings = append(ratings, rating)
		}
	}
	return ratings, nil
}

func sortNewestFirst(tasks []domain.Task) {
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].CreatedAt.After(tasks[j].CreatedAt) })
}

type fixture struct {
	uc     *UseCase
	state  *memState
	seeker *domain.User
	worker *domain.User
	other  *domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	state := newMemState()
	users := &fakeUserRepo{s: state}

	seeker, err := users.Create(context.Background(), &domain.User{Name: "Asha", Phone: "9000000001", Role: domain.RoleSeeker})
	require.NoError(t, err)
	worker, err := users.Create(context.Background(), &domain.User{Name: "Bilal", Phone: "9000000002", Role: domain.RoleWorker})
	require.NoError(t, err)
	other, err := users.Create(context.Background(), &domain.User{Name: "Chitra", Phone: "9000000003", Role: domain.RoleWorker})
	require.NoError(t, err)

	uc := New(
		&fakeTaskRepo{s: state},
		&fakeApplicationRepo{s: state},
		users,
		&fakeRatingRepo{s: state},
		nil,
		nil,
	)
	return &fixture{uc: uc, state: state, seeker: seeker, worker: worker, other: other}
}

func (f *fixture) createTask(t *testing.T, title, category string, budget int, urgency string) *View {
	t.Helper()
	view, err := f.uc.CreateTask(context.Background(), CreateInput{
		Title:       title,
		Description: "description of " + title,
		Category:    category,
		Budget:      budget,
		Urgency:     urgency,
	}, f.seeker.ID)
	require.NoError(t, err)
	return view
}

func TestCreateTask(t *testing.T) {
	f := newFixture(t)

	view := f.createTask(t, "Fix bathroom tap", "plumbing", 300, "URGENT")
	assert.Equal(t, domain.TaskStatusOpen, view.Status)
	assert.Equal(t, domain.UrgencyUrgent, view.Urgency)
	assert.Equal(t, f.seeker.ID, view.CreatedBy)
	assert.Equal(t, "Asha", view.CreatedByName)
	assert.Nil(t, view.AcceptedWorker)
	assert.Empty(t, view.Applications)
}

func TestCreateTask_EmptyUrgencyDefaultsToNormal(t *testing.T) {
	f := newFixture(t)
	view := f.createTask(t, "Clean kitchen", "cleaning", 150, "")
	assert.Equal(t, domain.UrgencyNormal, view.Urgency)
}

func TestCreateTask_InvalidUrgencyRejected(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.CreateTask(context.Background(), CreateInput{
		Title:       "Paint wall",
		Description: "two coats",
		Category:    "painting",
		Budget:      500,
		Urgency:     "ASAP",
	}, f.seeker.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidUrgency)
}

func TestCreateTask_NonPositiveBudgetRejected(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.CreateTask(context.Background(), CreateInput{
		Title:       "Paint wall",
		Description: "two coats",
		Category:    "painting",
		Budget:      0,
	}, f.seeker.ID)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestApply(t *testing.T) {
	f := newFixture(t)
	view := f.createTask(t, "Fix sink", "plumbing", 300, "")

	app, err := f.uc.Apply(context.Background(), view.ID, f.worker.ID, ApplyInput{Message: "can do today", ProposedBudget: 250})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusPending, app.Status)
	assert.Equal(t, 250, app.ProposedBudget)
}

func TestApply_ProposedBudgetDefaultsToTaskBudget(t *testing.T) {
	f := newFixture(t)
	view := f.createTask(t, "Fix sink", "plumbing", 300, "")

	app, err := f.uc.Apply(context.Background(), view.ID, f.worker.ID, ApplyInput{})
	require.NoError(t, err)
	assert.Equal(t, 300, app.ProposedBudget)
}

func TestApply_OwnTaskRejected(t *testing.T) {
	f := newFixture(t)
	view := f.createTask(t, "Fix sink", "plumbing", 300, "")

	_, err := f.uc.Apply(context.Background(), view.ID, f.seeker.ID, ApplyInput{})
	assert.ErrorIs(t, err, domain.ErrSelfApplication)
}

func TestApply_DuplicateRejected(t *testing.T) {
	f := newFixture(t)
	view := f.createTask(t, "Fix sink", "plumbing", 300, "")

	_, err := f.uc.Apply(context.Background(), view.ID, f.worker.ID, ApplyInput{})
	require.NoError(t, err)

	_, err = f.uc.Apply(context.Background(), view.ID, f.worker.ID, ApplyInput{})
	assert.ErrorIs(t, err, domain.ErrDuplicateApplication)
}

func TestApply_MissingTask(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Apply(context.Background(), "no-such-task", f.worker.ID, ApplyInput{})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestAcceptApplication(t *testing.T) {
	f := newFixture(t)
	view := f.createTask(t, "Fix sink", "plumbing", 300, "")

	winner, err := f.uc.Apply(context.Background(), view.ID, f.worker.ID, ApplyInput{})
	require.NoError(t, err)
	loser, err := f.uc.Apply(context.Background(), view.ID, f.other.ID, ApplyInput{})
	require.NoError(t, err)

	accepted, err := f.uc.AcceptApplication(context.Background(), view.ID, winner.ID, f.seeker.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.TaskStatusAccepted, accepted.Status)
	require.NotNil(t, accepted.AcceptedWorker)
	assert.Equal(t, f.worker.ID, *accepted.AcceptedWorker)

	statuses := map[string]domain.ApplicationStatus{}
	for _, app := range accepted.Applications {
		statuses[app.ID] = app.Status
	}
	assert.Equal(t, domain.ApplicationStatusAccepted, statuses[winner.ID])
	assert.Equal(t, domain.ApplicationStatusRejected, statuses[loser.ID])
}

func TestAcceptApplication_NonOwnerForbidden(t *testing.T) {
	f := newFixture(t)
	view := f.createTask(t, "Fix sink", "plumbing", 300, "")
	app, err := f.uc.Apply(context.Background(), view.ID, f.worker.ID, ApplyInput{})
	require.NoError(t, err)

	_, err = f.uc.AcceptApplication(context.Background(), view.ID, app.ID, f.other.ID)
	assert.ErrorIs(t, err, domain.ErrNotTaskOwner)
}

func TestAcceptApplication_SecondAcceptFails(t *testing.T) {
	f := newFixture(t)
	view := f.createTask(t, "Fix sink", "plumbing", 300, "")

	first, err := f.uc.Apply(context.Background(), view.ID, f.worker.ID, ApplyInput{})
	require.NoError(t, err)
	second, err := f.uc.Apply(context.Background(), view.ID, f.other.ID, ApplyInput{})
	require.NoError(t, err)

	_, err = f.uc.AcceptApplication(context.Background(), view.ID, first.ID, f.seeker.ID)
	require.NoError(t, err)

	_, err = f.uc.AcceptApplication(context.Background(), view.ID, second.ID, f.seeker.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotOpen)
}

func TestAcceptApplication_WrongTaskRejected(t *testing.T) {
	f := newFixture(t)
	first := f.createTask(t, "Fix sink", "plumbing", 300, "")
	second := f.createTask(t, "Clean flat", "cleaning", 200, "")

	app, err := f.uc.Apply(context.Background(), second.ID, f.worker.ID, ApplyInput{})
	require.NoError(t, err)

	_, err = f.uc.AcceptApplication(context.Background(), first.ID, app.ID, f.seeker.ID)
	assert.ErrorIs(t, err, domain.ErrApplicationMismatch)
}

func TestCompleteTask(t *testing.T) {
	f := newFixture(t)
	view := f.createTask(t, "Fix sink", "plumbing", 300, "")
	app, err := f.uc.Apply(context.Background(), view.ID, f.worker.ID, ApplyInput{})
	require.NoError(t, err)
	_, err = f.uc.AcceptApplication(context.Background(), view.ID, app.ID, f.seeker.ID)
	require.NoError(t, err)

	completed, err := f.uc.CompleteTask(context.Background(), view.ID, f.seeker.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusCompleted, completed.Status)
	require.NotNil(t, completed.AcceptedWorker)

	worker := f.state.users[f.worker.ID]
	assert.Equal(t, 1, worker.TasksCompleted)
}

func TestCompleteTask_RequiresAcceptedStatus(t *testing.T) {
	f := newFixture(t)
	view := f.createTask(t, "Fix sink", "plumbing", 300, "")

	_, err := f.uc.CompleteTask(context.Background(), view.ID, f.seeker.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotAccepted)
}

func TestCompleteTask_DoubleCompleteFails(t *testing.T) {
	f := newFixture(t)
	view := f.createTask(t, "Fix sink", "plumbing", 300, "")
	app, err := f.uc.Apply(context.Background(), view.ID, f.worker.ID, ApplyInput{})
	require.NoError(t, err)
	_, err = f.uc.AcceptApplication(context.Background(), view.ID, app.ID, f.seeker.ID)
	require.NoError(t, err)

	_, err = f.uc.CompleteTask(context.Background(), view.ID, f.seeker.ID)
	require.NoError(t, err)

	_, err = f.uc.CompleteTask(context.Background(), view.ID, f.seeker.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotAccepted)

	worker := f.state.users[f.worker.ID]
	assert.Equal(t, 1, worker.TasksCompleted)
}

func TestCompleteTask_NonOwnerForbidden(t *testing.T) {
	f := newFixture(t)
	view := f.createTask(t, "Fix sink", "plumbing", 300, "")
	app, err := f.uc.Apply(context.Background(), view.ID, f.worker.ID, ApplyInput{})
	require.NoError(t, err)
	_, err = f.uc.AcceptApplication(context.Background(), view.ID, app.ID, f.seeker.ID)
	require.NoError(t, err)

	_, err = f.uc.CompleteTask(context.Background(), view.ID, f.worker.ID)
	assert.ErrorIs(t, err, domain.ErrNotTaskOwner)
}

func TestListTasks_CategoryFilterIsCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	f.createTask(t, "Fix sink", "Plumbing", 300, "")
	f.createTask(t, "Clean flat", "cleaning", 200, "")

	views, err := f.uc.ListTasks(context.Background(), repository.TaskFilter{Category: "plumbing"})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Fix sink", views[0].Title)
}

func TestListTasks_SearchMatchesTitleSubstring(t *testing.T) {
	f := newFixture(t)
	f.createTask(t, "Kitchen tap leaking badly", "plumbing", 300, "")
	f.createTask(t, "Clean flat", "cleaning", 200, "")

	views, err := f.uc.ListTasks(context.Background(), repository.TaskFilter{Search: "leak"})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Kitchen tap leaking badly", views[0].Title)
}

func TestListTasks_NewestFirst(t *testing.T) {
	f := newFixture(t)
	f.createTask(t, "First", "misc", 100, "")
	f.createTask(t, "Second", "misc", 100, "")

	views, err := f.uc.ListTasks(context.Background(), repository.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Second", views[0].Title)
	assert.Equal(t, "First", views[1].Title)
}

func TestListTasks_StatusAndUrgencyFilters(t *testing.T) {
	f := newFixture(t)
	urgent := f.createTask(t, "Burst pipe", "plumbing", 400, "EMERGENCY")
	f.createTask(t, "Clean flat", "cleaning", 200, "")

	views, err := f.uc.ListTasks(context.Background(), repository.TaskFilter{Urgency: "emergency"})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, urgent.ID, views[0].ID)

	views, err = f.uc.ListTasks(context.Background(), repository.TaskFilter{Status: "open"})
	require.NoError(t, err)
	assert.Len(t, views, 2)
}

func TestListAppliedTasks(t *testing.T) {
	f := newFixture(t)
	first := f.createTask(t, "Fix sink", "plumbing", 300, "")
	second := f.createTask(t, "Clean flat", "cleaning", 200, "")

	_, err := f.uc.Apply(context.Background(), first.ID, f.worker.ID, ApplyInput{})
	require.NoError(t, err)
	_, err = f.uc.Apply(context.Background(), second.ID, f.worker.ID, ApplyInput{})
	require.NoError(t, err)

	views, err := f.uc.ListAppliedTasks(context.Background(), f.worker.ID)
	require.NoError(t, err)
	assert.Len(t, views, 2)

	views, err = f.uc.ListAppliedTasks(context.Background(), f.other.ID)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestListTasksByCreator_UnknownUser(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.ListTasksByCreator(context.Background(), "no-such-user")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRateTask(t *testing.T) {
	f := newFixture(t)
	view := f.createTask(t, "Fix sink", "plumbing", 300, "")
	app, err := f.uc.Apply(context.Background(), view.ID, f.worker.ID, ApplyInput{})
	require.NoError(t, err)
	_, err = f.uc.AcceptApplication(context.Background(), view.ID, app.ID, f.seeker.ID)
	require.NoError(t, err)
	_, err = f.uc.CompleteTask(context.Background(), view.ID, f.seeker.ID)
	require.NoError(t, err)

	rating, err := f.uc.RateTask(context.Background(), view.ID, f.seeker.ID, 4, "solid work")
	require.NoError(t, err)
	assert.Equal(t, f.worker.ID, rating.GivenTo)

	worker := f.state.users[f.worker.ID]
	require.NotNil(t, worker.Rating)
	assert.InDelta(t, 4.0, *worker.Rating, 0.001)

	_, err = f.uc.RateTask(context.Background(), view.ID, f.seeker.ID, 5, "")
	assert.ErrorIs(t, err, domain.ErrDuplicateRating)
}

func TestRateTask_RequiresCompletedStatus(t *testing.T) {
	f := newFixture(t)
	view := f.createTask(t, "Fix sink", "plumbing", 300, "")

	_, err := f.uc.RateTask(context.Background(), view.ID, f.seeker.ID, 5, "")
	assert.ErrorIs(t, err, domain.ErrTaskNotCompleted)
}

func TestRateTask_StarsOutOfRange(t *testing.T) {
	f := newFixture(t)
	view := f.createTask(t, "Fix sink", "plumbing", 300, "")
	app, err := f.uc.Apply(context.Background(), view.ID, f.worker.ID, ApplyInput{})
	require.NoError(t, err)
	_, err = f.uc.AcceptApplication(context.Background(), view.ID, app.ID, f.seeker.ID)
	require.NoError(t, err)
	_, err = f.uc.CompleteTask(context.Background(), view.ID, f.seeker.ID)
	require.NoError(t, err)

	_, err = f.uc.RateTask(context.Background(), view.ID, f.seeker.ID, 6, "")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

// Walks the whole lifecycle the way the API would: post, two bids,
// accept one, complete, rate.
func TestLifecycle_EndToEnd(t *testing.T) {
	f := newFixture(t)

	view := f.createTask(t, "Kitchen tap leaking badly", "plumbing", 300, "URGENT")
	assert.Equal(t, domain.TaskStatusOpen, view.Status)

	winner, err := f.uc.Apply(context.Background(), view.ID, f.worker.ID, ApplyInput{ProposedBudget: 250})
	require.NoError(t, err)
	_, err = f.uc.Apply(context.Background(), view.ID, f.other.ID, ApplyInput{})
	require.NoError(t, err)

	accepted, err := f.uc.AcceptApplication(context.Background(), view.ID, winner.ID, f.seeker.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusAccepted, accepted.Status)
	require.NotNil(t, accepted.AcceptedWorker)
	assert.Equal(t, f.worker.ID, *accepted.AcceptedWorker)

	completed, err := f.uc.CompleteTask(context.Background(), view.ID, f.seeker.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusCompleted, completed.Status)
	assert.Equal(t, 1, f.state.users[f.worker.ID].TasksCompleted)

	// The accepted-worker invariant holds through the whole run.
	final, err := f.uc.GetTask(context.Background(), view.ID)
	require.NoError(t, err)
	require.NotNil(t, final.AcceptedWorker)
	accepted0 := 0
	for _, app := range final.Applications {
		if app.Status == domain.ApplicationStatusAccepted {
			accepted0++
		} else {
			assert.Equal(t, domain.ApplicationStatusRejected, app.Status)
		}
	}
	assert.Equal(t, 1, accepted0)
}
