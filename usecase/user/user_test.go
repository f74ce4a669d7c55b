package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaamsetu/backend/domain"
)

type stubUserRepo struct {
	users map[string]domain.User
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *stubUserRepo) GetByPhone(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.users[user.ID] = *user
	return user, nil
}

type stubRatingRepo struct {
	ratings []domain.Rating
}

func (r *stubRatingRepo) Create(_ context.Context, rating *domain.Rating) (*domain.Rating, error) {
	r.ratings = append(r.ratings, *rating)
	return rating, nil
}

func (r *stubRatingRepo) ListByReceiver(_ context.Context, userID string) ([]domain.Rating, error) {
	var out []domain.Rating
	for _, rating := range r.ratings {
		if rating.GivenTo == userID {
			out = append(out, rating)
		}
	}
	return out, nil
}

func TestGetUser(t *testing.T) {
	rating := 4.5
	users := &stubUserRepo{users: map[string]domain.User{
		"worker-1": {ID: "worker-1", Name: "Bilal", Role: domain.RoleWorker, Rating: &rating, TasksCompleted: 3},
	}}
	ratings := &stubRatingRepo{ratings: []domain.Rating{
		{ID: "r1", TaskID: "t1", GivenTo: "worker-1", Stars: 4},
		{ID: "r2", TaskID: "t2", GivenTo: "worker-1", Stars: 5},
		{ID: "r3", TaskID: "t3", GivenTo: "someone-else", Stars: 1},
	}}

	profile, err := New(users, ratings, nil).GetUser(context.Background(), "worker-1")
	require.NoError(t, err)
	assert.Equal(t, "Bilal", profile.Name)
	assert.Equal(t, 3, profile.TasksCompleted)
	require.Len(t, profile.Ratings, 2)
}

func TestGetUser_NotFound(t *testing.T) {
	users := &stubUserRepo{users: map[string]domain.User{}}
	_, err := New(users, &stubRatingRepo{}, nil).GetUser(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetUser_NoRatingsYieldsEmptyList(t *testing.T) {
	users := &stubUserRepo{users: map[string]domain.User{
		"worker-1": {ID: "worker-1", Name: "Bilal"},
	}}
	profile, err := New(users, &stubRatingRepo{}, nil).GetUser(context.Background(), "worker-1")
	require.NoError(t, err)
	assert.NotNil(t, profile.Ratings)
	assert.Empty(t, profile.Ratings)
}
