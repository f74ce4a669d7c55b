package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUrgency(t *testing.T) {
	cases := []struct {
		in   string
		want Urgency
	}{
		{"", UrgencyNormal},
		{"  ", UrgencyNormal},
		{"normal", UrgencyNormal},
		{"Urgent", UrgencyUrgent},
		{"EMERGENCY", UrgencyEmergency},
	}
	for _, tc := range cases {
		got, err := ParseUrgency(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}

	_, err := ParseUrgency("ASAP")
	assert.ErrorIs(t, err, ErrInvalidUrgency)
}

func TestParseRole(t *testing.T) {
	got, err := ParseRole("seeker")
	require.NoError(t, err)
	assert.Equal(t, RoleSeeker, got)

	got, err = ParseRole(" WORKER ")
	require.NoError(t, err)
	assert.Equal(t, RoleWorker, got)

	_, err = ParseRole("admin")
	assert.ErrorIs(t, err, ErrInvalidRole)
	_, err = ParseRole("")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestTaskOwnedBy(t *testing.T) {
	task := &Task{CreatedBy: "user-1"}
	assert.True(t, task.OwnedBy("user-1"))
	assert.False(t, task.OwnedBy("user-2"))
	assert.False(t, task.OwnedBy(""))

	var nilTask *Task
	assert.False(t, nilTask.OwnedBy("user-1"))
	assert.False(t, nilTask.IsOpen())
}

func TestRatingValidStars(t *testing.T) {
	for stars := 1; stars <= 5; stars++ {
		assert.True(t, (&Rating{Stars: stars}).ValidStars())
	}
	assert.False(t, (&Rating{Stars: 0}).ValidStars())
	assert.False(t, (&Rating{Stars: 6}).ValidStars())
}

func TestDomainErrorClassification(t *testing.T) {
	assert.True(t, IsDomainError(ErrTaskNotFound, ErrCodeNotFound))
	assert.True(t, IsDomainError(ErrTaskNotOpen, ErrCodeConflict))
	assert.True(t, IsDomainError(ErrNotTaskOwner, ErrCodeForbidden))
	assert.True(t, IsDomainError(ErrInvalidCredentials, ErrCodeUnauthorized))
	assert.False(t, IsDomainError(ErrTaskNotFound, ErrCodeConflict))
	assert.False(t, IsDomainError(nil, ErrCodeNotFound))

	wrapped := WrapError(ErrCodeInternal, "query failed", ErrTaskNotFound)
	assert.True(t, IsDomainError(wrapped, ErrCodeInternal))
	assert.ErrorIs(t, wrapped, ErrTaskNotFound)
}
