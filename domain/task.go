package domain

import (
	"strings"
	"time"
)

// TaskStatus tracks a task through its lifecycle. Status only moves
// forward: OPEN -> ACCEPTED -> COMPLETED.
type TaskStatus string

const (
	TaskStatusOpen      TaskStatus = "OPEN"
	TaskStatusAccepted  TaskStatus = "ACCEPTED"
	TaskStatusCompleted TaskStatus = "COMPLETED"
)

// Urgency is an informational priority tag; it does not affect scheduling.
type Urgency string

const (
	UrgencyNormal    Urgency = "NORMAL"
	UrgencyUrgent    Urgency = "URGENT"
	UrgencyEmergency Urgency = "EMERGENCY"
)

// ParseUrgency validates a free-text urgency string. An empty string
// defaults to NORMAL; anything else unrecognized is rejected.
func ParseUrgency(raw string) (Urgency, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return UrgencyNormal, nil
	}
	switch Urgency(strings.ToUpper(trimmed)) {
	case UrgencyNormal:
		return UrgencyNormal, nil
	case UrgencyUrgent:
		return UrgencyUrgent, nil
	case UrgencyEmergency:
		return UrgencyEmergency, nil
	default:
		return "", ErrInvalidUrgency
	}
}

// Location pins a task to a place.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// Task represents a posted job.
type Task struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	Budget         int        `json:"budget"`
	Urgency        Urgency    `json:"urgency"`
	Status         TaskStatus `json:"status"`
	Location       *Location  `json:"location,omitempty"`
	CreatedBy      string     `json:"created_by"`
	AcceptedWorker *string    `json:"accepted_worker"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (t *Task) IsOpen() bool {
	return t != nil && t.Status == TaskStatusOpen
}

// OwnedBy reports whether the given user created this task.
func (t *Task) OwnedBy(userID string) bool {
	return t != nil && userID != "" && t.CreatedBy == userID
}
