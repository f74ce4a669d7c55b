package domain

import "time"

// ApplicationStatus is terminal once it leaves PENDING: exactly one
// application per task reaches ACCEPTED, every sibling is forced to
// REJECTED in the same transaction.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "PENDING"
	ApplicationStatusAccepted ApplicationStatus = "ACCEPTED"
	ApplicationStatusRejected ApplicationStatus = "REJECTED"
)

// Application represents one worker's bid on one task. At most one
// application exists per (task, worker) pair.
type Application struct {
	ID             string            `json:"id"`
	TaskID         string            `json:"task_id"`
	WorkerID       string            `json:"worker_id"`
	Message        string            `json:"message,omitempty"`
	ProposedBudget int               `json:"proposed_budget"`
	Status         ApplicationStatus `json:"status"`
	AppliedAt      time.Time         `json:"applied_at"`

	// Denormalized at read time so callers see the worker's current
	// name and rating, not a snapshot taken at apply time.
	WorkerName   string   `json:"worker_name,omitempty"`
	WorkerRating *float64 `json:"worker_rating,omitempty"`
}

func (a *Application) IsPending() bool {
	return a != nil && a.Status == ApplicationStatusPending
}
