package usecase

import "context"

// Event kinds journaled by the lifecycle flows.
const (
	EventUserRegistered       = "user_registered"
	EventTaskCreated          = "task_created"
	EventApplicationSubmitted = "application_submitted"
	EventApplicationAccepted  = "application_accepted"
	EventTaskCompleted        = "task_completed"
	EventRatingSubmitted      = "rating_submitted"
)

// Event describes a lifecycle transition worth journaling.
type Event struct {
	Kind      string
	ActorID   string
	SubjectID string
	Payload   interface{}
}

// EventRecorder persists lifecycle events. Recording is best-effort:
// callers log failures and never surface them to the request.
type EventRecorder interface {
	Record(ctx context.Context, event Event) error
}
