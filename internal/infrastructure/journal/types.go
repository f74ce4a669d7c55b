package journal

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Entry is one journaled lifecycle event. Entries are append-only and
// keyed chronologically, so a cursor walk yields them oldest first.
type Entry struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	ActorID   string          `json:"actor_id"`
	SubjectID string          `json:"subject_id"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp time.Time       `json:"timestamp"`

	bucketKey []byte
}

func (e *Entry) normalize() {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
}
