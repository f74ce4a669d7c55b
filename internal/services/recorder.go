package services

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/kaamsetu/backend/internal/infrastructure/journal"
	"github.com/kaamsetu/backend/usecase"
)

// JournalRecorder persists lifecycle events into the local journal.
// It backs the usecase.EventRecorder port.
type JournalRecorder struct {
	store  *journal.Store
	logger *zap.Logger
}

func NewJournalRecorder(store *journal.Store, logger *zap.Logger) *JournalRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JournalRecorder{
		store:  store,
		logger: logger,
	}
}

func (r *JournalRecorder) Record(ctx context.Context, event usecase.Event) error {
	if r == nil || r.store == nil {
		return nil
	}

	var payload json.RawMessage
	if event.Payload != nil {
		raw, err := json.Marshal(event.Payload)
		if err != nil {
			r.logger.Warn("dropping unserializable event payload", zap.String("kind", event.Kind), zap.Error(err))
		} else {
			payload = raw
		}
	}

	return r.store.Append(journal.Entry{
		Kind:      event.Kind,
		ActorID:   event.ActorID,
		SubjectID: event.SubjectID,
		Payload:   payload,
	})
}
