package kafka

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"go-timeoff/internal/shared/contextutil"
)

// Recorder turns domain events into outbox rows inside a caller-owned
// transaction. Services depend on the RecordTx shape rather than on this
// package directly.
type Recorder struct {
	repo OutboxRepository
}

func NewRecorder(repo OutboxRepository) *Recorder {
	return &Recorder{repo: repo}
}

func (r *Recorder) RecordTx(ctx context.Context, tx *sql.Tx, topic, aggregateType, aggregateID, eventType string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return r.repo.WithTx(tx).Create(ctx, OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       body,
		Status:        OutboxStatusPending,
	})
}
