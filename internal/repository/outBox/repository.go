package outBox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/tumbleweedd/frame_store/payment_service/internal/domain/models"
	"github.com/tumbleweedd/frame_store/payment_service/pkg/logger"
)

const messageSendLimit = 100

// outboxRow keeps payload as []byte so the driver buffer is copied on scan.
type outboxRow struct {
	ID          int       `db:"id"`
	EventUUID   uuid.UUID `db:"event_uuid"`
	AggregateID uuid.UUID `db:"aggregate_id"`
	EventType   string    `db:"event_type"`
	Payload     []byte    `db:"payload"`
	CreatedAt   time.Time `db:"created_at"`
}

type Repository struct {
	db *sqlx.DB

	log logger.Logger
}

func New(log logger.Logger, db *sqlx.DB) *Repository {
	return &Repository{db: db, log: log}
}

// Insert writes an event through exec so callers can keep it inside the
// transaction that produced the state change.
func (or *Repository) Insert(
	ctx context.Context,
	exec sqlx.ExecerContext,
	aggregateID uuid.UUID,
	eventType models.EventType,
	payload any,
) error {
	const op = "repository.outBox.Insert"

	eventUUID, err := uuid.NewUUID()
	if err != nil {
		or.log.Error(op, logger.String("error", err.Error()))
		return fmt.Errorf("%s: event_uuid generate error: %w", op, err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		or.log.Error(op, logger.String("error", err.Error()))
		return fmt.Errorf("%s: marshal payload: %w", op, err)
	}

	const outboxQuery = `INSERT INTO outbox (event_uuid, aggregate_id, event_type, payload) VALUES ($1, $2, $3, $4)`

	if _, err = exec.ExecContext(ctx, outboxQuery, eventUUID, aggregateID, string(eventType), body); err != nil {
		or.log.Error(op, logger.String("outbox insert error", err.Error()))
		return fmt.Errorf("%s: outbox insert error: %w", op, err)
	}

	return nil
}

func (or *Repository) FetchUnprocessedMessages(ctx context.Context) (messages []models.OutBoxMessage, err error) {
	const op = "repository.outBox.FetchUnprocessedMessages"

	const query = `
					SELECT id, event_uuid, aggregate_id, event_type, payload, created_at
						FROM outbox
						ORDER BY id
						LIMIT $1
					`

	var rows []outboxRow
	if err = or.db.SelectContext(ctx, &rows, query, messageSendLimit); err != nil {
		or.log.Error(op, logger.String("error", err.Error()))
		return nil, fmt.Errorf("%s: select: %w", op, err)
	}

	messages = make([]models.OutBoxMessage, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, models.OutBoxMessage{
			ID:          row.ID,
			EventUUID:   row.EventUUID,
			AggregateID: row.AggregateID,
			EventType:   row.EventType,
			Payload:     row.Payload,
			CreatedAt:   row.CreatedAt,
		})
	}

	return messages, nil
}

func (or *Repository) Delete(ctx context.Context, eventIDs []int) error {
	const op = "repository.outBox.Delete"

	if len(eventIDs) == 0 {
		return nil
	}

	const query = `DELETE FROM outbox WHERE id = ANY($1)`

	ids := make([]int64, 0, len(eventIDs))
	for _, id := range eventIDs {
		ids = append(ids, int64(id))
	}

	if _, err := or.db.ExecContext(ctx, query, pq.Array(ids)); err != nil {
		or.log.Error(op, logger.String("error", err.Error()))
		return fmt.Errorf("%s: execute statement: %w", op, err)
	}

	return nil
}
