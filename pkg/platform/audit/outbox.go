package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Outbox persists events to postgres before they reach Kafka. The drain
// worker publishes pending rows and marks them; Kafka stays the consumer
// source of truth while the table guarantees nothing is lost across restarts.
type Outbox struct {
	db *sql.DB
}

func NewOutbox(db *sql.DB) *Outbox {
	return &Outbox{db: db}
}

// MigrateOutbox creates the outbox table.
func MigrateOutbox(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS activity_outbox (
			id UUID PRIMARY KEY,
			action TEXT NOT NULL,
			payload JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			published_at TIMESTAMPTZ
		)`)
	if err != nil {
		return fmt.Errorf("create activity_outbox: %w", err)
	}
	return nil
}

func (o *Outbox) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	_, err = o.db.ExecContext(ctx, `
		INSERT INTO activity_outbox (id, action, payload, created_at)
		VALUES ($1, $2, $3, $4)`,
		uuid.New(), string(event.Action), payload, event.Timestamp)
	if err != nil {
		return fmt.Errorf("insert outbox entry: %w", err)
	}
	return nil
}

type pendingEntry struct {
	id    uuid.UUID
	event Event
}

// drainBatch loads up to limit unpublished entries in insertion order.
func (o *Outbox) drainBatch(ctx context.Context, limit int) ([]pendingEntry, error) {
	rows, err := o.db.QueryContext(ctx, `
		SELECT id, payload FROM activity_outbox
		WHERE published_at IS NULL
		ORDER BY created_at
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query outbox: %w", err)
	}
	defer rows.Close()

	var pending []pendingEntry
	for rows.Next() {
		var (
			entry   pendingEntry
			payload []byte
		)
		if err := rows.Scan(&entry.id, &payload); err != nil {
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		if err := json.Unmarshal(payload, &entry.event); err != nil {
			return nil, fmt.Errorf("decode outbox row %s: %w", entry.id, err)
		}
		pending = append(pending, entry)
	}
	return pending, rows.Err()
}

func (o *Outbox) markPublished(ctx context.Context, id uuid.UUID) error {
	_, err := o.db.ExecContext(ctx,
		`UPDATE activity_outbox SET published_at = $1 WHERE id = $2`,
		time.Now(), id)
	return err
}
