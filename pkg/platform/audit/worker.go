package audit

import (
	"context"
	"log/slog"
	"time"
)

// Worker drains the outbox into a downstream publisher on a fixed cadence.
// Rows stay pending when publishing fails and are retried next tick.
type Worker struct {
	outbox   *Outbox
	sink     Publisher
	interval time.Duration
	batch    int
	logger   *slog.Logger
}

func NewWorker(outbox *Outbox, sink Publisher, interval time.Duration, logger *slog.Logger) *Worker {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Worker{outbox: outbox, sink: sink, interval: interval, batch: 100, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.drainOnce(ctx); err != nil {
				w.logger.Error("outbox drain failed", "error", err)
			}
		}
	}
}

func (w *Worker) drainOnce(ctx context.Context) error {
	pending, err := w.outbox.drainBatch(ctx, w.batch)
	if err != nil {
		return err
	}
	for _, entry := range pending {
		if err := w.sink.Emit(ctx, entry.event); err != nil {
			w.logger.Warn("publish outbox entry failed, will retry",
				"entry_id", entry.id, "action", entry.event.Action, "error", err)
			continue
		}
		if err := w.outbox.markPublished(ctx, entry.id); err != nil {
			return err
		}
	}
	return nil
}
