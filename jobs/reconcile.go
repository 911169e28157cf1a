package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akinmiday/marketing-calc/internal/invoices"
	"github.com/akinmiday/marketing-calc/internal/receipts"
)

// Reconciler repairs stored snapshots that no longer match what the
// engines compute from the saved inputs.
type Reconciler struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewReconciler constructs a Reconciler instance.
func NewReconciler(pool *pgxpool.Pool, logger *slog.Logger) *Reconciler {
	return &Reconciler{pool: pool, logger: logger}
}

// HandleTask processes TaskSnapshotReconcile tasks.
func (r *Reconciler) HandleTask(ctx context.Context, t *asynq.Task) error {
	var payload SnapshotReconcilePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	if !payload.InvoicesOnly {
		repaired, err := receipts.ReconcileSnapshots(ctx, r.pool)
		if err != nil {
			r.logger.Error("reconcile receipts", slog.Any("error", err))
			return err
		}
		r.logger.Info("reconciled receipt snapshots", slog.Int("repaired", repaired))
	}
	if !payload.ReceiptsOnly {
		repaired, err := invoices.ReconcileSnapshots(ctx, r.pool)
		if err != nil {
			r.logger.Error("reconcile invoices", slog.Any("error", err))
			return err
		}
		r.logger.Info("reconciled invoice snapshots", slog.Int("repaired", repaired))
	}
	return nil
}
