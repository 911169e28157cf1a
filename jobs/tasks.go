// Package jobs contains the asynq task definitions and worker runtime.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSnapshotReconcile recomputes stored result and totals snapshots
	// from their inputs and repairs drifted rows.
	TaskSnapshotReconcile = "snapshot:reconcile"
)

// SnapshotReconcilePayload scopes a reconcile run. The zero value means
// both record kinds.
type SnapshotReconcilePayload struct {
	ReceiptsOnly bool `json:"receipts_only,omitempty"`
	InvoicesOnly bool `json:"invoices_only,omitempty"`
}

// NewSnapshotReconcileTask constructs an asynq task.
func NewSnapshotReconcileTask(payload SnapshotReconcilePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSnapshotReconcile, data), nil
}
