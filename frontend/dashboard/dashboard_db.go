package dashboard

import (
	"context"
	"log/slog"

	"teamdash/infrastructure/audit"
	"teamdash/infrastructure/metrics"
	"teamdash/infrastructure/sqlite"
	"teamdash/team"
)

// ChangeRecorder persists workspace mutations to the audit log and counts them.
type ChangeRecorder struct {
	DB      *sqlite.DB
	Audit   *audit.Service
	Metrics *metrics.Metrics
}

// Record never fails the request; audit problems are logged.
func (rec ChangeRecorder) Record(ctx context.Context, workspaceID string, change team.Change) {
	if change.Action == "" {
		return
	}
	rec.Metrics.ObserveMutation(change.Action)
	if rec.DB == nil || rec.Audit == nil {
		return
	}
	if err := rec.Audit.RecordChange(ctx, rec.DB, workspaceID, change); err != nil {
		slog.Error("dashboard: audit write failed",
			slog.String("workspace_id", workspaceID),
			slog.String("action", change.Action),
			slog.Int64("user_id", change.UserID),
			slog.Any("err", err))
	}
}
