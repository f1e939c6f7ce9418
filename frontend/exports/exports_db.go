package exports

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"strconv"

	"github.com/uptrace/bun"

	"teamdash/infrastructure/sqlite"
	"teamdash/team"
)

var rosterHeader = []string{"id", "name", "email", "role", "status"}

func writeRosterCSV(w io.Writer, users []team.User) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(rosterHeader); err != nil {
		return err
	}
	for _, u := range users {
		record := []string{
			strconv.FormatInt(u.ID, 10),
			u.Name,
			u.Email,
			string(u.Role),
			string(u.Status),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func (rec Recorder) record(ctx context.Context, workspaceID, exportType string, rows int) {
	rec.Metrics.ObserveExport(exportType)
	if rec.DB == nil {
		return
	}
	if err := recordExportRun(ctx, rec.DB, workspaceID, exportType, rows); err != nil {
		slog.Error("record export run failed", slog.String("type", exportType), slog.Any("err", err))
	}
}

func recordExportRun(ctx context.Context, db *sqlite.DB, workspaceID, exportType string, rows int) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO export_runs (workspace_id, export_type, row_count, created_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)`, workspaceID, exportType, rows)
		return err
	})
}

// ListExportRuns returns the workspace's exports, newest first.
func ListExportRuns(ctx context.Context, db *sqlite.DB, workspaceID string, limit int) ([]ExportRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows := make([]ExportRun, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`
SELECT id, workspace_id, export_type, row_count,
       strftime('%d/%m/%Y %H:%M', created_at) AS created_at
FROM export_runs
WHERE workspace_id = ?
ORDER BY id DESC
LIMIT ?`, workspaceID, limit).Scan(ctx, &rows)
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
