package activity

import (
	"log/slog"
	"net/http"

	"teamdash/frontend/exports"
	sessioncontext "teamdash/frontend/shared/context"
	"teamdash/frontend/shared/nav"
	"teamdash/infrastructure/audit"
	"teamdash/infrastructure/sqlite"
)

const pageLimit = 50

// ActivityPageQueryHandler lists the workspace's audit trail and export history.
func ActivityPageQueryHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := sessioncontext.GetWorkspaceFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		rows, err := auditSvc.List(r.Context(), db, ws.ID, pageLimit)
		if err != nil {
			slog.Error("activity: list audit failed", slog.String("workspace_id", ws.ID), slog.Any("err", err))
			http.Error(w, "failed to load activity", http.StatusInternalServerError)
			return
		}
		runs, err := exports.ListExportRuns(r.Context(), db, ws.ID, pageLimit)
		if err != nil {
			slog.Error("activity: list exports failed", slog.String("workspace_id", ws.ID), slog.Any("err", err))
			http.Error(w, "failed to load activity", http.StatusInternalServerError)
			return
		}

		entries := make([]Entry, 0, len(rows))
		for _, row := range rows {
			entries = append(entries, toEntry(row))
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := ActivityPage(PageData{
			Nav:     nav.BuildTopNavData(sessioncontext.GetViewerFromContext(r.Context()), "activity"),
			Entries: entries,
			Exports: runs,
		}).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render activity", http.StatusInternalServerError)
			return
		}
	}
}
