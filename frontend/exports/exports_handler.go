package exports

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	sessioncontext "teamdash/frontend/shared/context"
	"teamdash/team"
)

// RosterCSVHandler exports every row of the current filtered and sorted view.
func RosterCSVHandler(rec Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := sessioncontext.GetWorkspaceFromContext(r.Context())
		if !ok {
			http.Error(w, "workspace not found", http.StatusUnauthorized)
			return
		}
		users := ws.Visible()
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=roster.csv")
		if err := writeRosterCSV(w, users); err != nil {
			slog.Error("roster csv export failed", slog.Any("err", err))
			http.Error(w, "failed to export csv", http.StatusInternalServerError)
			return
		}
		rec.record(r.Context(), ws.ID, ExportRosterCSV, len(users))
	}
}

func RosterPDFHandler(rec Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := sessioncontext.GetWorkspaceFromContext(r.Context())
		if !ok {
			http.Error(w, "workspace not found", http.StatusUnauthorized)
			return
		}
		users := ws.Visible()
		pdf, err := renderRosterPDF(users, time.Now())
		if err != nil {
			slog.Error("roster pdf export failed", slog.Any("err", err))
			http.Error(w, "failed to render pdf", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "inline; filename=roster.pdf")
		_, _ = w.Write(pdf)
		rec.record(r.Context(), ws.ID, ExportRosterPDF, len(users))
	}
}

func MemberCardPDFHandler(rec Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, u, ok := lookupUser(w, r)
		if !ok {
			return
		}
		pdf, err := renderMemberCardPDF(u, time.Now())
		if err != nil {
			slog.Error("member card render failed", slog.Int64("user_id", u.ID), slog.Any("err", err))
			http.Error(w, "failed to render card", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "inline; filename=card-"+MemberCode(u.ID)+".pdf")
		_, _ = w.Write(pdf)
		rec.record(r.Context(), ws.ID, ExportCardPDF, 1)
	}
}

func MemberQRHandler(rec Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, u, ok := lookupUser(w, r)
		if !ok {
			return
		}
		img, err := renderQRPNG(contactPayload(u), 320)
		if err != nil {
			http.Error(w, "failed to render qr", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(img)
		rec.record(r.Context(), ws.ID, ExportQRPNG, 1)
	}
}

func lookupUser(w http.ResponseWriter, r *http.Request) (*team.Workspace, team.User, bool) {
	ws, ok := sessioncontext.GetWorkspaceFromContext(r.Context())
	if !ok {
		http.Error(w, "workspace not found", http.StatusUnauthorized)
		return nil, team.User{}, false
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return nil, team.User{}, false
	}
	u, found := ws.User(id)
	if !found {
		http.Error(w, "user not found", http.StatusNotFound)
		return nil, team.User{}, false
	}
	return ws, u, true
}
