package dashboard

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/blake2b"

	sessioncontext "teamdash/frontend/shared/context"
	"teamdash/frontend/shared/nav"
	"teamdash/team"
)

const basePath = "/team"

func redirectWithStatus(w http.ResponseWriter, r *http.Request, status string) {
	http.Redirect(w, r, basePath+"?status="+url.QueryEscape(status), http.StatusSeeOther)
}

func redirectWithError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, basePath+"?error="+url.QueryEscape(msg), http.StatusSeeOther)
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, basePath, http.StatusSeeOther)
}

func userIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid user id")
	}
	return id, nil
}

// DashboardPageQueryHandler renders charts, filters, the table and the add-user dialog.
func DashboardPageQueryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := sessioncontext.GetWorkspaceFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		data := PageData{
			Model:        ws.Snapshot(),
			Nav:          nav.BuildTopNavData(sessioncontext.GetViewerFromContext(r.Context()), "dashboard"),
			Status:       r.URL.Query().Get("status"),
			ErrorMessage: r.URL.Query().Get("error"),
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		if err := DashboardPage(data).Render(r.Context(), w); err != nil {
			slog.Error("dashboard: render failed", slog.Any("err", err))
			http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
			return
		}
	}
}

// FilterCommandHandler applies the name search and role filter. The page index is kept.
func FilterCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := sessioncontext.GetWorkspaceFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, "invalid form data")
			return
		}

		var role team.Role
		if raw := strings.TrimSpace(r.FormValue("role")); raw != "" {
			parsed, err := team.ParseRole(raw)
			if err != nil {
				redirectWithError(w, r, "unknown role filter")
				return
			}
			role = parsed
		}
		ws.SetFilter(r.FormValue("q"), role)
		redirectHome(w, r)
	}
}

func SortCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := sessioncontext.GetWorkspaceFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		column, ok := team.ParseColumn(chi.URLParam(r, "column"))
		if !ok || !column.Sortable() {
			http.Error(w, "column is not sortable", http.StatusBadRequest)
			return
		}
		ws.ToggleSort(column)
		redirectHome(w, r)
	}
}

func PageCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := sessioncontext.GetWorkspaceFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		switch chi.URLParam(r, "direction") {
		case "next":
			ws.NextPage()
		case "prev":
			ws.PrevPage()
		default:
			http.Error(w, "unknown page direction", http.StatusBadRequest)
			return
		}
		redirectHome(w, r)
	}
}

// DialogCommandHandler opens or closes the add-user dialog.
func DialogCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := sessioncontext.GetWorkspaceFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		switch chi.URLParam(r, "action") {
		case "open":
			ws.OpenCreate()
		case "close":
			ws.CloseCreate()
		default:
			http.Error(w, "unknown dialog action", http.StatusBadRequest)
			return
		}
		redirectHome(w, r)
	}
}

func CreateUserCommandHandler(rec ChangeRecorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := sessioncontext.GetWorkspaceFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, "invalid form data")
			return
		}

		form := team.CreateForm{
			Name:   r.FormValue("name"),
			Email:  r.FormValue("email"),
			Role:   team.Role(strings.TrimSpace(r.FormValue("role"))),
			Status: team.Status(strings.TrimSpace(r.FormValue("status"))),
		}
		change, err := ws.SubmitCreate(form)
		if err != nil {
			if errors.Is(err, team.ErrValidation) {
				// The workspace keeps the draft and message; the dialog renders them.
				redirectHome(w, r)
				return
			}
			slog.Error("dashboard: create user failed", slog.String("workspace_id", ws.ID), slog.Any("err", err))
			redirectWithError(w, r, "failed to add user")
			return
		}
		rec.Record(r.Context(), ws.ID, change)
		redirectWithStatus(w, r, "user added")
	}
}

func EditUserCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := sessioncontext.GetWorkspaceFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		id, err := userIDParam(r)
		if err != nil {
			redirectWithError(w, r, err.Error())
			return
		}
		if err := ws.BeginEdit(id); err != nil {
			if errors.Is(err, team.ErrAlreadyEditing) {
				redirectWithError(w, r, "finish editing the current row first")
				return
			}
			redirectWithError(w, r, err.Error())
			return
		}
		redirectHome(w, r)
	}
}

// ScratchCommandHandler updates one unsaved field of the row being edited.
// It answers 204 so inline edits do not reload the page.
func ScratchCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := sessioncontext.GetWorkspaceFromContext(r.Context())
		if !ok {
			http.Error(w, "workspace not found", http.StatusUnauthorized)
			return
		}
		id, err := userIDParam(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form data", http.StatusBadRequest)
			return
		}
		column, ok := team.ParseColumn(r.FormValue("field"))
		if !ok {
			http.Error(w, "unknown field", http.StatusBadRequest)
			return
		}
		if err := ws.SetScratch(id, column, r.FormValue("value")); err != nil {
			switch {
			case errors.Is(err, team.ErrNotEditing):
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, err.Error(), http.StatusBadRequest)
			}
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func SaveUserCommandHandler(rec ChangeRecorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := sessioncontext.GetWorkspaceFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		id, err := userIDParam(r)
		if err != nil {
			redirectWithError(w, r, err.Error())
			return
		}
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, "invalid form data")
			return
		}

		fields := make(map[team.Column]string)
		for _, c := range team.Columns {
			if !c.Editable() {
				continue
			}
			if values, present := r.PostForm[string(c)]; present && len(values) > 0 {
				fields[c] = values[0]
			}
		}

		change, err := ws.SaveEdit(id, fields)
		if err != nil {
			redirectWithError(w, r, err.Error())
			return
		}
		rec.Record(r.Context(), ws.ID, change)
		redirectWithStatus(w, r, "user updated")
	}
}

func CancelEditCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := sessioncontext.GetWorkspaceFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		ws.CancelEdit()
		redirectHome(w, r)
	}
}

// DeleteConfirmPageQueryHandler asks the user to confirm a delete.
func DeleteConfirmPageQueryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := sessioncontext.GetWorkspaceFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		id, err := userIDParam(r)
		if err != nil {
			redirectWithError(w, r, err.Error())
			return
		}
		u, found := ws.User(id)
		if !found {
			redirectHome(w, r)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		data := DeleteConfirmData{
			User: u,
			Nav:  nav.BuildTopNavData(sessioncontext.GetViewerFromContext(r.Context()), "dashboard"),
		}
		if err := DeleteConfirmPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render confirmation", http.StatusInternalServerError)
			return
		}
	}
}

func DeleteUserCommandHandler(rec ChangeRecorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := sessioncontext.GetWorkspaceFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		id, err := userIDParam(r)
		if err != nil {
			redirectWithError(w, r, err.Error())
			return
		}
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, "invalid form data")
			return
		}

		confirmed := r.FormValue("confirm") == "yes"
		change, err := ws.Delete(id, confirmed)
		if err != nil {
			if errors.Is(err, team.ErrConfirmationDeclined) {
				redirectHome(w, r)
				return
			}
			redirectWithError(w, r, err.Error())
			return
		}
		if change.Action == "" {
			redirectHome(w, r)
			return
		}
		rec.Record(r.Context(), ws.ID, change)
		redirectWithStatus(w, r, "user deleted")
	}
}

// ChartsJSONQueryHandler serves the role and status aggregates with a content ETag.
func ChartsJSONQueryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := sessioncontext.GetWorkspaceFromContext(r.Context())
		if !ok {
			http.Error(w, "workspace not found", http.StatusUnauthorized)
			return
		}
		m := ws.Snapshot()
		body, err := json.Marshal(ChartsResponse{
			Version:  m.Version,
			Total:    m.Total,
			Roles:    m.RoleCounts,
			Statuses: m.StatusCounts,
		})
		if err != nil {
			http.Error(w, "failed to encode charts", http.StatusInternalServerError)
			return
		}

		etag := ContentETag(body)
		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "no-cache")
		if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}
}

// ContentETag is a strong ETag derived from a BLAKE2b digest of body.
func ContentETag(body []byte) string {
	sum := blake2b.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}
