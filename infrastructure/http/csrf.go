package http

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/blake2b"

	sessioncontext "teamdash/frontend/shared/context"
	"teamdash/frontend/shared/html"
)

const csrfCookieName = html.CSRFCookieName

// csrfSigner derives a workspace's form token from the workspace id, so a token
// minted for one browser's workspace is useless against another.
type csrfSigner struct {
	key []byte
}

func newCSRFSigner() csrfSigner {
	key := make([]byte, 32)
	_, _ = rand.Read(key)
	return csrfSigner{key: key}
}

func (cs csrfSigner) tokenFor(workspaceID string) string {
	mac, err := blake2b.New256(cs.key)
	if err != nil {
		// Only possible for keys over 64 bytes.
		panic(err)
	}
	mac.Write([]byte(workspaceID))
	return hex.EncodeToString(mac.Sum(nil))
}

// CSRFMiddleware runs after WorkspaceMiddleware. It keeps the X-CSRF-Token cookie
// in step with the caller's workspace and, on unsafe methods, requires the same
// value back in the X-CSRF-Token header or the _csrf form field.
func (s *Server) CSRFMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, ok := sessioncontext.GetWorkspaceFromContext(r.Context())
		if !ok {
			http.Error(w, "workspace missing", http.StatusInternalServerError)
			return
		}
		token := s.csrf.tokenFor(ws.ID)
		if c, err := r.Cookie(csrfCookieName); err != nil || c.Value != token {
			setCSRFCookie(w, token)
		}
		if isSafeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		provided := strings.TrimSpace(r.Header.Get("X-CSRF-Token"))
		if provided == "" {
			provided = strings.TrimSpace(r.FormValue("_csrf"))
		}

		if provided == "" || subtle.ConstantTimeCompare([]byte(token), []byte(provided)) != 1 {
			slog.Warn("csrf token rejected",
				slog.String("workspace_id", ws.ID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Bool("token_present", provided != ""),
				slog.String("request_id", middleware.GetReqID(r.Context())))
			s.Metrics.ObserveCSRFRejection()
			http.Error(w, "invalid csrf token", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}

// The dashboard script reads this cookie, so it cannot be HttpOnly.
func setCSRFCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: false,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	})
}
