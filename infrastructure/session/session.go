package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const CookieName = "X-Workspace-Token"

// DefaultTTL is how long an idle workspace and its cookie live.
const DefaultTTL = 12 * time.Hour

func WorkspaceCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   false,
	}
}

// NewToken returns a random workspace token.
func NewToken() string {
	return uuid.NewString()
}
