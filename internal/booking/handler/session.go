package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const SessionHeader = "X-Session-ID"

// Sessions identifies visitors by a UUID held in a cookie. API clients may
// send the same value in X-Session-ID instead.
type Sessions struct {
	cookieName string
	ttl        time.Duration
}

func NewSessions(cookieName string, ttl time.Duration) *Sessions {
	return &Sessions{cookieName: cookieName, ttl: ttl}
}

// Peek returns the request's session ID without creating one.
func (s *Sessions) Peek(r *http.Request) string {
	if id := r.Header.Get(SessionHeader); validSessionID(id) {
		return id
	}
	if c, err := r.Cookie(s.cookieName); err == nil && validSessionID(c.Value) {
		return c.Value
	}
	return ""
}

// Ensure returns the request's session ID, issuing a new cookie when the
// request carries none. The cookie is refreshed so it outlives the draft.
func (s *Sessions) Ensure(w http.ResponseWriter, r *http.Request) string {
	if id := r.Header.Get(SessionHeader); validSessionID(id) {
		return id
	}

	id := s.Peek(r)
	if id == "" {
		id = uuid.NewString()
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func validSessionID(id string) bool {
	if id == "" {
		return false
	}
	parsed, err := uuid.Parse(id)
	return err == nil && parsed.Version() == 4 && parsed.String() == id
}
