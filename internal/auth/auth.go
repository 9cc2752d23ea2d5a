// Package auth carries the signed-in operator through request contexts.
// There is no real authentication behind it: the session is built once at
// startup from configuration and injected with Middleware.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"triage-chat/internal/model"
)

// ErrNoSession is returned by FromContext when the request did not pass
// through Middleware.
var ErrNoSession = errors.New("auth: no session in context; wrap the handler with auth.Middleware")

// Session is the current user plus what to do on logout.
type Session struct {
	user     *model.User
	onLogout func(ctx context.Context)
}

// NewSession builds a session. A nil onLogout only logs the call.
func NewSession(user *model.User, onLogout func(ctx context.Context)) *Session {
	if onLogout == nil {
		onLogout = func(ctx context.Context) {
			slog.InfoContext(ctx, "Logout requested; no session backend configured")
		}
	}
	return &Session{user: user, onLogout: onLogout}
}

// User returns a copy of the current user, or nil when nobody is signed in.
func (s *Session) User() *model.User {
	if s == nil || s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) Logout(ctx context.Context) {
	s.onLogout(ctx)
}

type ctxKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored by Middleware or WithSession.
func FromContext(ctx context.Context) (*Session, error) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	if !ok || s == nil {
		return nil, ErrNoSession
	}
	return s, nil
}

// Middleware attaches s to every request.
func Middleware(s *Session) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}
