package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/store"
)

var ErrNoSession = errors.New("no session")

// Session identifies the caller. It is passed explicitly to anything that
// talks to the backend on the caller's behalf.
type Session struct {
	Token  string     `json:"-"`
	UserID int64      `json:"user_id"`
	Role   store.Role `json:"role"`
}

func (s Session) IsAdmin() bool { return s.Role == store.RoleAdmin }

type ctxKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}

// FromRequest reads the bearer token and the X-User-ID header the admin UI
// forwards with each call. The admin role is granted only to a bearer equal
// to adminToken; a client-supplied role header is never trusted.
func FromRequest(r *http.Request, adminToken string) (Session, error) {
	auth := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		return Session{}, ErrNoSession
	}
	s := Session{Token: token, Role: store.RoleDecisionMaker}
	if v := r.Header.Get("X-User-ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Session{}, errors.New("invalid X-User-ID")
		}
		s.UserID = id
	}
	if adminToken != "" && subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) == 1 {
		s.Role = store.RoleAdmin
	}
	return s, nil
}

// Service returns the session the service uses for its own background calls.
func Service(token string) Session {
	return Session{Token: token, Role: store.RoleAdmin}
}
