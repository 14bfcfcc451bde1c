// Package auth keeps the backend's access token in an encrypted session cookie.
package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
)

const (
	cookieName = "tablefinder_session"
	sessionTTL = 14 * 24 * time.Hour
)

const (
	RoleCustomer = "customer"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

type Store struct {
	sc *securecookie.SecureCookie
}

type ctxKey string

const sessionKey ctxKey = "session"

func NewStore(hashKey, blockKey []byte) *Store {
	sc := securecookie.New(hashKey, blockKey)
	// keep cookie small and secure
	sc.MaxAge(int(sessionTTL.Seconds()))
	return &Store{sc: sc}
}

// Session is what a logged-in browser carries between requests.
type Session struct {
	Username string
	Role     string
	Token    string
}

func (s Session) HasRole(roles ...string) bool {
	for _, r := range roles {
		if strings.EqualFold(s.Role, r) {
			return true
		}
	}
	return false
}

func (s *Store) SetSession(w http.ResponseWriter, r *http.Request, sess Session) error {
	encoded, err := s.sc.Encode(cookieName, sess)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
		MaxAge:   int(sessionTTL.Seconds()),
	})
	return nil
}

func (s *Store) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

func (s *Store) GetSession(r *http.Request) (Session, bool) {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return Session{}, false
	}
	var sess Session
	if err := s.sc.Decode(cookieName, c.Value, &sess); err != nil {
		return Session{}, false
	}
	if sess.Token == "" {
		return Session{}, false
	}
	return sess, true
}

// RequireAuth rejects requests without a valid session with 401.
func (s *Store) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.GetSession(r)
		if !ok {
			deny(w, http.StatusUnauthorized, "Please log in.")
			return
		}
		ctx := context.WithValue(r.Context(), sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole must run inside RequireAuth.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := SessionFromContext(r.Context())
			if !ok {
				deny(w, http.StatusUnauthorized, "Please log in.")
				return
			}
			if !sess.HasRole(roles...) {
				deny(w, http.StatusForbidden, "You do not have access to this page.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func SessionFromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(sessionKey).(Session)
	return sess, ok
}

func deny(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
