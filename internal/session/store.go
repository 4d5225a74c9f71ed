package session

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"parkfront/internal/auth"
	"parkfront/internal/view"
)

const cookieName = "pf_session"

// Session is one visitor's view state plus bookkeeping for expiry.
// State and Admin are not safe for concurrent mutation; handlers hold the
// session lock for the duration of each action.
type Session struct {
	ID       string
	State    *view.State
	Admin    *view.AdminState
	LastSeen time.Time

	mu sync.Mutex
}

// Lock serializes actions on this visitor's state. Two simultaneous requests
// from one browser (double-click, second tab) run one after the other.
func (s *Session) Lock() { s.mu.Lock() }

func (s *Session) Unlock() { s.mu.Unlock() }

// Store keeps per-visitor sessions in memory, keyed by a uuid cookie.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{sessions: map[string]*Session{}, ttl: ttl}
}

// Get returns the visitor's session, creating one (and setting the cookie)
// on first contact. The user id is refreshed from the request so a login in
// another tab is picked up.
func (s *Store) Get(w http.ResponseWriter, r *http.Request, userID int) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sess *Session
	if cookie, err := r.Cookie(cookieName); err == nil {
		sess = s.sessions[cookie.Value]
	}
	if sess == nil {
		sess = &Session{
			ID:    uuid.NewString(),
			State: view.NewState(userID),
			Admin: view.NewAdminState(),
		}
		s.sessions[sess.ID] = sess
		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	if userID != 0 {
		sess.mu.Lock()
		sess.State.UserID = userID
		sess.mu.Unlock()
	}
	sess.LastSeen = time.Now()
	return sess
}

// UserID extracts the visitor's id: explicit user_id query first, then the
// access token cookie.
func UserID(r *http.Request, secret string) int {
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		var id int
		for _, c := range raw {
			if c < '0' || c > '9' {
				id = 0
				break
			}
			id = id*10 + int(c-'0')
		}
		if id != 0 {
			return id
		}
	}
	if token := auth.TokenFromRequest(r); token != "" {
		if claims, err := auth.ParseToken(token, secret); err == nil {
			return claims.UserID
		}
	}
	return 0
}

// Sweep drops sessions idle past the TTL. Runs from the cron scheduler.
func (s *Store) Sweep() {
	cutoff := time.Now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.LastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		log.Printf("Cron Job: removed %d expired UI sessions", removed)
	}
}

// Len reports the live session count.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
