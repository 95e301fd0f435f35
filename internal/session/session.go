package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"
)

var ErrNotFound = errors.New("session not found")

// Session is the explicit per-session state struct. Everything that is
// scoped to one browser session lives here, never in ambient globals: the
// resolved identity and the timed-activity controller with its exclusivity
// lock.
type Session struct {
	Token     string
	UserID    string
	Username  string // set only for credential-backed sessions
	Remote    bool   // true when the identity gates remote persistence
	CreatedAt time.Time

	Timer *Controller

	// mu serializes load-mutate-save cycles on this session's user record.
	// Without it, the countdown-expiry goroutine and an in-flight handler
	// could each load a copy, and the later save would drop the earlier
	// commit.
	mu sync.Mutex
}

// Lock takes the session's record mutex. Every path that loads the user
// record, mutates it and saves it back must hold this for the whole cycle.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session's record mutex.
func (s *Session) Unlock() { s.mu.Unlock() }

// Registry maps session tokens to live sessions. Sessions are ephemeral,
// in-memory only, and reconstructed fresh after a restart.
type Registry struct {
	mu       sync.RWMutex
	tick     time.Duration
	sessions map[string]*Session
}

// NewRegistry creates a registry whose sessions run their countdowns at the
// given tick interval (1s in production, shorter in tests).
func NewRegistry(tick time.Duration) *Registry {
	return &Registry{
		tick:     tick,
		sessions: make(map[string]*Session),
	}
}

// Create registers a new session for an identity and returns it.
func (r *Registry) Create(userID, username string, remote bool) *Session {
	s := &Session{
		Token:     newToken(),
		UserID:    userID,
		Username:  username,
		Remote:    remote,
		CreatedAt: time.Now().UTC(),
		Timer:     NewController(r.tick),
	}

	r.mu.Lock()
	r.sessions[s.Token] = s
	r.mu.Unlock()
	return s
}

// Get resolves a token to its session.
func (r *Registry) Get(token string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[token]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete drops a session, stopping any running countdown first so the
// goroutine does not outlive its owner.
func (r *Registry) Delete(token string) {
	r.mu.Lock()
	s, ok := r.sessions[token]
	delete(r.sessions, token)
	r.mu.Unlock()

	if ok {
		s.Timer.CancelActive()
	}
}

func newToken() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
