package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultIdleTimeout is how long an untouched session is kept in memory.
const DefaultIdleTimeout = 30 * time.Minute

// Store keeps sessions in memory, keyed by the browser cookie. Idle
// sessions are dropped when a new session is created.
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	idleTimeout time.Duration

	NewID func() string
	now   func() time.Time
}

func NewStore(idleTimeout time.Duration) *Store {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	return &Store{
		sessions:    make(map[string]*Session),
		idleTimeout: idleTimeout,
		NewID:       func() string { return uuid.New().String() },
		now:         time.Now,
	}
}

// Get returns the session for id, creating a fresh one when id is unknown.
// The second result is true when a new session was created.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if s, ok := st.sessions[id]; ok && id != "" {
		return s, false
	}

	st.evictLocked()

	s := New(st.NewID())
	s.now = st.now
	s.touch()
	st.sessions[s.ID] = s
	return s, true
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

func (st *Store) evictLocked() {
	cutoff := st.now().Add(-st.idleTimeout)
	for id, s := range st.sessions {
		if s.lastTouched().Before(cutoff) {
			delete(st.sessions, id)
		}
	}
}
