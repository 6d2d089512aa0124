package memory

import (
	"sync"
	"time"

	"ai-speechcoach-be/pkg/store"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// entry wraps a session with its own mutex so concurrent requests against
// the same session serialize instead of interleaving stale context tokens.
type entry struct {
	mu      sync.Mutex
	session *store.Session
}

type SessionRepository struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	// Expired sessions are purged every 10 minutes; the original never
	// reclaimed them at all.
	c := cache.New(ttl, 10*time.Minute)
	return &SessionRepository{
		cache: c,
		ttl:   ttl,
	}
}

// Create registers a new session and returns a snapshot of it.
func (r *SessionRepository) Create(userID string, mode store.Mode) store.Session {
	session := &store.Session{
		ID:     uuid.New().String(),
		UserID: userID,
		Mode:   mode,
	}
	r.cache.Set(session.ID, &entry{session: session}, cache.DefaultExpiration)
	return session.Clone()
}

// Get returns a deep-copied snapshot; callers never receive the stored
// reference. Reading a session refreshes its TTL.
func (r *SessionRepository) Get(sessionID string) (store.Session, bool) {
	x, found := r.cache.Get(sessionID)
	if !found {
		return store.Session{}, false
	}
	e := x.(*entry)

	e.mu.Lock()
	snapshot := e.session.Clone()
	e.mu.Unlock()

	r.cache.Set(sessionID, e, cache.DefaultExpiration)
	return snapshot, true
}

// Mutate runs fn on the live session under its per-session lock and returns
// a snapshot of the result. fn may issue blocking calls (a chat turn holds
// the lock across its backend call so same-session turns append in arrival
// order); unrelated sessions are unaffected. An error from fn is returned
// as-is.
func (r *SessionRepository) Mutate(sessionID string, fn func(s *store.Session) error) (store.Session, bool, error) {
	x, found := r.cache.Get(sessionID)
	if !found {
		return store.Session{}, false, nil
	}
	e := x.(*entry)

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := fn(e.session); err != nil {
		return store.Session{}, true, err
	}

	r.cache.Set(sessionID, e, cache.DefaultExpiration)
	return e.session.Clone(), true, nil
}

// Delete invalidates a session immediately.
func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
