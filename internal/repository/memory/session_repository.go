package memory

import (
	"time"

	"ai-dashboard-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Default expiration of 1 hour, purge sweep every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.UserID, session, cache.DefaultExpiration)
}

// GetOrCreate returns the user's session, initializing the default
// state on first access.
func (r *SessionRepository) GetOrCreate(userID string) *store.Session {
	if x, found := r.cache.Get(userID); found {
		return x.(*store.Session)
	}
	s := store.NewSession(userID)
	r.cache.Set(userID, s, cache.DefaultExpiration)
	return s
}

func (r *SessionRepository) Get(userID string) (*store.Session, bool) {
	if x, found := r.cache.Get(userID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(userID string) {
	r.cache.Delete(userID)
}
