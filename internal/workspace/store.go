package workspace

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ErrNotFound is returned when a workspace expired or was closed.
var ErrNotFound = errors.New("workspace not found")

// Store keeps live workspaces in process memory, keyed by workspace ID.
// Chat handles are not serialisable, so this cannot live in Redis.
type Store struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewStore creates a store whose workspaces expire ttl after their last use.
// A ttl <= 0 keeps workspaces until they are closed.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &Store{
		cache: cache.New(ttl, time.Minute),
		ttl:   ttl,
	}
}

// Open creates and registers a fresh workspace for userID.
func (s *Store) Open(userID uint) *Workspace {
	ws := New(uuid.NewString(), userID)
	s.cache.Set(ws.ID, ws, s.ttl)
	return ws
}

// Get returns the workspace and extends its lifetime.
func (s *Store) Get(id string) (*Workspace, error) {
	x, found := s.cache.Get(id)
	if !found {
		return nil, ErrNotFound
	}
	ws := x.(*Workspace)
	s.cache.Set(id, ws, s.ttl)
	return ws, nil
}

// Close drops a workspace; closing an unknown id is a no-op.
func (s *Store) Close(id string) {
	s.cache.Delete(id)
}

// Len reports the number of live workspaces.
func (s *Store) Len() int {
	return s.cache.ItemCount()
}
