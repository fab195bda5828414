package dialogue

import (
	"context"
	"sync"
	"time"

	"roombook/models"
)

// MemorySessionStore keeps conversations in process memory. Used for tests
// and for running without Redis. Idle sessions are dropped lazily on access
// and by a background sweep.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*models.Conversation
	ttl      time.Duration
	now      func() time.Time
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	s := &MemorySessionStore{
		sessions: make(map[string]*models.Conversation),
		ttl:      ttl,
		now:      time.Now,
	}
	go s.sweep()
	return s
}

func (s *MemorySessionStore) Get(ctx context.Context, sessionID string) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	if s.now().Sub(conv.UpdatedAt) > s.ttl {
		delete(s.sessions, sessionID)
		return nil, nil
	}
	copied := *conv
	return &copied, nil
}

func (s *MemorySessionStore) Put(ctx context.Context, conv *models.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *conv
	s.sessions[conv.SessionID] = &copied
	return nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

func (s *MemorySessionStore) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		s.mu.Lock()
		for id, conv := range s.sessions {
			if s.now().Sub(conv.UpdatedAt) > s.ttl {
				delete(s.sessions, id)
			}
		}
		s.mu.Unlock()
	}
}
