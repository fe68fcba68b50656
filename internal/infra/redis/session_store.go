package redis

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"trivia-quiz-service/internal/app"
)

// markerTimeout bounds each liveness marker write.
const markerTimeout = 500 * time.Millisecond

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Sessions own timers and subscriber channels, so they stay in a local map;
// Redis only carries a liveness marker per session (quiz:session:{id}) that
// operators can count across instances. Marker writes run in the background
// and never block lookups.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.Session
	pending  sync.WaitGroup
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.Session),
	}
}

func (s *SessionStore) Save(session *app.Session) {
	s.mu.Lock()
	s.sessions[session.ID()] = session
	s.mu.Unlock()

	key := s.key(session.ID())
	s.marker(func(ctx context.Context) error {
		return s.client.Set(ctx, key, "1", s.ttl).Err()
	})
}

func (s *SessionStore) Get(sessionID string) (*app.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	return session, ok
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	key := s.key(sessionID)
	s.marker(func(ctx context.Context) error {
		return s.client.Del(ctx, key).Err()
	})
}

func (s *SessionStore) marker(op func(ctx context.Context) error) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), markerTimeout)
		defer cancel()
		if err := op(ctx); err != nil {
			log.Printf("session marker: %v", err)
		}
	}()
}

func (s *SessionStore) key(sessionID string) string {
	return "quiz:session:" + sessionID
}
