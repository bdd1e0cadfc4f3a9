package storage

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/orostudio/spareparts/internal/models"
)

// SessionStore keeps order sessions in memory for the lifetime of the process
type SessionStore struct {
	sessions map[string]*models.OrderSession
	mu       sync.RWMutex
}

func New() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*models.OrderSession),
	}
}

// Create registers a new empty session under a random ID
func (s *SessionStore) Create() *models.OrderSession {
	session := models.NewOrderSession(uuid.NewString())
	s.Set(session.ID, session)
	return session
}

func (s *SessionStore) Get(sessionID string) (*models.OrderSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[sessionID]
	return session, exists
}

func (s *SessionStore) Set(sessionID string, session *models.OrderSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = session
}

func (s *SessionStore) GetAll() map[string]*models.OrderSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*models.OrderSession, len(s.sessions))
	for k, v := range s.sessions {
		result[k] = v
	}
	return result
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Len returns the number of live sessions
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// ExpireIdle removes sessions not used since cutoff and returns how many
// were removed
func (s *SessionStore) ExpireIdle(cutoff time.Time) int {
	expired := 0
	for id, session := range s.GetAll() {
		if session.LastActive().Before(cutoff) {
			s.Delete(id)
			expired++
		}
	}
	return expired
}

// Sweep expires sessions idle for longer than idle every interval until ctx
// is cancelled
func (s *SessionStore) Sweep(ctx context.Context, idle, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if n := s.ExpireIdle(now.Add(-idle)); n > 0 {
				slog.Info("Expired idle sessions", "count", n, "remaining", s.Len())
			}
		}
	}
}
