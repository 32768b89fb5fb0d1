package store

import (
	"context"
	"sync"
	"time"
)

type memory struct {
	mu       sync.RWMutex
	lastID   int64
	sessions map[int64]*GameSession
}

// NewMemory returns a Store that keeps sessions in process memory. Sessions
// are copied on the way in and out so callers never share a board.
func NewMemory() Store {
	return &memory{sessions: make(map[int64]*GameSession)}
}

func (m *memory) Create(ctx context.Context, s *GameSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastID++
	s.ID = m.lastID
	s.StartedAt = time.Now().UTC()
	m.sessions[s.ID] = s.Clone()
	return nil
}

func (m *memory) Get(ctx context.Context, id int64) (*GameSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s.Clone(), nil
	}
	return nil, ErrNotFound
}

func (m *memory) Update(ctx context.Context, s *GameSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.ID]; !ok {
		return ErrNotFound
	}
	m.sessions[s.ID] = s.Clone()
	return nil
}
