package store

import (
	"context"
	"errors"
	"time"

	"github.com/vancomm/sweeper/internal/mines"
)

var (
	ErrBadName  = errors.New("bad name for store")
	ErrNotFound = errors.New("game session not found")
)

// GameSession is a board together with its bookkeeping. EndedAt is set once
// the board reaches a terminal status.
type GameSession struct {
	ID        int64
	Board     *mines.Board
	StartedAt time.Time
	EndedAt   *time.Time
}

func (s *GameSession) Clone() *GameSession {
	c := *s
	if s.Board != nil {
		c.Board = s.Board.Clone()
	}
	if s.EndedAt != nil {
		e := *s.EndedAt
		c.EndedAt = &e
	}
	return &c
}

// Store persists game sessions. Create assigns ID and StartedAt.
type Store interface {
	Create(ctx context.Context, s *GameSession) error
	Get(ctx context.Context, id int64) (*GameSession, error)
	Update(ctx context.Context, s *GameSession) error
}
