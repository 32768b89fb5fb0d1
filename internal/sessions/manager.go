package sessions

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/vancomm/sweeper/internal/journal"
	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/store"
)

// Manager applies player moves to stored sessions. Moves on the same session
// are serialized: each one loads the board, runs a single engine call and
// saves the result before the next one starts.
type Manager struct {
	logger  *slog.Logger
	store   store.Store
	journal journal.Journal

	rndMu sync.Mutex
	rnd   *rand.Rand

	locks keyedMutex
}

func NewManager(
	logger *slog.Logger,
	st store.Store,
	j journal.Journal,
	rnd *rand.Rand,
) *Manager {
	if j == nil {
		j = journal.Nop()
	}
	m := &Manager{
		logger:  logger,
		store:   st,
		journal: j,
		rnd:     rnd,
		locks:   keyedMutex{locks: make(map[int64]*refMutex)},
	}
	return m
}

func (m *Manager) newBoard(params mines.GameParams) (*mines.Board, error) {
	m.rndMu.Lock()
	defer m.rndMu.Unlock()
	return mines.New(params, m.rnd)
}

// NewGame starts a fresh session. Starting over is always a new session;
// existing ones are left as they are.
func (m *Manager) NewGame(ctx context.Context, params mines.GameParams) (*store.GameSession, error) {
	board, err := m.newBoard(params)
	if err != nil {
		return nil, err
	}
	session := &store.GameSession{Board: board}
	if err := m.store.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("unable to store game session: %w", err)
	}
	m.logger.Debug("game session created",
		slog.Int64("id", session.ID),
		slog.String("params", params.Seed()),
	)
	m.journal.Record(journal.Entry{
		GameSessionID: session.ID,
		Move:          journal.Create,
		Accepted:      true,
		Status:        board.Status(),
		Remaining:     board.RemainingMines(),
	})
	return session, nil
}

func (m *Manager) Fetch(ctx context.Context, id int64) (*store.GameSession, error) {
	return m.store.Get(ctx, id)
}

// Reveal opens x:y on session id. The returned bool reports whether the
// engine accepted the move; rejected moves are not written back.
func (m *Manager) Reveal(ctx context.Context, id int64, x, y int) (*store.GameSession, bool, error) {
	return m.apply(ctx, id, journal.Reveal, x, y, func(b *mines.Board) bool {
		_, ok := b.Reveal(x, y)
		return ok
	})
}

func (m *Manager) Flag(ctx context.Context, id int64, x, y int) (*store.GameSession, bool, error) {
	return m.apply(ctx, id, journal.Flag, x, y, func(b *mines.Board) bool {
		return b.ToggleFlag(x, y)
	})
}

func (m *Manager) apply(
	ctx context.Context,
	id int64,
	move journal.Move,
	x, y int,
	fn func(*mines.Board) bool,
) (*store.GameSession, bool, error) {
	unlock := m.locks.Lock(id)
	defer unlock()

	session, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}

	accepted := fn(session.Board)
	status := session.Board.Status()

	if accepted {
		if status.Terminal() && session.EndedAt == nil {
			endedAt := time.Now().UTC()
			session.EndedAt = &endedAt
			m.logger.Info("game session ended",
				slog.Int64("id", id),
				slog.String("status", status.String()),
			)
		}
		if err := m.store.Update(ctx, session); err != nil {
			return nil, false, fmt.Errorf("unable to update game session: %w", err)
		}
	}

	m.journal.Record(journal.Entry{
		GameSessionID: id,
		Move:          move,
		X:             x,
		Y:             y,
		Accepted:      accepted,
		Status:        status,
		Remaining:     session.Board.RemainingMines(),
	})

	return session, accepted, nil
}
