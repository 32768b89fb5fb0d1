package store

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/vancomm/sweeper/internal/mines"
)

type Sqlite struct {
	mu   sync.Mutex
	name string
	db   *sql.DB
}

func isLetter(c rune) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !isLetter(c) {
			return false
		}
	}
	return true
}

// Creates a new [Sqlite] store backed by table name. name may only contain
// Latin letters and underscores.
func NewSqlite(ctx context.Context, db *sql.DB, name string) (*Sqlite, error) {
	if !isLetters(name) {
		return nil, ErrBadName
	}

	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS `+name+` (
	game_session_id	INTEGER PRIMARY KEY AUTOINCREMENT,
	height			INTEGER NOT NULL,
	width			INTEGER NOT NULL,
	mine_count		INTEGER NOT NULL,
	status			INTEGER NOT NULL,
	state			BLOB NOT NULL,
	started_at		INTEGER NOT NULL,
	ended_at		INTEGER
);`)
	if err != nil {
		return nil, err
	}
	s := &Sqlite{name: name, db: db}
	return s, nil
}

func nullableMilli(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixMilli(), Valid: true}
}

func (s *Sqlite) Create(ctx context.Context, gs *GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := gs.Board.Bytes()
	if err != nil {
		return err
	}
	h, w, mc := gs.Board.Params().Unpack()
	startedAt := time.Now().UTC().Truncate(time.Millisecond)
	res, err := s.db.ExecContext(ctx, `
INSERT INTO `+s.name+` (height, width, mine_count, status, state, started_at, ended_at)
VALUES (?, ?, ?, ?, ?, ?, ?);`,
		h, w, mc, int(gs.Board.Status()), state, startedAt.UnixMilli(), nullableMilli(gs.EndedAt))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	gs.ID = id
	gs.StartedAt = startedAt
	return nil
}

// Retrieve a session from the store. If id is not present, [ErrNotFound] is
// returned.
func (s *Sqlite) Get(ctx context.Context, id int64) (*GameSession, error) {
	var (
		state     []byte
		startedAt int64
		endedAt   sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT state, started_at, ended_at FROM `+s.name+` WHERE game_session_id = ?;`,
		id).Scan(&state, &startedAt, &endedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	board, err := mines.DecodeBoard(state)
	if err != nil {
		return nil, err
	}
	gs := &GameSession{
		ID:        id,
		Board:     board,
		StartedAt: time.UnixMilli(startedAt).UTC(),
	}
	if endedAt.Valid {
		e := time.UnixMilli(endedAt.Int64).UTC()
		gs.EndedAt = &e
	}
	return gs, nil
}

func (s *Sqlite) Update(ctx context.Context, gs *GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := gs.Board.Bytes()
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
UPDATE `+s.name+`
SET status = ?, state = ?, ended_at = ?
WHERE game_session_id = ?;`,
		int(gs.Board.Status()), state, nullableMilli(gs.EndedAt), gs.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
