package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/store"
)

type GameSession struct {
	GameSessionID int64      `db:"game_session_id"`
	Height        int32      `db:"height"`
	Width         int32      `db:"width"`
	MineCount     int32      `db:"mine_count"`
	Status        int16      `db:"status"`
	State         []byte     `db:"state"`
	StartedAt     time.Time  `db:"started_at"`
	EndedAt       *time.Time `db:"ended_at"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

func (gs GameSession) Decode() (*store.GameSession, error) {
	board, err := mines.DecodeBoard(gs.State)
	if err != nil {
		return nil, err
	}
	session := &store.GameSession{
		ID:        gs.GameSessionID,
		Board:     board,
		StartedAt: gs.StartedAt,
		EndedAt:   gs.EndedAt,
	}
	return session, nil
}

func (q *Queries) CreateGameSession(
	ctx context.Context, board *mines.Board, endedAt *time.Time,
) (*GameSession, error) {
	state, err := board.Bytes()
	if err != nil {
		return nil, err
	}
	h, w, mc := board.Params().Unpack()
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_session (
			height, width, mine_count, status, state, ended_at
		)
		VALUES (
			@height, @width, @mine_count, @status, @state, @ended_at
		)
		RETURNING *;`,
		pgx.NamedArgs{
			"height":     h,
			"width":      w,
			"mine_count": mc,
			"status":     int16(board.Status()),
			"state":      state,
			"ended_at":   endedAt,
		},
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

func (q *Queries) FetchGameSession(ctx context.Context, gameSessionID int64) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM game_session WHERE game_session_id = $1",
		gameSessionID,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

func (q *Queries) UpdateGameSession(
	ctx context.Context, gameSessionID int64, board *mines.Board, endedAt *time.Time,
) (*GameSession, error) {
	state, err := board.Bytes()
	if err != nil {
		return nil, err
	}
	rows, _ := q.db.Query(
		ctx,
		`UPDATE game_session
		SET status = @status
			, state = @state
			, ended_at = @ended_at
			, updated_at = now()
		WHERE game_session_id = @game_session_id
		RETURNING *;`,
		pgx.NamedArgs{
			"game_session_id": gameSessionID,
			"status":          int16(board.Status()),
			"state":           state,
			"ended_at":        endedAt,
		},
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

type Store struct {
	q *Queries
}

// NewStore exposes q as a [store.Store].
func NewStore(q *Queries) *Store {
	return &Store{q: q}
}

func (s *Store) Create(ctx context.Context, gs *store.GameSession) error {
	row, err := s.q.CreateGameSession(ctx, gs.Board, gs.EndedAt)
	if err != nil {
		return translate(err)
	}
	gs.ID = row.GameSessionID
	gs.StartedAt = row.StartedAt
	return nil
}

func (s *Store) Get(ctx context.Context, id int64) (*store.GameSession, error) {
	row, err := s.q.FetchGameSession(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return row.Decode()
}

func (s *Store) Update(ctx context.Context, gs *store.GameSession) error {
	_, err := s.q.UpdateGameSession(ctx, gs.ID, gs.Board, gs.EndedAt)
	return translate(err)
}

var _ store.Store = (*Store)(nil)
