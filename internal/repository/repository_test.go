package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/store"
)

func TestTranslate(t *testing.T) {
	assert.Nil(t, translate(nil))
	assert.ErrorIs(t, translate(pgx.ErrNoRows), store.ErrNotFound)
	assert.ErrorIs(t, translate(fmt.Errorf("query: %w", pgx.ErrNoRows)), store.ErrNotFound)

	undefined := &pgconn.PgError{Code: pgerrcode.UndefinedTable}
	err := translate(undefined)
	assert.ErrorIs(t, err, ErrNotMigrated)
	assert.ErrorIs(t, err, undefined)

	other := errors.New("boom")
	assert.Equal(t, other, translate(other))
}

func TestDecode(t *testing.T) {
	b, err := mines.NewWithMines(
		mines.GameParams{Height: 2, Width: 2, MineCount: 1},
		[]mines.Point{{X: 0, Y: 0}},
	)
	require.NoError(t, err)
	state, err := b.Bytes()
	require.NoError(t, err)

	started := time.Now().UTC()
	row := GameSession{
		GameSessionID: 7,
		Height:        2,
		Width:         2,
		MineCount:     1,
		State:         state,
		StartedAt:     started,
	}
	gs, err := row.Decode()
	require.NoError(t, err)
	assert.Equal(t, int64(7), gs.ID)
	assert.Equal(t, started, gs.StartedAt)
	assert.Nil(t, gs.EndedAt)
	assert.Equal(t, b, gs.Board)

	row.State = []byte("junk")
	_, err = row.Decode()
	assert.Error(t, err)
}
