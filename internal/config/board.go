package config

import (
	"fmt"

	"github.com/vancomm/sweeper/internal/mines"
)

type Board struct {
	Defaults mines.GameParams
	MaxCells int
}

func NewBoard() (*Board, error) {
	height, err := lookupInt("BOARD_HEIGHT", mines.DefaultParams.Height)
	if err != nil {
		return nil, err
	}
	width, err := lookupInt("BOARD_WIDTH", mines.DefaultParams.Width)
	if err != nil {
		return nil, err
	}
	mineCount, err := lookupInt("BOARD_MINES", mines.DefaultParams.MineCount)
	if err != nil {
		return nil, err
	}
	maxCells, err := lookupInt("BOARD_MAX_CELLS", 10_000)
	if err != nil {
		return nil, err
	}

	defaults := mines.GameParams{Height: height, Width: width, MineCount: mineCount}
	if err := defaults.Validate(); err != nil {
		return nil, fmt.Errorf("invalid default board: %w", err)
	}
	if defaults.Cells() > maxCells {
		return nil, fmt.Errorf(
			"default board has %d cells, BOARD_MAX_CELLS is %d",
			defaults.Cells(), maxCells,
		)
	}

	board := &Board{
		Defaults: defaults,
		MaxCells: maxCells,
	}

	return board, nil
}

// Check validates params requested by a client.
func (b Board) Check(p mines.GameParams) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Cells() > b.MaxCells {
		return fmt.Errorf("board is too large: %d cells, at most %d allowed", p.Cells(), b.MaxCells)
	}
	return nil
}
