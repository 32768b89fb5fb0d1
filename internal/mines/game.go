package mines

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"log/slog"
)

var Log *slog.Logger = slog.Default()

// Board is one game: the grid, its mines and the player's progress.
// A Board is not safe for concurrent use.
type Board struct {
	params  GameParams
	cells   []Cell
	status  Status
	flagged int
}

func (b *Board) cell(x, y int) *Cell {
	return &b.cells[x*b.params.Width+y]
}

func (b *Board) Params() GameParams {
	return b.params
}

func (b *Board) Status() Status {
	return b.status
}

func (b *Board) Flagged() int {
	return b.flagged
}

// RemainingMines is MineCount minus the number of flags. It goes negative
// when the player places more flags than there are mines.
func (b *Board) RemainingMines() int {
	return b.params.MineCount - b.flagged
}

// Reveal opens the cell at x:y and reports the resulting status and whether
// the move was accepted. Moves out of bounds, on revealed or flagged cells,
// or after the game has ended change nothing.
func (b *Board) Reveal(x, y int) (Status, bool) {
	if !b.params.PointInBounds(x, y) || b.status.Terminal() {
		return b.status, false
	}
	c := b.cell(x, y)
	if c.IsRevealed || c.IsFlagged {
		return b.status, false
	}

	if c.IsMine {
		c.IsRevealed = true
		b.finish(Lost, x, y)
		return b.status, true
	}

	b.floodFill(x, y)

	if b.cleared() {
		b.finish(Won, x, y)
	}
	return b.status, true
}

// floodFill opens x:y and every cell reachable from it through cells with
// no mined neighbors. Flagged cells stop the fill.
func (b *Board) floodFill(x, y int) {
	b.cell(x, y).IsRevealed = true
	stack := []Point{{x, y}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if b.cell(cur.X, cur.Y).NeighborMineCount != 0 {
			continue
		}
		for p := range b.neighbors(cur.X, cur.Y) {
			c := b.cell(p.X, p.Y)
			if c.IsRevealed || c.IsFlagged || c.IsMine {
				continue
			}
			c.IsRevealed = true
			stack = append(stack, p)
		}
	}
}

func (b *Board) cleared() bool {
	for _, c := range b.cells {
		if !c.IsMine && !c.IsRevealed {
			return false
		}
	}
	return true
}

// finish ends the game and exposes the whole grid.
func (b *Board) finish(status Status, x, y int) {
	b.status = status
	for i := range b.cells {
		b.cells[i].IsFlagged = false
		b.cells[i].IsRevealed = true
	}
	b.flagged = 0
	Log.Debug("game over",
		slog.String("status", status.String()),
		slog.String("params", b.params.Seed()),
		slog.Int("x", x), slog.Int("y", y),
	)
}

// ToggleFlag flips the flag on a hidden cell. It reports false and changes
// nothing when x:y is out of bounds, already revealed, or the game is over.
func (b *Board) ToggleFlag(x, y int) bool {
	if !b.params.PointInBounds(x, y) || b.status.Terminal() {
		return false
	}
	c := b.cell(x, y)
	if c.IsRevealed {
		return false
	}
	c.IsFlagged = !c.IsFlagged
	if c.IsFlagged {
		b.flagged++
	} else {
		b.flagged--
	}
	return true
}

func (b *Board) CellAt(x, y int) (CellView, bool) {
	if !b.params.PointInBounds(x, y) {
		return CellView{}, false
	}
	return b.view(b.cell(x, y)), true
}

func (b *Board) view(c *Cell) CellView {
	v := CellView{IsRevealed: c.IsRevealed, IsFlagged: c.IsFlagged}
	if c.IsRevealed || b.status.Terminal() {
		v.IsMine = c.IsMine
		v.NeighborMineCount = c.NeighborMineCount
	}
	return v
}

func (b *Board) View() View {
	h, w, _ := b.params.Unpack()
	rows := make(View, h)
	for x := range h {
		rows[x] = make([]CellView, w)
		for y := range w {
			rows[x][y] = b.view(b.cell(x, y))
		}
	}
	return rows
}

func (b *Board) String() string {
	return b.View().String()
}

func (b *Board) Clone() *Board {
	c := *b
	c.cells = make([]Cell, len(b.cells))
	copy(c.cells, b.cells)
	return &c
}

type boardState struct {
	Params GameParams
	Cells  []Cell
	Status Status
}

// [Board] implements [encoding.BinaryMarshaler]
func (b *Board) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(boardState{
		Params: b.params,
		Cells:  b.cells,
		Status: b.status,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// [Board] implements [encoding.BinaryUnmarshaler]
func (b *Board) UnmarshalBinary(data []byte) error {
	var state boardState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return err
	}
	if err := state.Params.Validate(); err != nil {
		return err
	}
	if len(state.Cells) != state.Params.Cells() {
		return fmt.Errorf(
			"board state has %d cells, params %s need %d",
			len(state.Cells), state.Params.Seed(), state.Params.Cells(),
		)
	}
	switch state.Status {
	case Ongoing, Won, Lost:
	default:
		return fmt.Errorf("board state has unknown status %s", state.Status)
	}
	var mineCount, flagged int
	for i, c := range state.Cells {
		if c.IsMine {
			mineCount++
		}
		if c.IsFlagged {
			flagged++
		}
		if c.IsFlagged && c.IsRevealed {
			return fmt.Errorf("board state cell %d is both flagged and revealed", i)
		}
	}
	if mineCount != state.Params.MineCount {
		return fmt.Errorf(
			"board state has %d mines, params %s need %d",
			mineCount, state.Params.Seed(), state.Params.MineCount,
		)
	}
	decoded := Board{
		params:  state.Params,
		cells:   state.Cells,
		status:  state.Status,
		flagged: flagged,
	}
	if err := decoded.checkCounts(); err != nil {
		return err
	}
	*b = decoded
	return nil
}

// checkCounts reports the first non-mine cell whose count disagrees with
// its neighborhood.
func (b *Board) checkCounts() error {
	for x := range b.params.Height {
		for y := range b.params.Width {
			c := b.cell(x, y)
			if c.IsMine {
				continue
			}
			n := 0
			for p := range b.neighbors(x, y) {
				if b.cell(p.X, p.Y).IsMine {
					n++
				}
			}
			if c.NeighborMineCount != n {
				return fmt.Errorf(
					"board state cell %d:%d counts %d mines, has %d",
					x, y, c.NeighborMineCount, n,
				)
			}
		}
	}
	return nil
}

func (b *Board) Bytes() ([]byte, error) {
	return b.MarshalBinary()
}

func DecodeBoard(buf []byte) (*Board, error) {
	var b Board
	if err := b.UnmarshalBinary(buf); err != nil {
		return nil, err
	}
	return &b, nil
}
