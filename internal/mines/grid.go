package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type Status int8

const (
	Ongoing Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Ongoing:
		return "Ongoing"
	case Won:
		return "Won"
	case Lost:
		return "Lost"
	default:
		return "Status(" + strconv.Itoa(int(s)) + ")"
	}
}

// Banner is the line a UI shows above the board.
func (s Status) Banner() string {
	switch s {
	case Won:
		return "You Win"
	case Lost:
		return "You Lose"
	default:
		return "Ongoing"
	}
}

func (s Status) Terminal() bool {
	return s == Won || s == Lost
}

type Point struct {
	X, Y int
}

type Cell struct {
	IsMine            bool
	NeighborMineCount int
	IsRevealed        bool
	IsFlagged         bool
}

// CellView is a read-only snapshot of a cell. While the game is ongoing,
// hidden cells report IsMine = false and NeighborMineCount = 0.
type CellView struct {
	IsRevealed        bool `json:"revealed"`
	IsFlagged         bool `json:"flagged"`
	IsMine            bool `json:"mine"`
	NeighborMineCount int  `json:"count"`
}

func (v CellView) Glyph() string {
	switch {
	case !v.IsRevealed && v.IsFlagged:
		return "F"
	case !v.IsRevealed:
		return "."
	case v.IsMine:
		return "*"
	case v.NeighborMineCount == 0:
		return " "
	default:
		return strconv.Itoa(v.NeighborMineCount)
	}
}

type View [][]CellView

func (v View) String() string {
	var b strings.Builder
	for _, row := range v {
		for _, c := range row {
			fmt.Fprint(&b, c.Glyph()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
