package mines

import (
	"fmt"
	"iter"
	"math/rand/v2"
)

// New validates params and generates a board with MineCount mines placed
// uniformly at random. The first revealed cell may be a mine.
func New(params GameParams, r *rand.Rand) (*Board, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	b := newEmptyBoard(params)
	b.plantMines(r)
	b.countNeighbors()
	return b, nil
}

// NewWithMines builds a board with mines at exactly the given points.
func NewWithMines(params GameParams, mines []Point) (*Board, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(mines) != params.MineCount {
		return nil, ConfigError{fmt.Sprintf(
			"expected %d mine positions, got %d", params.MineCount, len(mines),
		)}
	}
	b := newEmptyBoard(params)
	for _, p := range mines {
		if !params.PointInBounds(p.X, p.Y) {
			return nil, ConfigError{fmt.Sprintf("mine %d:%d is out of bounds", p.X, p.Y)}
		}
		c := b.cell(p.X, p.Y)
		if c.IsMine {
			return nil, ConfigError{fmt.Sprintf("duplicate mine %d:%d", p.X, p.Y)}
		}
		c.IsMine = true
	}
	b.countNeighbors()
	return b, nil
}

func newEmptyBoard(params GameParams) *Board {
	return &Board{
		params: params,
		cells:  make([]Cell, params.Cells()),
		status: Ongoing,
	}
}

func (b *Board) plantMines(r *rand.Rand) {
	planted := 0
	for planted < b.params.MineCount {
		c := b.cell(r.IntN(b.params.Height), r.IntN(b.params.Width))
		if !c.IsMine {
			c.IsMine = true
			planted++
		}
	}
}

func (b *Board) countNeighbors() {
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
			c.NeighborMineCount = n
		}
	}
}

// neighbors yields the grid-bounded 8-neighborhood of x:y.
func (b *Board) neighbors(x, y int) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				if dx == 0 && dy == 0 {
					continue
				}
				if !b.params.PointInBounds(x+dx, y+dy) {
					continue
				}
				if !yield(Point{x + dx, y + dy}) {
					return
				}
			}
		}
	}
}
