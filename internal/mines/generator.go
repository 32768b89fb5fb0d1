package mines

import (
	"fmt"
	"math"
	"strings"
)

// DefaultParams is the classic 8x8 board with 8 mines.
var DefaultParams = GameParams{Height: 8, Width: 8, MineCount: 8}

type GameParams struct {
	Height, Width, MineCount int
}

func (p GameParams) Unpack() (h int, w int, mc int) {
	return p.Height, p.Width, p.MineCount
}

func (p GameParams) Cells() int {
	return p.Height * p.Width
}

func (p GameParams) Validate() error {
	switch {
	case p.Height <= 0:
		return ConfigError{fmt.Sprintf("height must be positive, got %d", p.Height)}
	case p.Width <= 0:
		return ConfigError{fmt.Sprintf("width must be positive, got %d", p.Width)}
	case p.Height > math.MaxInt/p.Width:
		return ConfigError{fmt.Sprintf("board %dx%d is too large", p.Height, p.Width)}
	case p.MineCount < 0:
		return ConfigError{fmt.Sprintf("mine count must not be negative, got %d", p.MineCount)}
	case p.MineCount >= p.Cells():
		return ConfigError{fmt.Sprintf(
			"mine count must be less than %d, got %d", p.Cells(), p.MineCount,
		)}
	}
	return nil
}

func (p GameParams) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Height, p.Width, p.MineCount)
}

func ParseSeed(seed string) (*GameParams, error) {
	p := &GameParams{}
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %d", &p.Height, &p.Width, &p.MineCount)
	if n != 3 || err != nil {
		return nil, fmt.Errorf(
			`invalid game params seed (sseed = "%s", n = %d, err = %w)`,
			sseed, n, err,
		)
	}
	return p, nil
}

func (p GameParams) PointInBounds(x, y int) bool {
	return 0 <= x && x < p.Height && 0 <= y && y < p.Width
}
