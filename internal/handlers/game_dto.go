package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gorilla/schema"

	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/store"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// NewGameDTO fields are optional; absent ones keep their defaults.
type NewGameDTO struct {
	Height    int `schema:"height"`
	Width     int `schema:"width"`
	MineCount int `schema:"mines"`
}

func ParseNewGameDTO(src map[string][]string, defaults mines.GameParams) (NewGameDTO, error) {
	dto := NewGameDTO(defaults)
	err := decoder.Decode(&dto, src)
	return dto, err
}

func (dto NewGameDTO) Params() mines.GameParams {
	return mines.GameParams(dto)
}

type GameMove uint8

const (
	Reveal GameMove = iota + 1
	Flag
)

var ErrBadMove = errors.New("move must be one of 'reveal', 'flag'")

func (m GameMove) String() string {
	switch m {
	case Reveal:
		return "reveal"
	case Flag:
		return "flag"
	default:
		return fmt.Sprintf("GameMove(%d)", uint8(m))
	}
}

func ParseGameMove(s string) (GameMove, error) {
	switch strings.ToLower(s) {
	case "reveal", "open":
		return Reveal, nil
	case "flag":
		return Flag, nil
	default:
		return 0, ErrBadMove
	}
}

type MoveDTO struct {
	Move string `schema:"move,required"`
	X    int    `schema:"x,required"`
	Y    int    `schema:"y,required"`
}

func ParseMoveDTO(src map[string][]string) (MoveDTO, GameMove, error) {
	var dto MoveDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return dto, 0, err
	}
	move, err := ParseGameMove(dto.Move)
	return dto, move, err
}

type CellDTO struct {
	mines.CellView
	Glyph string `json:"glyph"`
}

type GameSessionDTO struct {
	GameSessionId  string      `json:"game_session_id"`
	Height         int         `json:"height"`
	Width          int         `json:"width"`
	MineCount      int         `json:"mine_count"`
	RemainingMines int         `json:"remaining_mines"`
	Status         string      `json:"status"`
	Banner         string      `json:"banner"`
	Grid           [][]CellDTO `json:"grid"`
	StartedAt      int64       `json:"started_at"`
	EndedAt        *int64      `json:"ended_at,omitempty"`
	Accepted       *bool       `json:"accepted,omitempty"`
	Token          string      `json:"token,omitempty"`
}

func NewGameSessionDTO(s *store.GameSession) *GameSessionDTO {
	var endedAt *int64
	if s.EndedAt != nil {
		e := s.EndedAt.UnixMilli()
		endedAt = &e
	}
	view := s.Board.View()
	grid := make([][]CellDTO, len(view))
	for x, row := range view {
		grid[x] = make([]CellDTO, len(row))
		for y, c := range row {
			grid[x][y] = CellDTO{CellView: c, Glyph: c.Glyph()}
		}
	}
	h, w, mc := s.Board.Params().Unpack()
	status := s.Board.Status()
	dto := &GameSessionDTO{
		GameSessionId:  fmt.Sprint(s.ID),
		Height:         h,
		Width:          w,
		MineCount:      mc,
		RemainingMines: s.Board.RemainingMines(),
		Status:         status.String(),
		Banner:         status.Banner(),
		Grid:           grid,
		StartedAt:      s.StartedAt.UnixMilli(),
		EndedAt:        endedAt,
	}
	return dto
}

func (dto *GameSessionDTO) WithAccepted(accepted bool) *GameSessionDTO {
	dto.Accepted = &accepted
	return dto
}
