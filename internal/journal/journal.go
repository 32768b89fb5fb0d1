// Package journal records every move, accepted or not, as one JSON line so a
// game can be audited later.
package journal

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/sweeper/internal/mines"
)

type Move string

const (
	Create Move = "create"
	Reveal Move = "reveal"
	Flag   Move = "flag"
)

type Entry struct {
	GameSessionID int64
	Move          Move
	X, Y          int
	Accepted      bool
	Status        mines.Status
	Remaining     int
}

type Journal interface {
	Record(e Entry)
}

type nop struct{}

func (nop) Record(Entry) {}

// Nop discards every entry.
func Nop() Journal {
	return nop{}
}

type rotating struct {
	log *logrus.Logger
}

// NewRotating writes JSON lines to filename, rotating at 50 MB and keeping
// three old files for at most 28 days.
func NewRotating(filename string) (Journal, error) {
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   filename,
		MaxSize:    50,
		MaxBackups: 3,
		MaxAge:     28,
		Level:      logrus.InfoLevel,
		Formatter: &logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		},
	})
	if err != nil {
		return nil, err
	}
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.InfoLevel)
	log.AddHook(hook)
	return &rotating{log: log}, nil
}

// NewLogger journals to an existing logrus logger.
func NewLogger(log *logrus.Logger) Journal {
	return &rotating{log: log}
}

func (j *rotating) Record(e Entry) {
	j.log.WithFields(logrus.Fields{
		"game_session_id": e.GameSessionID,
		"x":               e.X,
		"y":               e.Y,
		"accepted":        e.Accepted,
		"status":          e.Status.String(),
		"remaining_mines": e.Remaining,
	}).Info(string(e.Move))
}
