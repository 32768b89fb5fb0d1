package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/vancomm/sweeper/internal/sessions"
	"github.com/vancomm/sweeper/internal/store"
)

// CommandError is a malformed websocket command. The connection stays open
// and the client gets the error back.
type CommandError struct {
	message string
}

func (e CommandError) Error() string {
	return e.message
}

func isCommandError(err error) bool {
	var ce CommandError
	return errors.As(err, &ce)
}

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0,
	"o": 2,
	"f": 2,
}

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = CommandError{"first argument must be an int"}
		return
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = CommandError{"second argument must be an int"}
		return
	}
	return
}

// executeCommand runs one websocket command against session id:
//
//	g      fetch the board
//	o x y  reveal x:y
//	f x y  toggle the flag on x:y
//
// accepted is nil for g, which is not a move.
func executeCommand(
	ctx context.Context, games *sessions.Manager, id int64, c string,
) (session *store.GameSession, accepted *bool, err error) {
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return nil, nil, CommandError{"empty command"}
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return nil, nil, CommandError{"unknown command"}
	}
	if nargs != len(parts)-1 {
		return nil, nil, CommandError{"invalid number of arguments"}
	}
	switch parts[0] {
	case "g":
		session, err = games.Fetch(ctx, id)
		return session, nil, err
	case "o":
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return nil, nil, err
		}
		return moved(games.Reveal(ctx, id, x, y))
	case "f":
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return nil, nil, err
		}
		return moved(games.Flag(ctx, id, x, y))
	}
	return nil, nil, CommandError{"invalid command"}
}

func moved(session *store.GameSession, accepted bool, err error) (*store.GameSession, *bool, error) {
	if err != nil {
		return nil, nil, err
	}
	return session, &accepted, nil
}
