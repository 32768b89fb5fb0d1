package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/middleware"
	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/sessions"
	"github.com/vancomm/sweeper/internal/store"
)

var (
	ErrBadSessionId = errors.New("game session id must be an integer")
	ErrUnauthorized = errors.New("session token required")
	ErrForbidden    = errors.New("session token belongs to another game")
)

type GameHandler struct {
	logger  *slog.Logger
	games   *sessions.Manager
	session *config.Session
	board   *config.Board
	ws      *config.WebSocket
}

func NewGameHandler(
	logger *slog.Logger,
	games *sessions.Manager,
	session *config.Session,
	board *config.Board,
	ws *config.WebSocket,
) *GameHandler {
	handler := &GameHandler{
		logger:  logger,
		games:   games,
		session: session,
		board:   board,
		ws:      ws,
	}
	return handler
}

func (g GameHandler) sessionId(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, ErrBadSessionId
	}
	return id, nil
}

// authorize checks that the request carries a token issued for game id.
func (g GameHandler) authorize(r *http.Request, id int64) (int, error) {
	claims, ok := middleware.SessionClaims(r.Context())
	if !ok {
		return http.StatusUnauthorized, ErrUnauthorized
	}
	if claims.GameSessionID != id {
		return http.StatusForbidden, ErrForbidden
	}
	return http.StatusOK, nil
}

func (g GameHandler) sendStoreError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		sendErrorOrLog(w, g.logger, http.StatusNotFound, err)
	default:
		g.logger.Error(msg, slog.Any("error", err))
		sendErrorOrLog(w, g.logger, http.StatusInternalServerError,
			errors.New("internal server error"))
	}
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query(), g.board.Defaults)
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	params := dto.Params()
	if err := g.board.Check(params); err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	session, err := g.games.NewGame(r.Context(), params)
	if errors.Is(err, mines.ErrInvalidConfiguration) {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		g.sendStoreError(w, err, "unable to create game session")
		return
	}

	token, err := g.session.Sign(session.ID)
	if err != nil {
		g.logger.Error("unable to sign session token", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	resp := NewGameSessionDTO(session)
	resp.Token = token
	sendJSONOrLog(w, g.logger, http.StatusCreated, resp)
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	id, err := g.sessionId(r)
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	session, err := g.games.Fetch(r.Context(), id)
	if err != nil {
		g.sendStoreError(w, err, "unable to fetch game session")
		return
	}

	sendJSONOrLog(w, g.logger, http.StatusOK, NewGameSessionDTO(session))
}

func (g GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	id, err := g.sessionId(r)
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	if status, err := g.authorize(r, id); err != nil {
		sendErrorOrLog(w, g.logger, status, err)
		return
	}

	dto, move, err := ParseMoveDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	var (
		session  *store.GameSession
		accepted bool
	)
	switch move {
	case Reveal:
		session, accepted, err = g.games.Reveal(r.Context(), id, dto.X, dto.Y)
	case Flag:
		session, accepted, err = g.games.Flag(r.Context(), id, dto.X, dto.Y)
	}
	if err != nil {
		g.sendStoreError(w, err, "unable to apply move")
		return
	}

	sendJSONOrLog(w, g.logger, http.StatusOK,
		NewGameSessionDTO(session).WithAccepted(accepted))
}

func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	id, err := g.sessionId(r)
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	if status, err := g.authorize(r, id); err != nil {
		sendErrorOrLog(w, g.logger, status, err)
		return
	}

	if _, err := g.games.Fetch(r.Context(), id); err != nil {
		g.sendStoreError(w, err, "unable to fetch game session")
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer c.Close()

	logger := g.logger.With(slog.Int64("game_session_id", id))

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("abnormal ws break", slog.Any("error", err))
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}
		text := strings.TrimSpace(string(message))
		logger.Debug(fmt.Sprintf("\t> %s", text))

		var (
			session  *store.GameSession
			accepted *bool
		)
		for _, cmd := range byPiece(text, "\n") {
			session, accepted, err = executeCommand(r.Context(), g.games, id, cmd)
			if err != nil {
				break
			}
		}
		if err != nil {
			if errors.Is(err, store.ErrNotFound) || !isCommandError(err) {
				logger.Error("unable to process command", slog.Any("error", err))
				return
			}
			if err := c.WriteJSON(wrapError(err)); err != nil {
				logger.Error("unable to write json", slog.Any("error", err))
				return
			}
			continue
		}

		dto := NewGameSessionDTO(session)
		dto.Accepted = accepted
		if err := c.WriteJSON(dto); err != nil {
			logger.Error("unable to write json", slog.Any("error", err))
			return
		}
		logger.Debug("\t< <session data>")
	}
}
