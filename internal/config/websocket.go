package config

import (
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader websocket.Upgrader
}

// NewWebSocket allows every origin unless WS_ALLOWED_ORIGINS lists them.
func NewWebSocket() (*WebSocket, error) {
	var allowed []string
	if s, ok := os.LookupEnv("WS_ALLOWED_ORIGINS"); ok && s != "" {
		allowed = strings.Split(s, ",")
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if len(allowed) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, a := range allowed {
				if strings.TrimSpace(a) == origin {
					return true
				}
			}
			return false
		},
	}

	ws := &WebSocket{
		Upgrader: upgrader,
	}

	return ws, nil
}
