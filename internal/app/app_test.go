package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setEnv(t *testing.T, driver string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SESSION_KEY", "test-key")
	t.Setenv("STORE_DRIVER", driver)
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "sweeper.db"))
	t.Setenv("JOURNAL_FILE", filepath.Join(dir, "moves.log"))
	t.Setenv("APP_BASE_PATH", "/api")
	t.Setenv("APP_PORT", "127.0.0.1:0")
}

func TestHandler(t *testing.T) {
	for _, driver := range []string{"memory", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			setEnv(t, driver)
			a := New(testLogger())
			require.NoError(t, a.setup(context.Background()))
			t.Cleanup(a.close)

			server := httptest.NewServer(a.Handler())
			t.Cleanup(server.Close)

			res, err := http.Post(server.URL+"/api/game?height=4&width=4&mines=3", "", nil)
			require.NoError(t, err)
			defer res.Body.Close()
			require.Equal(t, http.StatusCreated, res.StatusCode)

			var created struct {
				ID    string `json:"game_session_id"`
				Token string `json:"token"`
			}
			require.NoError(t, json.NewDecoder(res.Body).Decode(&created))
			assert.NotEmpty(t, created.Token)

			req, err := http.NewRequest(http.MethodPost,
				server.URL+"/api/game/"+created.ID+"/move?move=flag&x=0&y=0", nil)
			require.NoError(t, err)
			req.Header.Set("Authorization", "Bearer "+created.Token)
			moved, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer moved.Body.Close()
			assert.Equal(t, http.StatusOK, moved.StatusCode)

			var dto struct {
				Accepted       bool `json:"accepted"`
				RemainingMines int  `json:"remaining_mines"`
			}
			require.NoError(t, json.NewDecoder(moved.Body).Decode(&dto))
			assert.True(t, dto.Accepted)
			assert.Equal(t, 2, dto.RemainingMines)

			notFound, err := http.Get(server.URL + "/game/" + created.ID)
			require.NoError(t, err)
			notFound.Body.Close()
			assert.Equal(t, http.StatusNotFound, notFound.StatusCode)
		})
	}
}

func TestSetupErrors(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		setEnv(t, "mongo")
		a := New(testLogger())
		assert.Error(t, a.setup(context.Background()))
	})

	t.Run("no session key", func(t *testing.T) {
		setEnv(t, "memory")
		t.Setenv("SESSION_KEY", "")
		a := New(testLogger())
		assert.Error(t, a.setup(context.Background()))
	})
}

func TestStart(t *testing.T) {
	setEnv(t, "memory")
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	a := New(testLogger())
	assert.NoError(t, a.Start(ctx))
}
