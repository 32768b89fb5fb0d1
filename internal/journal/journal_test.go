package journal

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/sweeper/internal/mines"
)

func TestLoggerJournal(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{DisableTimestamp: true})

	j := NewLogger(log)
	j.Record(Entry{GameSessionID: 3, Move: Flag, X: 1, Y: 2, Accepted: true, Remaining: 9})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "flag", line["msg"])
	assert.Equal(t, float64(3), line["game_session_id"])
	assert.Equal(t, float64(1), line["x"])
	assert.Equal(t, float64(2), line["y"])
	assert.Equal(t, true, line["accepted"])
	assert.Equal(t, "Ongoing", line["status"])
	assert.Equal(t, float64(9), line["remaining_mines"])
}

func TestRotatingJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moves.log")
	j, err := NewRotating(path)
	require.NoError(t, err)

	j.Record(Entry{GameSessionID: 1, Move: Create, Status: mines.Ongoing, Remaining: 8})
	j.Record(Entry{GameSessionID: 1, Move: Reveal, X: 4, Y: 4, Accepted: true, Status: mines.Lost})

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var moves []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var line map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		moves = append(moves, line["msg"].(string))
	}
	assert.Equal(t, []string{"create", "reveal"}, moves)
}

func TestNop(t *testing.T) {
	Nop().Record(Entry{})
}
