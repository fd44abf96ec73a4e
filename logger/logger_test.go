package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run("Writes name, level and message", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("MAZE", "", &buf)
		require.NoError(t, err)

		l.Info("generated")
		l.Warning("slow")

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], "[MAZE] [INFO] generated")
		assert.Contains(t, lines[1], "[MAZE] [WARNING] slow")
	})

	t.Run("Debug is hidden until enabled", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("MAZE", "", &buf)
		require.NoError(t, err)

		l.Debug("hidden")
		assert.Empty(t, buf.String())

		require.NoError(t, l.SetLevel("debug"))
		l.Debug("shown")
		assert.Contains(t, buf.String(), "[DEBUG] shown")

		assert.Error(t, l.SetLevel("loud"))
	})

	t.Run("Fields are sorted and appended", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("MAZE", "\033[32m", &buf)
		require.NoError(t, err)

		l.WithFields(map[string]any{"size": 5, "algorithm": "Eller"}).Error("failed")
		out := buf.String()
		assert.True(t, strings.HasPrefix(out, "\033[32m"))
		assert.Contains(t, out, "[ERROR]\033[0m failed algorithm=Eller size=5\n")
	})

	t.Run("Rejects missing name or writer", func(t *testing.T) {
		_, err := New(" ", "", &bytes.Buffer{})
		assert.ErrorIs(t, err, ErrMissingName)

		_, err = New("MAZE", "", nil)
		assert.ErrorIs(t, err, ErrMissingWriter)
	})
}
