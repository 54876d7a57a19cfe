package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLBeforeInitIsNoop(t *testing.T) {
	saved := logger
	logger = nil
	defer func() { logger = saved }()

	assert.Same(t, noopLogger, L())
	assert.NotPanics(t, func() { L().With("k", "v").Infow("ignored") })
}

func TestInitWritesToFile(t *testing.T) {
	saved := logger
	defer func() { logger = saved }()

	path := filepath.Join(t.TempDir(), "nested", "app.log")
	got := Init("portfolio-cli", Options{File: path, Level: "debug"})
	assert.Equal(t, path, got)

	L().Infow("hello", "session", "abc")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"session":"abc"`), string(data))
}

func TestSelectLogPathUsesXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)

	assert.Equal(t, filepath.Join(dir, "app", "app.log"), selectLogPath("app", false))
	assert.Equal(t, filepath.Join(dir, "app", "app-debug.log"), selectLogPath("app", true))
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in       string
		dev      bool
		expected zapcore.Level
	}{
		{"debug", false, zapcore.DebugLevel},
		{"WARN", false, zapcore.WarnLevel},
		{"warning", true, zapcore.WarnLevel},
		{"error", false, zapcore.ErrorLevel},
		{"", false, zapcore.InfoLevel},
		{"", true, zapcore.DebugLevel},
		{"bogus", false, zapcore.InfoLevel},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.expected, parseLevel(tc.in, tc.dev))
		})
	}
}
