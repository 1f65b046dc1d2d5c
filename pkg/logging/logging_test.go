package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useStateHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return dir
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
		wantFile  bool
	}{
		{"default warn level", 0, zerolog.WarnLevel, false},
		{"info level", 1, zerolog.InfoLevel, true},
		{"debug level", 2, zerolog.DebugLevel, true},
		{"trace level", 3, zerolog.TraceLevel, true},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stateDir := useStateHome(t)

			SetupLogger(tt.verbosity)
			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())

			logPath := filepath.Join(stateDir, "tldr", "tldr.log")
			_, err := os.Stat(logPath)
			if tt.wantFile {
				assert.NoError(t, err, "log file should exist at %s", logPath)
			} else {
				assert.True(t, os.IsNotExist(err), "log file should not be created at verbosity 0")
			}
		})
	}
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	previous := log.Logger
	t.Cleanup(func() { log.Logger = previous })
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = zerolog.New(&buf)

	logger := GetLogger("cache")
	logger.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"component":"cache"`)
	assert.Contains(t, buf.String(), "hello")
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(&buf)

	done := LogOperationStart(logger, "update")
	require.Contains(t, buf.String(), "Operation started")

	done()
	out := buf.String()
	assert.Contains(t, out, "Operation completed")
	assert.Contains(t, out, `"operation":"update"`)
	assert.Contains(t, out, "duration")
}
