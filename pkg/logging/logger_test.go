package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/ai-foundry/pkg/services/config"
)

func TestNewLogger_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := newLogger(&buf, config.LogSettings{Level: "warn", Format: "json"}, false)
	require.NoError(t, err)
	defer closer.Close()

	logger.Info().Msg("hidden")
	logger.Warn().Str("check", "region").Msg("shown")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["message"])
	assert.Equal(t, "region", line["check"])
	assert.Equal(t, "warn", line["level"])
}

func TestNewLogger_VerboseForcesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := newLogger(&buf, config.LogSettings{Level: "error", Format: "json"}, true)
	require.NoError(t, err)

	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}

func TestNewLogger_WritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aif.log")
	var buf bytes.Buffer

	logger, closer, err := newLogger(&buf, config.LogSettings{Level: "info", Format: "console", File: path}, false)
	require.NoError(t, err)
	logger.Info().Msg("to both sinks")
	require.NoError(t, closer.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "to both sinks")
	assert.Contains(t, buf.String(), "to both sinks")
}

func TestNewLogger_RejectsUnknownLevel(t *testing.T) {
	_, _, err := newLogger(&bytes.Buffer{}, config.LogSettings{Level: "loud"}, false)
	assert.Error(t, err)
}
