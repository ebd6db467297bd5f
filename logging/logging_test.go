package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "debug", true)
	require.NoError(t, err)

	l.Debug().Str("fingerprint", "0xabc").Msg("key ready")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "debug", entry["level"])
	require.Equal(t, "key ready", entry["message"])
	require.Equal(t, "0xabc", entry["fingerprint"])
}

func TestNewLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "warn", true)
	require.NoError(t, err)

	l.Info().Msg("hidden")
	require.Zero(t, buf.Len())

	l.Warn().Msg("shown")
	require.Contains(t, buf.String(), "shown")
}

func TestNewEmptyLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "", true)
	require.NoError(t, err)

	l.Debug().Msg("hidden")
	require.Zero(t, buf.Len())
	l.Info().Msg("shown")
	require.Contains(t, buf.String(), "shown")
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", false)
	require.Error(t, err)
}
