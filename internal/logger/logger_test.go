//go:build !integration

package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected zerolog.Level
	}{
		{name: "debug level", level: "debug", expected: zerolog.DebugLevel},
		{name: "info level", level: "info", expected: zerolog.InfoLevel},
		{name: "warn level", level: "warn", expected: zerolog.WarnLevel},
		{name: "error level", level: "ERROR", expected: zerolog.ErrorLevel},
		{name: "invalid level defaults to info", level: "loud", expected: zerolog.InfoLevel},
		{name: "empty level defaults to info", level: "", expected: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Init(tt.level, false)
			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}

func TestInitWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("info", false, &buf)
	defer Init("info", false)

	l := ForSession("s-1")
	l.Info().Str("bundle_id", "pack-cpu").Msg("added")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "s-1", entry["session_id"])
	assert.Equal(t, "cart", entry["component"])
	assert.Equal(t, "pack-cpu", entry["bundle_id"])
	assert.Equal(t, "added", entry["message"])
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("debug", false, &buf)
	defer Init("info", false)

	l := WithContext(map[string]any{"mode": "detailed_ignored", "lines": 3})
	l.Debug().Msg("composed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "detailed_ignored", entry["mode"])
	assert.Equal(t, float64(3), entry["lines"])
}

func TestInit_Pretty(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("info", true, &buf)
	defer Init("info", false)

	l := ForComponent("catalog")
	l.Info().Msg("warm")
	assert.Contains(t, buf.String(), "warm")
	assert.Contains(t, buf.String(), "catalog")
}
