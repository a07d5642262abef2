package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":  zerolog.TraceLevel,
		"debug":  zerolog.DebugLevel,
		" WARN ": zerolog.WarnLevel,
		"error":  zerolog.ErrorLevel,
		"info":   zerolog.InfoLevel,
		"":       zerolog.InfoLevel,
		"otro":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestComponent_CamposFijosEnJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "warn", Service: "logistica-bff", Tenant: "acme", Output: &buf})
	c := l.Component("cachesync")
	assert.Equal(t, zerolog.WarnLevel, c.GetLevel())

	c.Info().Msg("descartado por nivel")
	c.Warn().Str("key", "acme:areas").Msg("invalidación fallida")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "logistica-bff", entry["service"])
	assert.Equal(t, "acme", entry["tenant"])
	assert.Equal(t, "cachesync", entry["component"])
	assert.Equal(t, "acme:areas", entry["key"])
}
