package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	log := SetupLogger(&buf, false)
	log.Debug("hidden")
	log.With("op", "test").Info("visible", "user_id", 7)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "visible", rec["msg"])
	assert.Equal(t, "test", rec["op"])
	assert.EqualValues(t, 7, rec["user_id"])
}

func TestSetupLoggerPretty(t *testing.T) {
	var buf bytes.Buffer
	log := SetupLogger(&buf, true)
	log.With("op", "pretty").Debug("shown")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), `"op": "pretty"`)
}

func TestLogAdapter(t *testing.T) {
	var buf bytes.Buffer
	std := LogAdapter(SetupLogger(&buf, false))
	std.Println("http: TLS handshake error")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "ERROR", rec["level"])
	assert.Equal(t, "http: TLS handshake error", rec["msg"])
}
