package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlogLoggerFields(t *testing.T) {
	var buf bytes.Buffer

	log := newSlogLogger(EnvDev, &buf).With(String("op", "test"))
	log.Info("order reconciled", String("gateway", "cashfree"), Int("attempt", 2))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	require.Equal(t, "order reconciled", entry["msg"])
	require.Equal(t, "test", entry["op"])
	require.Equal(t, "cashfree", entry["gateway"])
	require.EqualValues(t, 2, entry["attempt"])
}

func TestSlogLoggerProdSkipsDebug(t *testing.T) {
	var buf bytes.Buffer

	log := newSlogLogger(EnvProd, &buf)
	log.Debug("noise")

	require.Zero(t, buf.Len())
}
