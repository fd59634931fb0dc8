package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":      zapcore.InfoLevel,
		"DEBUG": zapcore.DebugLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	_, err := ParseLevel("chatty")
	require.Error(t, err)
}

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "info", Output: &buf})
	require.NoError(t, err)

	log.Info("module changed", "module", "util")
	log.V(1).Info("hidden at info")
	require.NoError(t, log.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "module changed", entry[MessageKey])
	require.Equal(t, "util", entry["module"])
	require.Contains(t, entry, TimeStampKey)
	require.Contains(t, entry, VersionKey)
}

func TestDebugEnablesVerbosity(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "debug", Output: &buf})
	require.NoError(t, err)
	log.V(1).Info("unresolved name", "name", "foo")
	require.Contains(t, buf.String(), `"name":"foo"`)
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Output: &buf})
	require.NoError(t, err)

	ctx := WithLogger(context.Background(), log.Logger)
	FromContext(ctx).Info("hello")
	require.Contains(t, buf.String(), "hello")

	// без логгера в контексте ничего не пишется и не паникует
	FromContext(context.Background()).Info("dropped")
	require.NotContains(t, buf.String(), "dropped")
}
