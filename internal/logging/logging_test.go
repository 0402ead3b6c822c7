package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
		wantErr  bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"WARN", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Service: "calc", Level: "info", Format: "json", Output: &buf})
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("evaluated", "expr", "2+3*4", "result", 14.0)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	require.Equal(t, "evaluated", rec["msg"])
	require.Equal(t, "calc", rec["service"])
	require.Equal(t, "2+3*4", rec["expr"])
	require.Equal(t, 14.0, rec["result"])
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "warn", Output: &buf})
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("slow", "n", 3)
	require.Contains(t, buf.String(), "msg=slow")
	require.Contains(t, buf.String(), "n=3")
	require.NotContains(t, buf.String(), "hidden")
	require.NotContains(t, buf.String(), "service=")
}

func TestNewErrors(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	require.Error(t, err)
	_, err = New(Config{Format: "xml"})
	require.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("calc")
	require.Equal(t, "calc", cfg.Service)
	l, err := New(cfg)
	require.NoError(t, err)
	require.NotNil(t, l)
	require.NotNil(t, Discard())
}
