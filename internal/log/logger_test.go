package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"", slog.LevelInfo, false},
		{"INFO", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestLoggerAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelDebug, Format: "json", Output: &buf, Component: ComponentApp}).
		WithComponent(ComponentLedger)

	l.Debug("Expense added", NewFields().WithOperation(OpCreate).WithMonth("2025-06").ToSlice()...)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, ComponentLedger, rec[FieldComponent])
	assert.Equal(t, OpCreate, rec[FieldOperation])
	assert.Equal(t, "2025-06", rec[FieldMonth])
	assert.Equal(t, ComponentLedger, l.Component())
}

func TestLogFieldsWithError(t *testing.T) {
	f := NewFields().WithError(nil)
	assert.NotContains(t, f, FieldError)

	f = f.WithError(errors.New("boom")).WithErrorType(ErrorTypeStorage)
	assert.Equal(t, "boom", f[FieldError])
	assert.Equal(t, ErrorTypeStorage, f[FieldErrorType])
	assert.Len(t, f.ToSlice(), 4)
}
