package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    zapcore.Level
		wantErr bool
	}{
		{input: "trace", want: TraceLevel},
		{input: "TRACE", want: TraceLevel},
		{input: "debug", want: zapcore.DebugLevel},
		{input: "info", want: zapcore.InfoLevel},
		{input: "warn", want: zapcore.WarnLevel},
		{input: "error", want: zapcore.ErrorLevel},
		{input: "off", want: OffLevel},
		{input: "OFF", want: OffLevel},
		{input: "verbose", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "trace", LevelString(TraceLevel))
	assert.Equal(t, "off", LevelString(OffLevel))
	assert.Equal(t, "info", LevelString(zapcore.InfoLevel))
	assert.Equal(t, "error", LevelString(zapcore.ErrorLevel))
}

func TestParseLevelRoundTrip(t *testing.T) {
	for _, name := range []string{"trace", "debug", "info", "warn", "error", "off"} {
		l, err := ParseLevel(name)
		require.NoError(t, err)
		assert.Equal(t, name, LevelString(l))
	}
}
