package sinks

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/logpipe/pkg/core"
)

func TestConsoleThresholdFiltering(t *testing.T) {
	var buf bytes.Buffer
	threshold := zapcore.ErrorLevel

	sink, err := ConsoleConfig{Writer: &buf}.Build(nil, "", &threshold)
	require.NoError(t, err)

	require.NoError(t, sink.Write(zapcore.Entry{Level: zapcore.WarnLevel, Message: "below"}, nil))
	assert.Empty(t, buf.String(), "record below threshold must produce no output")

	require.NoError(t, sink.Write(zapcore.Entry{Level: zapcore.ErrorLevel, Message: "at threshold"}, nil))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1, "one record must produce exactly one line")
	assert.Contains(t, lines[0], "at threshold")
}

func TestConsoleNoThreshold(t *testing.T) {
	var buf bytes.Buffer
	sink, err := ConsoleConfig{Writer: &buf}.Build(nil, "", nil)
	require.NoError(t, err)

	require.NoError(t, sink.Write(zapcore.Entry{Level: core.TraceLevel, Message: "verbose"}, nil))
	assert.Contains(t, buf.String(), "verbose")
}

func TestConsoleJSONFormatIncludesService(t *testing.T) {
	var buf bytes.Buffer
	sink, err := ConsoleConfig{Format: "json", Writer: &buf}.Build(nil, "orders", nil)
	require.NoError(t, err)

	require.NoError(t, sink.Write(zapcore.Entry{Level: zapcore.InfoLevel, Message: "hello"}, nil))
	out := buf.String()
	assert.Contains(t, out, `"service":"orders"`)
	assert.Contains(t, out, `"msg":"hello"`)
	assert.Contains(t, out, `"level":"info"`)
}

func TestConsoleBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  ConsoleConfig
	}{
		{name: "bad format", cfg: ConsoleConfig{Format: "xml"}},
		{name: "bad target", cfg: ConsoleConfig{Target: "syslog"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.Build(nil, "", nil)
			assert.Error(t, err)
		})
	}
}

func TestConsoleStopDropsWrites(t *testing.T) {
	var buf bytes.Buffer
	sink, err := ConsoleConfig{Writer: &buf}.Build(nil, "", nil)
	require.NoError(t, err)

	require.NoError(t, sink.Stop())
	require.NoError(t, sink.Write(zapcore.Entry{Level: zapcore.ErrorLevel, Message: "late"}, nil))
	assert.Empty(t, buf.String())

	// Stop is idempotent.
	require.NoError(t, sink.Stop())
}
