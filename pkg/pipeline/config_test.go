package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/logpipe/pkg/core"
	"github.com/fyrsmithlabs/logpipe/pkg/sinks"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, zapcore.InfoLevel, cfg.Level.Zap())
	assert.Empty(t, cfg.Loggers)
	require.Len(t, cfg.Sinks, 1)
	assert.Equal(t, "console", cfg.Sinks[0].Type)
}

func TestLevelTextRoundTrip(t *testing.T) {
	var l Level
	require.NoError(t, l.UnmarshalText([]byte("trace")))
	assert.Equal(t, core.TraceLevel, l.Zap())

	text, err := l.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "trace", string(text))

	assert.Error(t, l.UnmarshalText([]byte("loud")))
}

func TestConfigSettersSnapshot(t *testing.T) {
	cfg := NewDefaultConfig()

	loggers := map[string]Level{"db": Level(zapcore.DebugLevel)}
	cfg.SetLoggers(loggers)
	loggers["http"] = Level(zapcore.ErrorLevel)
	assert.NotContains(t, cfg.Loggers, "http", "mutating the source map must not leak into the config")

	sinkList := []SinkConfig{{Type: "console"}, {Type: "file", Path: "/tmp/x.log"}}
	cfg.SetSinks(sinkList)
	sinkList[0].Type = "file"
	assert.Equal(t, "console", cfg.Sinks[0].Type)
}

func TestSinkConfigFactoryResolution(t *testing.T) {
	t.Run("console by default", func(t *testing.T) {
		factory, threshold, err := SinkConfig{}.factory()
		require.NoError(t, err)
		assert.IsType(t, sinks.ConsoleConfig{}, factory)
		assert.Nil(t, threshold)
	})

	t.Run("file", func(t *testing.T) {
		factory, _, err := SinkConfig{Type: "file", Path: "/tmp/x.log"}.factory()
		require.NoError(t, err)
		assert.IsType(t, sinks.FileConfig{}, factory)
	})

	t.Run("threshold parsed", func(t *testing.T) {
		_, threshold, err := SinkConfig{Type: "console", Threshold: "error"}.factory()
		require.NoError(t, err)
		require.NotNil(t, threshold)
		assert.Equal(t, zapcore.ErrorLevel, *threshold)
	})

	t.Run("bad threshold", func(t *testing.T) {
		_, _, err := SinkConfig{Type: "console", Threshold: "loud"}.factory()
		assert.Error(t, err)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, _, err := SinkConfig{Type: "pigeon"}.factory()
		assert.Error(t, err)
	})

	t.Run("custom factory wins", func(t *testing.T) {
		obs := sinks.NewObserver(core.TraceLevel)
		factory, _, err := SinkConfig{Type: "pigeon", Factory: obs.Factory()}.factory()
		require.NoError(t, err)
		assert.NotNil(t, factory)
	})
}
