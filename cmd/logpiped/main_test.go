package main

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/logpipe/pkg/bridge"
	"github.com/fyrsmithlabs/logpipe/pkg/core"
	"github.com/fyrsmithlabs/logpipe/pkg/sinks"
)

// Startup failures must stay visible after the stdlib log is hijacked:
// bridged writes carry info and a warn-threshold console drops them, so
// fatal diagnostics go to stderr directly.
func TestFatalfReachesStderrWhileLogIsHijacked(t *testing.T) {
	var buf bytes.Buffer
	var code int
	prevStderr, prevExit := stderr, osExit
	stderr = &buf
	osExit = func(c int) { code = c }
	t.Cleanup(func() { stderr, osExit = prevStderr, prevExit })

	ctx := core.NewContext()
	threshold := zapcore.WarnLevel
	var console bytes.Buffer
	sink, err := sinks.ConsoleConfig{Writer: &console}.Build(ctx, "", &threshold)
	require.NoError(t, err)
	ctx.Root().Attach(sink)

	b := bridge.New()
	b.Install(ctx)
	t.Cleanup(b.Uninstall)

	log.Print("hijacked startup chatter")
	fatalf("loading logging config: %v", errors.New("no such file"))

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "loading logging config: no such file")
	assert.NotContains(t, console.String(), "hijacked startup chatter")
	assert.NotContains(t, console.String(), "loading logging config")
}
