package core

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// TraceLevel is a custom level below Debug for ultra-verbose logging.
// Value: -2 (Debug is -1, Info is 0)
const TraceLevel = zapcore.Level(-2)

// OffLevel disables emission entirely when set on a component. It is
// above every level a record can carry, so nothing is ever enabled.
const OffLevel = zapcore.Level(100)

// ParseLevel parses a string into a zapcore.Level, supporting the
// extended "trace" and "off" names on top of the zapcore set.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "trace":
		return TraceLevel, nil
	case "off":
		return OffLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("unknown level %q", level)
	}
	return l, nil
}

// LevelString renders a level, giving the extended levels stable names.
func LevelString(l zapcore.Level) string {
	switch l {
	case TraceLevel:
		return "trace"
	case OffLevel:
		return "off"
	}
	return l.String()
}
