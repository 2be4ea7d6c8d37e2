package log

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Level(t *testing.T) {
	l, err := New("warn")
	if err != nil {
		t.Fatal(err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("info must be disabled at warn level")
	}
	if !l.Core().Enabled(zapcore.WarnLevel) {
		t.Fatal("warn must be enabled")
	}
}

func TestNew_BadLevelFallsBackToDebug(t *testing.T) {
	l := Must("loud")
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("expected debug fallback")
	}
}
