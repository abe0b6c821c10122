package zap

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/unkn0wn-root/binser"
)

func TestLevelsAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(zap.New(core))

	l.Debug("d", nil)
	l.Info("i", binser.Fields{"b": 2, "a": 1})
	l.Warn("w", binser.Fields{"err": errors.New("boom")})
	l.Error("e", nil)

	entries := logs.AllUntimed()
	if len(entries) != 4 {
		t.Fatalf("entries=%d", len(entries))
	}
	wantLevels := []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}
	for i, e := range entries {
		if e.Level != wantLevels[i] {
			t.Errorf("entry %d level=%v want %v", i, e.Level, wantLevels[i])
		}
	}
	if ctx := entries[1].Context; len(ctx) != 2 || ctx[0].Key != "a" || ctx[1].Key != "b" {
		t.Fatalf("fields not sorted: %+v", ctx)
	}
	if got := entries[2].ContextMap()["err"]; got != "boom" {
		t.Fatalf("err field=%v", got)
	}
}
