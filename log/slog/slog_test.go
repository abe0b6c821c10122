package slog

import (
	"bytes"
	stdslog "log/slog"
	"strings"
	"testing"

	"github.com/unkn0wn-root/binser"
)

func TestTextOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{L: stdslog.New(stdslog.NewTextHandler(&buf, &stdslog.HandlerOptions{
		Level: stdslog.LevelInfo,
		ReplaceAttr: func(_ []string, a stdslog.Attr) stdslog.Attr {
			if a.Key == stdslog.TimeKey {
				return stdslog.Attr{}
			}
			return a
		},
	}))}

	l.Debug("hidden", nil)
	l.Info("stored", binser.Fields{"size": 12, "key": "order:1"})

	want := "level=INFO msg=stored key=order:1 size=12\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("debug line written at info level")
	}
}
