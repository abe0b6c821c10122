// Package zap adapts a *zap.Logger to binser.Logger.
package zap

import (
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/unkn0wn-root/binser"
)

var _ binser.Logger = Logger{}

type Logger struct{ L *zap.Logger }

func New(l *zap.Logger) Logger { return Logger{L: l} }

func (z Logger) Debug(msg string, f binser.Fields) { z.L.Debug(msg, fields(f)...) }
func (z Logger) Info(msg string, f binser.Fields)  { z.L.Info(msg, fields(f)...) }
func (z Logger) Warn(msg string, f binser.Fields)  { z.L.Warn(msg, fields(f)...) }
func (z Logger) Error(msg string, f binser.Fields) { z.L.Error(msg, fields(f)...) }

// fields emits keys in sorted order so console output is stable.
func fields(f binser.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for _, k := range slices.Sorted(maps.Keys(f)) {
		if err, ok := f[k].(error); ok {
			out = append(out, zap.NamedError(k, err))
			continue
		}
		out = append(out, zap.Any(k, f[k]))
	}
	return out
}
