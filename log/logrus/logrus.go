// Package logrus adapts a logrus entry to binser.Logger.
package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/binser"
)

var _ binser.Logger = Logger{}

type Logger struct{ E *logrus.Entry }

// New wraps l with no preset fields.
func New(l *logrus.Logger) Logger { return Logger{E: logrus.NewEntry(l)} }

func (l Logger) Debug(msg string, f binser.Fields) { l.with(f).Debug(msg) }
func (l Logger) Info(msg string, f binser.Fields)  { l.with(f).Info(msg) }
func (l Logger) Warn(msg string, f binser.Fields)  { l.with(f).Warn(msg) }
func (l Logger) Error(msg string, f binser.Fields) { l.with(f).Error(msg) }

func (l Logger) with(f binser.Fields) *logrus.Entry {
	if len(f) == 0 {
		return l.E
	}
	return l.E.WithFields(logrus.Fields(f))
}
