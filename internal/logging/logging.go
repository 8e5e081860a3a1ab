// Package logging builds the logrus loggers used across linfit.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// TimestampFormat is the timestamp layout of command-line logs.
const TimestampFormat = "2006-01-02 15:04:05.000"

// Discard returns a logger that drops every entry. Library packages default
// to it so embedding programs see no output unless they pass a logger in.
func Discard() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)

	return l
}

// New creates a text logger writing to w at level.
func New(w io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: TimestampFormat})

	return l
}

// WithRun attaches the run id to every entry of l.
func WithRun(l logrus.FieldLogger, runID string) logrus.FieldLogger {
	return l.WithField("run_id", runID)
}
