package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, logrus.InfoLevel)

	l.Debug("hidden")
	WithRun(l, "run-1").WithField("stage", "parsing").Info("visible")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "visible")
	require.Contains(t, out, "run_id=run-1")
	require.Contains(t, out, "stage=parsing")
}

func TestDiscard(t *testing.T) {
	l := Discard()
	require.NotPanics(t, func() {
		l.WithField("k", "v").Error("dropped")
	})
}
