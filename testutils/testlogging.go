package testutils

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// NewTestLogger creates a zerolog.Logger whose output lands in the test's
// log, so it only shows up for failing or verbose runs.
func NewTestLogger(t *testing.T) zerolog.Logger {
	w := zerolog.ConsoleWriter{Out: &testLogWriter{t: t}, TimeFormat: time.RFC3339, NoColor: true}
	return zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}

type testLogWriter struct {
	t *testing.T
}

func (w *testLogWriter) Write(p []byte) (n int, err error) {
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
