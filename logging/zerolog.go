package logging

import (
	"iptriage/triage"

	"github.com/rs/zerolog"
)

// NewZerologResultsLogger creates a results logger that writes the high
// level triage outcomes to zerolog.
func NewZerologResultsLogger(logger zerolog.Logger) triage.ResultsLogger {
	return &zerologResultsLogger{logger: logger}
}

type zerologResultsLogger struct {
	logger zerolog.Logger
}

func (l *zerologResultsLogger) ShortCircuit(req triage.RawRequest, reason string) {
	l.logger.Info().
		Str("addr", req.Addr).
		Str("reason", reason).
		Msg("Request short-circuited to safe")
}

func (l *zerologResultsLogger) Scored(req triage.RawRequest, verdict triage.Verdict) {
	l.logger.Info().
		Str("addr", req.Addr).
		Str("decision", verdict.Decision.String()).
		Int("code", verdict.Code).
		Msg("Request scored")
}

func (l *zerologResultsLogger) PipelineFailed(req triage.RawRequest, err error) {
	l.logger.Error().
		Err(err).
		Str("addr", req.Addr).
		Msg("Request resolved to an error verdict")
}
