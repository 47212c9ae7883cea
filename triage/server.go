package triage

import (
	"time"

	"github.com/rs/zerolog"
)

// AddressClassifier determines whether a source address is loopback, private
// or otherwise reserved. Malformed addresses are treated as non-local.
type AddressClassifier interface {
	IsLocalOrReserved(addr string) bool
}

// Server is the top level interface to the triage pipeline.
type Server interface {
	EvalRequest(req RawRequest) (verdict Verdict, err error)
}

type serverImpl struct {
	logger        zerolog.Logger
	addrs         AddressClassifier
	blacklist     BlacklistEngine
	assembler     FeatureAssembler
	classifier    Classifier
	resultsLogger ResultsLogger
}

// NewServer creates a new top level triage pipeline. All engines must be
// fully initialized before the first EvalRequest call; they are treated as
// read-only from then on, so concurrent scoring needs no locking.
func NewServer(logger zerolog.Logger, ac AddressClassifier, bl BlacklistEngine, fa FeatureAssembler, c Classifier, rl ResultsLogger) (server Server, err error) {
	server = &serverImpl{
		logger:        logger,
		addrs:         ac,
		blacklist:     bl,
		assembler:     fa,
		classifier:    c,
		resultsLogger: rl,
	}

	return
}

// EvalRequest scores one request. Local/reserved and blacklisted addresses
// short-circuit to Safe before any feature assembly, so their verdicts never
// depend on geo-database availability or classifier correctness.
func (s *serverImpl) EvalRequest(req RawRequest) (verdict Verdict, err error) {
	logger := s.logger.With().Str("addr", req.Addr).Logger()

	if logger.Info() != nil {
		startTime := time.Now()
		defer func() {
			logger.Info().Dur("timeTaken", time.Since(startTime)).Str("decision", verdict.Decision.String()).Msg("Triage completed request")
		}()
	}

	if s.addrs.IsLocalOrReserved(req.Addr) {
		verdict = Verdict{Decision: Safe, Code: shortCircuitCode, ShortCircuited: true}
		s.resultsLogger.ShortCircuit(req, "local or reserved address")
		return
	}

	if s.blacklist.Match(req.Addr) {
		verdict = Verdict{Decision: Safe, Code: shortCircuitCode, ShortCircuited: true}
		s.resultsLogger.ShortCircuit(req, "blacklisted address")
		return
	}

	vector, err := s.assembler.AssembleOne(req)
	if err != nil {
		verdict = Verdict{Decision: Error}
		s.resultsLogger.PipelineFailed(req, err)
		return
	}

	codes := s.classifier.Predict(FeatureMatrix{vector})
	code := codes[0]

	verdict = Verdict{Decision: DecisionFromClassCode(code), Code: code}
	if verdict.Decision == Error {
		s.resultsLogger.PipelineFailed(req, errUnknownClassCode(code))
		return
	}

	s.resultsLogger.Scored(req, verdict)
	return
}
