package triage

// ResultsLogger is where the triage pipeline writes high level results.
type ResultsLogger interface {
	// ShortCircuit is called when a request bypasses the classifier because
	// its address is local/reserved or blacklisted.
	ShortCircuit(req RawRequest, reason string)

	// Scored is called when the classifier produced a decision.
	Scored(req RawRequest, verdict Verdict)

	// PipelineFailed is called when feature assembly or code mapping failed
	// and the request resolves to an error verdict.
	PipelineFailed(req RawRequest, err error)
}
