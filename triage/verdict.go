package triage

// Decision denotes the triage pipeline's response to a request.
type Decision int

const (
	_ Decision = iota
	// Safe means the request should be allowed through.
	Safe

	// Verify means the request should be challenged before being allowed.
	Verify

	// Block means the request should be rejected.
	Block

	// Error means the pipeline could not produce a trustworthy decision.
	// An unrecognized classifier code is never downgraded to Safe.
	Error
)

// String returns the wire-level status string for a decision.
func (d Decision) String() string {
	switch d {
	case Safe:
		return "safe"
	case Verify:
		return "verify"
	case Block:
		return "block"
	default:
		return "error"
	}
}

// Verdict is the outcome of scoring one request. Code carries the raw
// classifier output for observability; for short-circuited requests it is 0.
type Verdict struct {
	Decision       Decision
	Code           int
	ShortCircuited bool
}

// shortCircuitCode is the class code reported for requests that never reach
// the classifier. It coincides with the trained model's "safe" class.
const shortCircuitCode = 0

// DecisionFromClassCode maps a classifier output code to a decision using the
// fixed table {0: safe, 1: verify, 2: block}. Codes outside the table map to
// Error.
func DecisionFromClassCode(code int) Decision {
	switch code {
	case 0:
		return Safe
	case 1:
		return Verify
	case 2:
		return Block
	default:
		return Error
	}
}
