package triage

// RawRequest holds the raw attributes of one inbound request before any
// feature engineering. Immutable once constructed.
type RawRequest struct {
	// Addr is the source address literal, taken from the first forwarding
	// header value when present, otherwise the transport-level peer address.
	Addr string

	// Timestamp is the claimed request time as a free-form date/time string.
	Timestamp string

	// Locale is the claimed Accept-Language header value.
	Locale string

	// ClaimedLocation is the caller-supplied location string.
	ClaimedLocation string
}
