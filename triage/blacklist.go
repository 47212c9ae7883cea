package triage

// BlacklistEngine compares incoming requests' addresses to a denylist of
// known-handled address literals.
type BlacklistEngine interface {
	// Match reports whether the address literal is on the denylist. Matching
	// is exact: representations differing only in form are distinct entries.
	Match(addr string) bool

	// PutBlacklist replaces the denylist.
	PutBlacklist(addrs []string)
}
