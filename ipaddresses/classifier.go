package ipaddresses

import "iptriage/triage"

type classifierImpl struct{}

// NewClassifier creates an address classifier over the IANA special-purpose
// registry.
func NewClassifier() triage.AddressClassifier {
	return &classifierImpl{}
}

// IsLocalOrReserved reports whether the address is loopback, private or
// otherwise reserved. A malformed address is treated as non-local by policy,
// so that it proceeds to the model rather than being waved through.
func (c *classifierImpl) IsLocalOrReserved(addr string) bool {
	special, err := IsSpecialPurposeAddress(addr)
	if err != nil {
		return false
	}
	return special
}
