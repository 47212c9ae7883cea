package ipaddresses

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseIPAddress converts an IPv4 address in dotted-quad notation to its
// 32-bit unsigned integer value. Abbreviated forms such as "192.168.1" are
// rejected rather than zero-filled.
func ParseIPAddress(ipAddr string) (ip uint32, err error) {
	octets := strings.Split(ipAddr, ".")
	if len(octets) != 4 {
		err = fmt.Errorf("not a dotted-quad IPv4 address: %s", ipAddr)
		return
	}

	for _, octet := range octets {
		n, convErr := strconv.ParseUint(octet, 10, 8)
		if convErr != nil {
			err = fmt.Errorf("not a dotted-quad IPv4 address: %s", ipAddr)
			return
		}

		ip = ip<<8 | uint32(n)
	}

	return
}

// ParseCIDR converts an IPv4 CIDR block into its 32-bit prefix and mask. The
// address part must be a full dotted quad.
func ParseCIDR(cidr string) (prefix uint32, mask uint32, err error) {
	ipAddr, suffix, found := strings.Cut(cidr, "/")
	if !found {
		err = fmt.Errorf("not a CIDR block: %s", cidr)
		return
	}

	ip, err := ParseIPAddress(ipAddr)
	if err != nil {
		err = fmt.Errorf("not a CIDR block: %s", cidr)
		return
	}

	bits, convErr := strconv.ParseUint(suffix, 10, 8)
	if convErr != nil || bits > 32 {
		err = fmt.Errorf("not a CIDR block: %s", cidr)
		return
	}

	mask = ^uint32(0) << (32 - bits)
	prefix = ip & mask
	return
}
