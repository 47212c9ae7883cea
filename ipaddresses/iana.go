package ipaddresses

// IPv4 special-purpose address registry (IANA). Covers loopback, private-use,
// link-local, documentation, multicast and reserved blocks.
var specialPurposeBlocks = []string{
	"0.0.0.0/8",          // "this network"
	"10.0.0.0/8",         // private-use
	"100.64.0.0/10",      // shared address space (CGN)
	"127.0.0.0/8",        // loopback
	"169.254.0.0/16",     // link-local
	"172.16.0.0/12",      // private-use
	"192.0.0.0/24",       // IETF protocol assignments
	"192.0.2.0/24",       // documentation (TEST-NET-1)
	"192.88.99.0/24",     // 6to4 relay anycast
	"192.168.0.0/16",     // private-use
	"198.18.0.0/15",      // benchmarking
	"198.51.100.0/24",    // documentation (TEST-NET-2)
	"203.0.113.0/24",     // documentation (TEST-NET-3)
	"224.0.0.0/4",        // multicast
	"240.0.0.0/4",        // reserved
	"255.255.255.255/32", // limited broadcast
}

type cidrBlock struct {
	prefix uint32
	mask   uint32
}

var specialPurposeCIDRs = mustParseBlocks(specialPurposeBlocks)

func mustParseBlocks(blocks []string) (cidrs []cidrBlock) {
	for _, block := range blocks {
		prefix, mask, err := ParseCIDR(block)
		if err != nil {
			panic(err)
		}
		cidrs = append(cidrs, cidrBlock{prefix: prefix, mask: mask})
	}
	return
}

// IsSpecialPurposeAddress checks whether an IPv4 address falls in any block
// of the IANA special-purpose address registry.
func IsSpecialPurposeAddress(ipAddr string) (special bool, err error) {
	ip, err := ParseIPAddress(ipAddr)
	if err != nil {
		return
	}

	for _, cidr := range specialPurposeCIDRs {
		if ip&cidr.mask == cidr.prefix {
			special = true
			return
		}
	}

	return
}
