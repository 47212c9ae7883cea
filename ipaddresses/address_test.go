package ipaddresses

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIPAddress(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	addrs := map[string]uint32{
		"0.0.0.0":         0,
		"8.8.8.8":         134744072,
		"192.168.0.1":     3232235521,
		"255.255.255.255": 4294967295,
	}

	for ipAddr, ipRef := range addrs {
		// Act
		ip, err := ParseIPAddress(ipAddr)

		// Assert
		assert.Nil(err)
		assert.Equal(ipRef, ip)
	}
}

func TestParseIPAddressMalformed(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	// Abbreviated forms are rejected: "192.168.1" is not resolved to
	// "192.168.0.1".
	addrs := []string{
		"",
		"192.168.1",
		"0.0.0.0.0",
		"256.1.1.1",
		"-1.0.0.0",
		"O.O.O.O",
		"10.0.0.0/8",
		"2001:db8::1",
	}

	for _, ipAddr := range addrs {
		// Act
		_, err := ParseIPAddress(ipAddr)

		// Assert
		assert.Error(err)
	}
}

func TestParseCIDR(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	cidr := "10.0.0.0/8"

	// Act
	prefix, mask, err := ParseCIDR(cidr)

	// Assert
	assert.Nil(err)
	assert.Equal(uint32(0x0a000000), prefix)
	assert.Equal(uint32(0xff000000), mask)
}

func TestParseCIDROddPrefixLength(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	cidr := "198.18.0.0/15"

	// Act
	prefix, mask, err := ParseCIDR(cidr)

	// Assert
	assert.Nil(err)
	assert.Equal(uint32(0xc6120000), prefix)
	assert.Equal(uint32(0xfffe0000), mask)
}

func TestParseCIDRHostRoute(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	cidr := "255.255.255.255/32"

	// Act
	prefix, mask, err := ParseCIDR(cidr)

	// Assert
	assert.Nil(err)
	assert.Equal(uint32(0xffffffff), prefix)
	assert.Equal(uint32(0xffffffff), mask)
}

func TestParseCIDRMalformed(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	// Abbreviated address parts are rejected: "10/8" is not "10.0.0.0/8".
	cidrs := []string{
		"10.0.0.0",
		"10/8",
		"10.0.0.0/33",
		"10.0.0.0/16/8",
		"10.0.0.0/eight",
		"10.0.0.0/",
	}

	for _, cidr := range cidrs {
		// Act
		_, _, err := ParseCIDR(cidr)

		// Assert
		assert.Error(err)
	}
}
