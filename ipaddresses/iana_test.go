package ipaddresses

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSpecialPurposeAddress(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	addrs := map[string]bool{
		"132.239.180.101": false,
		"8.8.8.8":         false,
		"100.128.0.1":     false,
		"192.168.0.1":     true,
		"10.1.2.3":        true,
		"127.0.0.1":       true,
		"100.64.0.1":      true,
		"169.254.10.10":   true,
		"203.0.113.77":    true,
		"224.0.0.251":     true,
		"255.255.255.255": true,
	}

	for ipAddr, specialRef := range addrs {
		// Act
		special, err := IsSpecialPurposeAddress(ipAddr)

		// Assert
		assert.Nil(err)
		assert.Equal(specialRef, special, ipAddr)
	}
}

func TestIsSpecialPurposeAddressMalformed(t *testing.T) {
	assert := assert.New(t)

	// Act
	_, err := IsSpecialPurposeAddress("not.an.ip.addr")

	// Assert
	assert.Error(err)
}
