package adaptors

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBlockedIP(t *testing.T) {
	tests := []struct {
		addr    string
		blocked bool
	}{
		{addr: "127.0.0.1", blocked: true},
		{addr: "10.1.2.3", blocked: true},
		{addr: "192.168.0.10", blocked: true},
		{addr: "169.254.169.254", blocked: true},
		{addr: "100.64.0.1", blocked: true},
		{addr: "0.0.0.0", blocked: true},
		{addr: "::1", blocked: true},
		{addr: "::ffff:127.0.0.1", blocked: true},
		{addr: "fd00::1", blocked: true},
		{addr: "93.184.216.34", blocked: false},
		{addr: "2606:4700:4700::1111", blocked: false},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			assert.Equal(t, tt.blocked, isBlockedIP(netip.MustParseAddr(tt.addr)))
		})
	}
}

func TestBlockPrivateAddresses(t *testing.T) {
	assert.ErrorIs(t, blockPrivateAddresses("tcp4", "127.0.0.1:80", nil), errBlockedAddress)
	assert.ErrorIs(t, blockPrivateAddresses("tcp4", "not-an-address", nil), errBlockedAddress)
	assert.NoError(t, blockPrivateAddresses("tcp4", "93.184.216.34:443", nil))
}
