package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnonymizeIP(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "ipv4 standard address", input: "192.168.1.47", expected: "192.168.1.0"},
		{name: "ipv4 already zeroed", input: "10.0.0.0", expected: "10.0.0.0"},
		{name: "ipv4 localhost", input: "127.0.0.1", expected: "127.0.0.0"},
		{name: "ipv6 full address", input: "2001:db8:85a3:0000:0000:8a2e:0370:7334", expected: "2001:db8:85a3::"},
		{name: "ipv6 compressed address", input: "2001:db8:85a3::8a2e:370:7334", expected: "2001:db8:85a3::"},
		{name: "ipv6 loopback", input: "::1", expected: "::"},
		{name: "ipv4-mapped ipv6", input: "::ffff:192.168.1.47", expected: "192.168.1.0"},
		{name: "empty", input: "", expected: "unknown"},
		{name: "unknown marker", input: "unknown", expected: "unknown"},
		{name: "garbage", input: "not-an-ip", expected: "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AnonymizeIP(tt.input))
		})
	}
}

func TestRedactIdentifier(t *testing.T) {
	assert.Equal(t, "*******8901", RedactIdentifier("12345678901"))
	assert.Equal(t, "****5678", RedactIdentifier(" 08012345678"[4:]))
	assert.Equal(t, "****", RedactIdentifier("1234"))
	assert.Equal(t, "", RedactIdentifier("   "))
}
