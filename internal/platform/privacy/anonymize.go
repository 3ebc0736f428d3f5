// Package privacy keeps identity numbers and client addresses out of logs and events.
package privacy

import (
	"net/netip"
	"strings"
)

// AnonymizeIP truncates an address to its network portion.
//
// IPv4 keeps the /24 ("192.168.1.47" -> "192.168.1.0"); IPv6 keeps the /48
// ("2001:db8:85a3::8a2e:370:7334" -> "2001:db8:85a3::"). IPv4-mapped IPv6 is treated as IPv4.
//
// Returns "unknown" for empty input and "invalid" when the value does not parse.
func AnonymizeIP(ip string) string {
	if ip == "" || ip == "unknown" {
		return "unknown"
	}

	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return "invalid"
	}
	addr = addr.Unmap()

	bits := 48
	if addr.Is4() {
		bits = 24
	}
	prefix, err := addr.WithZone("").Prefix(bits)
	if err != nil {
		return "invalid"
	}
	return prefix.Addr().String()
}

// RedactIdentifier masks all but the last four characters of an identity value
// (NIN, BVN, phone, tracking ID). Values of four characters or fewer are fully masked.
func RedactIdentifier(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if len(v) <= 4 {
		return strings.Repeat("*", len(v))
	}
	return strings.Repeat("*", len(v)-4) + v[len(v)-4:]
}
