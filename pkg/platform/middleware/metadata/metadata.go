// Package metadata extracts client IP and User-Agent into the request context.
package metadata

import (
	"fmt"
	"net/http"
	"net/netip"
	"strings"

	"ninlookup/pkg/requestcontext"
	s "ninlookup/pkg/string"
)

// MaxForwardedHeaderLength bounds X-Forwarded-For / X-Real-IP before they are parsed.
const MaxForwardedHeaderLength = 500

// MaxUserAgentLength truncates absurd User-Agent headers before they reach storage.
const MaxUserAgentLength = 512

// Config holds the trusted proxy prefixes. Forwarding headers are ignored unless the
// direct peer falls inside one of them.
type Config struct {
	TrustedProxies []netip.Prefix
}

// ParseTrustedProxies parses a comma separated list of CIDRs or bare addresses.
func ParseTrustedProxies(csv string) ([]netip.Prefix, error) {
	var prefixes []netip.Prefix
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !strings.Contains(part, "/") {
			addr, err := netip.ParseAddr(part)
			if err != nil {
				return nil, fmt.Errorf("parse trusted proxy %q: %w", part, err)
			}
			prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
			continue
		}
		prefix, err := netip.ParsePrefix(part)
		if err != nil {
			return nil, fmt.Errorf("parse trusted proxy %q: %w", part, err)
		}
		prefixes = append(prefixes, prefix.Masked())
	}
	return prefixes, nil
}

type Middleware struct {
	config Config
}

func NewMiddleware(cfg Config) *Middleware {
	return &Middleware{config: cfg}
}

// Handler stores client IP and User-Agent on the request context.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent := s.Truncate(r.Header.Get("User-Agent"), MaxUserAgentLength)
		ctx := requestcontext.WithClientMetadata(r.Context(), m.clientIP(r), userAgent)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) clientIP(r *http.Request) string {
	peer, ok := parseRemoteAddr(r.RemoteAddr)
	if !ok {
		return "unknown"
	}
	if !m.isTrustedProxy(peer) {
		return peer.String()
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if len(xff) > MaxForwardedHeaderLength {
			return peer.String()
		}
		first, _, _ := strings.Cut(xff, ",")
		if addr, err := netip.ParseAddr(strings.TrimSpace(first)); err == nil {
			return addr.String()
		}
		return peer.String()
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" && len(xri) <= MaxForwardedHeaderLength {
		if addr, err := netip.ParseAddr(strings.TrimSpace(xri)); err == nil {
			return addr.String()
		}
	}
	return peer.String()
}

func (m *Middleware) isTrustedProxy(addr netip.Addr) bool {
	for _, prefix := range m.config.TrustedProxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// parseRemoteAddr accepts "ip:port", "[ipv6]:port" and a bare address.
func parseRemoteAddr(remoteAddr string) (netip.Addr, bool) {
	if remoteAddr == "" {
		return netip.Addr{}, false
	}
	if ap, err := netip.ParseAddrPort(remoteAddr); err == nil {
		return ap.Addr().Unmap(), true
	}
	if addr, err := netip.ParseAddr(strings.Trim(remoteAddr, "[]")); err == nil {
		return addr.Unmap(), true
	}
	return netip.Addr{}, false
}
