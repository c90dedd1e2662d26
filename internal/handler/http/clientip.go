package http

import (
	"log/slog"
	"net"
	"net/http"
	"net/netip"
)

// ClientIP resolves the address a request is attributed to.
//
// X-Forwarded-For and X-Real-IP are honoured only when the connection comes
// from one of the Trusted proxies. With no trusted proxies the TCP peer
// address is always used, so clients cannot pick their own identity.
type ClientIP struct {
	Trusted []netip.Prefix
}

// Extract returns the client IP of r.
//
// Examples, with 10.0.0.0/8 trusted:
//   - RemoteAddr "10.0.0.2:5000", X-Forwarded-For "203.0.113.5, 10.0.0.2" → "203.0.113.5"
//   - RemoteAddr "198.51.100.9:5000", X-Forwarded-For "203.0.113.5"       → "198.51.100.9"
func (c ClientIP) Extract(r *http.Request) string {
	peer := hostOf(r.RemoteAddr)
	if !c.trusted(peer) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" && len(c.Trusted) > 0 {
			slog.Debug("ignoring forwarding header from untrusted peer",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("x_forwarded_for", xff))
		}
		return peer
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := parseFirstIP(xff); ip != "" {
			return ip
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if ip := net.ParseIP(xri); ip != nil {
			return ip.String()
		}
	}
	return peer
}

func (c ClientIP) trusted(peer string) bool {
	if len(c.Trusted) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(peer)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range c.Trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// hostOf strips the port from a "host:port" address. Addresses without a
// port are returned unchanged.
func hostOf(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
