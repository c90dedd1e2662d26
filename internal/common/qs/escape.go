package qs

import (
	"net/url"
	"strings"
)

const upperhex = "0123456789ABCDEF"

// escape percent-encodes s for use inside a bracket key segment or a value.
// Unreserved characters and the Strapi operator/separator characters
// ($ : @ , .) are left as-is so operators like $containsi stay readable.
func escape(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !keep(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if keep(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func keep(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '~', '$', ':', '@', ',':
		return true
	}
	return false
}

// unescape reverses escape; '+' is read as a space for compatibility with
// form-encoded input.
func unescape(s string) (string, error) {
	return url.QueryUnescape(s)
}
