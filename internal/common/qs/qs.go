// Package qs encodes nested, ordered key/value structures into bracket-notation
// query strings (filters[category][slug]=go&sort[0]=id:desc) and parses them back.
//
// Unlike url.Values, insertion order is preserved, so the same input always
// produces the same string.
package qs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedKey is returned by Parse for keys with unbalanced brackets.
var ErrMalformedKey = errors.New("malformed bracket key")

// Pair is a single leaf of the structure: the path from the root and its value.
type Pair struct {
	Path  []string
	Value string
}

// Key renders the bracket form of the path, e.g. ["a","b","0"] -> a[b][0].
func (p Pair) Key() string {
	var b strings.Builder
	for i, seg := range p.Path {
		if i == 0 {
			b.WriteString(escape(seg))
			continue
		}
		b.WriteByte('[')
		b.WriteString(escape(seg))
		b.WriteByte(']')
	}
	return b.String()
}

// Values is an ordered list of pairs.
type Values []Pair

// Add appends value under path.
func (v *Values) Add(value string, path ...string) {
	p := make([]string, len(path))
	copy(p, path)
	*v = append(*v, Pair{Path: p, Value: value})
}

// AddList appends each element of values under path[i].
func (v *Values) AddList(values []string, path ...string) {
	for i, val := range values {
		p := make([]string, 0, len(path)+1)
		p = append(p, path...)
		p = append(p, strconv.Itoa(i))
		*v = append(*v, Pair{Path: p, Value: val})
	}
}

// Get returns the first value stored under path.
func (v Values) Get(path ...string) (string, bool) {
	for _, p := range v {
		if samePath(p.Path, path) {
			return p.Value, true
		}
	}
	return "", false
}

// Has reports whether any pair lives at or below the given path prefix.
func (v Values) Has(prefix ...string) bool {
	for _, p := range v {
		if len(p.Path) >= len(prefix) && samePath(p.Path[:len(prefix)], prefix) {
			return true
		}
	}
	return false
}

// Encode renders the pairs as key=value joined by '&', in insertion order.
func (v Values) Encode() string {
	if len(v) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range v {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.Key())
		b.WriteByte('=')
		b.WriteString(escape(p.Value))
	}
	return b.String()
}

// Parse decodes a query string produced by Encode (or any bracket-notation
// query string). Order of pairs is preserved. Percent-encoded brackets are
// accepted.
func Parse(raw string) (Values, error) {
	raw = strings.TrimPrefix(raw, "?")
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, "&")
	out := make(Values, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		k, err := unescape(key)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		val, err := unescape(value)
		if err != nil {
			return nil, fmt.Errorf("value of %q: %w", k, err)
		}
		path, err := splitKey(k)
		if err != nil {
			return nil, err
		}
		out = append(out, Pair{Path: path, Value: val})
	}
	return out, nil
}

func splitKey(key string) ([]string, error) {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		if strings.IndexByte(key, ']') >= 0 {
			return nil, fmt.Errorf("%w: %q", ErrMalformedKey, key)
		}
		return []string{key}, nil
	}
	path := []string{key[:open]}
	rest := key[open:]
	for rest != "" {
		if rest[0] != '[' {
			return nil, fmt.Errorf("%w: %q", ErrMalformedKey, key)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, fmt.Errorf("%w: %q", ErrMalformedKey, key)
		}
		path = append(path, rest[1:end])
		rest = rest[end+1:]
	}
	return path, nil
}

func samePath(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
