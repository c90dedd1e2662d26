package view

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MakeCategory turns a slug into space-separated words: "web-development" -> "web development".
func MakeCategory(slug string) string {
	return strings.ReplaceAll(slug, "-", " ")
}

// CapitalizeFirstLetter upper-cases the first rune of s and leaves the rest untouched.
func CapitalizeFirstLetter(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// FormatCategory returns the display label of a category slug:
// "web-development" -> "Web development".
func FormatCategory(slug string) string {
	return CapitalizeFirstLetter(MakeCategory(slug))
}
