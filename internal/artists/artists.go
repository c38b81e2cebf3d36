// Package artists implements the artist-name policy: parsing user input,
// migrating legacy slash-joined values, and joining lists for display.
// Everything here is pure string handling; no I/O is performed.
package artists

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DisplaySeparator joins a list into the single-valued artist frame.
const DisplaySeparator = " / "

var (
	inputDelimiters = regexp.MustCompile(`[,;]`)
	legacyDelimiter = regexp.MustCompile(`\s*/\s*`)
	controlChars    = runes.In(unicode.Cc)
)

// Parse splits user input on commas or semicolons (mixed use allowed).
// This is a pure function: raw input → ArtistList
//
// Segments are trimmed, empty segments dropped and duplicates removed
// keeping the first occurrence. Input made only of delimiters and
// whitespace yields an empty list.
func Parse(raw string) []string {
	return Normalize(inputDelimiters.Split(raw, -1))
}

// HasLegacyDelimiter reports whether a single stored artist value looks
// like several names crammed together with '/'.
func HasLegacyDelimiter(value string) bool {
	return strings.Contains(value, "/")
}

// SplitLegacy splits a slash-joined value ("aaa/bbb", "aaa / bbb").
// Values without a slash come back as a one-element list.
func SplitLegacy(value string) []string {
	return Normalize(legacyDelimiter.Split(value, -1))
}

// Join builds the display string written for player compatibility.
func Join(list []string) string {
	return strings.Join(list, DisplaySeparator)
}

// Normalize cleans a list of candidate names:
// - control characters (including NUL) → removed
// - Unicode → NFC, so visually equal names compare equal
// - surrounding whitespace → trimmed
// - empty names → dropped
// - exact duplicates → dropped, first occurrence wins
func Normalize(names []string) []string {
	seen := make(map[string]bool, len(names))
	result := make([]string, 0, len(names))
	for _, name := range names {
		name = Clean(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		result = append(result, name)
	}
	return result
}

// Clean normalizes one free-text value (an artist name or a genre).
func Clean(s string) string {
	t := transform.Chain(runes.Remove(controlChars), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}
	return strings.TrimSpace(result)
}
