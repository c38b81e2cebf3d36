// Package tagging turns user input into per-file ID3 edits and applies them.
//
// Decide is pure: (Input, Existing) → Decision. Apply, ReadExisting and
// Inspect are boundary code and perform file I/O through id3v2.
package tagging

import (
	"strings"

	"github.com/binaryphile/genre-fill/internal/artists"
)

// Input is what the user typed, shared by every file of a batch.
type Input struct {
	Genre   string
	Artists string // comma/semicolon separated, may be empty
	Join    bool   // single " / " joined display value instead of native multi-value
}

// Existing is the artist state already stored in a file.
type Existing struct {
	Values     []string // TPE1 values (one, or several for ID3v2.4 multi-value)
	Structured []string // auxiliary list written by a previous run, nil if absent
}

// List returns the best available artist list for the file.
func (e Existing) List() []string {
	if len(e.Structured) > 0 {
		return e.Structured
	}
	return artists.Normalize(e.Values)
}

// Decision is the computed edit for one file.
// Zero-valued fields mean "leave the frame alone".
type Decision struct {
	Genre    string   // TCON value; empty = keep
	Artists  []string // new artist list; nil = keep
	Join     bool
	Migrated bool // Artists came from a legacy slash-joined value
}

// Decide computes the edit for one file.
// This is a pure function: (Input, Existing) → Decision
//
// A non-blank artist input replaces the artist tag. A blank artist input
// never clears it; it only migrates a legacy "a/b" value.
func Decide(in Input, ex Existing) Decision {
	d := Decision{
		Genre: artists.Clean(in.Genre),
		Join:  in.Join,
	}

	if strings.TrimSpace(in.Artists) != "" {
		// delimiter-only input parses to nothing: genre-only update
		if list := artists.Parse(in.Artists); len(list) > 0 {
			d.Artists = list
		}
		return d
	}

	if list, ok := migrate(ex); ok {
		d.Artists = list
		d.Migrated = true
	}
	return d
}

// migrate splits a single legacy slash-joined value. A value matching the
// auxiliary list was written by us and is already normalized.
func migrate(ex Existing) ([]string, bool) {
	if len(ex.Values) != 1 {
		return nil, false
	}
	value := artists.Clean(ex.Values[0])
	if !artists.HasLegacyDelimiter(value) {
		return nil, false
	}
	if len(ex.Structured) > 0 && artists.Join(ex.Structured) == value {
		return nil, false
	}

	list := artists.SplitLegacy(value)
	if len(list) == 0 {
		return nil, false
	}
	return list, true
}

// WritesGenre reports whether the genre frame is replaced.
func (d Decision) WritesGenre() bool {
	return d.Genre != ""
}

// WritesArtists reports whether the artist frames are replaced.
func (d Decision) WritesArtists() bool {
	return len(d.Artists) > 0
}

// Changes reports whether Apply would touch the file at all.
func (d Decision) Changes() bool {
	return d.WritesGenre() || d.WritesArtists()
}

// Display is the TPE1 text: " / " joined when Join is set, otherwise
// NUL-separated ID3v2.4 multi-values.
func (d Decision) Display() string {
	if d.Join {
		return artists.Join(d.Artists)
	}
	return strings.Join(d.Artists, multiValueSeparator)
}
