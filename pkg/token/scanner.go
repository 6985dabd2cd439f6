package token

import (
	"errors"
	"strings"

	"github.com/rivo/uniseg"
)

// Scanner searches a fixed text for unescaped token occurrences.
// Grapheme-cluster boundaries are computed once per scanner.
type Scanner struct {
	text     string
	escape   string
	boundary []bool
}

// NewScanner prepares text for scanning. An empty escape disables escaping.
func NewScanner(text, escape string) *Scanner {
	return &Scanner{
		text:     text,
		escape:   escape,
		boundary: graphemeBoundaries(text),
	}
}

// Text returns the scanned text.
func (s *Scanner) Text() string {
	return s.text
}

// Find returns the first unescaped occurrence of sep at or after from.
func (s *Scanner) Find(sep string, from int) (Range, bool) {
	if sep == "" || from < 0 {
		return Range{}, false
	}
	for from <= len(s.text)-len(sep) {
		i := strings.Index(s.text[from:], sep)
		if i < 0 {
			return Range{}, false
		}
		start := from + i
		end := start + len(sep)
		if !s.IsBoundary(start) || !s.IsBoundary(end) {
			from = start + 1
			continue
		}
		if s.Escaped(start) {
			from = end
			continue
		}
		return Range{Start: start, End: end}, true
	}
	return Range{}, false
}

// FindPair finds left at or after cursor and then right after it.
// It returns the outer range (tokens included) and the inner content range.
// ok is false when left does not occur. When left occurs but right does not,
// ErrUnclosedToken is returned.
func (s *Scanner) FindPair(left, right string, cursor int) (outer, inner Range, err error) {
	l, ok := s.Find(left, cursor)
	if !ok {
		return Range{}, Range{}, errNoMatch
	}
	r, ok := s.Find(right, l.End)
	if !ok {
		return Range{}, Range{}, ErrUnclosedToken
	}
	return Range{Start: l.Start, End: r.End}, Range{Start: l.End, End: r.Start}, nil
}

// Escaped reports whether the position is preceded by an odd run of escape tokens.
func (s *Scanner) Escaped(pos int) bool {
	if s.escape == "" {
		return false
	}
	n := 0
	for pos >= len(s.escape) && s.text[pos-len(s.escape):pos] == s.escape {
		n++
		pos -= len(s.escape)
	}
	return n%2 == 1
}

// IsBoundary reports whether the byte offset is a grapheme-cluster boundary.
func (s *Scanner) IsBoundary(pos int) bool {
	if pos < 0 || pos > len(s.text) {
		return false
	}
	return s.boundary[pos]
}

// Occurrences returns every grapheme-aligned occurrence of sep, escaped or not,
// scanning left to right without overlap.
func (s *Scanner) Occurrences(sep string) []Range {
	if sep == "" {
		return nil
	}
	var out []Range
	from := 0
	for from <= len(s.text)-len(sep) {
		i := strings.Index(s.text[from:], sep)
		if i < 0 {
			break
		}
		start := from + i
		end := start + len(sep)
		if !s.IsBoundary(start) || !s.IsBoundary(end) {
			from = start + 1
			continue
		}
		out = append(out, Range{Start: start, End: end})
		from = end
	}
	return out
}

// Find is a one-shot convenience over NewScanner(text, escape).Find.
func Find(sep, escape, text string, from int) (Range, bool) {
	return NewScanner(text, escape).Find(sep, from)
}

// FindPair is a one-shot convenience over NewScanner(text, escape).FindPair.
// found is false when left does not occur at all.
func FindPair(left, right, escape, text string, cursor int) (outer, inner Range, found bool, err error) {
	outer, inner, err = NewScanner(text, escape).FindPair(left, right, cursor)
	switch {
	case errors.Is(err, errNoMatch):
		return Range{}, Range{}, false, nil
	case err != nil:
		return Range{}, Range{}, true, err
	}
	return outer, inner, true, nil
}

// IsNotFound reports whether err signals that no opening token was found.
func IsNotFound(err error) bool {
	return errors.Is(err, errNoMatch)
}

// graphemeBoundaries marks every byte offset of text that starts a grapheme
// cluster, plus len(text).
func graphemeBoundaries(text string) []bool {
	b := make([]bool, len(text)+1)
	b[len(text)] = true
	state := -1
	rest := text
	offset := 0
	for len(rest) > 0 {
		b[offset] = true
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		offset += len(cluster)
	}
	return b
}
