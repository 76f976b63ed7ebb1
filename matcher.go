package gomatch

import (
	"errors"
	"fmt"
)

// ErrEmptyPattern is returned when a matcher is constructed with an empty pattern.
var ErrEmptyPattern = errors.New("pattern cannot be empty")

// Matcher finds every occurrence of a fixed pattern inside a text buffer.
// It supports two interchangeable algorithms: a brute-force scan and
// Boyer-Moore with the bad-character and good-suffix heuristics. The
// heuristic tables are built once at construction and reused by every
// subsequent search, so a single Matcher is safe for concurrent use.
type Matcher struct {
	pattern       string
	caseSensitive bool
	badChar       [256]int
	goodSuffix    []int
}

// NewMatcher creates a matcher for the given pattern. When caseSensitive is
// false the pattern is case-folded once here and every searched text is
// folded the same way, so both algorithms see identical input.
func NewMatcher(pattern string, caseSensitive bool) (*Matcher, error) {
	if pattern == "" {
		return nil, fmt.Errorf("invalid pattern: %w", ErrEmptyPattern)
	}

	if !caseSensitive {
		pattern = foldCase(pattern)
	}

	m := &Matcher{
		pattern:       pattern,
		caseSensitive: caseSensitive,
	}
	m.badChar = buildBadCharTable(pattern)
	m.goodSuffix = buildGoodSuffixTable(pattern)

	return m, nil
}

// Pattern returns the pattern the matcher searches for, in folded form when
// the matcher is case-insensitive.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// CaseSensitive reports whether the matcher compares characters exactly.
func (m *Matcher) CaseSensitive() bool {
	return m.caseSensitive
}

// NaiveSearch returns the starting offsets of every occurrence of the
// pattern in text, in ascending order. Overlapping occurrences are all
// reported. A text shorter than the pattern yields no offsets.
func (m *Matcher) NaiveSearch(text string) []int {
	if !m.caseSensitive {
		text = foldCase(text)
	}

	plen := len(m.pattern)
	var positions []int
	for shift := 0; shift <= len(text)-plen; shift++ {
		if text[shift:shift+plen] == m.pattern {
			positions = append(positions, shift)
		}
	}
	return positions
}

// BoyerMooreSearch returns the same offsets as NaiveSearch for any input,
// but skips ahead using the precomputed heuristic tables. At each window it
// compares right to left; on a mismatch the window advances by the larger of
// the good-suffix shift and the bad-character shift, which never skips a
// valid alignment.
func (m *Matcher) BoyerMooreSearch(text string) []int {
	if !m.caseSensitive {
		text = foldCase(text)
	}

	plen := len(m.pattern)
	var positions []int
	shift := 0
	for shift <= len(text)-plen {
		j := plen - 1
		for j > -1 && m.pattern[j] == text[shift+j] {
			j--
		}
		if j == -1 {
			// Full match; continue scanning past it.
			positions = append(positions, shift)
			shift += m.goodSuffix[0]
		} else {
			// The bad-character term aligns the mismatched text character
			// with its rightmost occurrence in the pattern, or slides the
			// whole pattern past it when absent (-1 sentinel).
			badCharShift := j - m.badChar[text[shift+j]]
			if gs := m.goodSuffix[j]; gs > badCharShift {
				shift += gs
			} else {
				shift += badCharShift
			}
		}
	}
	return positions
}

// findAll runs the algorithm selected for this matcher by the caller.
func (m *Matcher) findAll(text string, naive bool) []int {
	if naive {
		return m.NaiveSearch(text)
	}
	return m.BoyerMooreSearch(text)
}
