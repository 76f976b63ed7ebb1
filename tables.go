package gomatch

import "strings"

// buildBadCharTable maps every byte to the rightmost index at which it
// occurs in the pattern, or -1 when it does not occur at all.
func buildBadCharTable(pattern string) [256]int {
	var table [256]int
	for i := range table {
		table[i] = -1
	}
	for j := 0; j < len(pattern); j++ {
		table[pattern[j]] = j
	}
	return table
}

// buildGoodSuffixTable computes, for each mismatch position j, how far the
// search window may safely advance once the suffix pattern[j+1:] has already
// matched the text. Entry j is derived from the rightmost reoccurrence of
// that suffix strictly left of j+1; when the suffix reoccurs nowhere, the
// shift falls back to the longest trailing part of it that is also a prefix
// of the pattern. Every entry is at least 1. The final entry covers a
// mismatch at the last position, where no suffix has matched yet and only a
// single-character shift is safe.
func buildGoodSuffixTable(pattern string) []int {
	m := len(pattern)
	shifts := make([]int, 0, m)
	for j := 0; j < m-1; j++ {
		suffix := pattern[j+1:]
		i := rightmostIndex(suffix, pattern[:m-1])
		if i == -1 {
			shifts = append(shifts, suffixAsPrefixShift(suffix, pattern))
			continue
		}
		shifts = append(shifts, j+1-i) // positive, since i < j+1
	}
	shifts = append(shifts, 1)
	return shifts
}

// rightmostIndex returns the start index of the rightmost occurrence of sub
// in s, or -1. The scan is naive, which is fine here: it only runs at table
// construction, never during a search.
func rightmostIndex(sub, s string) int {
	for i := len(s) - len(sub); i >= 0; i-- {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

// suffixAsPrefixShift drops characters from the front of suffix until the
// remainder is a prefix of the pattern, and returns the pattern length minus
// the length of that remainder. When the remainder empties this degrades to
// the full pattern length, the maximum possible shift.
func suffixAsPrefixShift(suffix, pattern string) int {
	for len(suffix) > 1 {
		suffix = suffix[1:]
		if strings.HasPrefix(pattern, suffix) {
			return len(pattern) - len(suffix)
		}
	}
	return len(pattern)
}
