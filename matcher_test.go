package gomatch

import (
	"errors"
	"math/rand"
	"reflect"
	"strings"
	"testing"
)

func TestNewMatcher(t *testing.T) {
	t.Run("ValidPattern", func(t *testing.T) {
		m, err := NewMatcher("hello", true)
		if err != nil {
			t.Fatalf("Failed to create matcher: %v", err)
		}

		if m.Pattern() != "hello" {
			t.Errorf("Expected pattern 'hello', got %q", m.Pattern())
		}
		if !m.CaseSensitive() {
			t.Error("Expected case-sensitive matcher")
		}
	})

	t.Run("EmptyPattern", func(t *testing.T) {
		for _, caseSensitive := range []bool{true, false} {
			_, err := NewMatcher("", caseSensitive)
			if err == nil {
				t.Fatalf("Expected error for empty pattern (caseSensitive=%v)", caseSensitive)
			}
			if !errors.Is(err, ErrEmptyPattern) {
				t.Errorf("Expected ErrEmptyPattern, got %v", err)
			}
		}
	})

	t.Run("CaseInsensitivePatternFolded", func(t *testing.T) {
		m, err := NewMatcher("Hello", false)
		if err != nil {
			t.Fatalf("Failed to create matcher: %v", err)
		}

		if m.Pattern() != "hello" {
			t.Errorf("Expected folded pattern 'hello', got %q", m.Pattern())
		}
	})
}

func TestBadCharTable(t *testing.T) {
	table := buildBadCharTable("bob")

	if table['b'] != 2 {
		t.Errorf("Expected rightmost index of 'b' to be 2, got %d", table['b'])
	}
	if table['o'] != 1 {
		t.Errorf("Expected rightmost index of 'o' to be 1, got %d", table['o'])
	}
	if table['x'] != -1 {
		t.Errorf("Expected absent character to map to -1, got %d", table['x'])
	}
}

func TestGoodSuffixTable(t *testing.T) {
	tests := []struct {
		pattern string
		want    []int
	}{
		{"ababbabacab", []int{9, 9, 9, 9, 9, 9, 9, 9, 4, 4, 1}},
		{"bob", []int{2, 2, 1}},
		{"aa", []int{1, 1}},
		{"x", []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got := buildGoodSuffixTable(tt.pattern)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("buildGoodSuffixTable(%q) = %v, want %v", tt.pattern, got, tt.want)
			}
		})
	}

	t.Run("AllEntriesPositive", func(t *testing.T) {
		patterns := []string{"a", "ab", "abc", "abcabc", "aaaa", "holala", "mississippi"}
		for _, pattern := range patterns {
			table := buildGoodSuffixTable(pattern)
			if len(table) != len(pattern) {
				t.Errorf("Table for %q has length %d, want %d", pattern, len(table), len(pattern))
			}
			for j, shift := range table {
				if shift < 1 {
					t.Errorf("Table entry %d for %q is %d, want >= 1", j, pattern, shift)
				}
			}
		}
	})
}

func TestRightmostIndex(t *testing.T) {
	tests := []struct {
		sub, s string
		want   int
	}{
		{"bab", "ababa", -1},
		{"aba", "ababa", 2},
		{"ab", "ababbabaca", 5},
		{"b", "ababbabaca", 6},
		{"ababa", "aba", -1},
	}

	for _, tt := range tests {
		if got := rightmostIndex(tt.sub, tt.s); got != tt.want {
			t.Errorf("rightmostIndex(%q, %q) = %d, want %d", tt.sub, tt.s, got, tt.want)
		}
	}
}

func TestSearchAlgorithms(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
		want    []int
	}{
		{
			name:    "EndToEnd",
			pattern: "holala",
			text:    "he holala hallo hola hola hola ha holalalaho hos hola hola holala",
			want:    []int{3, 34, 59},
		},
		{
			name:    "Overlapping",
			pattern: "aa",
			text:    "aaaa",
			want:    []int{0, 1, 2},
		},
		{
			name:    "SingleCharacter",
			pattern: "a",
			text:    "banana",
			want:    []int{1, 3, 5},
		},
		{
			name:    "NoMatch",
			pattern: "xyz",
			text:    "hello world",
			want:    nil,
		},
		{
			name:    "TextShorterThanPattern",
			pattern: "hello",
			text:    "he",
			want:    nil,
		},
		{
			name:    "EmptyText",
			pattern: "a",
			text:    "",
			want:    nil,
		},
		{
			name:    "ExactMatch",
			pattern: "hello",
			text:    "hello",
			want:    []int{0},
		},
		{
			name:    "PatternAtBothEnds",
			pattern: "ab",
			text:    "ab cd ab",
			want:    []int{0, 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMatcher(tt.pattern, true)
			if err != nil {
				t.Fatalf("Failed to create matcher: %v", err)
			}

			naive := m.NaiveSearch(tt.text)
			bm := m.BoyerMooreSearch(tt.text)

			if !reflect.DeepEqual(naive, tt.want) {
				t.Errorf("NaiveSearch = %v, want %v", naive, tt.want)
			}
			if !reflect.DeepEqual(bm, tt.want) {
				t.Errorf("BoyerMooreSearch = %v, want %v", bm, tt.want)
			}
		})
	}
}

func TestCaseInsensitiveSearch(t *testing.T) {
	m, err := NewMatcher("TGA", false)
	if err != nil {
		t.Fatalf("Failed to create matcher: %v", err)
	}

	text := "tgaTGATCTGATAGA"
	got := m.BoyerMooreSearch(text)
	want := []int{0, 3, 8}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BoyerMooreSearch = %v, want %v", got, want)
	}

	// Must agree with a case-sensitive search over the folded text.
	folded, err := NewMatcher("tga", true)
	if err != nil {
		t.Fatalf("Failed to create matcher: %v", err)
	}
	reference := folded.BoyerMooreSearch(strings.ToLower(text))
	if !reflect.DeepEqual(got, reference) {
		t.Errorf("Case-insensitive search = %v, case-sensitive over folded text = %v", got, reference)
	}

	// And the naive algorithm must fold identically.
	if naive := m.NaiveSearch(text); !reflect.DeepEqual(naive, got) {
		t.Errorf("NaiveSearch = %v, BoyerMooreSearch = %v", naive, got)
	}
}

func TestAlgorithmEquivalenceRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabets := []string{"ab", "abc", "abcd"}

	for _, alphabet := range alphabets {
		for trial := 0; trial < 500; trial++ {
			pattern := randomString(rng, alphabet, 1+rng.Intn(5))
			text := randomString(rng, alphabet, rng.Intn(60))

			m, err := NewMatcher(pattern, true)
			if err != nil {
				t.Fatalf("Failed to create matcher for %q: %v", pattern, err)
			}

			naive := m.NaiveSearch(text)
			bm := m.BoyerMooreSearch(text)

			if !reflect.DeepEqual(naive, bm) {
				t.Fatalf("Algorithms disagree for pattern %q, text %q: naive=%v, boyer-moore=%v",
					pattern, text, naive, bm)
			}

			// Every reported offset must be an exact occurrence.
			for _, offset := range bm {
				if offset < 0 || offset > len(text)-len(pattern) {
					t.Fatalf("Offset %d out of range for pattern %q, text %q", offset, pattern, text)
				}
				if text[offset:offset+len(pattern)] != pattern {
					t.Fatalf("Offset %d is not an occurrence of %q in %q", offset, pattern, text)
				}
			}
		}
	}
}

func randomString(rng *rand.Rand, alphabet string, length int) string {
	var sb strings.Builder
	for i := 0; i < length; i++ {
		sb.WriteByte(alphabet[rng.Intn(len(alphabet))])
	}
	return sb.String()
}

func TestMatcherDoesNotMutateState(t *testing.T) {
	m, err := NewMatcher("abab", true)
	if err != nil {
		t.Fatalf("Failed to create matcher: %v", err)
	}

	text := "abababab"
	first := m.BoyerMooreSearch(text)
	second := m.BoyerMooreSearch(text)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Repeated searches differ: %v vs %v", first, second)
	}
}

func BenchmarkBoyerMooreSearch(b *testing.B) {
	m, err := NewMatcher("needle", true)
	if err != nil {
		b.Fatal(err)
	}
	text := strings.Repeat("hay hay hay needle hay ", 1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.BoyerMooreSearch(text)
	}
}

func BenchmarkNaiveSearch(b *testing.B) {
	m, err := NewMatcher("needle", true)
	if err != nil {
		b.Fatal(err)
	}
	text := strings.Repeat("hay hay hay needle hay ", 1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.NaiveSearch(text)
	}
}
