// Package fuzzy ranks long option names by edit distance so unknown long
// options can be reported with a "did you mean" hint
package fuzzy

import (
	"cmp"
	"slices"
	"strings"
)

// Matcher finds candidates within a bounded edit distance of an input
type Matcher struct {
	maxDistance int
	minLength   int
}

// NewMatcher creates a matcher with the given max edit distance
func NewMatcher(maxDistance int) *Matcher {
	return &Matcher{
		maxDistance: maxDistance,
		minLength:   2,
	}
}

// Match is one ranked candidate
type Match struct {
	Value    string
	Distance int
	Score    float64 // 0.0 to 1.0, higher is better
}

// FindBest returns the best candidate or "" when nothing is close enough
func (m *Matcher) FindBest(input string, candidates []string) string {
	matches := m.FindMatches(input, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Value
}

// FindMatches returns every candidate within range, best first. Exact
// matches are skipped; duplicates are reported once.
func (m *Matcher) FindMatches(input string, candidates []string) []Match {
	in := []rune(strings.ToLower(input))
	if len(in) < m.minLength {
		return nil
	}

	var matches []Match
	seen := make(map[string]struct{}, len(candidates))
	for _, candidate := range candidates {
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}

		cand := []rune(strings.ToLower(candidate))
		if slices.Equal(in, cand) {
			continue
		}
		distance := m.distance(in, cand)
		if distance > m.maxDistance {
			continue
		}
		matches = append(matches, Match{
			Value:    candidate,
			Distance: distance,
			Score:    score(in, cand, distance),
		})
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Distance, b.Distance)
	})
	return matches
}

// score blends edit distance with a shared-prefix bonus
func score(a, b []rune, distance int) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1.0
	}
	s := 1.0 - float64(distance)/float64(longest)

	prefix := 0
	for prefix < len(a) && prefix < len(b) && a[prefix] == b[prefix] {
		prefix++
	}
	if shortest := min(len(a), len(b)); shortest > 0 {
		s += float64(prefix) / float64(shortest) * 0.3
	}
	return min(s, 1.0)
}

// distance is the Levenshtein distance over runes, cut off once it cannot
// come back under maxDistance.
func (m *Matcher) distance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	if diff := len(a) - len(b); diff > m.maxDistance || -diff > m.maxDistance {
		return m.maxDistance + 1
	}
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}

	for i := 1; i <= len(b); i++ {
		curr[0] = i
		rowMin := i
		for j := 1; j <= len(a); j++ {
			cost := 1
			if a[j-1] == b[i-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
			rowMin = min(rowMin, curr[j])
		}
		if rowMin > m.maxDistance {
			return m.maxDistance + 1
		}
		prev, curr = curr, prev
	}
	return prev[len(a)]
}

// FindBestOption finds the best matching long option name
func FindBestOption(input string, names []string, maxDistance int) string {
	return NewMatcher(maxDistance).FindBest(input, names)
}

// FindSuggestions returns up to maxSuggestions ranked names
func FindSuggestions(input string, candidates []string, maxDistance, maxSuggestions int) []string {
	matches := NewMatcher(maxDistance).FindMatches(input, candidates)
	suggestions := make([]string, 0, min(len(matches), maxSuggestions))
	for _, match := range matches {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, match.Value)
	}
	return suggestions
}
