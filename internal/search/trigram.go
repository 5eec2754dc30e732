package search

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Match represents a search match with its index and score.
type Match struct {
	Index int
	Score float64
}

// TrigramMatcher performs trigram-based search with multi-word support.
type TrigramMatcher struct {
	itemTrigrams []map[string]struct{}
	normalized   []string
}

// NewTrigramMatcher creates a matcher for the given items.
func NewTrigramMatcher(items []Item) *TrigramMatcher {
	m := &TrigramMatcher{
		itemTrigrams: make([]map[string]struct{}, len(items)),
		normalized:   make([]string, len(items)),
	}

	for i, item := range items {
		text := normalize(item.FilterValue())
		m.normalized[i] = text
		m.itemTrigrams[i] = generateTrigrams(text)
	}

	return m
}

// Len returns the number of indexed items.
func (m *TrigramMatcher) Len() int {
	return len(m.normalized)
}

// Search finds items matching the query.
// Query is split into words, each word must match (AND logic).
// Returns matches sorted by score (best first); ties keep item order.
func (m *TrigramMatcher) Search(query string) []Match {
	words := strings.Fields(normalize(query))
	if len(words) == 0 {
		matches := make([]Match, m.Len())
		for i := range matches {
			matches[i] = Match{Index: i}
		}
		return matches
	}

	wordTrigrams := make([]map[string]struct{}, len(words))
	for i, word := range words {
		wordTrigrams[i] = generateTrigrams(word)
	}

	var matches []Match
	for i, itemTris := range m.itemTrigrams {
		if score := m.scoreItem(i, words, wordTrigrams, itemTris); score > 0 {
			matches = append(matches, Match{Index: i, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return matches
}

// scoreItem calculates how well an item matches the query words.
// All words must match for a non-zero score.
func (m *TrigramMatcher) scoreItem(idx int, words []string, wordTrigrams []map[string]struct{}, itemTris map[string]struct{}) float64 {
	text := m.normalized[idx]
	totalScore := 0.0

	for i, word := range words {
		// Short words (1-2 chars) use substring match
		if len([]rune(word)) <= 2 {
			if !strings.Contains(text, word) {
				return 0
			}
			totalScore += 1.0
			continue
		}

		// Coverage (intersection / query size) rather than Jaccard, which
		// penalizes short queries against long texts.
		similarity := trigramCoverage(wordTrigrams[i], itemTris)
		if similarity < 0.4 {
			return 0
		}

		if strings.Contains(text, word) {
			similarity += 0.5
		}

		totalScore += similarity
	}

	return totalScore / float64(len(words))
}

// normalize lowercases and removes diacritics for matching.
func normalize(s string) string {
	return strings.ToLower(RemoveDiacritics(s))
}

// generateTrigrams creates the set of trigrams for a string.
// Pads with spaces at start/end for better prefix/suffix matching.
func generateTrigrams(s string) map[string]struct{} {
	if s == "" {
		return nil
	}

	tris := make(map[string]struct{})

	padded := []rune("  " + s + "  ")
	for i := 0; i <= len(padded)-3; i++ {
		tri := string(padded[i : i+3])
		if strings.TrimSpace(tri) != "" {
			tris[tri] = struct{}{}
		}
	}

	return tris
}

// trigramCoverage returns |A ∩ B| / |A|.
func trigramCoverage(query, item map[string]struct{}) float64 {
	if len(query) == 0 {
		return 0
	}

	intersection := 0
	for tri := range query {
		if _, ok := item[tri]; ok {
			intersection++
		}
	}

	return float64(intersection) / float64(len(query))
}

// RemoveDiacritics removes accents, so "cafe" matches "café".
// Precomposed characters are decomposed first.
func RemoveDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
