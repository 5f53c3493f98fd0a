package textutil

import "github.com/lithammer/fuzzysearch/fuzzy"

// Distance returns the Levenshtein edit distance between two slugs with unit
// insertion, deletion and substitution costs. It is a ranking key, never a
// pass/fail threshold on its own.
func Distance(a, b string) int {
	if a == b {
		return 0
	}
	return fuzzy.LevenshteinDistance(a, b)
}

// OverlapRatio returns |names present in both lists| divided by the larger
// list length. Empty names are ignored and duplicates count once.
func OverlapRatio(a, b []string) float64 {
	left := uniqueNonEmpty(a)
	right := uniqueNonEmpty(b)
	denominator := max(len(left), len(right))
	if denominator == 0 {
		return 0
	}
	lookup := make(map[string]struct{}, len(right))
	for _, name := range right {
		lookup[name] = struct{}{}
	}
	shared := 0
	for _, name := range left {
		if _, ok := lookup[name]; ok {
			shared++
		}
	}
	return float64(shared) / float64(denominator)
}

func uniqueNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
