// Package suggest finds "did you mean" candidates for mistyped names.
package suggest

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Closest returns the candidate that best matches target, or "" when none
// is close. Candidates containing target as a case-insensitive subsequence
// win; otherwise the one with the smallest edit distance is used if it is
// within half of target's length.
func Closest(target string, candidates []string) string {
	if len(candidates) == 0 || target == "" {
		return ""
	}

	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDist := "", len(target)/2+1
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(target, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// Hint formats Closest as an error message suffix, e.g. ` (did you mean
// "Counter"?)`, or returns "".
func Hint(target string, candidates []string) string {
	if c := Closest(target, candidates); c != "" {
		return fmt.Sprintf(" (did you mean %q?)", c)
	}
	return ""
}
