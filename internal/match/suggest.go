package match

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

type suggester struct {
	normalized []string            // deduped normalized inventory names
	owners     map[string][]string // normalized -> original names
}

func newSuggester(names []string) *suggester {
	s := &suggester{owners: make(map[string][]string, len(names))}
	for _, n := range names {
		k := normalizeName(n)
		if k == "" {
			continue
		}
		if _, seen := s.owners[k]; !seen {
			s.normalized = append(s.normalized, k)
		}
		s.owners[k] = append(s.owners[k], n)
	}
	return s
}

// suggest returns the single inventory name closest to name, or "" when
// nothing is close enough or the best candidate is ambiguous.
func (s *suggester) suggest(name string) string {
	pat := normalizeName(name)
	if pat == "" || len(s.normalized) == 0 {
		return ""
	}

	// same name modulo case, accents and punctuation
	if _, ok := s.owners[pat]; ok {
		return s.owner(pat)
	}

	thr := distanceThreshold(len(pat))

	// pattern is a subsequence of a longer name, e.g. a truncated export
	ranks := fuzzy.RankFind(pat, s.normalized)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		if ranks[0].Distance <= thr && (len(ranks) == 1 || ranks[1].Distance > ranks[0].Distance) {
			return s.owner(ranks[0].Target)
		}
	}

	// plain typos
	best, bestDist, tie := "", thr+1, false
	for _, cand := range filterCandidates(s.normalized, pat, thr) {
		d := fuzzy.LevenshteinDistance(pat, cand)
		switch {
		case d < bestDist:
			best, bestDist, tie = cand, d, false
		case d == bestDist:
			tie = true
		}
	}
	if best == "" || tie {
		return ""
	}
	return s.owner(best)
}

// owner maps a normalized name back to its original, if unambiguous.
func (s *suggester) owner(normalized string) string {
	names := s.owners[normalized]
	if len(names) != 1 {
		return ""
	}
	return names[0]
}

// distanceThreshold calculates acceptable edit distance (~20% of length)
func distanceThreshold(n int) int {
	th := n / 5
	if th < 1 {
		return 1
	}
	if th > 3 {
		return 3
	}
	return th
}

// filterCandidates pre-filters candidates by length and first rune
func filterCandidates(all []string, pattern string, threshold int) []string {
	if len(all) == 0 {
		return nil
	}

	firstRune := func(s string) rune {
		for _, r := range s {
			return r
		}
		return 0
	}

	fr := firstRune(pattern)
	patLen := len(pattern)

	candidates := make([]string, 0, len(all)/4+1)
	for _, t := range all {
		if abs(len(t)-patLen) > threshold {
			continue
		}
		if firstRune(t) != fr {
			continue
		}
		candidates = append(candidates, t)
	}
	return candidates
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
