// Package suggest finds the known name closest to a mistyped one.
package suggest

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultMaxDistance is the largest edit distance still worth suggesting.
const DefaultMaxDistance = 2

// Distance returns the Levenshtein distance between a and b.
func Distance(a, b string) int {
	dmp := diffmatchpatch.New()
	return dmp.DiffLevenshtein(dmp.DiffMain(a, b, false))
}

// For returns candidates that are within maxDistance edits of name, that start
// with name, or that contain name's characters in order, closest first.
// Comparison ignores case.
func For(name string, candidates []string, maxDistance int) []string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil
	}

	type match struct {
		name string
		dist int
	}
	subseq := make(map[string]bool)
	for _, r := range fuzzy.RankFindFold(name, candidates) {
		subseq[r.Target] = true
	}

	var matches []match
	for _, c := range candidates {
		lc := strings.ToLower(c)
		d := Distance(name, lc)
		if d <= maxDistance || strings.HasPrefix(lc, name) || subseq[c] {
			matches = append(matches, match{name: c, dist: d})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].dist != matches[j].dist {
			return matches[i].dist < matches[j].dist
		}
		return matches[i].name < matches[j].name
	})

	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}
