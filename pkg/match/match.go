// Package match scores how close two normalized keys are.
package match

import (
	"github.com/hbollon/go-edlib"
)

// MaxScore is the score of two identical keys.
const MaxScore = 100

// Distance is the Levenshtein distance between a and b counted in runes.
func Distance(a, b string) int {
	return edlib.LevenshteinDistance(a, b)
}

// Scorer maps edit distances onto a linear similarity score.
type Scorer struct {
	PenaltyFactor int
}

// Score returns MaxScore minus distance times the penalty factor. The result
// is not clamped and can be negative.
func (s Scorer) Score(distance int) int {
	return MaxScore - distance*s.PenaltyFactor
}

// Best returns the smallest distance between query and any non empty
// candidate key, and false when every candidate is empty.
func Best(query string, candidates ...string) (int, bool) {
	best, found := 0, false
	for _, c := range candidates {
		if c == "" {
			continue
		}

		d := Distance(query, c)
		if !found || d < best {
			best, found = d, true
		}
	}

	return best, found
}
