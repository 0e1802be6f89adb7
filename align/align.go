// Package align implements the paired-line alignment of spec §4.3: given N
// removed lines and M added lines, it chooses a non-crossing 1-to-1 (or
// skip) matching that minimizes total edit cost via dynamic programming.
package align

// None is the sentinel index meaning "no line on this side of the pair".
const None = -1

// Pair is one element of an alignment: exactly one of Minus/Plus may be
// None (spec §3 Alignment).
type Pair struct {
	Minus int
	Plus  int
}

// gapCost is the cost of leaving a line unmatched. It sits at the same
// scale as a fully-dissimilar pair's normalized distance (1.0). Leaving
// both lines of a pair unmatched costs two gaps, so a pair is chosen over
// two gaps whenever its cost is below 2*gapCost.
const gapCost = 1.0

// direction records which DP transition produced a cell, for backtracing.
type direction int

const (
	dirDiag direction = iota
	dirUp
	dirLeft
)

// Align computes the alignment between nMinus removed lines and nPlus added
// lines. cost(i, j) must return the pairing cost for minus-line i against
// plus-line j; a pair whose cost is below 2*gapCost (the cost of two gaps)
// is preferable to leaving both lines unmatched.
func Align(nMinus, nPlus int, cost func(i, j int) float64) []Pair {
	if nMinus == 0 || nPlus == 0 {
		return noPairing(nMinus, nPlus)
	}

	dp := make([][]float64, nMinus+1)
	back := make([][]direction, nMinus+1)
	for i := range dp {
		dp[i] = make([]float64, nPlus+1)
		back[i] = make([]direction, nPlus+1)
	}
	for i := 1; i <= nMinus; i++ {
		dp[i][0] = float64(i) * gapCost
		back[i][0] = dirUp
	}
	for j := 1; j <= nPlus; j++ {
		dp[0][j] = float64(j) * gapCost
		back[0][j] = dirLeft
	}

	for i := 1; i <= nMinus; i++ {
		for j := 1; j <= nPlus; j++ {
			matchCost := dp[i-1][j-1] + cost(i-1, j-1)
			upCost := dp[i-1][j] + gapCost
			leftCost := dp[i][j-1] + gapCost

			best := matchCost
			dir := dirDiag
			if upCost < best {
				best = upCost
				dir = dirUp
			}
			if leftCost < best {
				best = leftCost
				dir = dirLeft
			}
			dp[i][j] = best
			back[i][j] = dir
		}
	}

	var pairs []Pair
	i, j := nMinus, nPlus
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && back[i][j] == dirDiag:
			pairs = append(pairs, Pair{Minus: i - 1, Plus: j - 1})
			i--
			j--
		case i > 0 && (j == 0 || back[i][j] == dirUp):
			pairs = append(pairs, Pair{Minus: i - 1, Plus: None})
			i--
		default:
			pairs = append(pairs, Pair{Minus: None, Plus: j - 1})
			j--
		}
	}

	for l, r := 0, len(pairs)-1; l < r; l, r = l+1, r-1 {
		pairs[l], pairs[r] = pairs[r], pairs[l]
	}
	return pairs
}

func noPairing(nMinus, nPlus int) []Pair {
	pairs := make([]Pair, 0, nMinus+nPlus)
	for i := 0; i < nMinus; i++ {
		pairs = append(pairs, Pair{Minus: i, Plus: None})
	}
	for j := 0; j < nPlus; j++ {
		pairs = append(pairs, Pair{Minus: None, Plus: j})
	}
	return pairs
}
