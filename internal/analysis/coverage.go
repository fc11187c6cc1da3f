package analysis

import (
	"fmt"

	"github.com/refnet-labs/referral-core/pkg/utils"
)

// CoveragePick is one greedy step of a unique-coverage selection. NewReach is
// the marginal coverage the user added when picked.
type CoveragePick struct {
	UserID   int64
	NewReach int
}

// SelectTopUniqueCoverage greedily picks up to k users maximizing the size of
// the union of their reach sets. Each step selects the candidate with the
// largest marginal gain over the already covered set, breaking ties by
// ascending user ID, and stops early once no candidate adds new coverage.
//
// This is the standard greedy approximation to maximum coverage; it is within
// a (1 - 1/e) factor of optimal, not exact.
func (a *Analyzer) SelectTopUniqueCoverage(k int) ([]CoveragePick, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: k must be non-negative, got %d", ErrInvalidArgument, k)
	}

	reach := a.reachAll()
	users := a.g.Users()

	covered := make(map[int64]struct{})
	selected := make(map[int64]bool)
	picks := make([]CoveragePick, 0, utils.Min(k, len(users)))

	for len(picks) < k {
		var bestUser int64
		bestGain := 0

		// Users are iterated in ascending ID order, so a strict improvement
		// requirement resolves ties toward the smallest ID.
		for _, candidate := range users {
			if selected[candidate] {
				continue
			}
			gain := 0
			for v := range reach[candidate] {
				if _, ok := covered[v]; !ok {
					gain++
				}
			}
			if gain > bestGain {
				bestGain = gain
				bestUser = candidate
			}
		}

		if bestGain == 0 {
			break
		}

		selected[bestUser] = true
		for v := range reach[bestUser] {
			covered[v] = struct{}{}
		}
		picks = append(picks, CoveragePick{UserID: bestUser, NewReach: bestGain})
	}

	return picks, nil
}

// CoverageRatio returns the fraction of the user population covered by the
// union of the selected users' reach sets.
func (a *Analyzer) CoverageRatio(selected []int64) (float64, error) {
	if a.g.Size() == 0 || len(selected) == 0 {
		return 0, nil
	}

	covered := make(map[int64]struct{})
	for _, id := range selected {
		reach, err := a.Reach(id)
		if err != nil {
			return 0, err
		}
		for v := range reach {
			covered[v] = struct{}{}
		}
	}

	return float64(len(covered)) / float64(a.g.Size()), nil
}
