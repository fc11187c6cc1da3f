package analysis

import (
	"fmt"

	"github.com/refnet-labs/referral-core/pkg/utils"
)

// FlowCentrality returns the brokerage score of every user: the number of
// ordered (source, target) pairs whose shortest referral path the user sits
// on. A user v is on a shortest s->t path iff both legs are reachable and
// dist(s,v) + dist(v,t) == dist(s,t).
//
// Cost is O(V^3) after the O(V*(V+E)) distance precomputation. The cubic pass
// is the dominant cost of the whole analytical core; exactness is preferred
// over approximation at demonstration scale.
func (a *Analyzer) FlowCentrality() map[int64]int {
	users := a.g.Users()
	dist := a.distanceMatrix(users)

	scores := make(map[int64]int, len(users))
	for _, id := range users {
		scores[id] = 0
	}

	for _, s := range users {
		for _, t := range users {
			if s == t {
				continue
			}
			total, ok := dist[s][t]
			if !ok {
				// No s->t path, so no flow to score for this pair.
				continue
			}
			for _, v := range users {
				if v == s || v == t {
					continue
				}
				toV, ok := dist[s][v]
				if !ok {
					continue
				}
				fromV, ok := dist[v][t]
				if !ok {
					continue
				}
				if toV+fromV == total {
					scores[v]++
				}
			}
		}
	}

	return scores
}

// FlowCentralityApprox estimates brokerage scores by sampling sampleRatio of
// all ordered (source, target) pairs and scaling the per-user counts back up
// by the realized sample ratio. A fixed seed makes the estimate reproducible.
// sampleRatio must lie in (0, 1].
func (a *Analyzer) FlowCentralityApprox(sampleRatio float64, seed int64) (map[int64]float64, error) {
	if sampleRatio <= 0 || sampleRatio > 1 {
		return nil, fmt.Errorf("%w: sample_ratio must be in (0, 1], got %g", ErrInvalidArgument, sampleRatio)
	}

	users := a.g.Users()
	scores := make(map[int64]float64, len(users))
	for _, id := range users {
		scores[id] = 0
	}

	n := len(users)
	totalPairs := n * (n - 1)
	if totalPairs == 0 {
		return scores, nil
	}

	sampleSize := utils.Max(1, int(sampleRatio*float64(totalPairs)))
	sampleSize = utils.Min(sampleSize, totalPairs)

	dist := a.distanceMatrix(users)
	rng := utils.NewRandSource(seed)

	for _, idx := range rng.Perm(totalPairs)[:sampleSize] {
		// Decode the pair index into an ordered (s, t) pair with s != t.
		si := idx / (n - 1)
		ti := idx % (n - 1)
		if ti >= si {
			ti++
		}
		s, t := users[si], users[ti]

		total, ok := dist[s][t]
		if !ok {
			continue
		}
		for _, v := range users {
			if v == s || v == t {
				continue
			}
			toV, okTo := dist[s][v]
			fromV, okFrom := dist[v][t]
			if okTo && okFrom && toV+fromV == total {
				scores[v]++
			}
		}
	}

	scale := float64(totalPairs) / float64(sampleSize)
	for id := range scores {
		scores[id] *= scale
	}
	return scores, nil
}

// distanceMatrix computes shortest directed hop counts from every user via
// BFS. Unreachable targets are simply absent from the inner map.
func (a *Analyzer) distanceMatrix(users []int64) map[int64]map[int64]int {
	dist := make(map[int64]map[int64]int, len(users))
	for _, source := range users {
		dist[source] = a.bfsDistances(source)
	}
	return dist
}

// bfsDistances returns hop distances from source to every reachable user,
// including dist[source] == 0.
func (a *Analyzer) bfsDistances(source int64) map[int64]int {
	dist := map[int64]int{source: 0}
	queue := []int64{source}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range a.g.DirectReferrals(current) {
			if _, seen := dist[next]; seen {
				continue
			}
			dist[next] = dist[current] + 1
			queue = append(queue, next)
		}
	}

	return dist
}
