package analysis

import (
	"errors"
	"fmt"
	"sort"

	"github.com/refnet-labs/referral-core/internal/network"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
)

// Analyzer provides read-only analytics over a referral graph. The graph must
// not be mutated while an Analyzer call is in flight; callers that mutate
// concurrently must snapshot first.
type Analyzer struct {
	g *network.Graph
}

// NewAnalyzer creates an analyzer over the given graph
func NewAnalyzer(g *network.Graph) *Analyzer {
	return &Analyzer{g: g}
}

// Size returns the number of users in the underlying graph
func (a *Analyzer) Size() int {
	return a.g.Size()
}

// ReferrerCount is one entry of a top-referrers ranking
type ReferrerCount struct {
	UserID         int64
	TotalReferrals int
}

// Reach returns the set of users reachable from u by following one or more
// referral edges. The user itself is never part of its own reach.
func (a *Analyzer) Reach(u int64) (map[int64]struct{}, error) {
	if !a.g.HasUser(u) {
		return nil, fmt.Errorf("%w: %d", network.ErrUserNotFound, u)
	}
	return a.reachFrom(u), nil
}

// reachFrom computes the downstream closure of u via BFS. BFS is used over
// DFS for easier debugging of traversal order; on a DAG both are correct.
func (a *Analyzer) reachFrom(u int64) map[int64]struct{} {
	reach := make(map[int64]struct{})
	queue := []int64{u}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range a.g.DirectReferrals(current) {
			if _, seen := reach[next]; seen {
				continue
			}
			reach[next] = struct{}{}
			queue = append(queue, next)
		}
	}

	delete(reach, u)
	return reach
}

// TotalReferralCount returns the number of direct and indirect referrals of u
func (a *Analyzer) TotalReferralCount(u int64) (int, error) {
	reach, err := a.Reach(u)
	if err != nil {
		return 0, err
	}
	return len(reach), nil
}

// TopReferrers returns the k users with the largest total referral counts,
// sorted descending by count with ascending user ID as the tie-break.
// k must satisfy 0 <= k <= user count.
func (a *Analyzer) TopReferrers(k int) ([]ReferrerCount, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: k must be non-negative, got %d", ErrInvalidArgument, k)
	}
	if k > a.g.Size() {
		return nil, fmt.Errorf("%w: k (%d) exceeds user count (%d)", ErrInvalidArgument, k, a.g.Size())
	}

	reach := a.reachAll()
	ranking := make([]ReferrerCount, 0, a.g.Size())
	for _, id := range a.g.Users() {
		ranking = append(ranking, ReferrerCount{UserID: id, TotalReferrals: len(reach[id])})
	}

	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].TotalReferrals != ranking[j].TotalReferrals {
			return ranking[i].TotalReferrals > ranking[j].TotalReferrals
		}
		return ranking[i].UserID < ranking[j].UserID
	})

	return ranking[:k], nil
}

// reachAll computes the reach set of every user. The result is shared by the
// ranking and coverage paths within a single call, never across calls.
func (a *Analyzer) reachAll() map[int64]map[int64]struct{} {
	reach := make(map[int64]map[int64]struct{}, a.g.Size())
	for _, id := range a.g.Users() {
		reach[id] = a.reachFrom(id)
	}
	return reach
}
