package network

import (
	"errors"
	"fmt"
	"sort"

	"github.com/refnet-labs/referral-core/pkg/config"
)

var (
	ErrInvalidUserID   = errors.New("user ID must be non-negative")
	ErrUserNotFound    = errors.New("user not found")
	ErrSelfReferral    = errors.New("users cannot refer themselves")
	ErrAlreadyReferred = errors.New("user already has a referrer")
	ErrReferralCycle   = errors.New("referral would create a cycle")
)

// Graph represents a referral network as a directed acyclic graph (DAG).
// Keys of the referrals map double as the user set; every added user has an
// entry even when they referred nobody.
type Graph struct {
	referrals  map[int64]map[int64]struct{} // referrer -> direct referrals
	referrerOf map[int64]int64              // candidate -> referrer
}

// NewGraph creates an empty referral graph
func NewGraph() *Graph {
	return &Graph{
		referrals:  make(map[int64]map[int64]struct{}),
		referrerOf: make(map[int64]int64),
	}
}

// BuildGraph creates a validated referral graph from a network spec
func BuildGraph(spec *config.NetworkSpec) (*Graph, error) {
	if spec == nil {
		return nil, fmt.Errorf("network spec is required")
	}

	g := NewGraph()
	for _, id := range spec.Users {
		if _, err := g.AddUser(id); err != nil {
			return nil, fmt.Errorf("failed to add user %d: %w", id, err)
		}
	}
	for _, ref := range spec.Referrals {
		if err := g.AddReferral(ref.Referrer, ref.Candidate); err != nil {
			return nil, fmt.Errorf("failed to add referral %d -> %d: %w", ref.Referrer, ref.Candidate, err)
		}
	}
	return g, nil
}

// AddUser adds a user to the network. It reports whether the user was newly
// added; adding an existing user is a no-op.
func (g *Graph) AddUser(id int64) (bool, error) {
	if id < 0 {
		return false, fmt.Errorf("%w: %d", ErrInvalidUserID, id)
	}
	if _, exists := g.referrals[id]; exists {
		return false, nil
	}
	g.referrals[id] = make(map[int64]struct{})
	return true, nil
}

// AddReferral adds a directed referral edge from referrer to candidate after
// checking every business rule. The graph is unchanged when an error is returned.
func (g *Graph) AddReferral(referrer, candidate int64) error {
	if _, ok := g.referrals[referrer]; !ok {
		return fmt.Errorf("%w: referrer %d", ErrUserNotFound, referrer)
	}
	if _, ok := g.referrals[candidate]; !ok {
		return fmt.Errorf("%w: candidate %d", ErrUserNotFound, candidate)
	}
	if referrer == candidate {
		return fmt.Errorf("%w: %d", ErrSelfReferral, referrer)
	}
	if prev, ok := g.referrerOf[candidate]; ok {
		return fmt.Errorf("%w: user %d was referred by %d", ErrAlreadyReferred, candidate, prev)
	}
	if g.reaches(candidate, referrer) {
		return fmt.Errorf("%w: %d -> %d", ErrReferralCycle, referrer, candidate)
	}

	g.referrals[referrer][candidate] = struct{}{}
	g.referrerOf[candidate] = referrer
	return nil
}

// reaches reports whether target is reachable from start along referral edges
func (g *Graph) reaches(start, target int64) bool {
	if start == target {
		return true
	}

	visited := make(map[int64]bool)
	stack := []int64{start}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[current] {
			continue
		}
		visited[current] = true

		if current == target {
			return true
		}
		for next := range g.referrals[current] {
			if !visited[next] {
				stack = append(stack, next)
			}
		}
	}
	return false
}

// HasUser reports whether a user exists in the network
func (g *Graph) HasUser(id int64) bool {
	_, ok := g.referrals[id]
	return ok
}

// Referrer returns the user who referred the given user, if any
func (g *Graph) Referrer(id int64) (int64, bool) {
	referrer, ok := g.referrerOf[id]
	return referrer, ok
}

// DirectReferrals returns the users directly referred by the given user,
// sorted ascending. The slice is a copy and safe for callers to keep.
func (g *Graph) DirectReferrals(id int64) []int64 {
	set, ok := g.referrals[id]
	if !ok {
		return nil
	}
	out := make([]int64, 0, len(set))
	for candidate := range set {
		out = append(out, candidate)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Users returns all user IDs in the network, sorted ascending
func (g *Graph) Users() []int64 {
	out := make([]int64, 0, len(g.referrals))
	for id := range g.referrals {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Size returns the total number of users in the network
func (g *Graph) Size() int {
	return len(g.referrals)
}

// ReferralCount returns the total number of referral edges in the network
func (g *Graph) ReferralCount() int {
	return len(g.referrerOf)
}
