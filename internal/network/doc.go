// Package network provides the referral graph that the analytics core consumes.
//
// The graph is a directed acyclic graph (DAG) of users where every edge points
// from a referrer to a user they referred. Business rules are enforced at
// mutation time, never re-checked by analysis code:
//   - no self-referrals
//   - every user has at most one referrer
//   - no edge may close a referral cycle
//
// Main Types:
//   - Graph: validated adjacency storage with read access for analysis
//
// Usage:
//
//	g := network.NewGraph()
//	g.AddUser(1)
//	g.AddUser(2)
//	if err := g.AddReferral(1, 2); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Or build directly from a parsed spec
//	g, err := network.BuildGraph(spec)
package network
