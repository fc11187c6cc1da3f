// Package analysis implements the analytical core over a referral graph:
// downstream reach, greedy unique-coverage selection, and flow centrality.
//
// An Analyzer wraps an immutable graph snapshot. Every top-level call builds
// its derived structures (reach sets, distance matrix) fresh and shares them
// only within that call; nothing is cached across calls, so re-analyzing a
// different snapshot can never observe stale state.
//
// Main Types:
//   - Analyzer: read-only analytical view over a network.Graph
//   - ReferrerCount: one entry of a top-referrers ranking
//   - CoveragePick: one greedy step of a unique-coverage selection
//
// Flow centrality is exact and O(V^3) over the user count; that is a
// documented scalability ceiling, not a bug. FlowCentralityApprox trades
// exactness for pair sampling when networks grow past demonstration scale.
package analysis
