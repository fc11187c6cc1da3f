// Package growth implements the discrete-day referral growth model and the
// searches built on top of it.
//
// The model is deterministic: each active referrer contributes its exact
// expected value p per day instead of a sampled coin flip, so cumulative
// totals are monotone non-decreasing in the day count. That monotonicity is
// what makes the binary searches in this package correct; do not replace the
// expected-value accumulation with random sampling.
//
// Growth is confined to the initial cohort: successful referrals do not
// become referrers themselves. Recursive network growth is modeled separately
// by SimulateAdoption, where the daily probability is driven by a
// caller-supplied adoption function of the current population.
//
// Main Types:
//   - Simulator: configured cohort model with Simulate and the target searches
//   - AdoptionProb: caller-supplied monotone probability function
package growth
