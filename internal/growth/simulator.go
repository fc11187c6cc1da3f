package growth

import (
	"errors"
	"fmt"
	"math"

	"github.com/refnet-labs/referral-core/pkg/config"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnachievable    = errors.New("target is unachievable")
)

// Simulator runs the deterministic expected-value growth model for a fixed
// cohort of referrers. The zero value is not usable; construct with NewSimulator.
type Simulator struct {
	cohortSize     int
	capacity       int
	maxBonus       int
	bonusIncrement int
}

// NewSimulator creates a simulator from growth parameters. A nil config
// selects the defaults (100 referrers, capacity 10, bonus search up to 1000
// in increments of 10).
func NewSimulator(cfg *config.Growth) *Simulator {
	if cfg == nil {
		cfg = config.DefaultGrowth()
	}
	return &Simulator{
		cohortSize:     cfg.InitialReferrers,
		capacity:       cfg.ReferralCapacity,
		maxBonus:       cfg.MaxBonus,
		bonusIncrement: cfg.BonusIncrement,
	}
}

// MaxTotal returns the lifetime referral ceiling of the cohort
func (s *Simulator) MaxTotal() float64 {
	return float64(s.cohortSize) * float64(s.capacity)
}

// Simulate advances the growth model day by day and returns the cumulative
// expected referral total at the end of each day. Element i is the total at
// the end of day i+1; days == 0 yields an empty sequence.
//
// Each active referrer contributes min(p, remaining capacity) per day, so a
// referrer's lifetime total never exceeds its capacity and the cohort total
// never exceeds MaxTotal.
func (s *Simulator) Simulate(p float64, days int) ([]float64, error) {
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("%w: probability must be in [0, 1], got %g", ErrInvalidArgument, p)
	}
	if days < 0 {
		return nil, fmt.Errorf("%w: days must be non-negative, got %d", ErrInvalidArgument, days)
	}

	remaining := make([]float64, s.cohortSize)
	for i := range remaining {
		remaining[i] = float64(s.capacity)
	}

	cumulative := make([]float64, 0, days)
	total := 0.0

	for day := 0; day < days; day++ {
		daily := 0.0
		for i := range remaining {
			if remaining[i] <= 0 {
				continue
			}
			contribution := math.Min(p, remaining[i])
			daily += contribution
			remaining[i] -= contribution
		}
		total += daily
		cumulative = append(cumulative, total)

		if daily == 0 {
			// Nothing left to contribute (p == 0 or cohort exhausted); the
			// total is flat for every remaining day.
			for len(cumulative) < days {
				cumulative = append(cumulative, total)
			}
			break
		}
	}

	return cumulative, nil
}

// finalTotal returns the cumulative total at the end of the last simulated day
func (s *Simulator) finalTotal(p float64, days int) (float64, error) {
	if days == 0 {
		return 0, nil
	}
	curve, err := s.Simulate(p, days)
	if err != nil {
		return 0, err
	}
	return curve[days-1], nil
}
