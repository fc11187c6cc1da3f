package growth

import (
	"fmt"
	"math"

	"github.com/refnet-labs/referral-core/pkg/utils"
)

// floatTol absorbs accumulated floating-point dust when comparing cumulative
// totals against targets.
const floatTol = 1e-9

// DaysToTarget returns the smallest number of days after which the cumulative
// expected total reaches target. It binary-searches the day count, which is
// valid because cumulative totals are monotone non-decreasing in days.
// Targets beyond the cohort ceiling (or any positive target with p == 0)
// return ErrUnachievable.
func (s *Simulator) DaysToTarget(p float64, target float64) (int, error) {
	if p < 0 || p > 1 {
		return 0, fmt.Errorf("%w: probability must be in [0, 1], got %g", ErrInvalidArgument, p)
	}
	if target < 0 {
		return 0, fmt.Errorf("%w: target must be non-negative, got %g", ErrInvalidArgument, target)
	}
	if target == 0 {
		return 0, nil
	}
	if p == 0 {
		return 0, fmt.Errorf("%w: no referrals occur with p = 0", ErrUnachievable)
	}
	if target > s.MaxTotal()+floatTol {
		return 0, fmt.Errorf("%w: target %g exceeds cohort ceiling %g", ErrUnachievable, target, s.MaxTotal())
	}

	// Every referrer exhausts its capacity after ceil(capacity / p) days, so
	// the ceiling total is reached by then at the latest.
	hi := int(math.Ceil(float64(s.capacity) / p))
	lo := 1

	for lo < hi {
		mid := lo + (hi-lo)/2
		total, err := s.finalTotal(p, mid)
		if err != nil {
			return 0, err
		}
		if total >= target-floatTol {
			hi = mid
		} else {
			lo = mid + 1
		}
	}

	return lo, nil
}

// AdoptionProb maps an input amount (a referral bonus, or a population count
// for adoption-driven growth) to a daily success probability in [0, 1].
// The searches in this package require it to be monotone non-decreasing;
// that is a caller contract and is not verified here.
type AdoptionProb func(amount float64) float64

// MinBonusForTarget returns the smallest bonus, rounded up to the configured
// increment, whose adoption probability drives the day-`days` cumulative
// total to targetHires. The bonus domain [0, maxBonus] is binary-searched to
// eps precision before rounding; the rounded bonus is then verified by
// re-simulation. Returns ErrUnachievable when even maxBonus falls short.
func (s *Simulator) MinBonusForTarget(days int, targetHires float64, adoptionProb AdoptionProb, eps float64) (int, error) {
	if days < 0 {
		return 0, fmt.Errorf("%w: days must be non-negative, got %d", ErrInvalidArgument, days)
	}
	if targetHires < 0 {
		return 0, fmt.Errorf("%w: target must be non-negative, got %g", ErrInvalidArgument, targetHires)
	}
	if adoptionProb == nil {
		return 0, fmt.Errorf("%w: adoption probability function is required", ErrInvalidArgument)
	}
	if eps <= 0 {
		return 0, fmt.Errorf("%w: eps must be positive, got %g", ErrInvalidArgument, eps)
	}
	if targetHires == 0 {
		return 0, nil
	}

	// A zero bonus can already suffice when the adoption curve has a base
	// probability; the binary search below never converges onto 0 exactly.
	zeroAchieves, err := s.bonusAchieves(0, days, targetHires, adoptionProb)
	if err != nil {
		return 0, err
	}
	if zeroAchieves {
		return 0, nil
	}

	maxBonus := float64(s.maxBonus)
	achieved, err := s.bonusAchieves(maxBonus, days, targetHires, adoptionProb)
	if err != nil {
		return 0, err
	}
	if !achieved {
		return 0, fmt.Errorf("%w: target %g not reached within %d days at max bonus %g",
			ErrUnachievable, targetHires, days, maxBonus)
	}

	lo, hi := 0.0, maxBonus
	for hi-lo > eps {
		mid := lo + (hi-lo)/2
		achieved, err := s.bonusAchieves(mid, days, targetHires, adoptionProb)
		if err != nil {
			return 0, err
		}
		if achieved {
			hi = mid
		} else {
			lo = mid
		}
	}

	// Round up to the bonus increment, then verify: rounding moved the bonus,
	// and eps-sized search error could leave the rounded value just short.
	bonus := utils.CeilToMultiple(hi, s.bonusIncrement)
	for float64(bonus) <= maxBonus {
		achieved, err := s.bonusAchieves(float64(bonus), days, targetHires, adoptionProb)
		if err != nil {
			return 0, err
		}
		if achieved {
			return bonus, nil
		}
		bonus += s.bonusIncrement
	}

	return 0, fmt.Errorf("%w: target %g not reached within %d days", ErrUnachievable, targetHires, days)
}

// bonusAchieves reports whether the bonus's adoption probability reaches the
// target total within the given days.
func (s *Simulator) bonusAchieves(bonus float64, days int, target float64, adoptionProb AdoptionProb) (bool, error) {
	p := adoptionProb(bonus)
	total, err := s.finalTotal(p, days)
	if err != nil {
		return false, err
	}
	return total >= target-floatTol, nil
}
