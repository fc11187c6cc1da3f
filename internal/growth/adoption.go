package growth

import (
	"fmt"
	"math"

	"github.com/refnet-labs/referral-core/pkg/utils"
)

// SaturatingAdoption returns the example adoption curve
//
//	base + (1 - base) * (1 - e^(-amount / sensitivity))
//
// which rises from base toward 1 with diminishing returns. It is monotone
// non-decreasing and therefore valid for MinBonusForTarget. Non-positive
// amounts map to base.
func SaturatingAdoption(base, sensitivity float64) AdoptionProb {
	return func(amount float64) float64 {
		if amount <= 0 {
			return utils.ClampFloat64(base, 0, 1)
		}
		p := base + (1-base)*(1-math.Exp(-amount/sensitivity))
		return utils.ClampFloat64(p, 0, 1)
	}
}

// AdoptionResult is the outcome of an adoption-driven growth run
type AdoptionResult struct {
	Success    bool
	DaysTaken  int
	FinalUsers int
}

// SimulateAdoption grows a population from initialUsers toward targetUsers.
// Each day the adoption function maps the current population to a daily
// probability, every member of the original population with remaining
// capacity contributes that expected value, and the day's expected arrivals
// are rounded to whole users. The run stops at the target, at maxDays, or
// when the original population exhausts its capacity.
func (s *Simulator) SimulateAdoption(initialUsers, targetUsers, maxDays int, adoptionProb AdoptionProb) (*AdoptionResult, error) {
	if initialUsers <= 0 {
		return nil, fmt.Errorf("%w: initial users must be positive, got %d", ErrInvalidArgument, initialUsers)
	}
	if maxDays <= 0 {
		return nil, fmt.Errorf("%w: max days must be positive, got %d", ErrInvalidArgument, maxDays)
	}
	if targetUsers <= 0 {
		return nil, fmt.Errorf("%w: target users must be positive, got %d", ErrInvalidArgument, targetUsers)
	}
	if adoptionProb == nil {
		return nil, fmt.Errorf("%w: adoption probability function is required", ErrInvalidArgument)
	}
	if targetUsers <= initialUsers {
		return &AdoptionResult{Success: true, DaysTaken: 0, FinalUsers: initialUsers}, nil
	}

	remaining := make([]float64, initialUsers)
	for i := range remaining {
		remaining[i] = float64(s.capacity)
	}

	currentUsers := initialUsers
	daysTaken := 0

	for day := 0; day < maxDays; day++ {
		p := adoptionProb(float64(currentUsers))
		if p < 0 || p > 1 {
			return nil, fmt.Errorf("%w: adoption probability must be in [0, 1], got %g", ErrInvalidArgument, p)
		}

		arrivals := 0.0
		active := 0
		for i := range remaining {
			if remaining[i] <= 0 {
				continue
			}
			active++
			contribution := math.Min(p, remaining[i])
			arrivals += contribution
			remaining[i] -= contribution
		}

		currentUsers += int(math.Round(arrivals))
		daysTaken = day + 1

		if currentUsers >= targetUsers {
			return &AdoptionResult{Success: true, DaysTaken: daysTaken, FinalUsers: currentUsers}, nil
		}
		if active == 0 {
			break
		}
	}

	return &AdoptionResult{Success: false, DaysTaken: daysTaken, FinalUsers: currentUsers}, nil
}
