package growth

import (
	"errors"
	"math"
	"testing"

	"github.com/refnet-labs/referral-core/pkg/config"
)

func TestSimulateZeroProbability(t *testing.T) {
	s := NewSimulator(nil)

	curve, err := s.Simulate(0, 5)
	if err != nil {
		t.Fatalf("failed to simulate: %v", err)
	}
	if len(curve) != 5 {
		t.Fatalf("expected 5 days, got %d", len(curve))
	}
	for i, total := range curve {
		if total != 0 {
			t.Errorf("day %d: expected 0, got %f", i+1, total)
		}
	}
}

func TestSimulateZeroDays(t *testing.T) {
	s := NewSimulator(nil)

	curve, err := s.Simulate(0.5, 0)
	if err != nil {
		t.Fatalf("failed to simulate: %v", err)
	}
	if len(curve) != 0 {
		t.Errorf("expected empty curve for 0 days, got %v", curve)
	}
}

func TestSimulateDeterministicDailyTotals(t *testing.T) {
	s := NewSimulator(nil)

	// 100 referrers at p = 0.5 contribute exactly 50 expected referrals per
	// day until capacity 10 is exhausted on day 20.
	curve, err := s.Simulate(0.5, 25)
	if err != nil {
		t.Fatalf("failed to simulate: %v", err)
	}

	for day := 1; day <= 20; day++ {
		want := 50.0 * float64(day)
		if curve[day-1] != want {
			t.Errorf("day %d: expected %f, got %f", day, want, curve[day-1])
		}
	}
	for day := 21; day <= 25; day++ {
		if curve[day-1] != 1000 {
			t.Errorf("day %d: expected flat 1000 after exhaustion, got %f", day, curve[day-1])
		}
	}
}

func TestSimulateMonotoneAndCapped(t *testing.T) {
	s := NewSimulator(nil)

	for _, p := range []float64{0.1, 0.3, 0.7, 1.0} {
		curve, err := s.Simulate(p, 120)
		if err != nil {
			t.Fatalf("failed to simulate p=%f: %v", p, err)
		}

		prev := 0.0
		for i, total := range curve {
			if total < prev {
				t.Fatalf("p=%f day %d: total %f decreased from %f", p, i+1, total, prev)
			}
			prev = total
		}
		if curve[len(curve)-1] > s.MaxTotal()+1e-9 {
			t.Errorf("p=%f: final total %f exceeds ceiling %f", p, curve[len(curve)-1], s.MaxTotal())
		}
	}
}

func TestSimulateCapsFinalContribution(t *testing.T) {
	s := NewSimulator(nil)

	// At p = 0.3 a referrer's lifetime total must land exactly on capacity,
	// not overshoot on the final partial day.
	curve, err := s.Simulate(0.3, 40)
	if err != nil {
		t.Fatalf("failed to simulate: %v", err)
	}

	final := curve[len(curve)-1]
	if math.Abs(final-1000) > 1e-6 {
		t.Errorf("expected final total 1000, got %f", final)
	}
}

func TestSimulateValidatesInput(t *testing.T) {
	s := NewSimulator(nil)

	tests := []struct {
		name string
		p    float64
		days int
	}{
		{"Negative probability", -0.1, 5},
		{"Probability above one", 1.1, 5},
		{"Negative days", 0.5, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Simulate(tt.p, tt.days); !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestSimulateCustomCohort(t *testing.T) {
	s := NewSimulator(&config.Growth{
		InitialReferrers: 10,
		ReferralCapacity: 2,
		MaxBonus:         1000,
		BonusIncrement:   10,
	})

	if s.MaxTotal() != 20 {
		t.Fatalf("expected ceiling 20, got %f", s.MaxTotal())
	}

	curve, err := s.Simulate(1, 3)
	if err != nil {
		t.Fatalf("failed to simulate: %v", err)
	}
	want := []float64{10, 20, 20}
	for i, w := range want {
		if curve[i] != w {
			t.Errorf("day %d: expected %f, got %f", i+1, w, curve[i])
		}
	}
}
