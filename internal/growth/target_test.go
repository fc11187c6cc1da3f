package growth

import (
	"errors"
	"testing"
)

func TestDaysToTarget(t *testing.T) {
	s := NewSimulator(nil)

	tests := []struct {
		name   string
		p      float64
		target float64
		want   int
	}{
		// All 100 referrers act in parallel: at p = 1 the cohort exhausts its
		// 10-referral capacity after exactly 10 days.
		{"Full cohort ceiling", 1.0, 1000, 10},
		{"Half probability", 0.5, 500, 10},
		{"Single day", 1.0, 100, 1},
		{"Partial day rounds up", 0.5, 75, 2},
		{"Zero target", 0.7, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.DaysToTarget(tt.p, tt.target)
			if err != nil {
				t.Fatalf("failed to search days: %v", err)
			}
			if got != tt.want {
				t.Errorf("DaysToTarget(%f, %f) = %d, want %d", tt.p, tt.target, got, tt.want)
			}
		})
	}
}

func TestDaysToTargetIsMinimal(t *testing.T) {
	s := NewSimulator(nil)

	days, err := s.DaysToTarget(0.3, 700)
	if err != nil {
		t.Fatalf("failed to search days: %v", err)
	}

	reached, err := s.finalTotal(0.3, days)
	if err != nil {
		t.Fatalf("failed to simulate: %v", err)
	}
	if reached < 700-floatTol {
		t.Errorf("day %d total %f does not reach target", days, reached)
	}

	if days > 1 {
		before, err := s.finalTotal(0.3, days-1)
		if err != nil {
			t.Fatalf("failed to simulate: %v", err)
		}
		if before >= 700-floatTol {
			t.Errorf("day %d already reaches target with %f; %d is not minimal", days-1, before, days)
		}
	}
}

func TestDaysToTargetUnachievable(t *testing.T) {
	s := NewSimulator(nil)

	if _, err := s.DaysToTarget(1.0, 1001); !errors.Is(err, ErrUnachievable) {
		t.Fatalf("expected ErrUnachievable beyond ceiling, got %v", err)
	}
	if _, err := s.DaysToTarget(0, 1); !errors.Is(err, ErrUnachievable) {
		t.Fatalf("expected ErrUnachievable at p=0, got %v", err)
	}
}

func TestDaysToTargetValidatesInput(t *testing.T) {
	s := NewSimulator(nil)

	if _, err := s.DaysToTarget(1.5, 10); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for p > 1, got %v", err)
	}
	if _, err := s.DaysToTarget(0.5, -10); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for negative target, got %v", err)
	}
}

func TestMinBonusForTarget(t *testing.T) {
	s := NewSimulator(nil)
	adoption := SaturatingAdoption(0, 100)

	// Reaching 200 referrals in 5 days needs p >= 0.4, i.e. a bonus of
	// -100*ln(0.6) ~= 51.08, which rounds up to 60.
	bonus, err := s.MinBonusForTarget(5, 200, adoption, 1e-3)
	if err != nil {
		t.Fatalf("failed to search bonus: %v", err)
	}
	if bonus != 60 {
		t.Errorf("expected bonus 60, got %d", bonus)
	}
	if bonus%10 != 0 {
		t.Errorf("expected a multiple of 10, got %d", bonus)
	}

	// The returned bonus must actually meet the target on re-simulation
	total, err := s.finalTotal(adoption(float64(bonus)), 5)
	if err != nil {
		t.Fatalf("failed to verify: %v", err)
	}
	if total < 200-floatTol {
		t.Errorf("bonus %d only yields %f referrals", bonus, total)
	}

	// And the next lower increment must not
	below, err := s.finalTotal(adoption(float64(bonus-10)), 5)
	if err != nil {
		t.Fatalf("failed to verify: %v", err)
	}
	if below >= 200-floatTol {
		t.Errorf("bonus %d already yields %f referrals; %d is not minimal", bonus-10, below, bonus)
	}
}

func TestMinBonusForTargetMonotoneInTarget(t *testing.T) {
	s := NewSimulator(nil)
	adoption := SaturatingAdoption(0, 100)

	prev := 0
	for _, target := range []float64{50, 100, 200, 300, 400} {
		bonus, err := s.MinBonusForTarget(5, target, adoption, 1e-3)
		if err != nil {
			t.Fatalf("failed to search bonus for target %f: %v", target, err)
		}
		if bonus < prev {
			t.Errorf("target %f: bonus %d decreased from %d", target, bonus, prev)
		}
		prev = bonus
	}
}

func TestMinBonusForTargetZeroBonusSuffices(t *testing.T) {
	s := NewSimulator(nil)

	// With a base probability of 0.5 the target is met without any bonus
	bonus, err := s.MinBonusForTarget(5, 100, SaturatingAdoption(0.5, 100), 1e-3)
	if err != nil {
		t.Fatalf("failed to search bonus: %v", err)
	}
	if bonus != 0 {
		t.Errorf("expected bonus 0, got %d", bonus)
	}
}

func TestMinBonusForTargetUnachievable(t *testing.T) {
	s := NewSimulator(nil)
	adoption := SaturatingAdoption(0, 100)

	// Even p = 1 yields at most 300 referrals in 3 days
	if _, err := s.MinBonusForTarget(3, 900, adoption, 1e-3); !errors.Is(err, ErrUnachievable) {
		t.Fatalf("expected ErrUnachievable, got %v", err)
	}
	if _, err := s.MinBonusForTarget(50, 1001, adoption, 1e-3); !errors.Is(err, ErrUnachievable) {
		t.Fatalf("expected ErrUnachievable beyond ceiling, got %v", err)
	}
}

func TestMinBonusForTargetValidatesInput(t *testing.T) {
	s := NewSimulator(nil)
	adoption := SaturatingAdoption(0, 100)

	tests := []struct {
		name     string
		days     int
		target   float64
		adoption AdoptionProb
		eps      float64
	}{
		{"Negative days", -1, 100, adoption, 1e-3},
		{"Negative target", 5, -1, adoption, 1e-3},
		{"Nil adoption function", 5, 100, nil, 1e-3},
		{"Zero eps", 5, 100, adoption, 0},
		{"Negative eps", 5, 100, adoption, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.MinBonusForTarget(tt.days, tt.target, tt.adoption, tt.eps); !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}
