package refnetd

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/refnet-labs/referral-core/internal/growth"
	"github.com/refnet-labs/referral-core/pkg/models"
)

const defaultBonusEps = 1e-3

// handleSimulate handles POST /v1/growth/simulate
func (s *HTTPServer) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Probability float64 `json:"probability"`
		Days        int     `json:"days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	cumulative, err := s.Simulator.Simulate(req.Probability, req.Days)
	if err != nil {
		s.writeGrowthError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, models.GrowthCurve{
		Probability: req.Probability,
		Days:        req.Days,
		Cumulative:  cumulative,
	})
}

// handleDaysToTarget handles POST /v1/growth/days-to-target. An unachievable
// target is not an error at this layer; it comes back as achievable=false.
func (s *HTTPServer) handleDaysToTarget(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Probability float64 `json:"probability"`
		Target      float64 `json:"target"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	days, err := s.Simulator.DaysToTarget(req.Probability, req.Target)
	if err != nil {
		if errors.Is(err, growth.ErrUnachievable) {
			s.writeJSON(w, http.StatusOK, models.DaysToTargetResponse{
				Achievable: false,
				Target:     req.Target,
			})
			return
		}
		s.writeGrowthError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, models.DaysToTargetResponse{
		Achievable: true,
		Days:       days,
		Target:     req.Target,
	})
}

// handleMinBonus handles POST /v1/growth/min-bonus. The adoption curve is
// parameterized by base probability and bonus sensitivity.
func (s *HTTPServer) handleMinBonus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Days        int     `json:"days"`
		Target      float64 `json:"target"`
		Eps         float64 `json:"eps,omitempty"`
		BaseProb    float64 `json:"base_prob,omitempty"`
		Sensitivity float64 `json:"sensitivity,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.Eps == 0 {
		req.Eps = defaultBonusEps
	}
	if req.Sensitivity == 0 {
		req.Sensitivity = 100
	}
	adoption := growth.SaturatingAdoption(req.BaseProb, req.Sensitivity)

	bonus, err := s.Simulator.MinBonusForTarget(req.Days, req.Target, adoption, req.Eps)
	if err != nil {
		if errors.Is(err, growth.ErrUnachievable) {
			s.writeJSON(w, http.StatusOK, models.MinBonusResponse{
				Achievable: false,
				Days:       req.Days,
				Target:     req.Target,
			})
			return
		}
		s.writeGrowthError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, models.MinBonusResponse{
		Achievable: true,
		Bonus:      bonus,
		Days:       req.Days,
		Target:     req.Target,
	})
}

// writeGrowthError maps growth-layer errors to HTTP statuses
func (s *HTTPServer) writeGrowthError(w http.ResponseWriter, err error) {
	if errors.Is(err, growth.ErrInvalidArgument) {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeError(w, http.StatusInternalServerError, err.Error())
}
