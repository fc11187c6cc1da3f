package refnetd

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/refnet-labs/referral-core/internal/analysis"
	"github.com/refnet-labs/referral-core/internal/network"
	"github.com/refnet-labs/referral-core/pkg/models"
)

// handleAnalysis dispatches GET /v1/networks/{id}/<analysis> requests
func (s *HTTPServer) handleAnalysis(w http.ResponseWriter, r *http.Request, networkID, rest string) {
	rec, err := s.store.Get(networkID)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	a := analysis.NewAnalyzer(rec.Graph)

	switch {
	case strings.HasPrefix(rest, "reach/"):
		s.handleReach(w, r, a, strings.TrimPrefix(rest, "reach/"))
	case rest == "top-referrers":
		s.handleTopReferrers(w, r, a)
	case rest == "coverage":
		s.handleCoverage(w, r, a)
	case rest == "centrality":
		s.handleCentrality(w, r, a)
	default:
		s.writeError(w, http.StatusNotFound, "unknown analysis endpoint")
	}
}

// handleReach handles GET /v1/networks/{id}/reach/{user}
func (s *HTTPServer) handleReach(w http.ResponseWriter, _ *http.Request, a *analysis.Analyzer, userStr string) {
	userID, err := strconv.ParseInt(userStr, 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid user ID: "+userStr)
		return
	}

	reach, err := a.Reach(userID)
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}

	ids := make([]int64, 0, len(reach))
	for id := range reach {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	s.writeJSON(w, http.StatusOK, models.ReachResponse{
		UserID: userID,
		Reach:  ids,
		Count:  len(ids),
	})
}

// handleTopReferrers handles GET /v1/networks/{id}/top-referrers?k=
func (s *HTTPServer) handleTopReferrers(w http.ResponseWriter, r *http.Request, a *analysis.Analyzer) {
	k, err := s.parseK(r, a)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ranked, err := a.TopReferrers(k)
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}

	out := make([]models.ReferrerRank, 0, len(ranked))
	for _, rc := range ranked {
		out = append(out, models.ReferrerRank{
			UserID:         rc.UserID,
			TotalReferrals: rc.TotalReferrals,
		})
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"k":         k,
		"referrers": out,
	})
}

// handleCoverage handles GET /v1/networks/{id}/coverage?k=
func (s *HTTPServer) handleCoverage(w http.ResponseWriter, r *http.Request, a *analysis.Analyzer) {
	k, err := s.parseK(r, a)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	picks, err := a.SelectTopUniqueCoverage(k)
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}

	selected := make([]int64, 0, len(picks))
	out := make([]models.CoveragePick, 0, len(picks))
	for _, p := range picks {
		selected = append(selected, p.UserID)
		out = append(out, models.CoveragePick{
			UserID:   p.UserID,
			NewReach: p.NewReach,
		})
	}

	ratio, err := a.CoverageRatio(selected)
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, models.CoverageResponse{
		Picks:         out,
		CoverageRatio: ratio,
	})
}

// handleCentrality handles GET /v1/networks/{id}/centrality. With a
// sample_ratio query parameter it runs the sampled approximation, otherwise
// the exact computation.
func (s *HTTPServer) handleCentrality(w http.ResponseWriter, r *http.Request, a *analysis.Analyzer) {
	scores := make([]models.CentralityScore, 0)

	if ratioStr := r.URL.Query().Get("sample_ratio"); ratioStr != "" {
		ratio, err := strconv.ParseFloat(ratioStr, 64)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid sample_ratio: "+ratioStr)
			return
		}
		var seed int64
		if seedStr := r.URL.Query().Get("seed"); seedStr != "" {
			seed, err = strconv.ParseInt(seedStr, 10, 64)
			if err != nil {
				s.writeError(w, http.StatusBadRequest, "invalid seed: "+seedStr)
				return
			}
		}
		approx, err := a.FlowCentralityApprox(ratio, seed)
		if err != nil {
			s.writeAnalysisError(w, err)
			return
		}
		for id, score := range approx {
			scores = append(scores, models.CentralityScore{UserID: id, Score: score})
		}
	} else {
		exact := a.FlowCentrality()
		for id, score := range exact {
			scores = append(scores, models.CentralityScore{UserID: id, Score: float64(score)})
		}
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].UserID < scores[j].UserID
	})

	s.writeJSON(w, http.StatusOK, map[string]any{
		"scores": scores,
	})
}

// parseK reads the k query parameter, defaulting to the full network size
// when absent
func (s *HTTPServer) parseK(r *http.Request, a *analysis.Analyzer) (int, error) {
	kStr := r.URL.Query().Get("k")
	if kStr == "" {
		return a.Size(), nil
	}
	k, err := strconv.Atoi(kStr)
	if err != nil {
		return 0, errors.New("invalid k: " + kStr)
	}
	return k, nil
}

// writeAnalysisError maps analysis-layer errors to HTTP statuses
func (s *HTTPServer) writeAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, network.ErrUserNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, analysis.ErrInvalidArgument):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}
