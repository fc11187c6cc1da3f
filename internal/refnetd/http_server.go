package refnetd

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/refnet-labs/referral-core/internal/growth"
	"github.com/refnet-labs/referral-core/internal/network"
	"github.com/refnet-labs/referral-core/pkg/config"
	"github.com/refnet-labs/referral-core/pkg/logger"
	"github.com/refnet-labs/referral-core/pkg/models"
)

type HTTPServer struct {
	mux       *http.ServeMux
	store     *NetworkStore
	Simulator *growth.Simulator
}

func NewHTTPServer(store *NetworkStore, sim *growth.Simulator) *HTTPServer {
	s := &HTTPServer{
		mux:       http.NewServeMux(),
		store:     store,
		Simulator: sim,
	}

	s.mux.HandleFunc("/healthz", s.handleHealthz)
	s.mux.HandleFunc("/v1/networks", s.handleNetworks)
	s.mux.HandleFunc("/v1/networks/", s.handleNetworkByID)
	s.mux.HandleFunc("/v1/growth/simulate", s.handleSimulate)
	s.mux.HandleFunc("/v1/growth/days-to-target", s.handleDaysToTarget)
	s.mux.HandleFunc("/v1/growth/min-bonus", s.handleMinBonus)

	return s
}

func (s *HTTPServer) Handler() http.Handler {
	return s.mux
}

func (s *HTTPServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// handleNetworks handles /v1/networks endpoint
func (s *HTTPServer) handleNetworks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateNetwork(w, r)
	case http.MethodGet:
		s.handleListNetworks(w, r)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleNetworkByID handles /v1/networks/{id} and the analysis endpoints
// nested under it
func (s *HTTPServer) handleNetworkByID(w http.ResponseWriter, r *http.Request) {
	// Parse path: /v1/networks/{id} or /v1/networks/{id}/<analysis>
	path := strings.TrimPrefix(r.URL.Path, "/v1/networks/")
	if path == "" {
		s.writeError(w, http.StatusBadRequest, "network ID is required")
		return
	}

	networkID, rest, _ := strings.Cut(path, "/")
	if networkID == "" {
		s.writeError(w, http.StatusBadRequest, "network ID is required")
		return
	}

	if rest != "" {
		if r.Method != http.MethodGet {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.handleAnalysis(w, r, networkID, rest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleGetNetwork(w, r, networkID)
	case http.MethodDelete:
		s.handleDeleteNetwork(w, r, networkID)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleCreateNetwork handles POST /v1/networks. The body is either a JSON
// envelope with an optional network_id and a spec, or a raw YAML network
// spec when the Content-Type says so.
func (s *HTTPServer) handleCreateNetwork(w http.ResponseWriter, r *http.Request) {
	var (
		networkID string
		spec      *config.NetworkSpec
	)

	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "yaml") {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "failed to read request body: "+err.Error())
			return
		}
		spec, err = config.ParseNetworkYAML(body)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		networkID = r.URL.Query().Get("network_id")
	} else {
		var req struct {
			NetworkID string              `json:"network_id,omitempty"`
			Spec      *config.NetworkSpec `json:"spec"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		if req.Spec == nil {
			s.writeError(w, http.StatusBadRequest, "spec is required")
			return
		}
		if err := config.ValidateNetworkSpec(req.Spec); err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		networkID = req.NetworkID
		spec = req.Spec
	}

	g, err := network.BuildGraph(spec)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := s.store.Create(networkID, g)
	if err != nil {
		if errors.Is(err, ErrNetworkExists) {
			s.writeError(w, http.StatusConflict, err.Error())
		} else {
			s.writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	logger.Info("network created (HTTP)", "network_id", rec.ID, "users", rec.Graph.Size(), "referrals", rec.Graph.ReferralCount())
	s.writeJSON(w, http.StatusCreated, map[string]any{
		"network": convertNetworkToJSON(rec),
	})
}

// handleListNetworks handles GET /v1/networks
func (s *HTTPServer) handleListNetworks(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
			if limit > 1000 {
				limit = 1000
			}
		}
	}

	records := s.store.List(limit)

	networksJSON := make([]models.Network, 0, len(records))
	for _, rec := range records {
		networksJSON = append(networksJSON, convertNetworkToJSON(rec))
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"networks": networksJSON,
		"count":    len(records),
	})
}

// handleGetNetwork handles GET /v1/networks/{id}
func (s *HTTPServer) handleGetNetwork(w http.ResponseWriter, _ *http.Request, networkID string) {
	rec, err := s.store.Get(networkID)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"network": convertNetworkToJSON(rec),
	})
}

// handleDeleteNetwork handles DELETE /v1/networks/{id}
func (s *HTTPServer) handleDeleteNetwork(w http.ResponseWriter, _ *http.Request, networkID string) {
	if err := s.store.Delete(networkID); err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}

	logger.Info("network deleted (HTTP)", "network_id", networkID)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"deleted": networkID,
	})
}

// Helper functions

func (s *HTTPServer) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

func (s *HTTPServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]any{
		"error": message,
	})
}

func convertNetworkToJSON(rec *NetworkRecord) models.Network {
	return models.Network{
		ID:              rec.ID,
		UserCount:       rec.Graph.Size(),
		ReferralCount:   rec.Graph.ReferralCount(),
		CreatedAtUnixMs: rec.CreatedAtUnixMs,
	}
}
