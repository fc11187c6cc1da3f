package refnetd

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/refnet-labs/referral-core/internal/network"
	"github.com/refnet-labs/referral-core/pkg/utils"
)

var (
	ErrNetworkNotFound = errors.New("network not found")
	ErrNetworkExists   = errors.New("network already exists")
)

// NetworkRecord is a loaded referral network held by the daemon. The graph is
// immutable once stored; analyses run against it without locking.
type NetworkRecord struct {
	ID              string
	Graph           *network.Graph
	CreatedAtUnixMs int64
}

// NetworkStore is an in-memory, mutex-guarded registry of loaded networks
type NetworkStore struct {
	mu       sync.RWMutex
	networks map[string]*NetworkRecord
}

func NewNetworkStore() *NetworkStore {
	return &NetworkStore{
		networks: make(map[string]*NetworkRecord),
	}
}

func nowUnixMs() int64 {
	return time.Now().UTC().UnixMilli()
}

// Create registers a graph under the given ID, generating an ID when empty
func (s *NetworkStore) Create(networkID string, g *network.Graph) (*NetworkRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if networkID == "" {
		networkID = utils.GenerateNetworkID()
	}
	if _, exists := s.networks[networkID]; exists {
		return nil, fmt.Errorf("%w: %s", ErrNetworkExists, networkID)
	}

	rec := &NetworkRecord{
		ID:              networkID,
		Graph:           g,
		CreatedAtUnixMs: nowUnixMs(),
	}
	s.networks[networkID] = rec
	return rec, nil
}

// Get returns the record for a network ID
func (s *NetworkStore) Get(networkID string) (*NetworkRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.networks[networkID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNetworkNotFound, networkID)
	}
	return rec, nil
}

// List returns up to limit records, newest first
func (s *NetworkStore) List(limit int) []*NetworkRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	out := make([]*NetworkRecord, 0, utils.Min(limit, len(s.networks)))
	for _, rec := range s.networks {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAtUnixMs != out[j].CreatedAtUnixMs {
			return out[i].CreatedAtUnixMs > out[j].CreatedAtUnixMs
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Delete removes a network from the store
func (s *NetworkStore) Delete(networkID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.networks[networkID]; !ok {
		return fmt.Errorf("%w: %s", ErrNetworkNotFound, networkID)
	}
	delete(s.networks, networkID)
	return nil
}

// Size returns the number of stored networks
func (s *NetworkStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.networks)
}
