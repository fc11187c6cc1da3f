package refnetd

import (
	"errors"
	"testing"

	"github.com/refnet-labs/referral-core/internal/network"
	"github.com/refnet-labs/referral-core/pkg/config"
)

func buildStoreGraph(t *testing.T) *network.Graph {
	t.Helper()
	g, err := network.BuildGraph(&config.NetworkSpec{
		Users: []int64{1, 2, 3},
		Referrals: []config.Referral{
			{Referrer: 1, Candidate: 2},
			{Referrer: 2, Candidate: 3},
		},
	})
	if err != nil {
		t.Fatalf("BuildGraph failed: %v", err)
	}
	return g
}

func TestNetworkStoreCreateAndGet(t *testing.T) {
	store := NewNetworkStore()
	g := buildStoreGraph(t)

	rec, err := store.Create("net-a", g)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if rec.ID != "net-a" {
		t.Fatalf("expected ID net-a, got %s", rec.ID)
	}
	if rec.CreatedAtUnixMs == 0 {
		t.Fatalf("expected CreatedAtUnixMs to be set")
	}

	got, err := store.Get("net-a")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Graph.Size() != 3 {
		t.Fatalf("expected 3 users, got %d", got.Graph.Size())
	}
}

func TestNetworkStoreCreateGeneratesID(t *testing.T) {
	store := NewNetworkStore()

	rec, err := store.Create("", buildStoreGraph(t))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if rec.ID == "" {
		t.Fatalf("expected a generated ID")
	}
	if _, err := store.Get(rec.ID); err != nil {
		t.Fatalf("generated ID not retrievable: %v", err)
	}
}

func TestNetworkStoreCreateDuplicate(t *testing.T) {
	store := NewNetworkStore()
	if _, err := store.Create("net-a", buildStoreGraph(t)); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err := store.Create("net-a", buildStoreGraph(t))
	if !errors.Is(err, ErrNetworkExists) {
		t.Fatalf("expected ErrNetworkExists, got %v", err)
	}
}

func TestNetworkStoreGetMissing(t *testing.T) {
	store := NewNetworkStore()
	_, err := store.Get("nope")
	if !errors.Is(err, ErrNetworkNotFound) {
		t.Fatalf("expected ErrNetworkNotFound, got %v", err)
	}
}

func TestNetworkStoreDelete(t *testing.T) {
	store := NewNetworkStore()
	if _, err := store.Create("net-a", buildStoreGraph(t)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Delete("net-a"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get("net-a"); !errors.Is(err, ErrNetworkNotFound) {
		t.Fatalf("expected ErrNetworkNotFound after delete, got %v", err)
	}
	if err := store.Delete("net-a"); !errors.Is(err, ErrNetworkNotFound) {
		t.Fatalf("expected ErrNetworkNotFound on double delete, got %v", err)
	}
}

func TestNetworkStoreList(t *testing.T) {
	store := NewNetworkStore()
	for _, id := range []string{"net-a", "net-b", "net-c"} {
		if _, err := store.Create(id, buildStoreGraph(t)); err != nil {
			t.Fatalf("Create %s failed: %v", id, err)
		}
	}

	all := store.List(10)
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}

	limited := store.List(2)
	if len(limited) != 2 {
		t.Fatalf("expected 2 records with limit, got %d", len(limited))
	}

	if store.Size() != 3 {
		t.Fatalf("expected size 3, got %d", store.Size())
	}
}
