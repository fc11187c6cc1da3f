package utils

import (
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateID()
		if id == "" {
			t.Fatal("Expected non-empty ID")
		}
		if seen[id] {
			t.Fatalf("Expected unique IDs, got duplicate: %s", id)
		}
		seen[id] = true
	}
}

func TestGenerateNetworkID(t *testing.T) {
	id := GenerateNetworkID()
	if !strings.HasPrefix(id, "net-") {
		t.Errorf("Expected network ID to have net- prefix, got: %s", id)
	}

	other := GenerateNetworkID()
	if id == other {
		t.Errorf("Expected distinct network IDs, got %s twice", id)
	}
}
