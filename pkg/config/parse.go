package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseConfigYAML parses a Config from YAML bytes and validates it.
// This is used for APIs where config is provided as payload (not via filesystem).
func ParseConfigYAML(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config yaml: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// ParseNetworkYAML parses a NetworkSpec from YAML bytes and validates it.
// This is used for APIs where the network is provided as payload (not via filesystem).
func ParseNetworkYAML(data []byte) (*NetworkSpec, error) {
	var spec NetworkSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse network yaml: %w", err)
	}

	if err := ValidateNetworkSpec(&spec); err != nil {
		return nil, fmt.Errorf("invalid network spec: %w", err)
	}

	return &spec, nil
}

// ValidateNetworkSpec performs structural validation on a network spec:
// unique user IDs and referral endpoints that reference declared users.
// Business rules (self-referral, unique referrer, acyclicity) are enforced
// when the graph itself is built.
func ValidateNetworkSpec(spec *NetworkSpec) error {
	if spec == nil {
		return fmt.Errorf("network spec is required")
	}

	declared := make(map[int64]bool, len(spec.Users))
	for _, id := range spec.Users {
		if id < 0 {
			return fmt.Errorf("user ID must be non-negative, got %d", id)
		}
		if declared[id] {
			return fmt.Errorf("duplicate user ID: %d", id)
		}
		declared[id] = true
	}

	for _, ref := range spec.Referrals {
		if !declared[ref.Referrer] {
			return fmt.Errorf("referral references undeclared referrer %d", ref.Referrer)
		}
		if !declared[ref.Candidate] {
			return fmt.Errorf("referral references undeclared candidate %d", ref.Candidate)
		}
	}

	return nil
}
