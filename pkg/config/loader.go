package config

import (
	"fmt"
	"os"
)

// LoadConfig loads and parses a configuration file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := ParseConfigYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadNetwork loads and parses a network spec file
func LoadNetwork(path string) (*NetworkSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read network file %s: %w", path, err)
	}
	spec, err := ParseNetworkYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse network file %s: %w", path, err)
	}
	return spec, nil
}

// validateConfig performs validation on the configuration
func validateConfig(cfg *Config) error {
	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.LogLevel] {
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", cfg.LogLevel)
	}

	if cfg.Growth != nil {
		if err := validateGrowth(cfg.Growth); err != nil {
			return err
		}
	}

	return nil
}

// validateGrowth performs validation on the growth simulation parameters
func validateGrowth(g *Growth) error {
	if g.InitialReferrers <= 0 {
		return fmt.Errorf("growth.initial_referrers must be positive, got %d", g.InitialReferrers)
	}
	if g.ReferralCapacity <= 0 {
		return fmt.Errorf("growth.referral_capacity must be positive, got %d", g.ReferralCapacity)
	}
	if g.MaxBonus <= 0 {
		return fmt.Errorf("growth.max_bonus must be positive, got %d", g.MaxBonus)
	}
	if g.BonusIncrement <= 0 {
		return fmt.Errorf("growth.bonus_increment must be positive, got %d", g.BonusIncrement)
	}
	return nil
}
