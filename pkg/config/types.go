package config

// Config represents the main daemon configuration
type Config struct {
	LogLevel string  `yaml:"log_level"`
	HTTPAddr string  `yaml:"http_addr,omitempty"`
	GRPCAddr string  `yaml:"grpc_addr,omitempty"`
	Growth   *Growth `yaml:"growth,omitempty"`
}

// Growth represents the growth simulation parameters
type Growth struct {
	InitialReferrers int `yaml:"initial_referrers"`
	ReferralCapacity int `yaml:"referral_capacity"`
	MaxBonus         int `yaml:"max_bonus"`
	BonusIncrement   int `yaml:"bonus_increment"`
}

// NetworkSpec describes a referral network to load: the set of users and the
// directed referrer -> candidate edges between them. The same structure is
// accepted as YAML (files, -network flag) and JSON (HTTP payloads).
type NetworkSpec struct {
	Users     []int64    `yaml:"users" json:"users"`
	Referrals []Referral `yaml:"referrals" json:"referrals"`
}

// Referral represents a single directed referral edge
type Referral struct {
	Referrer  int64 `yaml:"referrer" json:"referrer"`
	Candidate int64 `yaml:"candidate" json:"candidate"`
}

// DefaultConfig returns a Config populated with default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		HTTPAddr: ":8080",
		GRPCAddr: ":50051",
		Growth:   DefaultGrowth(),
	}
}

// DefaultGrowth returns the default growth simulation parameters
func DefaultGrowth() *Growth {
	return &Growth{
		InitialReferrers: 100,
		ReferralCapacity: 10,
		MaxBonus:         1000,
		BonusIncrement:   10,
	}
}
