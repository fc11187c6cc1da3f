package models

// Network summarizes a loaded referral network
type Network struct {
	ID              string `json:"id"`
	UserCount       int    `json:"user_count"`
	ReferralCount   int    `json:"referral_count"`
	CreatedAtUnixMs int64  `json:"created_at_unix_ms"`
}

// ReachResponse is the downstream reach of a single user
type ReachResponse struct {
	UserID int64   `json:"user_id"`
	Reach  []int64 `json:"reach"`
	Count  int     `json:"count"`
}

// ReferrerRank is one entry of a top-referrers ranking
type ReferrerRank struct {
	UserID         int64 `json:"user_id"`
	TotalReferrals int   `json:"total_referrals"`
}

// CoveragePick is one greedy selection step of the unique-coverage ranking.
// NewReach is the marginal coverage the pick added at selection time.
type CoveragePick struct {
	UserID   int64 `json:"user_id"`
	NewReach int   `json:"new_reach"`
}

// CoverageResponse is the result of a unique-coverage selection
type CoverageResponse struct {
	Picks         []CoveragePick `json:"picks"`
	CoverageRatio float64        `json:"coverage_ratio"`
}

// CentralityScore is one entry of a flow-centrality ranking
type CentralityScore struct {
	UserID int64   `json:"user_id"`
	Score  float64 `json:"score"`
}

// GrowthCurve is the output of a growth simulation
type GrowthCurve struct {
	Probability float64   `json:"probability"`
	Days        int       `json:"days"`
	Cumulative  []float64 `json:"cumulative"`
}

// DaysToTargetResponse is the result of a days-to-target search
type DaysToTargetResponse struct {
	Achievable bool    `json:"achievable"`
	Days       int     `json:"days,omitempty"`
	Target     float64 `json:"target"`
}

// MinBonusResponse is the result of a minimum-bonus search
type MinBonusResponse struct {
	Achievable bool    `json:"achievable"`
	Bonus      int     `json:"bonus,omitempty"`
	Days       int     `json:"days"`
	Target     float64 `json:"target"`
}
