package report

import (
	"time"

	"github.com/wonny/poolstat/internal/catalog"
	"github.com/wonny/poolstat/internal/contracts"
	"github.com/wonny/poolstat/internal/ranking"
)

// Report is everything computed for one pool collection.
// ⭐ SSOT: 리포트 구조는 여기서만
type Report struct {
	GeneratedAt     time.Time                   `json:"generated_at"`
	PoolCount       int                         `json:"pool_count"`
	Verification    catalog.Verification        `json:"verification"`
	Ratios          []contracts.RatioRecord     `json:"ratios"`
	Statistics      []Statistic                 `json:"statistics"`
	StatisticErrors []string                    `json:"statistic_errors,omitempty"`
	Estimates       []Estimate                  `json:"estimates"`
	HighestVolume   contracts.RatioRecord       `json:"highest_volume"`
	Ranking         []RankedEntry               `json:"ranking"`
	Weights         ranking.ScoreWeights        `json:"weights"`
	Summary         contracts.StatisticsSummary `json:"-"`
}

// Statistic is one named summary measure.
type Statistic struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Estimate is the volume-weighted ratio of one primary asset.
type Estimate struct {
	Asset   string           `json:"asset"`
	Value   *float64         `json:"value"` // nil when the group failed
	Error   string           `json:"error,omitempty"`
	Members []EstimateMember `json:"members"`
}

// EstimateMember is one pool's contribution to an estimate.
type EstimateMember struct {
	PairLabel string  `json:"pair_label"`
	Venue     string  `json:"venue"`
	Ratio     float64 `json:"ratio"`
	Weight    float64 `json:"weight"` // share of group volume, 0..1
}

// RankedEntry is a ranked pool with its score breakdown.
type RankedEntry struct {
	contracts.RankedRecord
	Breakdown ranking.ScoreBreakdown `json:"breakdown"`
}
