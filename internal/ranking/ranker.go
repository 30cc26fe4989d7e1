package ranking

import (
	"fmt"
	"sort"

	"github.com/wonny/poolstat/internal/contracts"
)

// Ranker scores pools by reputation and orders them.
// ⭐ SSOT: 보안 랭킹 로직은 여기서만
type Ranker struct {
	weights ScoreWeights
}

// ScoreWeights defines the points of each reputation attribute
type ScoreWeights struct {
	Audit       int `yaml:"audit" json:"audit" default:"50" validate:"gte=0"`               // awarded once when audited
	PerIncident int `yaml:"per_incident" json:"per_incident" default:"20" validate:"gte=0"` // subtracted per incident
	PerMonth    int `yaml:"per_month" json:"per_month" default:"1" validate:"gte=0"`        // awarded per month of age
}

// DefaultScoreWeights returns audit(50) - incidents(20 each) + age(1 per month)
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		Audit:       50,
		PerIncident: 20,
		PerMonth:    1,
	}
}

// ScoreBreakdown is the contribution of each attribute to a score.
type ScoreBreakdown struct {
	AuditPoints     int `json:"audit_points"`
	IncidentPenalty int `json:"incident_penalty"`
	AgePoints       int `json:"age_points"`
	Total           int `json:"total"`
}

// NewRanker creates a new ranker
func NewRanker(weights ScoreWeights) *Ranker {
	return &Ranker{weights: weights}
}

// Resolve turns optional reputation attributes into concrete values.
// Unknown audit status counts as not audited, unknown incidents and age as zero.
func Resolve(rec contracts.PoolRecord) contracts.SecurityDetails {
	var d contracts.SecurityDetails

	if audited, ok := rec.Audited.Get(); ok {
		d.Audited = audited
	} else {
		d.Audited = false
	}
	if incidents, ok := rec.Incidents.Get(); ok {
		d.Incidents = incidents
	} else {
		d.Incidents = 0
	}
	if age, ok := rec.AgeMonths.Get(); ok {
		d.AgeMonths = age
	} else {
		d.AgeMonths = 0
	}

	return d
}

// Breakdown returns the per-attribute points for a record.
func (r *Ranker) Breakdown(rec contracts.PoolRecord) ScoreBreakdown {
	d := Resolve(rec)

	var b ScoreBreakdown
	if d.Audited {
		b.AuditPoints = r.weights.Audit
	}
	b.IncidentPenalty = d.Incidents * r.weights.PerIncident
	b.AgePoints = d.AgeMonths * r.weights.PerMonth
	b.Total = b.AuditPoints - b.IncidentPenalty + b.AgePoints
	return b
}

// Score calculates the security score of one record
func (r *Ranker) Score(rec contracts.PoolRecord) int {
	return r.Breakdown(rec).Total
}

type scored struct {
	record contracts.PoolRecord
	score  int
}

// Rank scores every record and orders them by score, highest first.
// Equal scores keep catalog order. Input records are not modified.
func (r *Ranker) Rank(records []contracts.PoolRecord) ([]contracts.RankedRecord, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("rank: %w", contracts.ErrEmptyInput)
	}

	// Stage 1: score
	tuples := make([]scored, len(records))
	for i, rec := range records {
		tuples[i] = scored{record: rec, score: r.Score(rec)}
	}

	// Stage 2: stable sort (descending)
	sort.SliceStable(tuples, func(i, j int) bool {
		return tuples[i].score > tuples[j].score
	})

	// Stage 3: rank by position
	ranked := make([]contracts.RankedRecord, len(tuples))
	for i, t := range tuples {
		ranked[i] = contracts.RankedRecord{
			Record:   t.record,
			Score:    t.score,
			Rank:     i + 1,
			Security: Resolve(t.record),
		}
	}

	return ranked, nil
}

var defaultRanker = NewRanker(DefaultScoreWeights())

// Score scores a record with the default weights.
func Score(rec contracts.PoolRecord) int {
	return defaultRanker.Score(rec)
}

// Rank ranks records with the default weights.
func Rank(records []contracts.PoolRecord) ([]contracts.RankedRecord, error) {
	return defaultRanker.Rank(records)
}
