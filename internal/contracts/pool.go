package contracts

import (
	"fmt"
	"math"
)

// PoolRecord is a pair of assets traded against each other on a venue.
// ⭐ SSOT: 풀 레코드 정의는 여기서만
type PoolRecord struct {
	AssetA   string  `json:"asset_a"`
	AssetB   string  `json:"asset_b"`
	ReserveA float64 `json:"reserve_a"`
	ReserveB float64 `json:"reserve_b"`
	Volume   float64 `json:"volume"` // trailing volume, same currency across the catalog
	Venue    string  `json:"venue"`

	// Reputation attributes, unknown until seeded
	Audited   Optional[bool] `json:"audited"`
	Incidents Optional[int]  `json:"incidents"`
	AgeMonths Optional[int]  `json:"age_months"`
}

// PairLabel returns "A/B".
func (p PoolRecord) PairLabel() string {
	return p.AssetA + "/" + p.AssetB
}

// CheckReserves returns ErrInvalidReserve unless both reserves are finite and positive.
func (p PoolRecord) CheckReserves() error {
	if !validReserve(p.ReserveA) {
		return fmt.Errorf("%s on %s: reserve_a=%v: %w", p.PairLabel(), p.Venue, p.ReserveA, ErrInvalidReserve)
	}
	if !validReserve(p.ReserveB) {
		return fmt.Errorf("%s on %s: reserve_b=%v: %w", p.PairLabel(), p.Venue, p.ReserveB, ErrInvalidReserve)
	}
	return nil
}

// CheckVolume returns ErrInvalidVolume unless the volume is finite and not negative.
func (p PoolRecord) CheckVolume() error {
	if p.Volume < 0 || math.IsInf(p.Volume, 0) || math.IsNaN(p.Volume) {
		return fmt.Errorf("%s on %s: volume=%v: %w", p.PairLabel(), p.Venue, p.Volume, ErrInvalidVolume)
	}
	return nil
}

// HasReputation reports whether all reputation attributes are known.
func (p PoolRecord) HasReputation() bool {
	return p.Audited.IsKnown() && p.Incidents.IsKnown() && p.AgeMonths.IsKnown()
}

// WithReputation returns a copy with all reputation attributes set.
func (p PoolRecord) WithReputation(audited bool, incidents, ageMonths int) PoolRecord {
	p.Audited = Known(audited)
	p.Incidents = Known(incidents)
	p.AgeMonths = Known(ageMonths)
	return p
}

func validReserve(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
