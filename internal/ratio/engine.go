package ratio

import (
	"fmt"
	"math"

	"github.com/wonny/poolstat/internal/contracts"
)

// CalculateRatios derives reserve_b / reserve_a for every record, preserving input order.
// ⭐ SSOT: 비율 계산은 여기서만
//
// A record with a non-positive reserve, or reserves whose quotient leaves the finite
// positive range, fails the whole batch with ErrInvalidReserve; a negative or
// non-finite volume fails it with ErrInvalidVolume. The caller decides whether to
// drop the record and retry.
func CalculateRatios(records []contracts.PoolRecord) ([]contracts.RatioRecord, error) {
	out := make([]contracts.RatioRecord, 0, len(records))

	for i, rec := range records {
		r, err := ratioOf(rec)
		if err != nil {
			return nil, fmt.Errorf("pool %d: %w", i+1, err)
		}
		out = append(out, r)
	}

	return out, nil
}

func ratioOf(rec contracts.PoolRecord) (contracts.RatioRecord, error) {
	if err := rec.CheckReserves(); err != nil {
		return contracts.RatioRecord{}, err
	}
	if err := rec.CheckVolume(); err != nil {
		return contracts.RatioRecord{}, err
	}

	value := rec.ReserveB / rec.ReserveA
	if math.IsInf(value, 0) || value == 0 {
		return contracts.RatioRecord{}, fmt.Errorf("%s on %s: reserve_b/reserve_a=%v/%v out of range: %w",
			rec.PairLabel(), rec.Venue, rec.ReserveB, rec.ReserveA, contracts.ErrInvalidReserve)
	}
	return contracts.RatioRecord{
		Record:        rec,
		Ratio:         value,
		PairLabel:     rec.PairLabel(),
		PricePerUnitA: value,
	}, nil
}
