package ratio

import (
	"fmt"

	"github.com/wonny/poolstat/internal/contracts"
)

// Estimates holds per-group volume-weighted ratios.
// A group whose weighted mean could not be computed is absent from Values and
// present in Failed with the reason.
type Estimates[K comparable] struct {
	Values map[K]float64                 `json:"values"`
	Failed map[K]error                   `json:"-"`
	Groups map[K][]contracts.RatioRecord `json:"-"`
	Order  []K                           `json:"order"` // group keys by first appearance in the catalog
}

// OK reports whether every group produced a value.
func (e Estimates[K]) OK() bool {
	return len(e.Failed) == 0
}

// Weight returns the volume share of one record within its group.
func (e Estimates[K]) Weight(key K, idx int) float64 {
	members := e.Groups[key]
	if idx < 0 || idx >= len(members) {
		return 0
	}
	var total float64
	for _, m := range members {
		total += m.Record.Volume
	}
	if total == 0 {
		return 0
	}
	return members[idx].Record.Volume / total
}

// ByPrimaryAsset groups pools by their first asset.
func ByPrimaryAsset(rec contracts.PoolRecord) string {
	return rec.AssetA
}

// ByVenue groups pools by venue.
func ByVenue(rec contracts.PoolRecord) string {
	return rec.Venue
}

// MostPlausibleRatio computes the volume-weighted mean ratio of every group.
// ⭐ SSOT: 그룹별 거래량 가중 비율은 여기서만
//
// Each group is summed in catalog order. An invalid reserve anywhere aborts
// the call. A zero-volume group only fails that group.
func MostPlausibleRatio[K comparable](records []contracts.PoolRecord, groupBy func(contracts.PoolRecord) K) (Estimates[K], error) {
	ratios, err := CalculateRatios(records)
	if err != nil {
		return Estimates[K]{}, err
	}

	est := Estimates[K]{
		Values: make(map[K]float64),
		Failed: make(map[K]error),
		Groups: make(map[K][]contracts.RatioRecord),
	}
	for _, r := range ratios {
		key := groupBy(r.Record)
		if _, seen := est.Groups[key]; !seen {
			est.Order = append(est.Order, key)
		}
		est.Groups[key] = append(est.Groups[key], r)
	}

	for _, key := range est.Order {
		v, err := weightedMean(est.Groups[key])
		if err != nil {
			est.Failed[key] = fmt.Errorf("group %v: %w", key, err)
			continue
		}
		est.Values[key] = v
	}

	return est, nil
}
