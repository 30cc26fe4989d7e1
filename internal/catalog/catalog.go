package catalog

import (
	"github.com/wonny/poolstat/internal/contracts"
	"github.com/wonny/poolstat/internal/ranking"
)

// Catalog is the seeded pool collection with the settings that travel with it.
// ⭐ SSOT: 카탈로그 구성은 여기서만
type Catalog struct {
	Pools        []contracts.PoolRecord
	Reputation   ReputationTable
	Expectations Expectations
	Weights      ranking.ScoreWeights
}

// Records returns a copy of the pools in catalog order.
func (c *Catalog) Records() []contracts.PoolRecord {
	out := make([]contracts.PoolRecord, len(c.Pools))
	copy(out, c.Pools)
	return out
}

// ByToken returns pools that trade the asset on either side.
func (c *Catalog) ByToken(asset string) []contracts.PoolRecord {
	return filter(c.Pools, func(p contracts.PoolRecord) bool {
		return p.AssetA == asset || p.AssetB == asset
	})
}

// ByPrimaryAsset returns pools whose first asset is asset.
func (c *Catalog) ByPrimaryAsset(asset string) []contracts.PoolRecord {
	return filter(c.Pools, func(p contracts.PoolRecord) bool {
		return p.AssetA == asset
	})
}

// ByVenue returns pools listed on venue.
func (c *Catalog) ByVenue(venue string) []contracts.PoolRecord {
	return filter(c.Pools, func(p contracts.PoolRecord) bool {
		return p.Venue == venue
	})
}

// Seeded returns the pools with reputation attributes assigned from the table.
func (c *Catalog) Seeded() []contracts.PoolRecord {
	return c.Reputation.Assign(c.Pools)
}

func filter(pools []contracts.PoolRecord, keep func(contracts.PoolRecord) bool) []contracts.PoolRecord {
	var out []contracts.PoolRecord
	for _, p := range pools {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
