package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/poolstat/internal/contracts"
)

func rec(pair, venue string) contracts.PoolRecord {
	return contracts.PoolRecord{AssetA: pair, AssetB: "USDC", ReserveA: 1, ReserveB: 1, Venue: venue}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name   string
		record contracts.PoolRecord
		want   int
	}{
		{
			name:   "audited, no incidents, 36 months",
			record: rec("ETH", "Uniswap").WithReputation(true, 0, 36),
			want:   86,
		},
		{
			name:   "audited, one incident, 24 months",
			record: rec("ETH", "SushiSwap").WithReputation(true, 1, 24),
			want:   54,
		},
		{
			name:   "audited, no incidents, 30 months",
			record: rec("ETH", "Curve").WithReputation(true, 0, 30),
			want:   80,
		},
		{
			name:   "not audited, two incidents, 12 months",
			record: rec("ETH", "Other").WithReputation(false, 2, 12),
			want:   -28,
		},
		{
			name:   "all unknown",
			record: rec("ETH", "Unknown"),
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.record))
		})
	}
}

func TestScore_UnknownEqualsNeutral(t *testing.T) {
	unknown := rec("ETH", "Venue")
	neutral := rec("ETH", "Venue").WithReputation(false, 0, 0)

	assert.Equal(t, Score(neutral), Score(unknown))
	assert.Equal(t, Resolve(neutral), Resolve(unknown))

	partial := rec("ETH", "Venue")
	partial.AgeMonths = contracts.Known(10)
	assert.Equal(t, 10, Score(partial))
	assert.Equal(t, contracts.SecurityDetails{Audited: false, Incidents: 0, AgeMonths: 10}, Resolve(partial))
}

func TestRank_Order(t *testing.T) {
	sushi := rec("ETH", "SushiSwap").WithReputation(true, 1, 24)
	uni := rec("ETH", "Uniswap").WithReputation(true, 0, 36)

	ranked, err := Rank([]contracts.PoolRecord{sushi, uni})
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	assert.Equal(t, "Uniswap", ranked[0].Record.Venue)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 86, ranked[0].Score)
	assert.Equal(t, "SushiSwap", ranked[1].Record.Venue)
	assert.Equal(t, 2, ranked[1].Rank)
	assert.Equal(t, 54, ranked[1].Score)
	assert.Equal(t, contracts.SecurityDetails{Audited: true, Incidents: 1, AgeMonths: 24}, ranked[1].Security)
}

func TestRank_TiesKeepCatalogOrder(t *testing.T) {
	records := []contracts.PoolRecord{
		rec("A", "Curve").WithReputation(true, 0, 30),
		rec("B", "Uniswap").WithReputation(true, 0, 36),
		rec("C", "Curve").WithReputation(true, 0, 30),
		rec("D", "Curve").WithReputation(true, 0, 30),
	}

	ranked, err := Rank(records)
	require.NoError(t, err)

	got := make([]string, len(ranked))
	for i, r := range ranked {
		got[i] = r.Record.AssetA
		assert.Equal(t, i+1, r.Rank)
	}
	assert.Equal(t, []string{"B", "A", "C", "D"}, got)
}

func TestRank_Idempotent(t *testing.T) {
	records := []contracts.PoolRecord{
		rec("A", "Curve").WithReputation(true, 0, 30),
		rec("B", "SushiSwap").WithReputation(true, 1, 24),
		rec("C", "Uniswap").WithReputation(true, 0, 36),
		rec("D", "SushiSwap").WithReputation(true, 1, 24),
		rec("E", "Unknown"),
	}
	before := make([]contracts.PoolRecord, len(records))
	copy(before, records)

	first, err := Rank(records)
	require.NoError(t, err)
	second, err := Rank(records)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, before, records, "input must not be mutated")
}

func TestRank_Empty(t *testing.T) {
	ranked, err := Rank(nil)
	assert.ErrorIs(t, err, contracts.ErrEmptyInput)
	assert.Nil(t, ranked)
}

func TestRanker_CustomWeights(t *testing.T) {
	r := NewRanker(ScoreWeights{Audit: 10, PerIncident: 5, PerMonth: 2})
	record := rec("ETH", "X").WithReputation(true, 1, 3)

	b := r.Breakdown(record)
	assert.Equal(t, ScoreBreakdown{AuditPoints: 10, IncidentPenalty: 5, AgePoints: 6, Total: 11}, b)
	assert.Equal(t, 11, r.Score(record))
}

func TestDefaultScoreWeights(t *testing.T) {
	r := NewRanker(DefaultScoreWeights())
	b := r.Breakdown(rec("ETH", "SushiSwap").WithReputation(true, 1, 24))

	assert.Equal(t, 50, b.AuditPoints)
	assert.Equal(t, 20, b.IncidentPenalty)
	assert.Equal(t, 24, b.AgePoints)
	assert.Equal(t, 54, b.Total)
}
