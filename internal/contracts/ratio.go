package contracts

// RatioRecord is a pool with its derived exchange ratio.
type RatioRecord struct {
	Record        PoolRecord `json:"record"`
	Ratio         float64    `json:"ratio"`           // reserve_b / reserve_a
	PairLabel     string     `json:"pair_label"`      // e.g. "ETH/USDC"
	PricePerUnitA float64    `json:"price_per_unit_a"` // units of B for one unit of A
}

// Statistic names, in reporting order
const (
	StatArithmeticMean = "arithmetic_mean"
	StatGeometricMean  = "geometric_mean"
	StatMedian         = "median"
	StatWeightedMean   = "weighted_mean"
	StatHarmonicMean   = "harmonic_mean"
	StatMidrange       = "midrange"
	StatTrimmedMean    = "trimmed_mean"
	StatMode           = "mode"
	StatQuadraticMean  = "quadratic_mean"
	StatMaxRatio       = "max_ratio"
)

// StatisticNames lists every statistic in reporting order.
func StatisticNames() []string {
	return []string{
		StatArithmeticMean,
		StatGeometricMean,
		StatMedian,
		StatWeightedMean,
		StatHarmonicMean,
		StatMidrange,
		StatTrimmedMean,
		StatMode,
		StatQuadraticMean,
		StatMaxRatio,
	}
}

// StatisticsSummary maps statistic name to value.
// A statistic that could not be computed is absent.
type StatisticsSummary map[string]float64

// Get returns a statistic and whether it was computed.
func (s StatisticsSummary) Get(name string) (float64, bool) {
	v, ok := s[name]
	return v, ok
}
