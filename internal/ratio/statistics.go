package ratio

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/wonny/poolstat/internal/contracts"
)

const (
	// TrimFraction is the share of values dropped from each end for the trimmed mean.
	TrimFraction = 0.10
	// ModeDecimals is the rounding precision used to group ratios for the mode.
	ModeDecimals = 2
)

// CalculateStatistics computes the ten summary measures over one ratio collection.
// ⭐ SSOT: 통계 계산은 여기서만
//
// Every sum runs over the ratios sorted ascending, so shuffling the input never
// changes a result. Measures that cannot be computed are left out of the summary
// and reported through the joined error; the rest are still returned.
func CalculateStatistics(ratios []contracts.RatioRecord) (contracts.StatisticsSummary, error) {
	if len(ratios) == 0 {
		return nil, fmt.Errorf("statistics: %w", contracts.ErrEmptyInput)
	}

	values := make([]float64, len(ratios))
	for i, r := range ratios {
		values[i] = r.Ratio
	}
	sorted := sortedCopy(values)

	summary := make(contracts.StatisticsSummary, len(contracts.StatisticNames()))
	var errs []error
	put := func(name string, v float64, err error) {
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			return
		}
		summary[name] = v
	}

	geometric, geometricErr := GeometricMean(sorted)
	weighted, weightedErr := WeightedMean(ratios)
	harmonic, harmonicErr := HarmonicMean(sorted)
	trimmed, trimmedErr := TrimmedMean(sorted, TrimFraction)

	put(contracts.StatArithmeticMean, ArithmeticMean(sorted), nil)
	put(contracts.StatGeometricMean, geometric, geometricErr)
	put(contracts.StatMedian, Median(sorted), nil)
	put(contracts.StatWeightedMean, weighted, weightedErr)
	put(contracts.StatHarmonicMean, harmonic, harmonicErr)
	put(contracts.StatMidrange, (sorted[0]+sorted[len(sorted)-1])/2, nil)
	put(contracts.StatTrimmedMean, trimmed, trimmedErr)
	put(contracts.StatMode, Mode(values, ModeDecimals), nil)
	put(contracts.StatQuadraticMean, QuadraticMean(sorted), nil)
	put(contracts.StatMaxRatio, sorted[len(sorted)-1], nil)

	return summary, errors.Join(errs...)
}

// ArithmeticMean expects sorted input.
func ArithmeticMean(sorted []float64) float64 {
	return sum(sorted) / float64(len(sorted))
}

// GeometricMean is the nth root of the product, computed through logarithms
// so large catalogs do not overflow. Expects sorted input.
func GeometricMean(sorted []float64) (float64, error) {
	if sorted[0] <= 0 {
		return 0, fmt.Errorf("ratio %v: %w", sorted[0], contracts.ErrUndefinedMean)
	}
	var logSum float64
	for _, v := range sorted {
		logSum += math.Log(v)
	}
	return math.Exp(logSum / float64(len(sorted))), nil
}

// Median expects sorted input.
func Median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// HarmonicMean expects sorted input.
func HarmonicMean(sorted []float64) (float64, error) {
	if sorted[0] <= 0 {
		return 0, fmt.Errorf("ratio %v: %w", sorted[0], contracts.ErrUndefinedMean)
	}
	var recip float64
	for _, v := range sorted {
		recip += 1 / v
	}
	return float64(len(sorted)) / recip, nil
}

// TrimmedMean drops floor(fraction*n) values from each end of sorted input and
// averages the rest. With fewer than 1/fraction values nothing is dropped and the
// result equals the arithmetic mean.
func TrimmedMean(sorted []float64, fraction float64) (float64, error) {
	k := int(math.Floor(fraction * float64(len(sorted))))
	kept := sorted[k : len(sorted)-k]
	if len(kept) == 0 {
		return 0, fmt.Errorf("n=%d trim=%d: %w", len(sorted), k, contracts.ErrDegenerateTrim)
	}
	return ArithmeticMean(kept), nil
}

// Mode rounds values to the given number of decimals and returns the most
// frequent rounded value. On a tie the value encountered first in input order wins,
// so values must be passed in input order, not sorted.
func Mode(values []float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	rounded := make([]float64, len(values))
	counts := make(map[float64]int, len(values))
	best := 0
	for i, v := range values {
		rounded[i] = math.Round(v*scale) / scale
		counts[rounded[i]]++
		if counts[rounded[i]] > best {
			best = counts[rounded[i]]
		}
	}

	for _, r := range rounded {
		if counts[r] == best {
			return r
		}
	}
	return rounded[0]
}

// QuadraticMean (RMS) expects sorted input.
func QuadraticMean(sorted []float64) float64 {
	var sq float64
	for _, v := range sorted {
		sq += v * v
	}
	return math.Sqrt(sq / float64(len(sorted)))
}

// WeightedMean is Σ(ratio×volume) / Σ(volume).
// Pairs are summed in (ratio, volume) order so the result does not depend on input order.
func WeightedMean(ratios []contracts.RatioRecord) (float64, error) {
	sorted := make([]contracts.RatioRecord, len(ratios))
	copy(sorted, ratios)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Ratio != sorted[j].Ratio {
			return sorted[i].Ratio < sorted[j].Ratio
		}
		return sorted[i].Record.Volume < sorted[j].Record.Volume
	})
	return weightedMean(sorted)
}

// weightedMean sums in the order given.
func weightedMean(ratios []contracts.RatioRecord) (float64, error) {
	if len(ratios) == 0 {
		return 0, contracts.ErrEmptyInput
	}

	var weighted, total float64
	for _, r := range ratios {
		if err := r.Record.CheckVolume(); err != nil {
			return 0, err
		}
		weighted += r.Ratio * r.Record.Volume
		total += r.Record.Volume
	}
	if total == 0 {
		return 0, contracts.ErrZeroTotalVolume
	}
	return weighted / total, nil
}

func sortedCopy(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Float64s(out)
	return out
}

func sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}
