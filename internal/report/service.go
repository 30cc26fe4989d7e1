package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wonny/poolstat/internal/catalog"
	"github.com/wonny/poolstat/internal/contracts"
	"github.com/wonny/poolstat/internal/ranking"
	"github.com/wonny/poolstat/internal/ratio"
	"github.com/wonny/poolstat/pkg/logger"
)

// Service composes the ratio and ranking engines into one report.
// ⭐ SSOT: 리포트 생성은 여기서만
type Service struct {
	catalog *catalog.Catalog
	ranker  *ranking.Ranker
	logger  *logger.Logger
	now     func() time.Time
}

// NewService creates a report service.
// The catalog supplies reputation, expectations and score weights; pool
// records are passed to Build so they can come from any source.
func NewService(cat *catalog.Catalog, log *logger.Logger) *Service {
	return &Service{
		catalog: cat,
		ranker:  ranking.NewRanker(cat.Weights),
		logger:  log.Component("report"),
		now:     time.Now,
	}
}

// Catalog returns the catalog the service reports against.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Ranker returns the ranker configured with the catalog weights.
func (s *Service) Ranker() *ranking.Ranker {
	return s.ranker
}

// Build runs every stage over records.
//
// An invalid reserve or an empty collection aborts the report. Statistics and
// estimates that cannot be computed are reported in place and do not abort.
func (s *Service) Build(ctx context.Context, records []contracts.PoolRecord) (*Report, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("report: %w", contracts.ErrEmptyInput)
	}

	rpt := &Report{
		GeneratedAt:  s.now().UTC(),
		PoolCount:    len(records),
		Verification: catalog.Verify(records, s.catalog.Expectations),
		Weights:      s.catalog.Weights,
	}

	// Stage 1: ratios
	ratios, err := ratio.CalculateRatios(records)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	rpt.Ratios = ratios

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: statistics (partial results allowed)
	summary, statErr := ratio.CalculateStatistics(ratios)
	rpt.Summary = summary
	for _, name := range contracts.StatisticNames() {
		if v, ok := summary.Get(name); ok {
			rpt.Statistics = append(rpt.Statistics, Statistic{Name: name, Value: v})
		}
	}
	rpt.StatisticErrors = ErrorStrings(statErr)

	// Stage 3: per-asset estimates
	est, err := ratio.MostPlausibleRatio(records, ratio.ByPrimaryAsset)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	rpt.Estimates = EstimatesOf(est)

	// Stage 4: highest-volume pool
	rpt.HighestVolume, err = ratio.PickHighestVolume(ratios)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 5: security ranking over reputation-seeded records
	ranked, err := s.ranker.Rank(s.catalog.Reputation.Assign(records))
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	rpt.Ranking = make([]RankedEntry, len(ranked))
	for i, r := range ranked {
		rpt.Ranking[i] = RankedEntry{RankedRecord: r, Breakdown: s.ranker.Breakdown(r.Record)}
	}

	s.logger.WithFields(map[string]interface{}{
		"pools":            rpt.PoolCount,
		"statistics":       len(rpt.Statistics),
		"statistic_errors": len(rpt.StatisticErrors),
		"estimates":        len(rpt.Estimates),
		"verification_ok":  rpt.Verification.OK,
		"top_ranked_venue": rpt.Ranking[0].Record.Venue,
		"highest_volume":   rpt.HighestVolume.PairLabel,
	}).Debug("report built")

	return rpt, nil
}

// EstimatesOf flattens estimates in group order, with member weights.
func EstimatesOf(est ratio.Estimates[string]) []Estimate {
	out := make([]Estimate, 0, len(est.Order))
	for _, key := range est.Order {
		e := Estimate{Asset: key}
		if v, ok := est.Values[key]; ok {
			e.Value = &v
		}
		if err, ok := est.Failed[key]; ok {
			e.Error = err.Error()
		}
		for i, m := range est.Groups[key] {
			e.Members = append(e.Members, EstimateMember{
				PairLabel: m.PairLabel,
				Venue:     m.Record.Venue,
				Ratio:     m.Ratio,
				Weight:    est.Weight(key, i),
			})
		}
		out = append(out, e)
	}
	return out
}

// ErrorStrings flattens a joined error into its messages.
func ErrorStrings(err error) []string {
	if err == nil {
		return nil
	}
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		errs := joined.Unwrap()
		out := make([]string, len(errs))
		for i, e := range errs {
			out[i] = e.Error()
		}
		return out
	}
	return []string{err.Error()}
}
