package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/wonny/poolstat/internal/catalog"
	"github.com/wonny/poolstat/internal/contracts"
	"github.com/wonny/poolstat/internal/ratio"
	"github.com/wonny/poolstat/internal/report"
	"github.com/wonny/poolstat/pkg/logger"
)

// ReportHandler serves the ratio, statistics and ranking endpoints
// ⭐ SSOT: 리포트 API 핸들러는 이 구조체에서만
type ReportHandler struct {
	source  contracts.CatalogSource
	service *report.Service
	logger  *logger.Logger
}

// NewReportHandler creates a new report handler.
// Pool records are loaded from source on every request.
func NewReportHandler(source contracts.CatalogSource, service *report.Service, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		source:  source,
		service: service,
		logger:  log.Component("api"),
	}
}

// StatisticsResponse carries computed statistics and the ones that failed
type StatisticsResponse struct {
	Count      int                         `json:"count"`
	Statistics contracts.StatisticsSummary `json:"statistics"`
	Errors     []string                    `json:"errors,omitempty"`
}

// EstimatesResponse carries per-group volume-weighted ratios
type EstimatesResponse struct {
	GroupBy string             `json:"group_by"`
	Order   []string           `json:"order"`
	Values  map[string]float64 `json:"values"`
	Failed  map[string]string  `json:"failed,omitempty"`
}

// GetReport returns the full report
// GET /api/report
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	records, ok := h.load(w, r)
	if !ok {
		return
	}

	rpt, err := h.service.Build(r.Context(), records)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, rpt)
}

// GetRatios returns the ratio of every pool in catalog order
// GET /api/ratios
func (h *ReportHandler) GetRatios(w http.ResponseWriter, r *http.Request) {
	records, ok := h.load(w, r)
	if !ok {
		return
	}

	ratios, err := ratio.CalculateRatios(records)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(ratios),
		"ratios": ratios,
	})
}

// GetStatistics returns the summary statistics.
// Measures that could not be computed are listed under errors.
// GET /api/statistics
func (h *ReportHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	records, ok := h.load(w, r)
	if !ok {
		return
	}

	ratios, err := ratio.CalculateRatios(records)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	summary, err := ratio.CalculateStatistics(ratios)
	if summary == nil {
		h.fail(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, StatisticsResponse{
		Count:      len(ratios),
		Statistics: summary,
		Errors:     report.ErrorStrings(err),
	})
}

// GetEstimates returns volume-weighted ratios per group
// GET /api/estimates?group_by=asset|venue
func (h *ReportHandler) GetEstimates(w http.ResponseWriter, r *http.Request) {
	groupBy := r.URL.Query().Get("group_by")
	if groupBy == "" {
		groupBy = "asset"
	}

	var keyFn func(contracts.PoolRecord) string
	switch groupBy {
	case "asset":
		keyFn = ratio.ByPrimaryAsset
	case "venue":
		keyFn = ratio.ByVenue
	default:
		respondError(w, http.StatusBadRequest, "group_by must be one of: asset, venue")
		return
	}

	records, ok := h.load(w, r)
	if !ok {
		return
	}

	est, err := ratio.MostPlausibleRatio(records, keyFn)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	resp := EstimatesResponse{
		GroupBy: groupBy,
		Order:   est.Order,
		Values:  est.Values,
	}
	if !est.OK() {
		resp.Failed = make(map[string]string, len(est.Failed))
		for k, e := range est.Failed {
			resp.Failed[k] = e.Error()
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

// GetPick returns the pool with the highest trading volume
// GET /api/pick
func (h *ReportHandler) GetPick(w http.ResponseWriter, r *http.Request) {
	records, ok := h.load(w, r)
	if !ok {
		return
	}

	ratios, err := ratio.CalculateRatios(records)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	best, err := ratio.PickHighestVolume(ratios)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, best)
}

// GetRanking returns pools ranked by security score
// GET /api/ranking?top=N
func (h *ReportHandler) GetRanking(w http.ResponseWriter, r *http.Request) {
	top := 0
	if s := r.URL.Query().Get("top"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "top must be a positive integer")
			return
		}
		top = n
	}

	records, ok := h.load(w, r)
	if !ok {
		return
	}

	cat := h.service.Catalog()
	ranked, err := h.service.Ranker().Rank(cat.Reputation.Assign(records))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if top > 0 {
		filtered := ranked[:0]
		for i := range ranked {
			if ranked[i].IsTopRanked(top) {
				filtered = append(filtered, ranked[i])
			}
		}
		ranked = filtered
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(ranked),
		"weights": cat.Weights,
		"ranking": ranked,
	})
}

// GetVerification checks the loaded pools against the catalog expectations
// GET /api/verify
func (h *ReportHandler) GetVerification(w http.ResponseWriter, r *http.Request) {
	records, ok := h.load(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, catalog.Verify(records, h.service.Catalog().Expectations))
}

// load fetches records from the source, writing the error response on failure
func (h *ReportHandler) load(w http.ResponseWriter, r *http.Request) ([]contracts.PoolRecord, bool) {
	records, err := h.source.Load(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load pool catalog")
		status := http.StatusInternalServerError
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusServiceUnavailable
		}
		respondError(w, status, "Failed to load pool catalog")
		return nil, false
	}
	return records, true
}

// fail maps a computation error to a response.
// Bad input yields 422 with the error text; anything else is a 500.
func (h *ReportHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if contracts.IsDomainError(err) {
		h.logger.WithError(err).WithField("path", r.URL.Path).Warn("Computation rejected input")
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	h.logger.WithError(err).WithField("path", r.URL.Path).Error("Computation failed")
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		respondError(w, http.StatusServiceUnavailable, "Request timed out")
		return
	}
	respondError(w, http.StatusInternalServerError, "Internal server error")
}
