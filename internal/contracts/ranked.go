package contracts

// RankedRecord is a pool with its security score and position.
// ⭐ SSOT: 랭킹 결과 전달
type RankedRecord struct {
	Record   PoolRecord      `json:"record"`
	Score    int             `json:"score"`
	Rank     int             `json:"rank"` // 1-based
	Security SecurityDetails `json:"security"`
}

// SecurityDetails holds reputation attributes resolved to concrete values.
type SecurityDetails struct {
	Audited   bool `json:"audited"`
	Incidents int  `json:"incidents"`
	AgeMonths int  `json:"age_months"`
}

// IsTopRanked checks if the record is in the top n ranks
func (r *RankedRecord) IsTopRanked(n int) bool {
	return r.Rank <= n && r.Rank > 0
}
