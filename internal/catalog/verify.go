package catalog

import (
	"sort"

	"github.com/wonny/poolstat/internal/contracts"
)

// Expectations describe the intended shape of a catalog.
// Empty fields are not checked.
type Expectations struct {
	Total                    int            `yaml:"total" json:"total" validate:"gte=0"`
	PrimaryAssets            map[string]int `yaml:"primary_assets" json:"primary_assets" validate:"dive,gte=0"`
	Venues                   map[string]int `yaml:"venues" json:"venues" validate:"dive,gte=0"`
	AllowedTokens            []string       `yaml:"allowed_tokens" json:"allowed_tokens"`
	RequireUnknownReputation bool           `yaml:"require_unknown_reputation" json:"require_unknown_reputation"`
}

// CountCheck compares an actual pool count with the expected one.
type CountCheck struct {
	Key      string `json:"key"`
	Actual   int    `json:"actual"`
	Expected int    `json:"expected"`
	OK       bool   `json:"ok"`
}

// Verification is the result of checking a catalog against its expectations.
type Verification struct {
	Total             *CountCheck  `json:"total,omitempty"`
	PrimaryAssets     []CountCheck `json:"primary_assets"`
	Venues            []CountCheck `json:"venues"`
	TokensUsed        []string     `json:"tokens_used"`
	InvalidTokens     []string     `json:"invalid_tokens"`
	ReputationUnknown bool         `json:"reputation_unknown"`
	OK                bool         `json:"ok"`
}

// Verify checks pool distribution per primary asset and venue, the token set,
// and whether reputation attributes are still placeholders.
func Verify(pools []contracts.PoolRecord, exp Expectations) Verification {
	v := Verification{OK: true, ReputationUnknown: true}

	byAsset := make(map[string]int)
	byVenue := make(map[string]int)
	tokens := make(map[string]struct{})
	for _, p := range pools {
		byAsset[p.AssetA]++
		byVenue[p.Venue]++
		tokens[p.AssetA] = struct{}{}
		tokens[p.AssetB] = struct{}{}
		if p.Audited.IsKnown() || p.Incidents.IsKnown() || p.AgeMonths.IsKnown() {
			v.ReputationUnknown = false
		}
	}

	if exp.Total > 0 {
		c := check("total", len(pools), exp.Total)
		v.Total = &c
		v.OK = v.OK && c.OK
	}

	v.PrimaryAssets = checkAll(byAsset, exp.PrimaryAssets)
	v.Venues = checkAll(byVenue, exp.Venues)
	for _, c := range append(append([]CountCheck{}, v.PrimaryAssets...), v.Venues...) {
		v.OK = v.OK && c.OK
	}

	v.TokensUsed = sortedKeys(tokens)
	if len(exp.AllowedTokens) > 0 {
		allowed := make(map[string]struct{}, len(exp.AllowedTokens))
		for _, t := range exp.AllowedTokens {
			allowed[t] = struct{}{}
		}
		for _, t := range v.TokensUsed {
			if _, ok := allowed[t]; !ok {
				v.InvalidTokens = append(v.InvalidTokens, t)
			}
		}
		v.OK = v.OK && len(v.InvalidTokens) == 0
	}

	if exp.RequireUnknownReputation {
		v.OK = v.OK && v.ReputationUnknown
	}

	return v
}

func check(key string, actual, expected int) CountCheck {
	return CountCheck{Key: key, Actual: actual, Expected: expected, OK: actual == expected}
}

func checkAll(actual, expected map[string]int) []CountCheck {
	keys := make(map[string]struct{}, len(expected))
	for k := range expected {
		keys[k] = struct{}{}
	}

	var out []CountCheck
	for _, k := range sortedKeys(keys) {
		out = append(out, check(k, actual[k], expected[k]))
	}
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
