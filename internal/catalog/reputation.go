package catalog

import (
	"github.com/wonny/poolstat/internal/contracts"
)

// Profile is the reputation of one venue.
type Profile struct {
	Audited   bool `yaml:"audited" json:"audited" default:"false"`
	Incidents int  `yaml:"incidents" json:"incidents" default:"2"`
	AgeMonths int  `yaml:"age_months" json:"age_months" default:"12"`
}

// ReputationTable maps venues to profiles, with a fallback for unlisted venues.
type ReputationTable struct {
	Default Profile            `yaml:"default" json:"default"`
	Venues  map[string]Profile `yaml:"venues" json:"venues"`
}

// DefaultReputationTable returns the reference profiles of the three seeded venues.
func DefaultReputationTable() ReputationTable {
	return ReputationTable{
		Default: Profile{Audited: false, Incidents: 2, AgeMonths: 12},
		Venues: map[string]Profile{
			"Uniswap":   {Audited: true, Incidents: 0, AgeMonths: 36},
			"SushiSwap": {Audited: true, Incidents: 1, AgeMonths: 24},
			"Curve":     {Audited: true, Incidents: 0, AgeMonths: 30},
		},
	}
}

// Lookup returns the profile of venue, or the default profile.
func (t ReputationTable) Lookup(venue string) Profile {
	if p, ok := t.Venues[venue]; ok {
		return p
	}
	return t.Default
}

// Assign returns new records with every reputation attribute known.
// Attributes already known on a record are kept; only unknown ones come from the table.
// The input slice is left untouched.
func (t ReputationTable) Assign(records []contracts.PoolRecord) []contracts.PoolRecord {
	out := make([]contracts.PoolRecord, len(records))
	for i, rec := range records {
		p := t.Lookup(rec.Venue)
		out[i] = rec.WithReputation(
			rec.Audited.OrElse(p.Audited),
			rec.Incidents.OrElse(p.Incidents),
			rec.AgeMonths.OrElse(p.AgeMonths),
		)
	}
	return out
}
