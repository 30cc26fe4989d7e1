package catalog

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"

	"github.com/wonny/poolstat/internal/contracts"
	"github.com/wonny/poolstat/internal/ranking"
)

// document is the on-disk catalog layout.
type document struct {
	Pools        []poolEntry          `yaml:"pools" validate:"required,min=1,dive"`
	Reputation   *reputationEntry     `yaml:"reputation"`
	Expectations Expectations         `yaml:"expectations"`
	Weights      ranking.ScoreWeights `yaml:"weights"`
}

// poolEntry is a pool as written in the catalog file or stored in Postgres.
// Reputation attributes are nullable: absent means not yet known.
type poolEntry struct {
	AssetA    string  `yaml:"asset_a" validate:"required,nefield=AssetB"`
	AssetB    string  `yaml:"asset_b" validate:"required"`
	ReserveA  float64 `yaml:"reserve_a" validate:"gt=0"`
	ReserveB  float64 `yaml:"reserve_b" validate:"gt=0"`
	Volume    float64 `yaml:"volume" validate:"gte=0"`
	Venue     string  `yaml:"venue" validate:"required"`
	Audited   *bool   `yaml:"audited"`
	Incidents *int    `yaml:"incidents" validate:"omitempty,gte=0"`
	AgeMonths *int    `yaml:"age_months" validate:"omitempty,gte=0"`
}

func (e poolEntry) record() contracts.PoolRecord {
	return contracts.PoolRecord{
		AssetA:    e.AssetA,
		AssetB:    e.AssetB,
		ReserveA:  e.ReserveA,
		ReserveB:  e.ReserveB,
		Volume:    e.Volume,
		Venue:     e.Venue,
		Audited:   contracts.OptionalFromPtr(e.Audited),
		Incidents: contracts.OptionalFromPtr(e.Incidents),
		AgeMonths: contracts.OptionalFromPtr(e.AgeMonths),
	}
}

// profileEntry is a venue profile as written in the catalog file.
// Nil fields take the Profile defaults.
type profileEntry struct {
	Audited   *bool `yaml:"audited"`
	Incidents *int  `yaml:"incidents" validate:"omitempty,gte=0"`
	AgeMonths *int  `yaml:"age_months" validate:"omitempty,gte=0"`
}

func (e profileEntry) profile() (Profile, error) {
	var p Profile
	if err := defaults.Set(&p); err != nil {
		return Profile{}, err
	}
	if e.Audited != nil {
		p.Audited = *e.Audited
	}
	if e.Incidents != nil {
		p.Incidents = *e.Incidents
	}
	if e.AgeMonths != nil {
		p.AgeMonths = *e.AgeMonths
	}
	return p, nil
}

// reputationEntry is the reputation section of the catalog file.
type reputationEntry struct {
	Default profileEntry            `yaml:"default"`
	Venues  map[string]profileEntry `yaml:"venues" validate:"dive"`
}

func (e *reputationEntry) table() (ReputationTable, error) {
	if e == nil {
		return DefaultReputationTable(), nil
	}

	def, err := e.Default.profile()
	if err != nil {
		return ReputationTable{}, err
	}
	t := ReputationTable{Default: def}
	if e.Venues != nil {
		t.Venues = make(map[string]Profile, len(e.Venues))
	}
	for venue, entry := range e.Venues {
		p, err := entry.profile()
		if err != nil {
			return ReputationTable{}, err
		}
		t.Venues[venue] = p
	}
	return t, nil
}

// LoadFile reads and validates a YAML catalog.
// ⭐ SSOT: KnownFields(true)로 오타/미사용 필드 즉시 실패
// Nested sections are plain structs, so the check reaches every level.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := defaults.Set(&doc); err != nil {
		return nil, fmt.Errorf("catalog defaults: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	if err := Validate(&doc); err != nil {
		return nil, err
	}

	return doc.catalog()
}

func (d *document) catalog() (*Catalog, error) {
	table, err := d.Reputation.table()
	if err != nil {
		return nil, fmt.Errorf("catalog defaults: %w", err)
	}

	c := &Catalog{
		Pools:        make([]contracts.PoolRecord, len(d.Pools)),
		Reputation:   table,
		Expectations: d.Expectations,
		Weights:      d.Weights,
	}
	for i, e := range d.Pools {
		c.Pools[i] = e.record()
	}
	return c, nil
}

// FileSource loads pools from a YAML catalog file.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed catalog source
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load implements contracts.CatalogSource.
func (s *FileSource) Load(ctx context.Context) ([]contracts.PoolRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, err := LoadFile(s.path)
	if err != nil {
		return nil, err
	}
	return c.Records(), nil
}

var _ contracts.CatalogSource = (*FileSource)(nil)
