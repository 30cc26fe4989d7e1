package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/poolstat/internal/contracts"
)

// Repository reads the pool catalog from Postgres. It never writes.
// ⭐ SSOT: 카탈로그 DB 조회는 여기서만
//
// Expected table:
//
//	CREATE TABLE catalog.pools (
//	    position   INT PRIMARY KEY,
//	    asset_a    TEXT NOT NULL,
//	    asset_b    TEXT NOT NULL,
//	    reserve_a  NUMERIC NOT NULL,
//	    reserve_b  NUMERIC NOT NULL,
//	    volume     NUMERIC NOT NULL DEFAULT 0,
//	    venue      TEXT NOT NULL,
//	    audited    BOOLEAN,
//	    incidents  INT,
//	    age_months INT
//	);
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new catalog repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Load implements contracts.CatalogSource. Rows come back in catalog position order
// and go through the same validation as the YAML catalog.
func (r *Repository) Load(ctx context.Context) ([]contracts.PoolRecord, error) {
	query := `
		SELECT asset_a, asset_b,
		       reserve_a::float8, reserve_b::float8, volume::float8,
		       venue, audited, incidents, age_months
		FROM catalog.pools
		ORDER BY position ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	var entries []poolEntry
	for rows.Next() {
		var e poolEntry
		if err := rows.Scan(
			&e.AssetA, &e.AssetB,
			&e.ReserveA, &e.ReserveB, &e.Volume,
			&e.Venue, &e.Audited, &e.Incidents, &e.AgeMonths,
		); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read catalog rows: %w", err)
	}

	if err := Validate(&document{Pools: entries}); err != nil {
		return nil, err
	}

	records := make([]contracts.PoolRecord, len(entries))
	for i, e := range entries {
		records[i] = e.record()
	}
	return records, nil
}

var _ contracts.CatalogSource = (*Repository)(nil)
