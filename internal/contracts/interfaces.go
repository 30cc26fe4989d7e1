package contracts

import (
	"context"
)

// CatalogSource supplies pool records in catalog order.
// Implemented by the YAML file loader and the Postgres repository.
type CatalogSource interface {
	Load(ctx context.Context) ([]PoolRecord, error)
}
