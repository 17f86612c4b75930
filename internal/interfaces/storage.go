package interfaces

import (
	"context"

	"github.com/Shauntjh92/Wifey-app/internal/models"
)

// MallStorage persists malls keyed by their globally unique name.
// UpsertMall reproduces the pipeline's asymmetric overwrite rules:
// create with all supplied fields, or overwrite address/region/website
// only when the new value is non-empty, always refreshing LastUpdated.
type MallStorage interface {
	UpsertMall(ctx context.Context, mall *models.Mall) (*models.Mall, error)
	GetMall(ctx context.Context, id string) (*models.Mall, error)
	GetMallByName(ctx context.Context, name string) (*models.Mall, error)
	ListMalls(ctx context.Context) ([]*models.Mall, error)
}

// StoreStorage persists stores keyed by normalized name.
// UpsertStore is first-writer-wins: an existing store is returned
// unchanged regardless of the supplied category or display name.
type StoreStorage interface {
	UpsertStore(ctx context.Context, name, category string) (*models.Store, error)
	GetStoreByNormalizedName(ctx context.Context, normalized string) (*models.Store, error)
	ListStores(ctx context.Context) ([]*models.Store, error)
}

// MallStoreStorage persists the (mall, store) occupancy relation.
// UpsertMallStore creates at most one row per pair; an existing row is
// never updated, so re-scraping the same directory is a no-op.
type MallStoreStorage interface {
	UpsertMallStore(ctx context.Context, mallID, storeID, floor, unit string) error
	ListByMall(ctx context.Context, mallID string) ([]*models.MallStore, error)
	ListByStores(ctx context.Context, storeIDs []string) ([]*models.MallStore, error)
}

// StorageManager provides access to all entity storages
type StorageManager interface {
	Malls() MallStorage
	Stores() StoreStorage
	MallStores() MallStoreStorage
	Close() error
}
