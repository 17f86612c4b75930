package badger

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/Shauntjh92/Wifey-app/internal/common"
	"github.com/Shauntjh92/Wifey-app/internal/interfaces"
	"github.com/Shauntjh92/Wifey-app/internal/models"
)

// StoreStorage implements the StoreStorage interface for Badger
type StoreStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewStoreStorage creates a new StoreStorage instance
func NewStoreStorage(db *BadgerDB, logger arbor.ILogger) interfaces.StoreStorage {
	return &StoreStorage{
		db:     db,
		logger: logger,
	}
}

// UpsertStore creates a store on first sighting of a normalized name.
// An existing store is returned unchanged: display name and category are
// first-writer-wins, mirroring the upstream upsert behavior.
func (s *StoreStorage) UpsertStore(ctx context.Context, name, category string) (*models.Store, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("store name is required")
	}

	normalized := models.NormalizeName(name)
	existing, err := s.findByNormalizedName(normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	created := &models.Store{
		ID:             common.NewEntityID(),
		Name:           name,
		Category:       strings.TrimSpace(category),
		NormalizedName: normalized,
	}
	if err := s.db.Store().Insert(created.ID, created); err != nil {
		return nil, fmt.Errorf("failed to insert store %q: %w", name, err)
	}
	return created, nil
}

// GetStoreByNormalizedName returns a store by its dedup key, or nil when absent
func (s *StoreStorage) GetStoreByNormalizedName(ctx context.Context, normalized string) (*models.Store, error) {
	return s.findByNormalizedName(normalized)
}

// ListStores returns all stores sorted by name
func (s *StoreStorage) ListStores(ctx context.Context) ([]*models.Store, error) {
	var stores []models.Store
	if err := s.db.Store().Find(&stores, badgerhold.Where("ID").Ne("")); err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}

	sort.Slice(stores, func(i, j int) bool {
		return stores[i].Name < stores[j].Name
	})

	result := make([]*models.Store, len(stores))
	for i := range stores {
		result[i] = &stores[i]
	}
	return result, nil
}

func (s *StoreStorage) findByNormalizedName(normalized string) (*models.Store, error) {
	var stores []models.Store
	if err := s.db.Store().Find(&stores, badgerhold.Where("NormalizedName").Eq(normalized)); err != nil {
		return nil, fmt.Errorf("failed to find store %q: %w", normalized, err)
	}
	if len(stores) == 0 {
		return nil, nil
	}
	return &stores[0], nil
}
