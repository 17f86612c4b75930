package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/Shauntjh92/Wifey-app/internal/common"
	"github.com/Shauntjh92/Wifey-app/internal/interfaces"
	"github.com/Shauntjh92/Wifey-app/internal/models"
)

// MallStoreStorage implements the MallStoreStorage interface for Badger
type MallStoreStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewMallStoreStorage creates a new MallStoreStorage instance
func NewMallStoreStorage(db *BadgerDB, logger arbor.ILogger) interfaces.MallStoreStorage {
	return &MallStoreStorage{
		db:     db,
		logger: logger,
	}
}

// UpsertMallStore records that a store occupies a mall. At most one row
// exists per (mall, store) pair; when the pair is already recorded the
// call is a no-op and the original floor/unit are kept.
func (s *MallStoreStorage) UpsertMallStore(ctx context.Context, mallID, storeID, floor, unit string) error {
	if mallID == "" || storeID == "" {
		return fmt.Errorf("mall ID and store ID are required")
	}

	var existing []models.MallStore
	err := s.db.Store().Find(&existing,
		badgerhold.Where("MallID").Eq(mallID).And("StoreID").Eq(storeID).Index("MallID"))
	if err != nil {
		return fmt.Errorf("failed to find mall-store relation: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	relation := &models.MallStore{
		ID:         common.NewEntityID(),
		MallID:     mallID,
		StoreID:    storeID,
		Floor:      floor,
		UnitNumber: unit,
	}
	if err := s.db.Store().Insert(relation.ID, relation); err != nil {
		return fmt.Errorf("failed to insert mall-store relation: %w", err)
	}
	return nil
}

// ListByMall returns all occupancy rows for one mall
func (s *MallStoreStorage) ListByMall(ctx context.Context, mallID string) ([]*models.MallStore, error) {
	var relations []models.MallStore
	err := s.db.Store().Find(&relations, badgerhold.Where("MallID").Eq(mallID).Index("MallID"))
	if err != nil {
		return nil, fmt.Errorf("failed to list mall stores: %w", err)
	}

	result := make([]*models.MallStore, len(relations))
	for i := range relations {
		result[i] = &relations[i]
	}
	return result, nil
}

// ListByStores returns all occupancy rows referencing any of the given stores
func (s *MallStoreStorage) ListByStores(ctx context.Context, storeIDs []string) ([]*models.MallStore, error) {
	if len(storeIDs) == 0 {
		return nil, nil
	}

	ids := make([]interface{}, len(storeIDs))
	for i, id := range storeIDs {
		ids[i] = id
	}

	var relations []models.MallStore
	err := s.db.Store().Find(&relations, badgerhold.Where("StoreID").In(ids...).Index("StoreID"))
	if err != nil {
		return nil, fmt.Errorf("failed to list relations by stores: %w", err)
	}

	result := make([]*models.MallStore, len(relations))
	for i := range relations {
		result[i] = &relations[i]
	}
	return result, nil
}
