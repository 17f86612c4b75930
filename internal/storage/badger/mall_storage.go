package badger

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/Shauntjh92/Wifey-app/internal/common"
	"github.com/Shauntjh92/Wifey-app/internal/interfaces"
	"github.com/Shauntjh92/Wifey-app/internal/models"
)

// MallStorage implements the MallStorage interface for Badger
type MallStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewMallStorage creates a new MallStorage instance
func NewMallStorage(db *BadgerDB, logger arbor.ILogger) interfaces.MallStorage {
	return &MallStorage{
		db:     db,
		logger: logger,
	}
}

// UpsertMall creates a mall on first sighting or enriches an existing one.
// Address, region and website are overwritten only when the newly supplied
// value is non-empty; LastUpdated is refreshed on every call.
func (s *MallStorage) UpsertMall(ctx context.Context, mall *models.Mall) (*models.Mall, error) {
	name := strings.TrimSpace(mall.Name)
	if name == "" {
		return nil, fmt.Errorf("mall name is required")
	}

	existing, err := s.findByName(name)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if existing == nil {
		created := &models.Mall{
			ID:          common.NewEntityID(),
			Name:        name,
			Address:     strings.TrimSpace(mall.Address),
			Region:      mall.Region,
			Website:     mall.Website,
			LastUpdated: now,
		}
		if err := s.db.Store().Insert(created.ID, created); err != nil {
			return nil, fmt.Errorf("failed to insert mall %q: %w", name, err)
		}
		return created, nil
	}

	if addr := strings.TrimSpace(mall.Address); addr != "" {
		existing.Address = addr
	}
	if mall.Region != "" {
		existing.Region = mall.Region
	}
	if mall.Website != "" {
		existing.Website = mall.Website
	}
	existing.LastUpdated = now

	if err := s.db.Store().Update(existing.ID, existing); err != nil {
		return nil, fmt.Errorf("failed to update mall %q: %w", name, err)
	}
	return existing, nil
}

// GetMall returns a mall by ID
func (s *MallStorage) GetMall(ctx context.Context, id string) (*models.Mall, error) {
	var mall models.Mall
	if err := s.db.Store().Get(id, &mall); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("mall not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get mall: %w", err)
	}
	return &mall, nil
}

// GetMallByName returns a mall by its unique name, or nil when absent
func (s *MallStorage) GetMallByName(ctx context.Context, name string) (*models.Mall, error) {
	return s.findByName(strings.TrimSpace(name))
}

// ListMalls returns all malls sorted by name
func (s *MallStorage) ListMalls(ctx context.Context) ([]*models.Mall, error) {
	var malls []models.Mall
	if err := s.db.Store().Find(&malls, badgerhold.Where("ID").Ne("")); err != nil {
		return nil, fmt.Errorf("failed to list malls: %w", err)
	}

	sort.Slice(malls, func(i, j int) bool {
		return malls[i].Name < malls[j].Name
	})

	result := make([]*models.Mall, len(malls))
	for i := range malls {
		result[i] = &malls[i]
	}
	return result, nil
}

func (s *MallStorage) findByName(name string) (*models.Mall, error) {
	var malls []models.Mall
	if err := s.db.Store().Find(&malls, badgerhold.Where("Name").Eq(name)); err != nil {
		return nil, fmt.Errorf("failed to find mall %q: %w", name, err)
	}
	if len(malls) == 0 {
		return nil, nil
	}
	return &malls[0], nil
}
