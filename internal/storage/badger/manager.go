package badger

import (
	"github.com/ternarybob/arbor"

	"github.com/Shauntjh92/Wifey-app/internal/common"
	"github.com/Shauntjh92/Wifey-app/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db        *BadgerDB
	mall      interfaces.MallStorage
	store     interfaces.StoreStorage
	mallStore interfaces.MallStoreStorage
	logger    arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:        db,
		mall:      NewMallStorage(db, logger),
		store:     NewStoreStorage(db, logger),
		mallStore: NewMallStoreStorage(db, logger),
		logger:    logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// Malls returns the Mall storage interface
func (m *Manager) Malls() interfaces.MallStorage {
	return m.mall
}

// Stores returns the Store storage interface
func (m *Manager) Stores() interfaces.StoreStorage {
	return m.store
}

// MallStores returns the MallStore storage interface
func (m *Manager) MallStores() interfaces.MallStoreStorage {
	return m.mallStore
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
