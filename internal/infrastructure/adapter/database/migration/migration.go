package migration

import (
	"fmt"

	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// Manager applies the schema. AutoMigrate is additive only, which suits
// the append-only transactions table; destructive changes need a manual
// migration.
type Manager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewManager creates a migration manager
func NewManager(db *gorm.DB, logger coreport.Logger) *Manager {
	return &Manager{
		db:     db,
		logger: logger,
	}
}

// MigrateAll brings the schema up to date for every model
func (m *Manager) MigrateAll() error {
	m.logger.Info("Running database migrations", nil)

	models := []interface{}{
		&model.User{},
		&model.Wallet{},
		&model.Transaction{},
		&model.AuthToken{},
	}

	for _, mdl := range models {
		if err := m.db.AutoMigrate(mdl); err != nil {
			m.logger.Error("Migration failed", map[string]any{
				"model": fmt.Sprintf("%T", mdl),
				"error": err.Error(),
			})
			return fmt.Errorf("migration failed for %T: %w", mdl, err)
		}
	}

	m.logger.Info("Database migrations completed", nil)
	return nil
}
