package database

import (
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models lists every table owned by the service
func Models() []interface{} {
	return []interface{}{
		&model.Brand{},
		&model.Attribute{},
		&model.AttributeValue{},
		&model.VendorVariant{},
		&model.Customer{},
		&model.ProductTemplate{},
		&model.ProductVariant{},
		&model.CustomerPrice{},
		&model.VendorToken{},
		&model.ImportRun{},
		&model.MediaBlob{},
	}
}

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running GORM auto-migrations...")
	if err := db.AutoMigrate(Models()...); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	logger.Info("Creating custom indexes...")
	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createCustomIndexes creates partial indexes GORM tags cannot express
func createCustomIndexes(db *gorm.DB) error {
	// A non-empty vendor reference identifies at most one template
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_product_templates_reference_unique ON product_templates (external_reference) WHERE external_reference <> ''`).Error; err != nil {
		return err
	}

	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_import_runs_started_at ON import_runs (started_at)`).Error; err != nil {
		return err
	}

	return nil
}
