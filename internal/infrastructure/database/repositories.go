package database

import (
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/adapter/repository"
	domainRepo "github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Entity         domainRepo.EntityRepository
	AttributeValue domainRepo.AttributeValueRepository
	Product        domainRepo.ProductRepository
	CustomerPrice  domainRepo.CustomerPriceRepository
	ImportRun      domainRepo.ImportRunRepository
	Token          domainRepo.TokenStore
	Media          domainRepo.MediaBlobStore
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Entity:         repository.NewEntityRepository(db, logger),
		AttributeValue: repository.NewAttributeValueRepository(db, logger),
		Product:        repository.NewProductRepository(db, logger),
		CustomerPrice:  repository.NewCustomerPriceRepository(db, logger),
		ImportRun:      repository.NewImportRunRepository(db, logger),
		Token:          repository.NewTokenRepository(db, logger),
		Media:          repository.NewMediaRepository(db, logger),
	}
}
