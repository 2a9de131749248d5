package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/config"
	domainRepo "github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/repository"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/infrastructure/cache"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/infrastructure/database"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/infrastructure/storage"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/infrastructure/toptex"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/usecase"
	"github.com/wekeepgrowing/toptex-catalog-sync/pkg/logger"
	"github.com/wekeepgrowing/toptex-catalog-sync/pkg/messaging"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app owns the connections shared by every command
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	repos  *database.Repositories
	redis  *redis.Client
	vendor *toptex.Client
}

// newApp builds the logger, opens the database and runs the migrations
func newApp(cfg *config.Config) (*app, error) {
	log, err := logger.NewZapLogger(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Output:      cfg.Log.Output,
		FilePath:    cfg.Log.FilePath,
		Development: cfg.Log.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.NewConnection(&cfg.Database, cfg.Log.Level, log)
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(db, log); err != nil {
		_ = database.Close(db, log)
		return nil, err
	}

	return &app{
		cfg:    cfg,
		logger: log,
		db:     db,
		repos:  database.NewRepositories(db, log),
	}, nil
}

func (a *app) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}
	if err := database.Close(a.db, a.logger); err != nil {
		a.logger.Error("Failed to close database connection", zap.Error(err))
	}
	_ = a.logger.Sync()
}

func (a *app) redisClient() (*redis.Client, error) {
	if a.redis != nil {
		return a.redis, nil
	}
	client, err := cache.NewRedisClient(a.cfg.Redis, a.logger)
	if err != nil {
		return nil, err
	}
	a.redis = client
	return client, nil
}

func (a *app) tokenStore() (domainRepo.TokenStore, error) {
	switch a.cfg.TokenStore.Driver {
	case config.TokenStoreDatabase:
		return a.repos.Token, nil
	case config.TokenStoreRedis:
		client, err := a.redisClient()
		if err != nil {
			return nil, err
		}
		return cache.NewRedisTokenStore(client, a.cfg.Redis.KeyPrefix, a.logger), nil
	case config.TokenStoreMemory:
		return cache.NewMemoryTokenStore(), nil
	default:
		return nil, fmt.Errorf("unsupported token store driver %q", a.cfg.TokenStore.Driver)
	}
}

// vendorClient validates the vendor section and creates the TopTex client once
func (a *app) vendorClient() (*toptex.Client, error) {
	if a.vendor != nil {
		return a.vendor, nil
	}
	store, err := a.tokenStore()
	if err != nil {
		return nil, err
	}
	client, err := toptex.NewClient(a.cfg.Vendor, store, a.logger)
	if err != nil {
		return nil, err
	}
	a.vendor = client
	return client, nil
}

func (a *app) mediaStore(ctx context.Context) (domainRepo.MediaStore, error) {
	switch a.cfg.Media.Driver {
	case config.MediaDriverDatabase:
		return a.repos.Media, nil
	case config.MediaDriverS3:
		client, err := storage.NewS3Client(ctx, a.cfg.Media.S3)
		if err != nil {
			return nil, err
		}
		return storage.NewS3MediaStore(client, a.cfg.Media.S3.Bucket, a.logger), nil
	default:
		return nil, fmt.Errorf("unsupported media driver %q", a.cfg.Media.Driver)
	}
}

// entityService works without vendor access; Sync then reports a ConfigurationError
func (a *app) entityService(source usecase.EntitySource) *usecase.EntitySyncService {
	return usecase.NewEntitySyncService(a.repos.Entity, a.repos.AttributeValue, source, a.logger)
}

func (a *app) priceService() *usecase.CustomerPriceService {
	return usecase.NewCustomerPriceService(a.repos.Entity, a.repos.CustomerPrice, a.cfg.Pricing.Currency, a.logger)
}

func (a *app) importService(ctx context.Context) (*usecase.CatalogImportService, error) {
	vendor, err := a.vendorClient()
	if err != nil {
		return nil, err
	}
	media, err := a.mediaStore(ctx)
	if err != nil {
		return nil, err
	}

	images := usecase.NewImageAttacher(vendor, media, usecase.ImageOptions{
		KeyPrefix: a.cfg.Media.KeyPrefix,
		Quality:   a.cfg.Media.JPEGQuality,
		Timeout:   a.cfg.Media.DownloadTimeout,
	}, a.logger)

	service := usecase.NewCatalogImportService(
		vendor,
		a.entityService(vendor),
		a.repos.Product,
		a.repos.ImportRun,
		images,
		a.cfg.Pricing.Markup,
		a.logger,
	)

	if a.cfg.Redis.PublishEvents {
		bus, err := a.eventBus()
		if err != nil {
			return nil, err
		}
		service.SetEventPublisher(bus, a.cfg.Redis.EventsChannel)
	}
	return service, nil
}

func (a *app) eventBus() (*messaging.RedisBus, error) {
	client, err := a.redisClient()
	if err != nil {
		return nil, err
	}
	return messaging.NewRedisBus(client), nil
}
