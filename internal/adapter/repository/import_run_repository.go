package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/model"
	domainRepo "github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type importRunRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewImportRunRepository creates a new import run repository
func NewImportRunRepository(db *gorm.DB, logger *zap.Logger) domainRepo.ImportRunRepository {
	return &importRunRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new run
func (r *importRunRepository) Create(ctx context.Context, run *model.ImportRun) error {
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		r.logger.Error("Failed to create import run",
			zap.String("run_id", run.ID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to create import run: %w", err)
	}
	return nil
}

// Update saves the whole run
func (r *importRunRepository) Update(ctx context.Context, run *model.ImportRun) error {
	if err := r.db.WithContext(ctx).Save(run).Error; err != nil {
		r.logger.Error("Failed to update import run",
			zap.String("run_id", run.ID.String()),
			zap.String("state", string(run.State)),
			zap.Error(err))
		return fmt.Errorf("failed to update import run: %w", err)
	}
	return nil
}

// GetByID retrieves a run
func (r *importRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ImportRun, error) {
	var run model.ImportRun

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get import run: %w", err)
	}

	return &run, nil
}

// ListRecent retrieves the latest runs, newest first
func (r *importRunRepository) ListRecent(ctx context.Context, limit int) ([]*model.ImportRun, error) {
	if limit <= 0 {
		limit = 20
	}

	var runs []*model.ImportRun
	err := r.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list import runs: %w", err)
	}

	return runs, nil
}
