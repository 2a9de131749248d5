package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/model"
)

// ImportRunRepository stores the trace of catalog import runs
type ImportRunRepository interface {
	Create(ctx context.Context, run *model.ImportRun) error
	Update(ctx context.Context, run *model.ImportRun) error
	// GetByID returns (nil, nil) when the run does not exist
	GetByID(ctx context.Context, id uuid.UUID) (*model.ImportRun, error)
	ListRecent(ctx context.Context, limit int) ([]*model.ImportRun, error)
}
