package repository

import (
	"context"

	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/model"
)

// EntityRepository stores simple vendor entities keyed by external id
type EntityRepository interface {
	// FindByExternalID returns (nil, nil) when no row matches
	FindByExternalID(ctx context.Context, entityType model.EntityType, externalID string) (*model.ExternalEntity, error)
	Create(ctx context.Context, entityType model.EntityType, entity *model.ExternalEntity) error
	UpdateName(ctx context.Context, entityType model.EntityType, id int64, name string) error
	Count(ctx context.Context, entityType model.EntityType) (int64, error)
}

// AttributeValueRepository stores attribute values scoped to their attribute
type AttributeValueRepository interface {
	// FindByName returns (nil, nil) when no row matches
	FindByName(ctx context.Context, attributeID int64, name string) (*model.AttributeValue, error)
	Create(ctx context.Context, value *model.AttributeValue) error
}
