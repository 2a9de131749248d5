package usecase

import (
	"context"
	"fmt"
	"strings"

	domainErrors "github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/errors"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/dto"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/model"
	domainRepo "github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/repository"
	"go.uber.org/zap"
)

// EntitySource lists simple entities from the vendor
type EntitySource interface {
	ListEntities(ctx context.Context, entityType model.EntityType) ([]dto.EntityRecord, error)
}

// EntitySyncService reconciles vendor entities with local rows by external id
type EntitySyncService struct {
	entities domainRepo.EntityRepository
	values   domainRepo.AttributeValueRepository
	source   EntitySource
	logger   *zap.Logger
}

// NewEntitySyncService creates a new entity sync service. source may be nil when
// records are only pushed locally.
func NewEntitySyncService(
	entities domainRepo.EntityRepository,
	values domainRepo.AttributeValueRepository,
	source EntitySource,
	logger *zap.Logger,
) *EntitySyncService {
	return &EntitySyncService{
		entities: entities,
		values:   values,
		source:   source,
		logger:   logger,
	}
}

// Upsert creates the entity or renames the existing one and returns its local id.
// An unchanged name issues no write.
func (s *EntitySyncService) Upsert(ctx context.Context, entityType model.EntityType, rec dto.EntityRecord) (int64, error) {
	externalID := strings.TrimSpace(rec.ExternalID)
	if externalID == "" {
		return 0, domainErrors.NewValidationError(fmt.Sprintf("%s external id is required", entityType))
	}
	name := strings.TrimSpace(rec.Name)
	if name == "" {
		name = externalID
	}

	existing, err := s.entities.FindByExternalID(ctx, entityType, externalID)
	if err != nil {
		return 0, err
	}

	if existing != nil {
		if existing.Name != name {
			if err := s.entities.UpdateName(ctx, entityType, existing.ID, name); err != nil {
				return 0, err
			}
			s.logger.Debug("EntitySync: renamed entity",
				zap.String("entity_type", string(entityType)),
				zap.String("external_id", externalID),
				zap.String("old_name", existing.Name),
				zap.String("new_name", name))
		}
		return existing.ID, nil
	}

	entity := &model.ExternalEntity{ExternalID: externalID, Name: name}
	if err := s.entities.Create(ctx, entityType, entity); err != nil {
		return 0, err
	}
	return entity.ID, nil
}

// UpsertAll upserts every record independently; one failure never stops the batch
func (s *EntitySyncService) UpsertAll(ctx context.Context, entityType model.EntityType, records []dto.EntityRecord) *dto.SyncReport {
	report := &dto.SyncReport{EntityType: entityType}
	for _, rec := range records {
		id, err := s.Upsert(ctx, entityType, rec)
		if err != nil {
			s.logger.Error("EntitySync: Failed to upsert entity",
				zap.String("entity_type", string(entityType)),
				zap.String("external_id", rec.ExternalID),
				zap.Error(err))
			report.Add(dto.Failed(rec.ExternalID, rec.Name, err))
			continue
		}
		report.Add(dto.Succeeded(rec.ExternalID, rec.Name, id))
	}

	s.logger.Info("EntitySync: batch finished",
		zap.String("entity_type", string(entityType)),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed))
	return report
}

// Sync fetches the entity list from the vendor and upserts it
func (s *EntitySyncService) Sync(ctx context.Context, entityType model.EntityType) (*dto.SyncReport, error) {
	if s.source == nil {
		return nil, domainErrors.NewConfigurationError("no vendor source configured for entity sync")
	}

	records, err := s.source.ListEntities(ctx, entityType)
	if err != nil {
		return nil, err
	}
	return s.UpsertAll(ctx, entityType, records), nil
}

// EnsureAttribute returns the id of the attribute with the given external id, creating it if needed
func (s *EntitySyncService) EnsureAttribute(ctx context.Context, externalID, name string) (int64, error) {
	return s.Upsert(ctx, model.EntityAttribute, dto.EntityRecord{ExternalID: externalID, Name: name})
}

// UpsertAttributeValue returns the id of the named value under the attribute, creating it if needed
func (s *EntitySyncService) UpsertAttributeValue(ctx context.Context, attributeID int64, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, domainErrors.NewValidationError("attribute value name is required")
	}

	existing, err := s.values.FindByName(ctx, attributeID, name)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return existing.ID, nil
	}

	value := &model.AttributeValue{AttributeID: attributeID, Name: name}
	if err := s.values.Create(ctx, value); err != nil {
		return 0, err
	}
	return value.ID, nil
}
