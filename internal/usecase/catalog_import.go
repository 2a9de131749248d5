package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/dto"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/model"
	domainRepo "github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/repository"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"gorm.io/datatypes"
)

// progressEvery is how many records are expanded between two run snapshots
const progressEvery = 50

// CatalogSource is the vendor side of a bulk import
type CatalogSource interface {
	EnsureSession(ctx context.Context) error
	RequestCatalogLink(ctx context.Context) (string, error)
	DownloadCatalog(ctx context.Context, link string) ([]json.RawMessage, error)
	Locale() language.Tag
}

// EventPublisher announces finished runs to other services
type EventPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) error
}

// fixedAttributes holds the local ids of the Color and Size attributes
type fixedAttributes struct {
	color int64
	size  int64
}

// CatalogImportService runs the bulk catalog import state machine
type CatalogImportService struct {
	source   CatalogSource
	entities *EntitySyncService
	products domainRepo.ProductRepository
	runs     domainRepo.ImportRunRepository
	images   *ImageAttacher
	markup   decimal.Decimal
	now      func() time.Time
	logger   *zap.Logger

	events        EventPublisher
	eventsChannel string
}

// NewCatalogImportService creates a new catalog import service.
// runs and images may be nil.
func NewCatalogImportService(
	source CatalogSource,
	entities *EntitySyncService,
	products domainRepo.ProductRepository,
	runs domainRepo.ImportRunRepository,
	images *ImageAttacher,
	markup decimal.Decimal,
	logger *zap.Logger,
) *CatalogImportService {
	if !markup.IsPositive() {
		markup = decimal.RequireFromString("1.25")
	}
	return &CatalogImportService{
		source:   source,
		entities: entities,
		products: products,
		runs:     runs,
		images:   images,
		markup:   markup,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   logger,
	}
}

// SetClock replaces the time source
func (s *CatalogImportService) SetClock(now func() time.Time) {
	s.now = now
}

// SetEventPublisher publishes an ImportRunEvent on channel when a run ends
func (s *CatalogImportService) SetEventPublisher(events EventPublisher, channel string) {
	s.events = events
	s.eventsChannel = channel
}

// Run executes one import under a fresh run id
func (s *CatalogImportService) Run(ctx context.Context) (*dto.ImportReport, error) {
	return s.RunWithID(ctx, uuid.New())
}

// RunWithID executes one import. A setup failure ends the run in FAILED and is
// returned together with the partial report; per-record failures only show in the report.
func (s *CatalogImportService) RunWithID(ctx context.Context, runID uuid.UUID) (*dto.ImportReport, error) {
	startedAt := s.now()
	report := &dto.ImportReport{RunID: runID, StartedAt: startedAt}
	run := &model.ImportRun{ID: runID, StartedAt: startedAt}

	s.logger.Info("CatalogImport: run started", zap.String("run_id", runID.String()))

	s.transition(ctx, report, run, model.ImportStateAuthenticating)
	if s.runs != nil {
		if err := s.runs.Create(ctx, run); err != nil {
			s.logger.Warn("CatalogImport: run trace unavailable", zap.String("run_id", runID.String()), zap.Error(err))
		}
	}

	if err := s.source.EnsureSession(ctx); err != nil {
		return s.fail(ctx, report, run, err)
	}

	s.transition(ctx, report, run, model.ImportStateLinkRequested)
	link, err := s.source.RequestCatalogLink(ctx)
	if err != nil {
		return s.fail(ctx, report, run, err)
	}

	s.transition(ctx, report, run, model.ImportStateDownloading)
	records, err := s.source.DownloadCatalog(ctx, link)
	if err != nil {
		return s.fail(ctx, report, run, err)
	}
	s.logger.Info("CatalogImport: catalog downloaded",
		zap.String("run_id", runID.String()),
		zap.Int("records", len(records)))

	if err := ctx.Err(); err != nil {
		return s.fail(ctx, report, run, fmt.Errorf("import cancelled before expansion: %w", err))
	}

	s.transition(ctx, report, run, model.ImportStateExpanding)
	attrs, err := s.ensureFixedAttributes(ctx)
	if err != nil {
		return s.fail(ctx, report, run, err)
	}

	for i, raw := range records {
		if err := ctx.Err(); err != nil {
			return s.fail(ctx, report, run, fmt.Errorf("import cancelled after %d records: %w", report.Processed, err))
		}

		report.Add(s.processRecord(ctx, i, raw, attrs))

		if report.Processed%progressEvery == 0 {
			s.snapshot(ctx, report, run)
		}
	}

	finishedAt := s.now()
	report.FinishedAt = finishedAt
	run.FinishedAt = &finishedAt
	s.transition(ctx, report, run, model.ImportStateDone)
	s.announce(ctx, report)

	s.logger.Info("CatalogImport: run finished",
		zap.String("run_id", runID.String()),
		zap.Int("processed", report.Processed),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
		zap.Duration("duration", finishedAt.Sub(startedAt)))
	return report, nil
}

// processRecord expands one vendor product; every error and panic stays inside the record
func (s *CatalogImportService) processRecord(ctx context.Context, index int, raw json.RawMessage, attrs fixedAttributes) (result dto.ItemResult) {
	reference := fmt.Sprintf("#%d", index)
	name := ""

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic while importing product: %v", r)
			s.logger.Error("CatalogImport: Recovered from panic",
				zap.String("reference", reference),
				zap.String("name", name),
				zap.Any("panic", r))
			result = dto.Failed(reference, name, err)
		}
	}()

	var product dto.VendorProduct
	if err := json.Unmarshal(raw, &product); err != nil {
		s.logger.Error("CatalogImport: Failed to decode product",
			zap.Int("index", index),
			zap.Error(err))
		return dto.Failed(reference, name, fmt.Errorf("failed to decode product: %w", err))
	}

	rec := dto.DecodeProduct(product, s.source.Locale())
	if rec.Reference != "" {
		reference = rec.Reference
	}
	name = rec.Name

	templateID, err := s.expandProduct(ctx, rec, attrs)
	if err != nil {
		s.logger.Error("CatalogImport: Failed to import product",
			zap.String("reference", reference),
			zap.String("name", name),
			zap.Error(err))
		return dto.Failed(reference, name, err)
	}

	s.logger.Debug("CatalogImport: product imported",
		zap.String("reference", reference),
		zap.String("name", name),
		zap.Int64("template_id", templateID))
	return dto.Succeeded(reference, name, templateID)
}

func (s *CatalogImportService) ensureFixedAttributes(ctx context.Context) (fixedAttributes, error) {
	color, err := s.entities.EnsureAttribute(ctx, model.AttributeColorExternalID, model.AttributeColorName)
	if err != nil {
		return fixedAttributes{}, fmt.Errorf("failed to ensure color attribute: %w", err)
	}
	size, err := s.entities.EnsureAttribute(ctx, model.AttributeSizeExternalID, model.AttributeSizeName)
	if err != nil {
		return fixedAttributes{}, fmt.Errorf("failed to ensure size attribute: %w", err)
	}
	return fixedAttributes{color: color, size: size}, nil
}

func (s *CatalogImportService) transition(ctx context.Context, report *dto.ImportReport, run *model.ImportRun, state model.ImportState) {
	previous := report.State
	report.State = state
	s.logger.Info("CatalogImport: state changed",
		zap.String("run_id", report.RunID.String()),
		zap.String("from", string(previous)),
		zap.String("to", string(state)))

	// the first state is written by Create
	if previous == "" {
		run.State = state
		return
	}
	s.snapshot(ctx, report, run)
}

func (s *CatalogImportService) fail(ctx context.Context, report *dto.ImportReport, run *model.ImportRun, cause error) (*dto.ImportReport, error) {
	finishedAt := s.now()
	report.FinishedAt = finishedAt
	report.Error = cause.Error()
	run.FinishedAt = &finishedAt
	run.Error = cause.Error()

	s.logger.Error("CatalogImport: run failed",
		zap.String("run_id", report.RunID.String()),
		zap.String("state", string(report.State)),
		zap.Error(cause))

	// the trace must land even when the run context is cancelled
	ctx = context.WithoutCancel(ctx)
	s.transition(ctx, report, run, model.ImportStateFailed)
	s.announce(ctx, report)
	return report, cause
}

// snapshot copies the report into the persisted run
func (s *CatalogImportService) snapshot(ctx context.Context, report *dto.ImportReport, run *model.ImportRun) {
	run.State = report.State
	run.Processed = report.Processed
	run.Succeeded = report.Succeeded
	run.Failed = report.Failed

	if failures := report.Failures(); len(failures) > 0 {
		if data, err := json.Marshal(failures); err == nil {
			run.Failures = datatypes.JSON(data)
		}
	}

	if s.runs == nil {
		return
	}
	if err := s.runs.Update(ctx, run); err != nil {
		s.logger.Warn("CatalogImport: failed to persist run",
			zap.String("run_id", run.ID.String()),
			zap.String("state", string(run.State)),
			zap.Error(err))
	}
}

func (s *CatalogImportService) announce(ctx context.Context, report *dto.ImportReport) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, s.eventsChannel, report.Event()); err != nil {
		s.logger.Warn("CatalogImport: failed to publish run event",
			zap.String("run_id", report.RunID.String()),
			zap.String("channel", s.eventsChannel),
			zap.Error(err))
	}
}
