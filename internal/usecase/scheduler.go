package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/dto"
	"go.uber.org/zap"
)

// ErrImportInProgress is returned when a run is requested while another one is active
var ErrImportInProgress = errors.New("catalog import already in progress")

// ImportRunner executes one catalog import
type ImportRunner interface {
	RunWithID(ctx context.Context, runID uuid.UUID) (*dto.ImportReport, error)
}

// ImportScheduler serializes import runs of this process, whether triggered
// by the HTTP API, the CLI or the ticker.
type ImportScheduler struct {
	runner  ImportRunner
	mu      sync.Mutex
	running bool
	logger  *zap.Logger
}

// NewImportScheduler creates a new import scheduler
func NewImportScheduler(runner ImportRunner, logger *zap.Logger) *ImportScheduler {
	return &ImportScheduler{
		runner: runner,
		logger: logger,
	}
}

func (s *ImportScheduler) acquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return false
	}
	s.running = true
	return true
}

func (s *ImportScheduler) release() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// Running reports whether a run is active
func (s *ImportScheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// RunNow runs an import synchronously
func (s *ImportScheduler) RunNow(ctx context.Context) (*dto.ImportReport, error) {
	if !s.acquire() {
		return nil, ErrImportInProgress
	}
	defer s.release()
	return s.runner.RunWithID(ctx, uuid.New())
}

// Start launches an import in the background and returns its run id at once.
// The run is detached from ctx cancellation but keeps its values.
func (s *ImportScheduler) Start(ctx context.Context) (uuid.UUID, error) {
	if !s.acquire() {
		return uuid.Nil, ErrImportInProgress
	}

	runID := uuid.New()
	go func() {
		defer s.release()
		if _, err := s.runner.RunWithID(context.WithoutCancel(ctx), runID); err != nil {
			s.logger.Error("ImportScheduler: background run failed",
				zap.String("run_id", runID.String()),
				zap.Error(err))
		}
	}()
	return runID, nil
}

// Loop runs an import once, then every interval until ctx is done. Call from a goroutine.
func (s *ImportScheduler) Loop(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	s.logger.Info("ImportScheduler: scheduled imports enabled", zap.Duration("interval", interval))

	s.tick(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("ImportScheduler: stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *ImportScheduler) tick(ctx context.Context) {
	if _, err := s.RunNow(ctx); err != nil {
		if errors.Is(err, ErrImportInProgress) {
			s.logger.Info("ImportScheduler: previous run still active, skipping tick")
			return
		}
		s.logger.Error("ImportScheduler: scheduled run failed", zap.Error(err))
	}
}
