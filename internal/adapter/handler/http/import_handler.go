package http

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	domainRepo "github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/repository"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/usecase"
	"go.uber.org/zap"
)

const (
	defaultRunListLimit = 20
	maxRunListLimit     = 100
)

// ImportHandler triggers catalog imports and exposes their trace
type ImportHandler struct {
	scheduler *usecase.ImportScheduler
	runs      domainRepo.ImportRunRepository
	logger    *zap.Logger
}

func NewImportHandler(scheduler *usecase.ImportScheduler, runs domainRepo.ImportRunRepository, logger *zap.Logger) *ImportHandler {
	return &ImportHandler{
		scheduler: scheduler,
		runs:      runs,
		logger:    logger,
	}
}

// StartImport launches a background import and answers with its run id
func (h *ImportHandler) StartImport(c echo.Context) error {
	runID, err := h.scheduler.Start(c.Request().Context())
	if err != nil {
		return respondError(h.logger, err, "Failed to start import")
	}

	h.logger.Info("Import requested over HTTP", zap.String("run_id", runID.String()))

	return c.JSON(http.StatusAccepted, map[string]string{
		"run_id": runID.String(),
		"status": "accepted",
	})
}

// GetImport returns the persisted state of one run
func (h *ImportHandler) GetImport(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest("Invalid run id")
	}

	run, err := h.runs.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(h.logger, err, "Failed to get import run", zap.String("run_id", id.String()))
	}
	if run == nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Import run not found",
		})
	}

	return c.JSON(http.StatusOK, run)
}

// ListImports returns the most recent runs, at most maxRunListLimit of them
func (h *ImportHandler) ListImports(c echo.Context) error {
	limit := defaultRunListLimit
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			h.logger.Warn("Invalid limit parameter", zap.String("limit", limitStr))
			return badRequest("Invalid limit parameter")
		}
		limit = parsed
	}
	if limit > maxRunListLimit {
		limit = maxRunListLimit
	}

	runs, err := h.runs.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return respondError(h.logger, err, "Failed to list import runs")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"runs":    runs,
		"running": h.scheduler.Running(),
	})
}
