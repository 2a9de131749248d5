package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	handlers "github.com/wekeepgrowing/toptex-catalog-sync/internal/adapter/handler/http"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/config"
	domainRepo "github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/repository"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/middleware/auth"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/usecase"
	"github.com/wekeepgrowing/toptex-catalog-sync/pkg/logger"
	"go.uber.org/zap"
)

// Services are the use cases exposed over HTTP
type Services struct {
	Scheduler *usecase.ImportScheduler
	Entities  *usecase.EntitySyncService
	Prices    *usecase.CustomerPriceService
	Runs      domainRepo.ImportRunRepository
	// Media is nil when images are not kept in the database
	Media domainRepo.MediaBlobStore
}

type Server struct {
	config   *config.Config
	logger   *zap.Logger
	echo     *echo.Echo
	services Services
}

func NewServer(cfg *config.Config, log *zap.Logger, services Services) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger = logger.NewEchoZapLogger(log)
	e.HTTPErrorHandler = logger.NewEchoErrorHandler(log)

	e.Use(middleware.RequestID())
	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(middleware.Recover())

	s := &Server{
		config:   cfg,
		logger:   log,
		echo:     e,
		services: services,
	}
	s.setupRoutes()
	return s
}

// Handler exposes the router, mostly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start() error {
	addr := s.config.Server.HTTP.Address()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"service":   s.config.Service.Name,
			"importing": s.services.Scheduler.Running(),
		})
	})

	importHandler := handlers.NewImportHandler(s.services.Scheduler, s.services.Runs, s.logger)
	catalogHandler := handlers.NewCatalogHandler(s.services.Entities, s.services.Prices, s.services.Media, s.logger)

	v1 := s.echo.Group("/api/v1")
	if s.config.Server.JWTSecret != "" {
		v1.Use(auth.JWTMiddleware(auth.JWTConfig{
			Secret: s.config.Server.JWTSecret,
			Logger: s.logger,
		}))
	} else {
		s.logger.Warn("server.jwt_secret is empty, admin API is not authenticated")
	}

	v1.POST("/imports", importHandler.StartImport)
	v1.GET("/imports", importHandler.ListImports)
	v1.GET("/imports/:id", importHandler.GetImport)

	v1.POST("/sync/:entity", catalogHandler.SyncEntities)

	v1.PUT("/customers", catalogHandler.UpsertCustomer)
	v1.GET("/customers/:ref/prices", catalogHandler.ListPrices)
	v1.PUT("/prices", catalogHandler.SetPrice)

	v1.GET("/media/*", catalogHandler.GetMedia)
}
