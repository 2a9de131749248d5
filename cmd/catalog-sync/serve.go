package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/config"
	httpServer "github.com/wekeepgrowing/toptex-catalog-sync/internal/infrastructure/http"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/usecase"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the admin HTTP API and the scheduled import",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, serve)
		},
	}

	cmd.Flags().Int("port", 0, "HTTP port (default from server.http.port)")
	cmd.Flags().Duration("interval", 0, "re-run the import on this interval, 0 disables it")
	if err := overrides.BindFlag("server.http.port", cmd.Flags().Lookup("port")); err != nil {
		panic(err)
	}
	if err := overrides.BindFlag("schedule.import_interval", cmd.Flags().Lookup("interval")); err != nil {
		panic(err)
	}
	return cmd
}

func serve(ctx context.Context, a *app) error {
	importService, err := a.importService(ctx)
	if err != nil {
		return err
	}

	vendor, err := a.vendorClient()
	if err != nil {
		return err
	}

	scheduler := usecase.NewImportScheduler(importService, a.logger)
	media := a.repos.Media
	if a.cfg.Media.Driver != config.MediaDriverDatabase {
		media = nil
	}

	srv := httpServer.NewServer(a.cfg, a.logger, httpServer.Services{
		Scheduler: scheduler,
		Entities:  a.entityService(vendor),
		Prices:    a.priceService(),
		Runs:      a.repos.ImportRun,
		Media:     media,
	})

	a.logger.Info("Starting catalog sync service",
		zap.String("service", a.cfg.Service.Name),
		zap.String("version", a.cfg.Service.Version),
		zap.Duration("import_interval", a.cfg.Schedule.ImportInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		scheduler.Loop(ctx, a.cfg.Schedule.ImportInterval)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		a.logger.Error("HTTP server stopped", zap.Error(err))
		return err
	}

	a.logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}
	<-loopDone

	a.logger.Info("Service shut down successfully")
	return nil
}
