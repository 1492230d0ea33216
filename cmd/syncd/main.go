package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"k8s.io/utils/clock"

	"github.com/MKhiriev/go-inventory-sync/internal/adapter"
	"github.com/MKhiriev/go-inventory-sync/internal/cache"
	"github.com/MKhiriev/go-inventory-sync/internal/config"
	myHTTP "github.com/MKhiriev/go-inventory-sync/internal/handler/http"
	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/internal/metrics"
	"github.com/MKhiriev/go-inventory-sync/internal/notify"
	"github.com/MKhiriev/go-inventory-sync/internal/resolver"
	"github.com/MKhiriev/go-inventory-sync/internal/scheduler"
	"github.com/MKhiriev/go-inventory-sync/internal/server"
	"github.com/MKhiriev/go-inventory-sync/internal/service"
	"github.com/MKhiriev/go-inventory-sync/internal/store"
	"github.com/MKhiriev/go-inventory-sync/internal/workers"
	"github.com/MKhiriev/go-inventory-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log, closer := logger.NewFileLogger("syncd", logger.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  100,
		MaxBackups: 3,
		MaxAgeDays: 28,
	})
	defer closer.Close()

	log.Debug().Any("config", cfg).Msg("received configs")

	if err = run(cfg, log); err != nil {
		log.Error().Err(err).Msg("syncd stopped with error")
		closer.Close()
		os.Exit(1)
	}
	log.Info().Msg("syncd stopped")
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer storages.Close()

	registry := prometheus.NewRegistry()
	recorder, err := metrics.NewRecorder(registry)
	if err != nil {
		return fmt.Errorf("error creating metrics: %w", err)
	}

	records := cache.New[string, []models.Record]("records", cfg.Cache.MaxEntries, cache.WithTTL(cfg.Cache.TTL))
	if err = recorder.RegisterCache(records.Stats); err != nil {
		return fmt.Errorf("error registering cache metrics: %w", err)
	}

	remote, err := adapter.NewHTTPRemoteStore(cfg.Adapter, cfg.Sync.Workers, log)
	if err != nil {
		return fmt.Errorf("error creating remote store: %w", err)
	}

	clk := clock.RealClock{}
	res, err := resolver.FromName(cfg.Sync.Resolver, clk.Now)
	if err != nil {
		return fmt.Errorf("error creating resolver: %w", err)
	}

	syncService := service.NewSyncService(service.SyncDependencies{
		Queue:     storages.PendingQueue,
		State:     storages.SyncState,
		History:   storages.SyncHistory,
		Local:     storages.Records,
		Remote:    remote,
		Resolver:  res,
		Cache:     records,
		Notifier:  notify.NewLogNotifier(log),
		Analytics: recorder,
		Clock:     clk,
	}, cfg.Sync, log)

	maintenance := service.NewMaintenanceService(records, storages.SyncHistory, storages.DB,
		cfg.Scheduler.HistoryRetention, clk, log)

	timer := scheduler.NewTimerScheduler(cfg.Scheduler, log, scheduler.WithConnectivityProbe(remote))
	background := scheduler.NewBackgroundScheduler(timer, syncService, maintenance, cfg.Scheduler, clk, log)
	if err = background.RegisterBackgroundTasks(); err != nil {
		return fmt.Errorf("error registering background tasks: %w", err)
	}
	background.ScheduleSyncTask()
	background.ScheduleCleanupTask()

	handler := myHTTP.NewHandler(syncService, log,
		myHTTP.WithAPIToken(cfg.Server.APIToken),
		myHTTP.WithMetrics(metrics.Handler(registry)),
		myHTTP.WithBuildInfo(myHTTP.BuildInfo{Version: buildVersion, Date: buildDate, Commit: buildCommit}),
	)
	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	err = workers.NewWorkers(srv, timer).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
