package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grocerly/grocery-sync-server/internal/api"
	"github.com/grocerly/grocery-sync-server/internal/config"
	"github.com/grocerly/grocery-sync-server/internal/groceries"
	"github.com/grocerly/grocery-sync-server/internal/httpclient"
	"github.com/grocerly/grocery-sync-server/internal/service"
	"github.com/grocerly/grocery-sync-server/internal/state"
	"github.com/grocerly/grocery-sync-server/internal/sync"
	"github.com/grocerly/grocery-sync-server/internal/sync/scheduler"
	"github.com/grocerly/grocery-sync-server/internal/telemetry"
	"github.com/grocerly/grocery-sync-server/internal/versions"
)

const (
	// defaultGracefulTimeout is the time allowed for in-flight requests to
	// complete during shutdown
	defaultGracefulTimeout = 30 * time.Second

	// serverRequestTimeout bounds handler execution per request
	serverRequestTimeout = 10 * time.Second

	serverReadTimeout  = 10 * time.Second
	serverWriteTimeout = 15 * time.Second
	serverIdleTimeout  = 60 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the grocery sync API server",
	Long:  `Start the grocery sync API server, which keeps the account's lists in sync and serves them over HTTP.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("address", config.DefaultServerAddress, "Address to listen on")
	serveCmd.Flags().String("config", "", "Path to the configuration file (required)")

	if err := viper.BindPFlag("address", serveCmd.Flags().Lookup("address")); err != nil {
		slog.Error("Error binding address flag", "error", err)
	}
	if err := viper.BindPFlag("config", serveCmd.Flags().Lookup("config")); err != nil {
		slog.Error("Error binding config flag", "error", err)
	}

	if err := serveCmd.MarkFlagRequired("config"); err != nil {
		slog.Error("Error marking config flag as required", "error", err)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	configPath := viper.GetString("config")
	cfg, err := config.LoadConfig(config.WithConfigPath(configPath))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	password, err := cfg.Account.GetPassword()
	if err != nil {
		return err
	}

	address := viper.GetString("address")
	if address == config.DefaultServerAddress && cfg.Server.GetAddress() != config.DefaultServerAddress {
		address = cfg.Server.GetAddress()
	}

	slog.Info("Starting grocery sync server",
		"account", cfg.Account.Email,
		"endpoint", cfg.API.Endpoint,
		"address", address,
		"interval", cfg.Sync.GetInterval())

	// Telemetry
	meterOpts := []telemetry.MeterProviderOption{
		telemetry.WithMeterServiceVersion(versions.GetVersionInfo().Version),
	}
	if cfg.Telemetry != nil {
		meterOpts = append(meterOpts,
			telemetry.WithMeterServiceName(cfg.Telemetry.GetServiceName()),
			telemetry.WithMetricsConfig(cfg.Telemetry.Metrics),
			telemetry.WithMeterEndpoint(cfg.Telemetry.GetEndpoint()),
			telemetry.WithMeterInsecure(cfg.Telemetry.GetInsecure()),
		)
	}
	meterProvider, scrapeHandler, err := telemetry.NewMeterProvider(ctx, meterOpts...)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if shutdowner, ok := meterProvider.(interface {
			Shutdown(context.Context) error
		}); ok {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := shutdowner.Shutdown(shutdownCtx); err != nil {
				slog.Error("Error shutting down meter provider", "error", err)
			}
		}
	}()

	syncMetrics, err := telemetry.NewSyncMetrics(meterProvider)
	if err != nil {
		return fmt.Errorf("failed to create sync metrics: %w", err)
	}
	listMetrics, err := telemetry.NewListMetrics(meterProvider)
	if err != nil {
		return fmt.Errorf("failed to create list metrics: %w", err)
	}
	metricsMiddleware, err := telemetry.MetricsMiddleware(meterProvider)
	if err != nil {
		return fmt.Errorf("failed to create metrics middleware: %w", err)
	}

	// Remote API client and sync coordinator
	httpClient := httpclient.NewDefaultClient(cfg.API.GetTimeout())
	groceryClient := groceries.NewBringClient(httpClient, cfg.API.Endpoint, cfg.Account.Email, password)
	coordinator := sync.NewCoordinator(groceryClient, sync.WithSyncMetrics(syncMetrics))

	// State persistence
	dataDir := cfg.GetDataDir()
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}
	statusSvc := state.NewService(state.NewFilePersistence(dataDir), cfg.Account.Email)

	sched := scheduler.New(coordinator, statusSvc,
		scheduler.WithInterval(cfg.Sync.GetInterval()),
		scheduler.WithSyncMetrics(syncMetrics),
		scheduler.WithListMetrics(listMetrics),
	)

	schedulerErrCh := make(chan error, 1)
	go func() {
		if err := sched.Start(ctx); err != nil {
			slog.Error("Sync scheduler terminated", "error", err)
			schedulerErrCh <- err
		}
	}()

	svc := service.NewGrocerService(sched, statusSvc)

	serverOpts := []api.ServerOption{
		api.WithMiddlewares(
			middleware.RequestID,
			middleware.RealIP,
			middleware.Recoverer,
			middleware.Timeout(serverRequestTimeout),
			api.LoggingMiddleware,
			metricsMiddleware,
		),
	}
	if scrapeHandler != nil {
		serverOpts = append(serverOpts, api.WithMetricsHandler(scrapeHandler))
	}
	router := api.NewServer(svc, serverOpts...)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "address", address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("Received signal, shutting down", "signal", sig)
	case err := <-serverErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err := <-schedulerErrCh:
		return fmt.Errorf("sync scheduler error: %w", err)
	}

	if err := sched.Stop(); err != nil {
		slog.Error("Error stopping sync scheduler", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), defaultGracefulTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("Server stopped")
	return nil
}
