package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	ledgerapp "github.com/ledgeranchor/backend/internal/application/ledger"
	"github.com/ledgeranchor/backend/internal/infrastructure/cache"
	"github.com/ledgeranchor/backend/internal/infrastructure/config"
	"github.com/ledgeranchor/backend/internal/infrastructure/logger"
	"github.com/ledgeranchor/backend/internal/infrastructure/persistence"
	"github.com/ledgeranchor/backend/internal/infrastructure/storage"
	"github.com/ledgeranchor/backend/internal/infrastructure/telemetry"
	"github.com/ledgeranchor/backend/internal/interfaces/http/handler"
	"github.com/ledgeranchor/backend/internal/interfaces/http/middleware"
	"github.com/ledgeranchor/backend/internal/interfaces/http/router"
)

const shutdownTimeout = 30 * time.Second

//	@title			Ledger Anchor API
//	@version		1.0
//	@description	Ledger entries, derived statements, reconciliation and period anchoring

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output}
	bootLog, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()
	telCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
	}

	logProvider, err := telemetry.NewLoggerProvider(ctx, telCfg, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize log exporter", zap.Error(err))
	}

	log, err := logger.New(logCfg,
		logger.WithCore(logProvider.ZapCore(logger.ParseLevel(cfg.Log.Level))),
		logger.WithFields(zap.String("service", cfg.Telemetry.ServiceName)),
	)
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting ledger anchor backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize meter", zap.Error(err))
	}
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.ProfilingEndpoint,
		ApplicationName: cfg.Telemetry.ServiceName,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() && tracerProvider.IsEnabled() {
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			log.Warn("Span profiles unavailable", zap.Error(err))
		}
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), 200*time.Millisecond)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	tracing := telemetry.DefaultDBTracingConfig()
	tracing.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled
	tracing.LogFullSQL = cfg.Telemetry.DBLogFullSQL
	if err := telemetry.NewDBTracingPlugin(tracing, log).RegisterOtelGorm(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	dbMetricsCfg := telemetry.DefaultDBMetricsConfig()
	dbMetricsCfg.Enabled = cfg.Telemetry.Enabled
	dbMetrics, err := telemetry.RegisterDBMetrics(db.DB, meterProvider, dbMetricsCfg, log)
	if err != nil {
		log.Fatal("Failed to register database metrics", zap.Error(err))
	}
	if dbMetrics != nil {
		dbMetrics.StartPoolStatsCollection(ctx)
	}

	statementCache, cacheCloser, err := cache.NewStatementCacheFactory(cfg.Ledger, cfg.Redis, cache.WithLogger(log)).Create()
	if err != nil {
		log.Fatal("Failed to create statement cache", zap.Error(err))
	}
	publisher, err := storage.NewAnchorPublisher(ctx, &cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to create anchor publisher", zap.Error(err))
	}

	var metrics ledgerapp.Metrics = ledgerapp.NoopMetrics{}
	meter := meterProvider.Meter(telemetry.TracerName)
	if meterProvider.IsEnabled() {
		ledgerMetrics, err := telemetry.NewLedgerMetrics(meter)
		if err != nil {
			log.Fatal("Failed to create ledger metrics", zap.Error(err))
		}
		metrics = ledgerMetrics
	}

	orgRepo := persistence.NewGormOrganizationRepository(db.DB)
	journalRepo := persistence.NewGormJournalRepository(db.DB)
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	entryRepo := persistence.NewGormEntryRepository(db.DB)
	lineRepo := persistence.NewGormLineRepository(db.DB)
	networkRepo := persistence.NewGormNetworkRepository(db.DB)
	tokenRepo := persistence.NewGormTokenRepository(db.DB)
	txRepo := persistence.NewGormTransactionRepository(db.DB)
	linkRepo := persistence.NewGormReconciliationRepository(db.DB)
	anchorRepo := persistence.NewGormPeriodAnchorRepository(db.DB)

	entryService := ledgerapp.NewEntryService(ledgerapp.EntryServiceConfig{
		Journals:    journalRepo,
		Accounts:    accountRepo,
		Entries:     entryRepo,
		Cache:       statementCache,
		Metrics:     metrics,
		Logger:      log,
		RecentLimit: cfg.Ledger.RecentEntriesLimit,
	})
	statementService := ledgerapp.NewStatementService(ledgerapp.StatementServiceConfig{
		Lines:    lineRepo,
		Cache:    statementCache,
		Metrics:  metrics,
		Logger:   log,
		MaxLines: cfg.Ledger.InsightsMaxLines,
	})
	reconciliationService := ledgerapp.NewReconciliationService(ledgerapp.ReconciliationServiceConfig{
		Links:             linkRepo,
		Metrics:           metrics,
		Logger:            log,
		DefaultConfidence: cfg.Ledger.DefaultConfidence,
	})
	anchorService := ledgerapp.NewAnchorService(ledgerapp.AnchorServiceConfig{
		Entries:   entryRepo,
		Anchors:   anchorRepo,
		Networks:  networkRepo,
		Publisher: publisher,
		Metrics:   metrics,
		Logger:    log,
	})
	transactionService := ledgerapp.NewTransactionService(ledgerapp.TransactionServiceConfig{
		Networks:     networkRepo,
		Tokens:       tokenRepo,
		Transactions: txRepo,
		Metrics:      metrics,
		Logger:       log,
		ListLimit:    cfg.Ledger.RecentEntriesLimit,
	})
	organizationService := ledgerapp.NewOrganizationService(orgRepo)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	security := middleware.DefaultSecurityConfig()
	security.HSTSEnabled = cfg.IsProduction()

	var httpMeter metric.Meter
	if meterProvider.IsEnabled() {
		httpMeter = meter
	}

	engine, err := router.NewEngine(router.EngineConfig{
		Logger:         log,
		Meter:          httpMeter,
		Tracing:        middleware.TracingConfig{ServiceName: cfg.Telemetry.ServiceName, Enabled: tracerProvider.IsEnabled()},
		CORS:           cors,
		Security:       security,
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		TrustedProxies: cfg.HTTP.TrustedProxies,
	}, router.Handlers{
		Entry:          handler.NewEntryHandler(entryService),
		Organization:   handler.NewOrganizationHandler(organizationService, statementService),
		Reconciliation: handler.NewReconciliationHandler(reconciliationService),
		Anchor:         handler.NewAnchorHandler(anchorService),
		Transaction:    handler.NewTransactionHandler(transactionService),
		Health:         handler.NewHealthHandler(telemetry.ServiceVersion, map[string]handler.Pinger{"database": db}),
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if dbMetrics != nil {
		dbMetrics.Stop()
	}
	closeQuietly(log, "statement cache", cacheCloser.Close)
	closeQuietly(log, "database", db.Close)
	closeQuietly(log, "profiler", profiler.Stop)
	closeQuietly(log, "tracer", func() error { return tracerProvider.Shutdown(shutdownCtx) })
	closeQuietly(log, "meter", func() error { return meterProvider.Shutdown(shutdownCtx) })
	closeQuietly(log, "log exporter", func() error { return logProvider.Shutdown(shutdownCtx) })

	log.Info("Server exited gracefully")
}

func closeQuietly(log *zap.Logger, name string, fn func() error) {
	if err := fn(); err != nil {
		log.Error("Error during shutdown", zap.String("component", name), zap.Error(err))
	}
}
