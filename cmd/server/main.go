package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	financeapp "github.com/erp/reseller/internal/application/finance"
	partnerapp "github.com/erp/reseller/internal/application/partner"
	tradeapp "github.com/erp/reseller/internal/application/trade"
	"github.com/erp/reseller/internal/domain/finance"
	"github.com/erp/reseller/internal/domain/shared/valueobject"
	"github.com/erp/reseller/internal/infrastructure/cache"
	"github.com/erp/reseller/internal/infrastructure/config"
	"github.com/erp/reseller/internal/infrastructure/event"
	"github.com/erp/reseller/internal/infrastructure/logger"
	"github.com/erp/reseller/internal/infrastructure/migration"
	"github.com/erp/reseller/internal/infrastructure/persistence"
	"github.com/erp/reseller/internal/infrastructure/telemetry"
	"github.com/erp/reseller/internal/interfaces/http/handler"
	"github.com/erp/reseller/internal/interfaces/http/middleware"
	"github.com/erp/reseller/internal/interfaces/http/router"
	"github.com/erp/reseller/migrations"
	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

// maxBodyBytes bounds JSON request bodies; commission payloads are small
const maxBodyBytes = 1 << 20

//	@title			Reseller Commission API
//	@version		1.0
//	@description	Party directory, agent sales orders and commission invoicing

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	TenantHeader
//	@in							header
//	@name						X-Tenant-ID
//	@description				Tenant UUID scoping every request

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	// OTLP log export is teed next to the console output once the provider exists
	logProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize log exporter", zap.Error(err))
	}
	if logProvider.IsEnabled() {
		if log, err = logger.New(logCfg, logProvider.ZapCore(logger.ParseLevel(cfg.Log.Level))); err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting reseller commission service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	profCfg := cfg.Telemetry.Profiling
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:              profCfg.Enabled,
		ServerAddress:        profCfg.ServerAddress,
		ApplicationName:      cfg.Telemetry.ServiceName,
		BasicAuthUser:        profCfg.BasicAuthUser,
		BasicAuthPassword:    profCfg.BasicAuthPassword,
		ProfileTypes:         profCfg.ProfileTypes,
		MutexProfileFraction: profCfg.MutexProfileFraction,
		BlockProfileRate:     profCfg.BlockProfileRate,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	if profiler.IsEnabled() && profCfg.SpanProfiles {
		tracerProvider.EnableSpanProfiles()
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}

	var commissionMetrics *telemetry.CommissionMetrics
	if meterProvider.IsEnabled() {
		commissionMetrics, err = telemetry.NewCommissionMetrics(meterProvider.Meter("reseller/commission"))
		if err != nil {
			log.Warn("Commission metrics unavailable", zap.Error(err))
		}
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected")

	dbTracing := telemetry.DefaultDBTracingConfig()
	dbTracing.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled
	dbTracing.SlowQueryThresh = cfg.Telemetry.DBSlowQueryThresh
	if err := telemetry.RegisterDBTracing(db.DB, dbTracing, log); err != nil {
		log.Warn("Database tracing unavailable", zap.Error(err))
	}

	checkSchema(cfg, log)

	idempotencyStore, err := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log)).CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}

	// Repositories
	partyRepo := persistence.NewGormPartyRepository(db.DB)
	salesOrderRepo := persistence.NewGormSalesOrderRepository(db.DB)
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)

	// Event bus: lifecycle events feed the audit log and status metrics once
	eventBus := event.NewInMemoryEventBus(log)
	lifecycle := tradeapp.NewCommissionLifecycleHandler(commissionMetrics, log)
	eventBus.Subscribe(event.NewIdempotentHandler(lifecycle, idempotencyStore, log))
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Application services
	partyService := partnerapp.NewPartyService(partyRepo)
	partyService.SetDefaultRate(valueobject.NewPercentageFromFloat(cfg.Commission.DefaultRate))
	partyService.SetEventPublisher(eventBus)

	accountService := financeapp.NewAccountService(accountRepo)
	ledgerService := financeapp.NewLedgerService(accountRepo, invoiceRepo)
	ledgerService.SetRevenueAccountPolicy(financeapp.RevenueAccountPolicy{
		CodePrefix: cfg.Commission.RevenueAccountPrefix,
		Category:   finance.AccountCategory(cfg.Commission.IncomeCategory),
	})

	salesOrderService := tradeapp.NewSalesOrderService(salesOrderRepo)
	salesOrderService.SetEventPublisher(eventBus)

	commissionService := tradeapp.NewCommissionService(
		salesOrderRepo,
		partyRepo,
		persistence.NewGormTransactionScope(db.DB),
		ledgerService,
		tradeapp.WithInvoiceDescription(cfg.Commission.InvoiceDescription),
		tradeapp.WithCommissionMetrics(commissionMetrics),
	)
	commissionService.SetEventPublisher(eventBus)

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	tracingCfg := middleware.DefaultTracingConfig()
	tracingCfg.ServiceName = cfg.Telemetry.ServiceName
	tracingCfg.Enabled = tracerProvider.IsEnabled()

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins

	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(),
		middleware.Tracing(tracingCfg),
		middleware.EnrichSpan(),
		logger.GinMiddleware(log),
		middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
			MeterProvider: meterProvider,
			ServiceName:   cfg.Telemetry.ServiceName,
			Enabled:       meterProvider.IsEnabled(),
			Logger:        log,
		}),
		middleware.CORSWithConfig(corsCfg),
		middleware.Secure(),
		middleware.BodyLimit(maxBodyBytes),
		middleware.TenantMiddleware(),
		middleware.Profiling(middleware.ProfilingConfig{
			Enabled:   profiler.IsEnabled(),
			SkipPaths: middleware.DefaultProfilingConfig().SkipPaths,
		}),
	)

	systemHandler := handler.NewSystemHandler(version, db)
	engine.GET("/health", systemHandler.Health)

	router.RegisterAPI(router.NewRouter(engine), router.Handlers{
		Party:      handler.NewPartyHandler(partyService),
		SalesOrder: handler.NewSalesOrderHandler(salesOrderService, commissionService),
		Finance:    handler.NewFinanceHandler(accountService, ledgerService),
	}, router.RouteMiddleware{
		Idempotency: middleware.Idempotency(idempotencyStore, cfg.Commission.IdempotencyTTL),
	}).Setup()

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Event bus did not drain", zap.Error(err))
	}
	if err := idempotencyStore.Close(); err != nil {
		log.Error("Error closing idempotency store", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	_ = meterProvider.Shutdown(shutdownCtx)
	_ = tracerProvider.Shutdown(shutdownCtx)
	_ = profiler.Stop()
	_ = logProvider.Shutdown(shutdownCtx)

	log.Info("Server exited gracefully")
}

// checkSchema warns when the database is behind the embedded migrations.
// The migrator closes its connection, so it gets one of its own.
func checkSchema(cfg *config.Config, log *zap.Logger) {
	sqlDB, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Warn("Schema check skipped", zap.Error(err))
		return
	}

	m, err := migration.NewFromFS(sqlDB, migrations.FS, log)
	if err != nil {
		_ = sqlDB.Close()
		log.Warn("Schema check skipped", zap.Error(err))
		return
	}
	defer m.Close()

	st, err := m.Status()
	if err != nil {
		log.Warn("Schema check failed", zap.Error(err))
		return
	}
	if !st.UpToDate() {
		log.Warn("Database schema is not up to date, run the migrate command",
			zap.Uint("version", st.Version),
			zap.Uint("latest", st.Latest),
			zap.Bool("dirty", st.Dirty),
		)
		return
	}
	log.Info("Database schema up to date", zap.Uint("version", st.Version))
}
