package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	portssvc "github.com/finacct/accrual_subledger_app/internal/core/ports/services"
	"github.com/finacct/accrual_subledger_app/internal/core/services"
	"github.com/finacct/accrual_subledger_app/internal/events"
	"github.com/finacct/accrual_subledger_app/internal/handlers"
	"github.com/finacct/accrual_subledger_app/internal/ledger"
	"github.com/finacct/accrual_subledger_app/internal/middleware"
	"github.com/finacct/accrual_subledger_app/internal/repositories/database/pgsql"
	"github.com/finacct/accrual_subledger_app/internal/scheduler"
	"github.com/finacct/accrual_subledger_app/pkg/config"
	"github.com/finacct/accrual_subledger_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// @title Accrual Subledger API
// @version 1.0
// @description Period-end accrual lifecycle with derived double-entry journal postings.

// @host localhost:8080
// @BasePath /
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT value", slog.String("rate_limit", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)
	r.Use(middleware.RateLimit(ipLimiter))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	serviceContainer := buildServices(dbPool, cfg, logger)

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	var daily *scheduler.DailyScheduler
	if cfg.SchedulerEnabled {
		daily = scheduler.NewDailyScheduler(serviceContainer.Recurrence, cfg.SchedulerInterval, logger)
		daily.Start()
		defer daily.Stop()
	} else {
		logger.Info("Scheduler disabled by configuration")
	}

	// Stop the scheduler cleanly on SIGINT/SIGTERM.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		if daily != nil {
			daily.Stop()
		}
		os.Exit(0)
	}()

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildServices wires repositories, collaborators and services together.
func buildServices(dbPool *pgxpool.Pool, cfg *config.Config, logger *slog.Logger) *portssvc.ServiceContainer {
	accrualRepo := pgsql.NewAccrualRepository(dbPool)
	journalRepo := pgsql.NewJournalEntryRepository(dbPool)
	numberingRepo := pgsql.NewNumberingRepository(dbPool)
	analyticsRepo := pgsql.NewAnalyticsRepository(dbPool)
	accountRepo := pgsql.NewAccountRepository(dbPool)

	classifier := ledger.NewClassificationResolver()
	publisher := events.NewInProcessPublisher()

	postingSvc := services.NewPostingService(journalRepo, numberingRepo)
	accrualSvc := services.NewAccrualService(
		accrualRepo, journalRepo, numberingRepo, analyticsRepo,
		postingSvc, accountRepo, classifier, publisher,
		cfg.SettlementTolerance,
	)
	recurrenceSvc := services.NewRecurrenceService(accrualRepo, accrualSvc)
	analyticsSvc := services.NewAnalyticsService(analyticsRepo)

	return &portssvc.ServiceContainer{
		Accrual:    accrualSvc,
		Posting:    postingSvc,
		Recurrence: recurrenceSvc,
		Analytics:  analyticsSvc,
	}
}

// runMigrations applies all pending "up" migrations from the migrations
// directory using a temporary database/sql connection.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
