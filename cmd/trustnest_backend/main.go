package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/trustnest/trustnest_backend/internal/adapters/database/pgsql"
	"github.com/trustnest/trustnest_backend/internal/adapters/notify"
	portssvc "github.com/trustnest/trustnest_backend/internal/core/ports/services"
	"github.com/trustnest/trustnest_backend/internal/core/services"
	"github.com/trustnest/trustnest_backend/internal/handlers"
	"github.com/trustnest/trustnest_backend/internal/middleware"
	"github.com/trustnest/trustnest_backend/pkg/config"
	"github.com/trustnest/trustnest_backend/pkg/database"
)

// @title TrustNest Backend API
// @version 1.0
// @description Peer-trust housing marketplace backend: room listings, expense pools, bill splitting and trust scores.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := newLogger(cfg.IsProduction)
	slog.SetDefault(logger)

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.Metrics(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, buildServices(cfg, dbPool))

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newLogger returns a JSON logger in production and a colorized console
// logger for local development.
func newLogger(isProduction bool) *slog.Logger {
	if isProduction {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.Kitchen,
	}))
}

// buildServices wires repositories into the service container.
func buildServices(cfg *config.Config, dbPool *pgxpool.Pool) *portssvc.ServiceContainer {
	poolRepo := pgsql.NewPoolRepository(dbPool)
	billRepo := pgsql.NewBillRepository(dbPool)
	ratingRepo := pgsql.NewRatingRepository(dbPool)
	userRepo := pgsql.NewUserRepository(dbPool)
	listingRepo := pgsql.NewListingRepository(dbPool)
	notificationRepo := pgsql.NewNotificationRepository(dbPool)

	notifier := notify.NewStoreNotifier(notificationRepo)

	userService := services.NewUserService(userRepo, ratingRepo)

	return &portssvc.ServiceContainer{
		User:           userService,
		Token:          services.NewTokenService(cfg),
		GoogleIdentity: services.NewGoogleIdentityService(cfg, userService),
		Pool:           services.NewPoolService(poolRepo, notifier),
		Bill:           services.NewBillService(billRepo, poolRepo, notifier),
		Balance:        services.NewBalanceService(poolRepo, billRepo),
		Rating:         services.NewRatingService(ratingRepo, userRepo, notifier),
		Listing:        services.NewListingService(listingRepo),
		Notification:   services.NewNotificationService(notificationRepo),
	}
}

// runMigrations applies pending database migrations using a temporary
// database/sql connection compatible with the main pgx pool.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply")
	} else {
		logger.Info("Database migrations applied successfully")
	}
	return nil
}
