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

	"github.com/hellofresh/health-go/v5"
	"github.com/labstack/echo/v4"
	"github.com/yakoovad/eventhub/internal/api"
	"github.com/yakoovad/eventhub/internal/auth"
	"github.com/yakoovad/eventhub/internal/config"
	"github.com/yakoovad/eventhub/internal/db"
	"github.com/yakoovad/eventhub/internal/i18n"
	"github.com/yakoovad/eventhub/internal/repository"
	"github.com/yakoovad/eventhub/internal/repository/memory"
	"github.com/yakoovad/eventhub/internal/repository/postgres"
	"github.com/yakoovad/eventhub/internal/service"
	"github.com/yakoovad/eventhub/pkg/logger"
	"go.uber.org/zap"
)

const version = "v0.1.0"

type repositories struct {
	tx            db.Transactor
	users         repository.UserRepository
	events        repository.EventRepository
	teams         repository.TeamRepository
	registrations repository.RegistrationRepository
	checks        []health.Config
	close         func() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Инициализируем logger
	logger, err := logger.NewLogger(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("starting application", zap.String("env", cfg.AppEnv), zap.String("version", version))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open storage", zap.Error(err))
	}
	defer func() {
		if err := repos.close(); err != nil {
			logger.Error("failed to close storage", zap.Error(err))
		}
	}()

	translator, err := i18n.NewTranslator(cfg.DefaultLocale)
	if err != nil {
		logger.Fatal("failed to load translations", zap.Error(err))
	}

	user := service.NewUserService().WithUserRepo(repos.users)
	event := service.NewEventService().WithEventRepo(repos.events)
	team := service.NewTeamService(repos.tx).WithEventRepo(repos.events).WithTeamRepo(repos.teams)
	registration := service.NewRegistrationService(repos.tx).WithEventRepo(repos.events).WithTeamRepo(repos.teams).WithRegistrationRepo(repos.registrations)
	analytics := service.NewAnalyticsService().WithEventRepo(repos.events).WithRegistrationRepo(repos.registrations)

	e := echo.New()
	e.HideBanner = true

	handler := api.NewHandler(logger).
		WithUserService(user).
		WithEventService(event).
		WithTeamService(team).
		WithRegistrationService(registration).
		WithAnalyticsService(analytics).
		WithSessions(auth.NewSessionIssuer(cfg.Session.Secret, cfg.Session.TTL), cfg.Session.CookieSecure).
		WithTranslator(translator).
		WithHealthChecker(api.MustNewHealthChecker(version, repos.checks...)).
		WithCORSOrigins(cfg.HTTP.FrontendURL).
		WithRateLimit(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)

	handler.RegisterRoutes(e)

	go func() {
		logger.Info("server starting", zap.String("addr", cfg.HTTP.Addr))
		if err := e.Start(cfg.HTTP.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shut down server", zap.Error(err))
	}
}

// openRepositories picks postgres when DATABASE_URL is set and the in-memory store otherwise.
func openRepositories(ctx context.Context, cfg *config.Config, l *zap.Logger) (*repositories, error) {
	if cfg.Database.URL == "" {
		l.Info("using in-memory store")
		store := memory.NewStore()
		return &repositories{
			tx:            db.NewLockTransactor(),
			users:         memory.NewUserRepository(store),
			events:        memory.NewEventRepository(store),
			teams:         memory.NewTeamRepository(store),
			registrations: memory.NewRegistrationRepository(store),
			close:         func() error { return nil },
		}, nil
	}

	sqlDB, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	l.Info("database connection established")

	if cfg.Database.Migrate {
		v, err := postgres.Migrate(sqlDB)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		l.Info("database migrated", zap.Uint("version", v))
	}

	return &repositories{
		tx:            db.NewSQLTransactor(sqlDB),
		users:         postgres.NewUserRepository(sqlDB),
		events:        postgres.NewEventRepository(sqlDB),
		teams:         postgres.NewTeamRepository(sqlDB),
		registrations: postgres.NewRegistrationRepository(sqlDB),
		checks:        []health.Config{databaseCheck(sqlDB)},
		close:         sqlDB.Close,
	}, nil
}

func databaseCheck(sqlDB *sql.DB) health.Config {
	return health.Config{
		Name:      "postgres",
		Timeout:   2 * time.Second,
		SkipOnErr: false,
		Check: func(ctx context.Context) error {
			return sqlDB.PingContext(ctx)
		},
	}
}
