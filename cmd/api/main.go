package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/insurance-service/internal/api/http"
	"github.com/spec-kit/insurance-service/internal/api/http/handlers"
	"github.com/spec-kit/insurance-service/internal/auth"
	"github.com/spec-kit/insurance-service/internal/config"
	"github.com/spec-kit/insurance-service/internal/events"
	"github.com/spec-kit/insurance-service/internal/observability"
	"github.com/spec-kit/insurance-service/internal/persistence"
	"github.com/spec-kit/insurance-service/internal/repository"
	"github.com/spec-kit/insurance-service/internal/repository/memory"
	"github.com/spec-kit/insurance-service/internal/service"
	"github.com/spec-kit/insurance-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.Pool, cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	repos := buildRepositories(pg, logger)
	insuranceRepo := repository.NewCachedInsuranceRepository(repos.Insurances, redis.Cmdable(), cfg.Redis.CatalogTTL(), logger, metrics)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(dispatcher, logger, cfg.Notification)

	loc := cfg.App.Location()
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience, cfg.Auth.TokenTTL())

	insuranceService := service.NewInsuranceService(service.InsuranceDependencies{
		InsuranceRepo:   insuranceRepo,
		ApplicationRepo: repos.Applications,
		Dispatcher:      dispatcher,
		Logger:          logger,
	})
	applicationService := service.NewApplicationService(service.ApplicationDependencies{
		ApplicationRepo: repos.Applications,
		InsuranceRepo:   insuranceRepo,
		Dispatcher:      dispatcher,
		Metrics:         metrics,
		Logger:          logger,
		Location:        loc,
	})
	adminService := service.NewAdminService(service.AdminDependencies{
		AdminRepo:  repos.Admins,
		Tokens:     tokens,
		BcryptCost: cfg.Auth.BcryptCost,
		Logger:     logger,
	})
	reportService := service.NewReportService(service.ReportDependencies{
		ApplicationRepo: repos.Applications,
		InsuranceRepo:   insuranceRepo,
		Logger:          logger,
		Location:        loc,
	})

	if _, err := adminService.EnsureSeedAccount(ctx, cfg.Auth.SeedUsername, cfg.Auth.SeedPassword); err != nil {
		logger.Fatal("failed to seed admin account", zap.Error(err))
	}
	if !pg.Enabled() {
		seedCatalog(ctx, insuranceService, logger)
	}

	app := httptransport.NewServer(cfg.App.Name, logger, metrics,
		httptransport.MiddlewareConfig{
			Timeout:       cfg.App.RequestTimeout(),
			CORSOrigins:   cfg.App.CORSOrigins,
			DefaultLocale: cfg.App.DefaultLocale,
		},
		httptransport.RouteConfig{
			Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
				"postgres": pg,
				"redis":    redis,
			}),
			Public:           handlers.NewPublicHandler(insuranceService, applicationService, loc),
			AdminAuth:        handlers.NewAdminAuthHandler(adminService),
			AdminInsurances:  handlers.NewAdminInsuranceHandler(insuranceService, applicationService),
			AdminApplication: handlers.NewAdminApplicationHandler(applicationService, reportService, loc),
			AuthMiddleware:   auth.NewAuthMiddleware(adminService),
		})

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
}

type repositories struct {
	Insurances   repository.InsuranceRepository
	Applications repository.ApplicationRepository
	Admins       repository.AdminRepository
}

func buildRepositories(pg *persistence.Postgres, logger *zap.Logger) repositories {
	if !pg.Enabled() {
		logger.Warn("running with in-memory storage; data is lost on restart")
		mem := memory.NewRepositories()
		return repositories{
			Insurances:   mem.Insurances,
			Applications: mem.Applications,
			Admins:       mem.Admins,
		}
	}
	return repositories{
		Insurances:   repository.NewInsuranceRepository(pg.Pool),
		Applications: repository.NewApplicationRepository(pg.Pool),
		Admins:       repository.NewAdminRepository(pg.Pool),
	}
}

// seedCatalog mirrors the SQL seed migration for in-memory runs.
func seedCatalog(ctx context.Context, insurances *service.InsuranceService, logger *zap.Logger) {
	seeds := []struct{ name, description string }{
		{"Kasko Sigortası", "Araç hasar ve çalınma sigortası"},
		{"Konut Sigortası", "Ev yangın ve hırsızlık sigortası"},
		{"Sağlık Sigortası", "Özel sağlık sigortası"},
	}
	for _, s := range seeds {
		if _, err := insurances.Create(ctx, s.name, s.description); err != nil {
			logger.Warn("seed insurance skipped", zap.String("name", s.name), zap.Error(err))
		}
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
