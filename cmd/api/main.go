package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/resolvehub/issue-desk/internal/api/http"
	"github.com/resolvehub/issue-desk/internal/api/http/handlers"
	"github.com/resolvehub/issue-desk/internal/auth"
	"github.com/resolvehub/issue-desk/internal/config"
	"github.com/resolvehub/issue-desk/internal/events"
	"github.com/resolvehub/issue-desk/internal/observability"
	"github.com/resolvehub/issue-desk/internal/persistence"
	"github.com/resolvehub/issue-desk/internal/repository"
	"github.com/resolvehub/issue-desk/internal/service"
	"github.com/resolvehub/issue-desk/internal/worker"
)

// stores is the repository pair selected by STORAGE_DRIVER.
type stores struct {
	accounts repository.AccountRepository
	issues   repository.IssueRepository
	health   handlers.Pinger
	close    func()
}

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

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer st.close()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var revocations auth.RevocationStore
	if redis.Enabled() {
		revocations = auth.NewRedisRevocations(redis.Client)
	} else {
		revocations = auth.NewMemoryRevocations()
	}

	metrics := observability.NewMetrics(cfg.App.Name)
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger, metrics, cfg.Notification), logger)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	accountService := service.NewAccountService(cfg.Auth, service.AccountDependencies{
		AccountRepo:  st.accounts,
		TokenManager: tokens,
		Revocations:  revocations,
		Logger:       logger,
	})
	issueService := service.NewIssueService(service.IssueDependencies{
		IssueRepo:  st.issues,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, cfg.Storage.Driver, st.health, redis),
		Auth:     handlers.NewAuthHandler(accountService),
		Issues:   handlers.NewIssuesHandler(issueService),
		Stats:    handlers.NewStatsHandler(issueService),
		Sessions: auth.NewSessionMiddleware(tokens, revocations),
		Metrics:  metrics,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("storage", cfg.Storage.Driver))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func openStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*stores, error) {
	csvAccounts := repository.NewCSVAccountRepository(cfg.Storage.UsersCSV)
	csvIssues := repository.NewCSVIssueRepository(cfg.Storage.IssuesCSV)

	var st *stores
	switch cfg.Storage.Driver {
	case config.StorageCSV:
		return &stores{accounts: csvAccounts, issues: csvIssues, close: func() {}}, nil

	case config.StorageSQLite:
		db, err := persistence.NewSQLite(cfg.Storage.SQLitePath, cfg.Storage.SQLitePoolSize, logger)
		if err != nil {
			return nil, err
		}
		st = &stores{
			accounts: repository.NewSQLiteAccountRepository(db),
			issues:   repository.NewSQLiteIssueRepository(db),
			health:   db,
			close:    db.Close,
		}

	case config.StoragePostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				pg.Close()
				return nil, fmt.Errorf("migrations: %w", err)
			}
		}
		st = &stores{
			accounts: repository.NewAccountRepository(pg.PoolHandle()),
			issues:   repository.NewIssueRepository(pg.PoolHandle()),
			health:   pg,
			close:    pg.Close,
		}

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	if cfg.Storage.ImportCSV {
		importer := service.NewImportService(logger)
		if _, err := importer.Import(ctx, csvAccounts, csvIssues, st.accounts, st.issues); err != nil {
			st.close()
			return nil, fmt.Errorf("import flat files: %w", err)
		}
	}
	return st, nil
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
