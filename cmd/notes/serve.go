package main

import (
	"context"
	"log/slog"
	"os"

	"notes/config"
	"notes/internal/delivery"
	"notes/internal/delivery/api"
	"notes/internal/delivery/api/middleware"
	"notes/internal/delivery/api/router/handler"
	domainerrors "notes/internal/domain/errors"
	"notes/internal/domain/repository"
	"notes/internal/domain/service"
	"notes/internal/infra/auth"
	"notes/internal/infra/clock"
	logs "notes/internal/infra/log"
	"notes/internal/infra/metrics"
	"notes/internal/infra/persistence/memory"
	"notes/internal/infra/persistence/postgres"
	"notes/internal/usecase/impl"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(_ *cobra.Command, _ []string) error {
		app := fx.New(
			injectInfra(),
			injectStorage(),
			injectService(),
			injectUsecase(),
			injectDelivery(),
			injectMiddleware(),
			injectHandler(),
			fx.Invoke(
				startServer,
			),
		)
		if err := app.Err(); err != nil {
			return err
		}

		app.Run()

		return nil
	},
}

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		clock.New,
		newMetrics,
	)
}

// newMetrics returns nil when metrics are disabled; every consumer accepts a nil *Metrics.
func newMetrics(cfg *config.Config) *metrics.Metrics {
	if cfg.Metrics == nil || !cfg.Metrics.Enabled {
		return nil
	}

	return metrics.New()
}

func injectStorage() fx.Option {
	return fx.Options(
		fx.Provide(
			newTransactionManager,
		),
	)
}

type storageParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
	Clock  service.Clock
}

// newTransactionManager selects the persistence backend named by storage.driver.
func newTransactionManager(params storageParams) (repository.TransactionManager, error) {
	switch params.Config.Storage.Driver {
	case config.StorageDriverMemory:
		params.Logger.Warn("Using in-memory storage, data is lost on restart")

		return memory.NewTransactionManager(memory.NewStore(params.Clock)), nil
	case config.StorageDriverPostgres:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return nil, err
		}

		return postgres.NewTransactionManager(db), nil
	default:
		return nil, domainerrors.ErrConfigurationMissing.WrapMessage("unknown storage driver " + params.Config.Storage.Driver)
	}
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewNoteService,
			impl.NewAccountService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewNoteHandler,
			handler.NewUserHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
