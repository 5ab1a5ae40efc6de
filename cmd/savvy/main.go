package main

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"savvy/config"
	"savvy/internal/delivery"
	"savvy/internal/delivery/api"
	"savvy/internal/delivery/api/middleware"
	"savvy/internal/delivery/api/router/handler"
	"savvy/internal/domain/service"
	"savvy/internal/infra/auth"
	logs "savvy/internal/infra/log"
	"savvy/internal/infra/metrics"
	"savvy/internal/infra/persistence/database"
	"savvy/internal/usecase/impl"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		database.New,
		newMetrics,
	)
}

// newMetrics returns nil when metrics are disabled; every collector call is then a no-op.
func newMetrics(cfg *config.Config) *metrics.Metrics {
	if cfg.Metrics == nil || !cfg.Metrics.Enabled {
		return nil
	}

	return metrics.New()
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			database.NewUserRepository,
			database.NewCategoryRepository,
			database.NewRecordRepository,
			database.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewArgon2Hasher,
			newJWTService,
		),
	)
}

func newJWTService(cfg *config.Config, logger *slog.Logger) (service.TokenService, error) {
	return auth.NewJWTService(cfg, logger)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewIdentityService,
			impl.NewCategoryService,
			impl.NewRecordService,
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
			handler.NewUserHandler,
			handler.NewCategoryHandler,
			handler.NewRecordHandler,
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
