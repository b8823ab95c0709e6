package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/ledger_service/internal/core/services"
	"github.com/SscSPs/ledger_service/internal/handlers"
	"github.com/SscSPs/ledger_service/internal/middleware"
	"github.com/SscSPs/ledger_service/internal/platform/cache"
	"github.com/SscSPs/ledger_service/internal/platform/metrics"
	"github.com/SscSPs/ledger_service/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_service/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

func newServeCmd() *cobra.Command {
	var migrateFirst bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if migrateFirst {
				if err := database.Migrate(cfg.DatabaseURL, database.Up); err != nil {
					return err
				}
			}
			return serve(ctx)
		},
	}
	cmd.Flags().BoolVar(&migrateFirst, "migrate", true, "Apply pending migrations before serving")
	return cmd
}

// openServices connects the database and the optional rules cache and builds
// the service container. Close the handle to release both.
func openServices(ctx context.Context) (*servicesHandle, error) {
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return nil, err
	}

	var rulesCache cache.RulesCache = cache.NoopRulesCache{}
	var redisCache *cache.RedisRulesCache
	if cfg.RedisURL != "" {
		redisCache, err = cache.NewRedisRulesCache(ctx, cfg.RedisURL, cfg.RulesCacheTTL)
		if err != nil {
			database.ClosePgxPool(pool)
			return nil, err
		}
		rulesCache = redisCache
		log.Info().Dur("ttl", cfg.RulesCacheTTL).Msg("Ledger rules cache enabled")
	}

	container := services.NewServiceContainer(pgsql.NewRepositoryProvider(pool), rulesCache,
		services.WithConflictRecorder(metrics.ConflictCounter{}))

	return &servicesHandle{
		Services: container,
		close: func() {
			if redisCache != nil {
				if err := redisCache.Close(); err != nil {
					log.Error().Err(err).Msg("Failed to close rules cache")
				}
			}
			database.ClosePgxPool(pool)
		},
	}, nil
}

func serve(ctx context.Context) error {
	handle, err := openServices(ctx)
	if err != nil {
		return err
	}
	defer handle.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		return err
	}

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(log.Logger),
		gin.Recovery(),
		middleware.Metrics(),
		cors.New(cors.Config{
			AllowOrigins:  cfg.CORSAllowedOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
			ExposeHeaders: []string{middleware.RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}),
		middleware.RateLimit(limiter.New(memory.NewStore(), rate)),
	)
	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}

	handlers.RegisterRoutes(r, cfg, handle.Services)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
