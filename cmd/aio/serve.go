package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/layer-3/aio/adapters/crypto"
	"github.com/layer-3/aio/adapters/events"
	"github.com/layer-3/aio/adapters/realm"
	"github.com/layer-3/aio/adapters/store"
	"github.com/layer-3/aio/adapters/tokenizer"
	"github.com/layer-3/aio/config"
	"github.com/layer-3/aio/observability"
	"github.com/layer-3/aio/ports"
	"github.com/layer-3/aio/service"
	"github.com/layer-3/aio/transport/http"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	gin.SetMode(cfg.GinMode)

	aesCipher, err := crypto.NewAESCipher([]byte(cfg.AESKey))
	if err != nil {
		return err
	}
	tk := tokenizer.NewJWTTokenizer([]byte(cfg.JWTSecret))

	revocations, publisher, closeBackends, err := setupRedis(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeBackends()

	areaRepo, closeDB, err := setupAreas(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	reg := prometheus.NewRegistry()
	if err := observability.Register(reg); err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	authService := service.NewAuthService(tk, revocations, events.NewWatermillPublisher(publisher, cfg.LogoutTopic), cfg.TokenTTL)
	gate := service.NewGate(tk, service.NewReplayGuard(aesCipher), realm.NewTokenRealm(tk, revocations))

	router := http.SetupRouter(http.Deps{
		Gate:        gate,
		AuthService: authService,
		AreaService: service.NewAreaService(areaRepo),
		Gating:      http.GateOptions{AllowAnonymous: cfg.AllowAnonymous},
		Metrics:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	if cfg.AllowAnonymous {
		slog.Warn("guest mode enabled: requests without Authorization reach handlers unauthenticated")
	}

	srv := &nethttp.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting API server", "addr", srv.Addr, "mode", cfg.GinMode)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, nethttp.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	slog.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// setupRedis returns the revocation store and event publisher. Without
// REDIS_URL both live in process.
func setupRedis(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.Store, message.Publisher, func(), error) {
	wmLogger := watermill.NewSlogLogger(logger)

	if cfg.RedisURL == "" {
		slog.Info("REDIS_URL not set, using in-memory revocation store")
		pubSub := gochannel.NewGoChannel(gochannel.Config{}, wmLogger)
		return store.NewMemoryStore(), pubSub, func() { _ = pubSub.Close() }, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	redisClient := redis.NewClient(opts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	publisher, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{
			Client: redisClient,
		},
		wmLogger,
	)
	if err != nil {
		_ = redisClient.Close()
		return nil, nil, nil, fmt.Errorf("failed to create Redis publisher: %w", err)
	}

	closeAll := func() {
		_ = publisher.Close()
		_ = redisClient.Close()
	}
	return store.NewRedisStore(redisClient), publisher, closeAll, nil
}

func setupAreas(ctx context.Context, cfg *config.Config) (ports.AreaRepository, func(), error) {
	if cfg.DatabaseURL == "" {
		slog.Info("DATABASE_URL not set, using in-memory area repository")
		return store.NewMemoryAreaStore(), func() {}, nil
	}

	pg, err := store.NewPostgresAreaStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return pg, pg.Close, nil
}
