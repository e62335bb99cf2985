package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/tair/starwars-blog/docs"
	"github.com/tair/starwars-blog/internal/config"
	"github.com/tair/starwars-blog/internal/favorites"
	"github.com/tair/starwars-blog/internal/favorites/cache"
	"github.com/tair/starwars-blog/internal/favorites/delivery/events"
	grpcDelivery "github.com/tair/starwars-blog/internal/favorites/delivery/grpc"
	"github.com/tair/starwars-blog/internal/favorites/domain"
	"github.com/tair/starwars-blog/internal/server"
	userhttp "github.com/tair/starwars-blog/internal/user/delivery/http"
	usercommand "github.com/tair/starwars-blog/internal/user/usecase/command"
	"github.com/tair/starwars-blog/kafka"
	"github.com/tair/starwars-blog/pkg/auth"
	"github.com/tair/starwars-blog/pkg/database"
	"github.com/tair/starwars-blog/pkg/logger"
	"github.com/tair/starwars-blog/pkg/tracing"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg := config.Load()

	// Initialize logger
	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Star Wars blog service")

	tp, err := tracing.InitTracer(cfg.ServiceName, cfg.JaegerEndpoint)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}

	auth.Init(cfg.JWTSecret)

	// Connect to database
	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := favorites.Migrate(db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Str("driver", cfg.Database.Driver()).Msg("Database initialized successfully")

	redisClient := newRedisClient(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}
	views := newViewCache(cfg, redisClient)

	publisher, closePublisher := newPublisher(cfg)
	defer closePublisher()

	// Initialize handlers with Wire DI
	module, err := favorites.InitializeModule(
		db,
		views,
		publisher,
		prometheus.DefaultRegisterer,
		userhttp.NewIdentityMiddleware(cfg.DefaultUserID),
	)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handlers")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.SeedData {
		if err := seed(ctx, module); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to seed database")
		}
	}

	consumer := startConsumer(ctx, cfg, module)

	// gRPC health server
	checker := grpcDelivery.NewHealthChecker(sqlDB, cfg.ServiceName)
	go checker.Watch(ctx, cfg.HealthCheckPeriod)

	grpcServer := grpcDelivery.NewServer(checker)
	go func() {
		lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
		if err != nil {
			logger.Logger.Fatal().Err(err).Str("port", cfg.GRPCPort).Msg("Failed to listen")
		}
		logger.Logger.Info().Str("port", cfg.GRPCPort).Msg("gRPC server started")
		if err := grpcServer.Serve(lis); err != nil {
			logger.Logger.Error().Err(err).Msg("gRPC server stopped")
		}
	}()

	// HTTP server
	router := server.NewRouter(server.Options{
		ServiceName:    cfg.ServiceName,
		RequestTimeout: cfg.HTTPRequestTimeout,
		Registerer:     prometheus.DefaultRegisterer,
		Gatherer:       prometheus.DefaultGatherer,
		HealthCheck:    sqlDB.PingContext,
		SwaggerHandler: httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")),
		RateLimiter:    newRateLimiter(cfg, redisClient),
		CORS:           server.DefaultCORSOptions(),
	}, module.CatalogHandler, module.UserHandler, module.FavoritesHandler)

	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger", "/swagger/index.html").
			Msg("HTTP server started")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down servers...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	checker.Shutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	grpcServer.GracefulStop()

	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to close Kafka consumer")
		}
	}
	if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
	}

	logger.Logger.Info().Msg("Server stopped")
}

// newRedisClient returns nil when REDIS_ADDR is not set
func newRedisClient(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		logger.Logger.Info().Msg("Redis disabled, no address configured")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unreachable, favorites are read from the database until it recovers")
	} else {
		logger.Logger.Info().Str("addr", cfg.RedisAddr).Msg("Connected to Redis")
	}

	return client
}

func newViewCache(cfg *config.Config, client *redis.Client) domain.ViewCache {
	if client == nil {
		return cache.NoopViewCache{}
	}
	logger.Logger.Info().Dur("ttl", cfg.FavoritesCacheTTL).Msg("Favorites cache enabled")
	return cache.NewRedisViewCache(client, cfg.FavoritesCacheTTL)
}

// newRateLimiter needs Redis; RATE_LIMIT_REQUESTS=0 turns it off
func newRateLimiter(cfg *config.Config, client *redis.Client) *server.RateLimiter {
	if client == nil || cfg.RateLimitRequests == 0 {
		return nil
	}
	logger.Logger.Info().
		Int("limit", cfg.RateLimitRequests).
		Dur("window", cfg.RateLimitWindow).
		Strs("trusted_proxies", cfg.TrustedProxies).
		Msg("Rate limiting enabled")
	limiter := server.NewRateLimiter(client, cfg.RateLimitRequests, cfg.RateLimitWindow)
	if err := limiter.TrustProxies(cfg.TrustedProxies...); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Invalid TRUSTED_PROXIES")
	}
	return limiter
}

// newPublisher uses Kafka when KAFKA_BROKERS is set
func newPublisher(cfg *config.Config) (domain.EventPublisher, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Logger.Info().Msg("Favorite events disabled, no Kafka brokers configured")
		return kafka.NoopPublisher{}, func() {}
	}

	publisher, err := kafka.NewPublisher(cfg.KafkaBrokers)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka publisher")
	}

	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to close Kafka publisher")
		}
	}
}

// startConsumer purges favorites of removed catalog entities
func startConsumer(ctx context.Context, cfg *config.Config, module *favorites.Module) *kafka.Consumer {
	if len(cfg.KafkaBrokers) == 0 {
		return nil
	}

	consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, kafka.ConsumerGroupFavorites, []string{kafka.TopicCatalogEntityRemoved})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
	}
	events.Register(consumer, module.PurgeHandler)

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start Kafka consumer")
	}

	return consumer
}

// seed loads the development catalog and the default reader
func seed(ctx context.Context, module *favorites.Module) error {
	if err := module.Catalog.Seed(ctx); err != nil {
		return err
	}

	count, err := module.Users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	user, err := module.CreateUserHandler.Handle(ctx, usercommand.CreateUserCommand{
		Email:    "reader@starwars.blog",
		Username: "reader",
	})
	if err != nil {
		return err
	}

	logger.Logger.Info().Uint("user_id", user.ID).Msg("Seeded default reader")
	return nil
}
