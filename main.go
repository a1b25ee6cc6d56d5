package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/neerajjagga/auth/handlers"
	"github.com/neerajjagga/auth/internal/auth"
	"github.com/neerajjagga/auth/internal/config"
	"github.com/neerajjagga/auth/internal/database"
	"github.com/neerajjagga/auth/internal/sessions"
	"github.com/neerajjagga/auth/internal/tokens"
	"github.com/neerajjagga/auth/internal/users"
	"github.com/neerajjagga/auth/pkg/logger"
	"github.com/neerajjagga/auth/pkg/metrics"
	"github.com/neerajjagga/auth/pkg/middleware"
)

var startTime = time.Now()

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	// Redis holds the single current refresh token per user; the service
	// cannot run without it.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatalf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
	}
	logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)

	mongoClient, err := connectMongoWithRetry(ctx, cfg)
	if err != nil {
		logger.Fatalf("could not connect to MongoDB: %v", err)
	}
	defer func() { _ = mongoClient.Disconnect(ctx) }()

	usersCol := mongoClient.Database(cfg.MongoDB.Database).Collection("users")
	if err := database.EnsureUserIndexes(ctx, usersCol); err != nil {
		logger.Fatalf("failed to ensure user indexes: %v", err)
	}

	codec := tokens.NewCodec(
		[]byte(cfg.Tokens.AccessSecret),
		[]byte(cfg.Tokens.RefreshSecret),
		cfg.Tokens.AccessTokenTTL,
		cfg.Tokens.RefreshTokenTTL,
	)
	store := sessions.NewRedisStore(rdb, "refresh_token:")
	userSvc := users.NewService(users.NewMongoRepository(usersCol))
	authSvc := auth.NewService(userSvc, codec, store)

	if cfg.Server.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// ready only when both stores answer
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{
			"redis": rdb.Ping(c.Request.Context()).Err() == nil,
			"mongo": mongoClient.Ping(c.Request.Context(), nil) == nil,
		}
		status := http.StatusOK
		state := "ready"
		if !deps["redis"] || !deps["mongo"] {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	h := handlers.NewAuthHandler(cfg, authSvc)
	h.Register(r.Group("/api"), middleware.RequireAuth(codec, userSvc))

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting auth service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}

// connectMongoWithRetry retries with exponential backoff to tolerate
// startup races against the database container.
func connectMongoWithRetry(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	const maxAttempts = 5
	backoff := time.Second
	var client *mongo.Client
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client, err = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if err == nil {
			return client, nil
		}
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, err)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	return nil, fmt.Errorf("after %d attempts: %w", maxAttempts, err)
}
