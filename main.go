package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"mindwell/config"
	"mindwell/handler"
	"mindwell/model"
	"mindwell/repository"
	"mindwell/services"
	"mindwell/usecase"
	"mindwell/utils"
)

func main() {
	cfg := config.Load()
	utils.InitLogger(cfg.LogLevel, cfg.LogFormat)
	utils.InitValidator()
	for _, mood := range cfg.ExtraMoods {
		model.RegisterMood(mood)
	}
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	checks := map[string]handler.HealthCheck{}

	stores, closeStore, err := openStorage(cfg, checks)
	if err != nil {
		utils.Logger.Fatalf("Failed to open storage: %v", err)
	}
	defer closeStore()

	issuer, err := services.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.Issuer)
	if err != nil {
		utils.Logger.Fatalf("Invalid auth configuration: %v", err)
	}

	generator, err := usecase.NewInsightGenerator(cfg.Insights.Generator, cfg.Insights.LookbackDays)
	if err != nil {
		utils.Logger.Fatalf("Invalid insight configuration: %v", err)
	}

	opts := usecase.Options{
		Tokens:            issuer,
		Generator:         generator,
		LookbackDays:      cfg.Insights.LookbackDays,
		MaxActiveSessions: cfg.Auth.MaxActiveSessions,
	}

	if cfg.RedisURL != "" {
		rdb, err := services.NewRedisClient(cfg.RedisURL)
		if err != nil {
			utils.Logger.Warnf("Redis unavailable, running without token blacklist and insight cache: %v", err)
		} else {
			defer rdb.Close()
			blacklist := services.NewTokenBlacklist(rdb)
			opts.Blacklist = blacklist
			opts.Cache = services.NewInsightCache(rdb, cfg.Insights.CacheTTL)
			checks["redis"] = redisCheck(blacklist)
		}
	}

	svc := usecase.NewServices(stores, opts)
	router := handler.SetupRouter(svc, handler.NewHealthHandler(checks), cfg.CORSOrigins)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.Logger.WithFields(logrus.Fields{
			"addr":      srv.Addr,
			"storage":   cfg.Storage,
			"generator": generator.Name(),
		}).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	sig := <-quit
	utils.Logger.Infof("Caught signal %s, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.Logger.Errorf("Server shutdown failed: %v", err)
	}
	utils.Logger.Info("Server shutdown complete")
}

// openStorage picks the backend named by STORAGE_BACKEND and registers its
// health check.
func openStorage(cfg config.AppConfig, checks map[string]handler.HealthCheck) (usecase.Stores, func(), error) {
	switch cfg.Storage {
	case "memory":
		utils.Logger.Warn("Using in-memory storage; data is lost on restart")
		return usecase.MemoryStores(repository.NewMemoryStore()), func() {}, nil

	case "mongo", "":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err := utils.ConnectMongo(ctx, cfg.Database.Settings())
		if err != nil {
			return usecase.Stores{}, nil, err
		}
		db := client.Database(cfg.Database.DatabaseName)
		if err := repository.SetupIndexes(db); err != nil {
			_ = client.Disconnect(context.Background())
			return usecase.Stores{}, nil, fmt.Errorf("create indexes: %w", err)
		}
		checks["mongo"] = mongoCheck(client)

		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				utils.Logger.Errorf("Failed to disconnect from mongo: %v", err)
			}
		}
		return usecase.MongoStores(db), closeFn, nil
	}
	return usecase.Stores{}, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
}

func mongoCheck(client *mongo.Client) handler.HealthCheck {
	return func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}
}

func redisCheck(tb *services.TokenBlacklist) handler.HealthCheck {
	return func(ctx context.Context) error {
		if !tb.IsConnected(ctx) {
			return errors.New("redis did not answer ping")
		}
		return nil
	}
}
