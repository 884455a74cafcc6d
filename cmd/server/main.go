package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"tienda_api/internal/api"
	"tienda_api/internal/app/service"
	"tienda_api/internal/common/security"
	"tienda_api/internal/domain/repository"
	"tienda_api/internal/platform/config"
	"tienda_api/internal/platform/database"
	"tienda_api/internal/platform/kv"
	"tienda_api/internal/platform/logger"
)

func main() {
	// 1. Load Configuration
	bootLog := logger.New("info")
	cfg, err := config.Load(bootLog)
	if err != nil {
		bootLog.Fatalf("Could not load configuration: %v", err)
	}
	log := logger.New(cfg.LogLevel)
	log.Info("Configuration loaded.")

	ctx := context.Background()

	// 2. Initialize Database
	db, err := database.Connect(ctx, database.Options{
		DSN:            cfg.DSN(),
		MaxOpenConns:   cfg.DBMaxOpenConns,
		ConnectRetries: cfg.DBConnectRetries,
		ConnectBackoff: cfg.DBConnectBackoff,
	}, log)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	defer db.Close()

	// 3. Initialize Redis (optional, backs logout)
	denylist := repository.NewNoopTokenDenylist()
	if cfg.RedisEnabled() {
		rdb, err := kv.Connect(ctx, kv.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err != nil {
			log.Fatalf("Could not connect to Redis: %v", err)
		}
		defer rdb.Close()
		denylist = repository.NewRedisTokenDenylist(rdb)
		log.WithField("addr", cfg.RedisAddr).Info("Redis connected, logout enabled.")
	} else {
		log.Info("REDIS_ADDR not set, logout disabled.")
	}

	// 4. Initialize Services
	store := repository.NewRecordStore(db, log)
	tokens := security.NewTokenService([]byte(cfg.JWTSecret))
	authService := service.NewAuthService(store, tokens, denylist, log)

	router := api.NewRouter(api.Services{
		Auth:       authService,
		Users:      service.NewUserService(store, authService, log),
		Products:   service.NewProductService(store),
		Categories: service.NewCategoryService(store),
	}, cfg.AllowedOrigins, log)

	// 5. HTTP Server
	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 65 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 6. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Infof("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Could not listen on %s: %v", cfg.APIPort, err)
		}
	}()

	<-stop

	log.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server shutdown failed: %v", err)
		return
	}
	log.Info("Server stopped gracefully.")
}
