package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shop-access-core/internal/application/auth"
	"github.com/shop-access-core/internal/config"
	"github.com/shop-access-core/internal/infrastructure/cache"
	"github.com/shop-access-core/internal/infrastructure/dynamo"
	jwtinfra "github.com/shop-access-core/internal/infrastructure/jwt"
	"github.com/shop-access-core/internal/infrastructure/memory"
	"github.com/shop-access-core/internal/infrastructure/smtp"
	transporthttp "github.com/shop-access-core/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	// Missing or too-short secrets must never serve traffic.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	var codes auth.CodeStore
	if cfg.CodeStore == "dynamo" {
		codes = dynamo.NewCodeRepo(dynamoClient, cfg.DynamoTables.VerificationCodes)
	} else {
		log.Println("using in-memory verification codes; a restart invalidates pending codes")
		codes = memory.NewCodeStore()
	}

	readCache := cache.New(cfg.CacheCleanupInterval)

	deps := &transporthttp.Deps{
		Codes:        codes,
		Mailer:       smtp.NewMailer(cfg),
		JWTProvider:  jwtinfra.NewProvider(cfg.SigningSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		Cache:        readCache,
		Invalidator:  cache.NewInvalidator(readCache),
		SettingsRepo: dynamo.NewSettingsRepo(dynamoClient, cfg.DynamoTables.Settings),
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
