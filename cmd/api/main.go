// server/cmd/api/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"facility-accounts-api-server/config"
	"facility-accounts-api-server/internal/accounts"
	"facility-accounts-api-server/internal/api/routes"
	"facility-accounts-api-server/internal/auth"
	"facility-accounts-api-server/internal/database"
	"facility-accounts-api-server/internal/logger"
	"facility-accounts-api-server/internal/models"
	"facility-accounts-api-server/internal/store"

	"go.uber.org/zap"
)

// accountStore is what both the factory and the HTTP layer need from storage.
type accountStore interface {
	Insert(ctx context.Context, account *models.Account) (*models.Account, error)
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
	FindByID(ctx context.Context, id string) (*models.Account, error)
}

func main() {
	// 1. Load configuration
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Could not build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Khởi tạo storage
	var accountsStore accountStore
	switch cfg.Store.Driver {
	case "memory":
		zl.Warn("using in-memory account store, data is lost on restart")
		accountsStore = store.NewMemoryStore()
	default:
		client, db, err := database.Connect(ctx, cfg.Mongo, zl)
		if err != nil {
			zl.Fatal("failed to connect to mongo", zap.Error(err))
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		mongoStore := store.NewMongoStore(db)
		if err := mongoStore.EnsureIndexes(ctx); err != nil {
			zl.Fatal("failed to create indexes", zap.Error(err))
		}
		accountsStore = mongoStore
	}

	// 3. Account factory, authenticator and token issuer
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	factory := accounts.NewFactory(accountsStore, hasher, zl.Named("accounts"))
	authenticator := auth.NewAuthenticator(accountsStore, hasher)
	tokens := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Expiration)

	// 4. Đảm bảo superuser tồn tại
	if err := database.SeedSuperuser(ctx, factory, accountsStore, cfg.Superuser, zl); err != nil {
		zl.Fatal("failed to seed superuser", zap.Error(err))
	}

	router := routes.SetupRouter(routes.Dependencies{
		Creator:       factory,
		Reader:        accountsStore,
		Authenticator: authenticator,
		Tokens:        tokens,
		Logger:        zl.Named("http"),
	}, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 5. Start server
	go func() {
		zl.Info("starting API server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("failed to run server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}
