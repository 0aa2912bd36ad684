package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/sqlcpp-shop/internal/auth"
	"github.com/nikolayk812/sqlcpp-shop/internal/config"
	"github.com/nikolayk812/sqlcpp-shop/internal/httpapi"
	"github.com/nikolayk812/sqlcpp-shop/internal/logger"
	"github.com/nikolayk812/sqlcpp-shop/internal/memstore"
	"github.com/nikolayk812/sqlcpp-shop/internal/migrations"
	"github.com/nikolayk812/sqlcpp-shop/internal/port"
	"github.com/nikolayk812/sqlcpp-shop/internal/repository"
	"github.com/nikolayk812/sqlcpp-shop/internal/service"
	"github.com/nikolayk812/sqlcpp-shop/internal/shutdown"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("shop-api failed", slog.Any("err", err))
		os.Exit(1)
	}
}

type storage struct {
	repos port.Repositories
	tx    port.Transactor
	ready httpapi.Pinger
	close func()
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	log := logger.New(logger.Options{
		Service:   "shop-api",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.close()

	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	tokens, err := auth.NewTokenIssuer([]byte(cfg.Auth.TokenSecret))
	if err != nil {
		return fmt.Errorf("auth.NewTokenIssuer: %w", err)
	}

	unit := cfg.Currency()
	svc := httpapi.Services{
		Accounts: service.NewAccounts(store.repos.Users, hasher, tokens, cfg.Auth.TokenTTL),
		Catalog:  service.NewCatalog(store.repos.Products, unit),
		Carts:    service.NewCarts(store.repos.Users, store.repos.Products, store.repos.Carts, unit),
		Checkout: service.NewCheckout(store.tx),
		Orders:   service.NewOrders(store.repos.Orders),
	}

	if cfg.HasAdmin() {
		admin, created, err := svc.Accounts.EnsureAdmin(ctx, service.Registration{
			Username: cfg.Auth.AdminUsername,
			Email:    cfg.Auth.AdminEmail,
			Password: cfg.Auth.AdminPassword,
		})
		if err != nil {
			return fmt.Errorf("accounts.EnsureAdmin: %w", err)
		}
		log.Info("admin user ready", slog.String("username", admin.Username), slog.Bool("created", created))
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           httpapi.NewServer(svc, store.ready, log).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", addr), slog.String("storage", cfg.Storage))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server.ListenAndServe: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("shutdown requested")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server.Shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("bye")
	return nil
}

func openStorage(ctx context.Context, cfg config.Config, log *slog.Logger) (storage, error) {
	if cfg.Storage == config.StorageMemory {
		store := memstore.New()
		log.Warn("using in-memory storage, data is lost on exit")

		return storage{
			repos: port.Repositories{
				Users:    store.Users(),
				Products: store.Products(),
				Carts:    store.Carts(),
				Orders:   store.Orders(),
			},
			tx:    store.Transactor(),
			ready: store,
			close: func() {},
		}, nil
	}

	poolConfig, err := cfg.Postgres.PoolConfig()
	if err != nil {
		return storage{}, fmt.Errorf("cfg.Postgres.PoolConfig: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return storage{}, fmt.Errorf("pgxpool.NewWithConfig: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return storage{}, fmt.Errorf("pool.Ping: %w", err)
	}

	if cfg.Postgres.Migrate {
		if err := migrations.Apply(ctx, pool); err != nil {
			pool.Close()
			return storage{}, fmt.Errorf("migrations.Apply: %w", err)
		}
		log.Info("database schema applied")
	}

	return storage{
		repos: port.Repositories{
			Users:    repository.NewUser(pool),
			Products: repository.NewProduct(pool),
			Carts:    repository.NewCart(pool),
			Orders:   repository.NewOrder(pool),
		},
		tx:    repository.NewTransactor(pool),
		ready: pool,
		close: pool.Close,
	}, nil
}
