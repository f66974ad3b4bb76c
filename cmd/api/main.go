package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SD-CODE-OEB/stationery-Saas/internal/cache"
	"github.com/SD-CODE-OEB/stationery-Saas/internal/catalog"
	"github.com/SD-CODE-OEB/stationery-Saas/internal/config"
	"github.com/SD-CODE-OEB/stationery-Saas/internal/db"
	"github.com/SD-CODE-OEB/stationery-Saas/internal/httpserver"
	sessionrepo "github.com/SD-CODE-OEB/stationery-Saas/internal/repository/session"
	userrepo "github.com/SD-CODE-OEB/stationery-Saas/internal/repository/user"
	checkoutsvc "github.com/SD-CODE-OEB/stationery-Saas/internal/service/checkout"
	identitysvc "github.com/SD-CODE-OEB/stationery-Saas/internal/service/identity"
	"github.com/SD-CODE-OEB/stationery-Saas/internal/store"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	var sessionCache cache.Cache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		sessionCache = cache.NewRedis(client, "session")
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := sessionCache.Ping(pingCtx); err != nil {
			logger.Printf("redis not reachable, session cache disabled: %v", err)
			sessionCache = nil
		}
		cancel()
	}

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		logger.Fatalf("load catalog: %v", err)
	}
	logger.Printf("catalog loaded with %d products", cat.Len())

	userRepo := userrepo.NewPostgres(dbpool, logger)
	sessionRepo := sessionrepo.NewPostgres(dbpool)
	identityService := identitysvc.New(userRepo, sessionRepo, sessionCache, cfg.SessionTTL, logger)
	checkoutService := checkoutsvc.New(cfg.PaymentDelay, logger)
	stores := store.NewManager(cfg.StoreIdleTTL)

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go stores.Run(sweepCtx, 10*time.Minute)
	go reapSessions(sweepCtx, sessionRepo, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Identity: identityService,
		Checkout: checkoutService,
		Catalog:  cat,
		Stores:   stores,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

// reapSessions deletes expired session rows on an hourly tick.
func reapSessions(ctx context.Context, sessions sessionrepo.Repository, logger *log.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := sessions.DeleteExpired(ctx)
			if err != nil {
				logger.Printf("delete expired sessions: %v", err)
				continue
			}
			if n > 0 {
				logger.Printf("deleted %d expired sessions", n)
			}
		}
	}
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path != "" {
		return catalog.Load(path)
	}
	return catalog.New()
}
