package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/SimoKiihamaki/cdaportal/internal/api"
	"github.com/SimoKiihamaki/cdaportal/internal/catalog"
	"github.com/SimoKiihamaki/cdaportal/internal/config"
)

func main() {
	appCfg := config.Load()
	if result := appCfg.ValidateInterField(); !result.Valid {
		for _, issue := range result.Errors() {
			log.Printf("config error: %s: %s", issue.Field, issue.Message)
		}
		log.Fatal("invalid configuration")
	}

	cat, err := catalog.Load(appCfg.CatalogPath)
	if err != nil {
		log.Printf("Warning: %v; serving the built-in catalog", err)
		cat = catalog.Default()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := api.NewCatalogStore(cat)
	deps := api.Dependencies{
		Catalog:     store,
		RateLimiter: api.NewRateLimiter(60, 10), // 60 requests per minute, burst of 10
	}
	deps.RateLimiter.CleanupRoutine(ctx, api.DefaultCleanupInterval)

	if appCfg.CatalogPath != "" && appCfg.WatchCatalogEnabled() {
		go func() {
			err := catalog.Watch(ctx, appCfg.CatalogPath, catalog.DefaultWatchDebounce, func(c *catalog.Catalog, err error) {
				if err != nil {
					log.Printf("catalog reload failed, keeping previous catalog: %v", err)
					return
				}
				store.Swap(c)
				log.Printf("catalog reloaded from %s", appCfg.CatalogPath)
			})
			if err != nil {
				log.Printf("catalog watch disabled: %v", err)
			}
		}()
	}

	server := api.NewServer(api.Config{Addr: appCfg.APIAddr}, deps)

	go func() {
		log.Printf("starting api server on %s", server.Addr())
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}

	log.Println("server shutdown complete")
}
