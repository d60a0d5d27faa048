package app

import (
	"context"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/nguyentranbao-ct/product-dash/internal/config"
	"github.com/nguyentranbao-ct/product-dash/internal/models"
	"github.com/nguyentranbao-ct/product-dash/internal/repo/productapi"
	"github.com/nguyentranbao-ct/product-dash/internal/syncengine"
	"go.uber.org/fx"
)

// newSyncEngine builds the engine and binds its lifetime to the app: the
// initial fetch runs on start when auto-fetch is on, and disposal on stop
// tears down the in-flight request, pending retry and refresh ticker.
func newSyncEngine(lc fx.Lifecycle, cfg *config.Config, api productapi.Client) *syncengine.Engine {
	engine := syncengine.NewEngine(syncengine.Config{
		Fetcher:         api,
		CacheTTL:        cfg.Sync.CacheTTL,
		RetryDelay:      cfg.Sync.RetryDelay,
		MaxRetries:      cfg.Sync.MaxRetries,
		RefreshInterval: cfg.Sync.RefreshInterval,
		InitialParams: models.SearchParams{
			Query:   cfg.Sync.InitialQuery,
			Page:    1,
			PerPage: cfg.Sync.PageSize,
		},
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if cfg.Sync.AutoFetch {
				go func() {
					if err := engine.Refetch(context.Background()); err != nil {
						log.Warnw(context.Background(), "initial fetch failed", "error", err)
					}
				}()
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			engine.Dispose()
			return nil
		},
	})

	return engine
}
