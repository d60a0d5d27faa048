package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/go-playground/validator/v10"
	"github.com/nguyentranbao-ct/product-dash/internal/models"
	"github.com/nguyentranbao-ct/product-dash/internal/repo/productapi"
	"github.com/nguyentranbao-ct/product-dash/internal/syncengine"
	"github.com/nguyentranbao-ct/product-dash/pkg/util"
	"github.com/prometheus/client_golang/prometheus"
)

// DashboardUsecase is the application surface behind the dashboard routes.
// Listing operations return the engine's state snapshot; fetch-path failures
// live inside that snapshot rather than in the returned error, which only
// reports a disposed engine.
type DashboardUsecase interface {
	Products(ctx context.Context) syncengine.State
	Search(ctx context.Context, patch models.ParamsPatch) (syncengine.State, error)
	Refresh(ctx context.Context) (syncengine.State, error)
	LoadMore(ctx context.Context) (syncengine.State, error)
	ClearCache(ctx context.Context)
	Product(ctx context.Context, id int64) (*models.Product, error)
	TriggerScrape(ctx context.Context, rawURL string) (*models.ScrapeResponse, error)
}

type dashboardUsecase struct {
	engine       *syncengine.Engine
	api          productapi.Client
	validate     *validator.Validate
	scrapeTiming *prometheus.HistogramVec
}

func NewDashboardUsecase(
	engine *syncengine.Engine,
	api productapi.Client,
) (DashboardUsecase, error) {
	timing, err := util.GetHistogramVec("scrape_trigger_duration_seconds", "status")
	if err != nil {
		return nil, fmt.Errorf("get histogram vec: %w", err)
	}

	return &dashboardUsecase{
		engine:       engine,
		api:          api,
		validate:     validator.New(),
		scrapeTiming: timing,
	}, nil
}

func (u *dashboardUsecase) Products(_ context.Context) syncengine.State {
	return u.engine.Snapshot()
}

// Search merges the patch and fetches. Unless the patch pins a page, the view
// resets to page 1 so new filters never land mid-way through stale paging.
func (u *dashboardUsecase) Search(ctx context.Context, patch models.ParamsPatch) (syncengine.State, error) {
	if patch.Page == nil {
		patch.Page = util.Ptr(1)
	}
	u.engine.UpdateParams(patch)

	if err := u.engine.Refetch(ctx); errors.Is(err, models.ErrEngineClosed) {
		return syncengine.State{}, err
	}
	return u.engine.Snapshot(), nil
}

func (u *dashboardUsecase) Refresh(ctx context.Context) (syncengine.State, error) {
	if err := u.engine.Refetch(ctx); errors.Is(err, models.ErrEngineClosed) {
		return syncengine.State{}, err
	}
	return u.engine.Snapshot(), nil
}

func (u *dashboardUsecase) LoadMore(ctx context.Context) (syncengine.State, error) {
	if err := u.engine.LoadMore(ctx); errors.Is(err, models.ErrEngineClosed) {
		return syncengine.State{}, err
	}
	return u.engine.Snapshot(), nil
}

func (u *dashboardUsecase) ClearCache(ctx context.Context) {
	log.Infof(ctx, "Clearing product result cache")
	u.engine.ClearCache()
}

func (u *dashboardUsecase) Product(ctx context.Context, id int64) (*models.Product, error) {
	product, err := u.api.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// TriggerScrape validates the URL before touching the network; an invalid URL
// never reaches the backend or the retry machinery.
func (u *dashboardUsecase) TriggerScrape(ctx context.Context, rawURL string) (*models.ScrapeResponse, error) {
	if err := u.validateScrapeURL(rawURL); err != nil {
		return nil, err
	}

	log.Infof(ctx, "Triggering scrape for %s", rawURL)
	start := time.Now()
	resp, err := u.api.TriggerScrape(ctx, rawURL)

	status := "ok"
	if err != nil || (resp != nil && !resp.Success) {
		status = "error"
	}
	u.scrapeTiming.WithLabelValues(status).Observe(time.Since(start).Seconds())

	if err != nil {
		return nil, fmt.Errorf("failed to trigger scrape: %w", err)
	}
	return resp, nil
}

func (u *dashboardUsecase) validateScrapeURL(rawURL string) error {
	if err := u.validate.Var(rawURL, "required,url"); err != nil {
		return models.ErrInvalidURL
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return models.ErrInvalidURL
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return models.ErrInvalidURL
	}
	if parsed.Host == "" {
		return models.ErrInvalidURL
	}
	return nil
}
