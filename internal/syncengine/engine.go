// Package syncengine reconciles the dashboard's local view of the remote
// product collection against parameter changes, periodic refresh, failures
// and request supersession. State always reflects the most recently initiated
// fetch whose result arrived; superseded results are dropped, cache hits skip
// the network, and genuine failures get one deferred retry.
package syncengine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/carousell/ct-go/pkg/logger"
	"github.com/nguyentranbao-ct/product-dash/internal/models"
)

const (
	// DefaultRetryDelay is the fixed backoff before a failed fetch is retried.
	DefaultRetryDelay = 2 * time.Second
	// DefaultMaxRetries bounds consecutive automatic retries. Zero means
	// unlimited.
	DefaultMaxRetries = 5
)

// Fetcher retrieves one page of products from the backend.
type Fetcher interface {
	ListProducts(ctx context.Context, params models.SearchParams) (*models.ProductPage, error)
}

// Config holds the knobs for NewEngine. Only Fetcher is required.
type Config struct {
	Fetcher         Fetcher
	Cache           *ResultCache // optional shared cache; built from CacheTTL when nil
	CacheTTL        time.Duration
	RetryDelay      time.Duration
	MaxRetries      int
	RefreshInterval time.Duration
	InitialParams   models.SearchParams
}

// State is the engine's published view. Items preserve server order; Error is
// the last fetch-path failure, cleared on any success.
type State struct {
	Items       []models.Product   `json:"items"`
	Loading     bool               `json:"loading"`
	LoadingMore bool               `json:"loading_more"`
	Error       string             `json:"error,omitempty"`
	Pagination  *models.Pagination `json:"pagination,omitempty"`
	LastFetched *time.Time         `json:"last_fetched,omitempty"`
}

// Engine owns the current parameters and sync state. All state transitions
// are serialized under one mutex; network calls run outside it in the
// caller's goroutine, and their results are applied only while their token is
// still live.
type Engine struct {
	mu        sync.Mutex
	fetcher   Fetcher
	cache     *ResultCache
	canceller *Canceller
	retry     *RetryScheduler
	refresh   *RefreshScheduler
	log       *logger.Logger

	retryDelay time.Duration
	maxRetries int
	failures   int

	params   models.SearchParams
	state    State
	disposed bool
	now      func() time.Time
}

func NewEngine(cfg Config) *Engine {
	cache := cfg.Cache
	if cache == nil {
		cache = NewResultCache(cfg.CacheTTL)
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}

	e := &Engine{
		fetcher:    cfg.Fetcher,
		cache:      cache,
		canceller:  NewCanceller(),
		retry:      NewRetryScheduler(),
		refresh:    NewRefreshScheduler(),
		log:        logger.MustNamed("syncengine"),
		retryDelay: retryDelay,
		maxRetries: cfg.MaxRetries,
		params:     cfg.InitialParams,
		now:        time.Now,
	}

	e.refresh.Start(cfg.RefreshInterval, func() {
		_ = e.Refetch(context.Background())
	})

	return e
}

// Fetch synchronizes state with the backend for params. A live cache entry is
// published without touching the network; otherwise a fresh request is
// issued. Either way any older in-flight operation is superseded so its late
// result can never overwrite this one. Fetch-path failures are
// absorbed into State.Error and handed to the retry scheduler; the returned
// error only reports them for callers that care.
func (e *Engine) Fetch(ctx context.Context, params models.SearchParams) error {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return models.ErrEngineClosed
	}
	e.params = params

	if page, ok := e.cache.Get(params); ok {
		// A cache hit is still the most recently initiated fetch: any
		// in-flight request is superseded so its late result is dropped.
		e.canceller.CancelCurrent()
		now := e.now()
		pg := page.Pagination
		e.state.Items = page.Items
		e.state.Loading = false
		e.state.Error = ""
		e.state.Pagination = &pg
		e.state.LastFetched = &now
		e.mu.Unlock()
		return nil
	}

	tok := e.canceller.Begin(ctx)
	e.state.Loading = true
	e.state.Error = ""
	e.mu.Unlock()

	page, err := e.fetcher.ListProducts(tok.Context(), params)
	return e.settleFetch(tok, params, page, err)
}

func (e *Engine) settleFetch(tok *Token, params models.SearchParams, page *models.ProductPage, err error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	// A superseded or disposed operation no longer owns the state.
	if e.disposed || !tok.Live() {
		return nil
	}

	if err != nil {
		if isCancellation(err) {
			e.state.Loading = false
			return nil
		}
		e.state.Loading = false
		e.state.Error = err.Error()
		e.scheduleRetryLocked(params)
		return err
	}

	e.failures = 0
	now := e.now()
	pg := page.Pagination
	e.state.Items = page.Items
	e.state.Loading = false
	e.state.Error = ""
	e.state.Pagination = &pg
	e.state.LastFetched = &now
	e.cache.Set(params, *page)
	return nil
}

func (e *Engine) scheduleRetryLocked(params models.SearchParams) {
	e.failures++
	if e.maxRetries > 0 && e.failures > e.maxRetries {
		e.log.Warnw("retry budget exhausted, giving up",
			"failures", e.failures,
			"max_retries", e.maxRetries,
		)
		return
	}
	e.retry.Schedule(e.retryDelay, func() {
		_ = e.Fetch(context.Background(), params)
	})
}

// Refetch re-runs the current parameters, consulting the cache first.
func (e *Engine) Refetch(ctx context.Context) error {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return models.ErrEngineClosed
	}
	params := e.params
	e.mu.Unlock()

	return e.Fetch(ctx, params)
}

// LoadMore fetches the page after the current pagination snapshot and appends
// its items after the existing ones. No-op while another fetch is in flight
// or when there is no next page. Append fetches bypass the cache and are
// never retried automatically; a failure leaves loaded items untouched.
func (e *Engine) LoadMore(ctx context.Context) error {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return models.ErrEngineClosed
	}
	if e.state.Loading || e.state.LoadingMore ||
		e.state.Pagination == nil || !e.state.Pagination.HasNextPage {
		e.mu.Unlock()
		return nil
	}
	params := e.params.WithPage(e.state.Pagination.CurrentPage + 1)
	tok := e.canceller.Begin(ctx)
	e.state.LoadingMore = true
	e.mu.Unlock()

	page, err := e.fetcher.ListProducts(tok.Context(), params)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed || !tok.Live() {
		return nil
	}
	e.state.LoadingMore = false
	if err != nil {
		if isCancellation(err) {
			return nil
		}
		e.state.Error = err.Error()
		return err
	}

	now := e.now()
	pg := page.Pagination
	e.state.Items = append(e.state.Items, page.Items...)
	e.state.Pagination = &pg
	e.state.Error = ""
	e.state.LastFetched = &now
	return nil
}

// UpdateParams merges the patch into the current parameters without fetching,
// so callers can batch several changes before dispatching one fetch.
func (e *Engine) UpdateParams(patch models.ParamsPatch) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.params = e.params.Merge(patch)
}

// Params returns the current parameter value.
func (e *Engine) Params() models.SearchParams {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.params
}

// ClearCache evicts all cached results. State is untouched.
func (e *Engine) ClearCache() {
	e.cache.Clear()
}

// Snapshot returns a copy of the current state. The items slice is copied so
// callers never alias engine internals.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := e.state
	out.Items = append([]models.Product(nil), e.state.Items...)
	if e.state.Pagination != nil {
		pg := *e.state.Pagination
		out.Pagination = &pg
	}
	if e.state.LastFetched != nil {
		ts := *e.state.LastFetched
		out.LastFetched = &ts
	}
	return out
}

// Dispose tears the engine down: in-flight operation first, then the pending
// retry, then the refresh ticker, so neither can fire into a disposed engine.
// Idempotent.
func (e *Engine) Dispose() {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return
	}
	e.disposed = true
	e.mu.Unlock()

	e.canceller.CancelCurrent()
	e.retry.CancelPending()
	e.refresh.Stop()
}

// isCancellation classifies a fetch outcome at the application boundary.
// Deadline expiry is a transport failure and stays retryable; only an actual
// cancel signal is silent.
func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled)
}
