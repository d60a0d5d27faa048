package productapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/nguyentranbao-ct/product-dash/internal/config"
	"github.com/nguyentranbao-ct/product-dash/internal/models"
	"github.com/nguyentranbao-ct/product-dash/pkg/util"
)

// Client talks to the scraper backend. Every response is wrapped in an
// envelope whose success flag is authoritative: a 2xx with success=false is
// still a failure.
type Client interface {
	ListProducts(ctx context.Context, params models.SearchParams) (*models.ProductPage, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	TriggerScrape(ctx context.Context, url string) (*models.ScrapeResponse, error)
}

type client struct {
	http    *resty.Client
	baseURL string
}

func NewClient(cfg *config.Config) Client {
	return &client{
		http:    util.NewRestyClient(cfg.ProductAPI.Timeout),
		baseURL: strings.TrimRight(cfg.ProductAPI.BaseURL, "/"),
	}
}

// NewClientWithResty wires a caller-supplied resty client, used by tests.
func NewClientWithResty(rc *resty.Client, baseURL string) Client {
	return &client{
		http:    rc,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (c *client) ListProducts(ctx context.Context, params models.SearchParams) (*models.ProductPage, error) {
	query := map[string]string{}
	if params.Query != "" {
		query["query"] = params.Query
	}
	if params.Page > 0 {
		query["page"] = strconv.Itoa(params.Page)
	}
	if params.PerPage > 0 {
		query["per_page"] = strconv.Itoa(params.PerPage)
	}
	// Structured fields travel as JSON-encoded query values.
	if params.Filters != (models.Filters{}) {
		raw, err := json.Marshal(params.Filters)
		if err != nil {
			return nil, fmt.Errorf("encode filters: %w", err)
		}
		query["filters"] = string(raw)
	}
	if params.Sort != nil {
		raw, err := json.Marshal(params.Sort)
		if err != nil {
			return nil, fmt.Errorf("encode sort: %w", err)
		}
		query["sort"] = string(raw)
	}

	var out models.ListResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		SetResult(&out).
		Get(c.baseURL + "/api/products")
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("product api returned status %d", resp.StatusCode())
	}
	if !out.Success || out.Data == nil {
		return nil, errors.New(failureMessage(out.Message))
	}
	return out.Data, nil
}

func (c *client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var out models.DetailResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("%s/api/products/%d", c.baseURL, id))
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, models.ErrNotFound
	}
	if resp.IsError() {
		return nil, fmt.Errorf("product api returned status %d", resp.StatusCode())
	}
	if !out.Success || out.Data == nil {
		return nil, errors.New(failureMessage(out.Message))
	}
	return out.Data, nil
}

// TriggerScrape dispatches a scrape of url. The backend's envelope is
// returned as-is, including per-field validation errors, so callers can
// surface them; the error is reserved for transport-level trouble.
func (c *client) TriggerScrape(ctx context.Context, url string) (*models.ScrapeResponse, error) {
	var out models.ScrapeResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"url": url}).
		SetResult(&out).
		SetError(&out).
		Post(c.baseURL + "/api/scrape")
	if err != nil {
		return nil, fmt.Errorf("trigger scrape: %w", err)
	}
	if resp.IsError() && out.Message == "" && len(out.Errors) == 0 {
		return nil, fmt.Errorf("product api returned status %d", resp.StatusCode())
	}
	return &out, nil
}

func failureMessage(msg string) string {
	if msg != "" {
		return msg
	}
	return "product api request failed"
}
