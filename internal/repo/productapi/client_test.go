package productapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/nguyentranbao-ct/product-dash/internal/models"
	"github.com/nguyentranbao-ct/product-dash/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	// No transport-level retries in tests, failures must surface immediately.
	return NewClientWithResty(resty.New(), srv.URL)
}

func TestListProducts(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		var gotQuery map[string][]string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query()
			assert.Equal(t, "/api/products", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(models.ListResponse{
				Success: true,
				Data: &models.ProductPage{
					Items: []models.Product{
						{ID: 1, Title: "phone", Price: 99.5, Status: models.ProductStatusActive},
					},
					Pagination: models.Pagination{CurrentPage: 2, LastPage: 5, PerPage: 1, Total: 5, HasNextPage: true, HasPrevPage: true},
				},
			})
		})

		page, err := client.ListProducts(context.Background(), models.SearchParams{
			Query:   "phone",
			Page:    2,
			PerPage: 1,
			Filters: models.Filters{Brand: "acme", MinPrice: util.Ptr(10.0)},
			Sort:    &models.SortSpec{Field: "price", Order: "asc"},
		})
		require.NoError(t, err)

		require.Len(t, page.Items, 1)
		assert.Equal(t, "phone", page.Items[0].Title)
		assert.Equal(t, 2, page.Pagination.CurrentPage)
		assert.True(t, page.Pagination.HasNextPage)

		assert.Equal(t, "phone", gotQuery["query"][0])
		assert.Equal(t, "2", gotQuery["page"][0])
		assert.Equal(t, "1", gotQuery["per_page"][0])

		var filters models.Filters
		require.NoError(t, json.Unmarshal([]byte(gotQuery["filters"][0]), &filters), "filters travel as JSON")
		assert.Equal(t, "acme", filters.Brand)

		var sort models.SortSpec
		require.NoError(t, json.Unmarshal([]byte(gotQuery["sort"][0]), &sort))
		assert.Equal(t, "price", sort.Field)
	})

	t.Run("http failure carries status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		})

		_, err := client.ListProducts(context.Background(), models.SearchParams{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("envelope failure uses server message", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(models.ListResponse{
				Success: false,
				Message: "scraper offline",
			})
		})

		_, err := client.ListProducts(context.Background(), models.SearchParams{})
		require.Error(t, err)
		assert.Equal(t, "scraper offline", err.Error())
	})

	t.Run("envelope failure without message gets default", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(models.ListResponse{Success: true})
		})

		_, err := client.ListProducts(context.Background(), models.SearchParams{})
		require.Error(t, err)
		assert.Equal(t, "product api request failed", err.Error())
	})
}

func TestGetProduct(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/products/42", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(models.DetailResponse{
				Success: true,
				Data:    &models.Product{ID: 42, Title: "phone"},
			})
		})

		product, err := client.GetProduct(context.Background(), 42)
		require.NoError(t, err)
		assert.Equal(t, int64(42), product.ID)
	})

	t.Run("not found", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusNotFound)
		})

		_, err := client.GetProduct(context.Background(), 7)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestTriggerScrape(t *testing.T) {
	t.Parallel()

	t.Run("accepted", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/scrape", r.URL.Path)

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "https://example.com/p/1", body["url"])

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(models.ScrapeResponse{Success: true, Message: "scrape queued"})
		})

		resp, err := client.TriggerScrape(context.Background(), "https://example.com/p/1")
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, "scrape queued", resp.Message)
	})

	t.Run("backend validation errors pass through", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(models.ScrapeResponse{
				Success: false,
				Message: "validation failed",
				Errors:  map[string][]string{"url": {"unsupported host"}},
			})
		})

		resp, err := client.TriggerScrape(context.Background(), "https://example.com")
		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, []string{"unsupported host"}, resp.Errors["url"])
	})
}
