package syncengine

import (
	"testing"

	"github.com/nguyentranbao-ct/product-dash/internal/models"
	"github.com/nguyentranbao-ct/product-dash/pkg/util"
	"github.com/stretchr/testify/assert"
)

func TestQueryKeyEquivalence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    models.SearchParams
		b    models.SearchParams
	}{
		{
			name: "zero values equal absent values",
			a:    models.SearchParams{Query: "phone"},
			b:    models.SearchParams{Query: "phone", Filters: models.Filters{Category: "", Brand: ""}},
		},
		{
			name: "empty sort equals no sort",
			a:    models.SearchParams{Query: "phone", Sort: &models.SortSpec{}},
			b:    models.SearchParams{Query: "phone"},
		},
		{
			name: "pointer identity does not matter",
			a:    models.SearchParams{Filters: models.Filters{MinPrice: util.Ptr(9.99)}},
			b:    models.SearchParams{Filters: models.Filters{MinPrice: util.Ptr(9.99)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, QueryKey(tt.a), QueryKey(tt.b))
		})
	}
}

func TestQueryKeyDiscriminates(t *testing.T) {
	t.Parallel()

	base := models.SearchParams{Query: "phone", Page: 1, PerPage: 12}

	variants := []models.SearchParams{
		{Query: "laptop", Page: 1, PerPage: 12},
		{Query: "phone", Page: 2, PerPage: 12},
		{Query: "phone", Page: 1, PerPage: 24},
		{Query: "phone", Page: 1, PerPage: 12, Filters: models.Filters{Brand: "acme"}},
		{Query: "phone", Page: 1, PerPage: 12, Sort: &models.SortSpec{Field: "price", Order: "asc"}},
		{Query: "phone", Page: 1, PerPage: 12, Filters: models.Filters{MaxPrice: util.Ptr(100.0)}},
	}

	baseKey := QueryKey(base)
	for _, v := range variants {
		assert.NotEqual(t, baseKey, QueryKey(v), "params %+v must get a distinct key", v)
	}
}

func TestQueryKeyDeterministic(t *testing.T) {
	t.Parallel()

	params := models.SearchParams{
		Query: "phone",
		Filters: models.Filters{
			Category:     "electronics",
			Brand:        "acme",
			MinPrice:     util.Ptr(10.5),
			MaxPrice:     util.Ptr(99.0),
			Availability: "in_stock",
			DateFrom:     "2026-01-01",
			DateTo:       "2026-02-01",
		},
		Sort:    &models.SortSpec{Field: "price", Order: "desc"},
		Page:    3,
		PerPage: 24,
	}

	key := QueryKey(params)
	for range 10 {
		assert.Equal(t, key, QueryKey(params))
	}
	assert.NotEmpty(t, key)
}
