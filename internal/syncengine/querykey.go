package syncengine

import (
	"sort"
	"strconv"
	"strings"

	"github.com/nguyentranbao-ct/product-dash/internal/models"
)

// QueryKey canonicalizes params into a cache key. Two parameter sets with the
// same effective fields always map to the same key: pairs are sorted and
// absent or zero-valued fields are skipped, so assembly order and "unset vs
// empty" distinctions never split the cache.
func QueryKey(p models.SearchParams) string {
	pairs := make([]string, 0, 11)
	add := func(k, v string) {
		if v != "" {
			pairs = append(pairs, k+"="+v)
		}
	}

	add("query", p.Query)
	add("category", p.Filters.Category)
	add("brand", p.Filters.Brand)
	add("availability", p.Filters.Availability)
	add("date_from", p.Filters.DateFrom)
	add("date_to", p.Filters.DateTo)
	if p.Filters.MinPrice != nil {
		add("min_price", strconv.FormatFloat(*p.Filters.MinPrice, 'f', -1, 64))
	}
	if p.Filters.MaxPrice != nil {
		add("max_price", strconv.FormatFloat(*p.Filters.MaxPrice, 'f', -1, 64))
	}
	if p.Sort != nil && p.Sort.Field != "" {
		add("sort", p.Sort.Field+":"+p.Sort.Order)
	}
	if p.Page > 0 {
		add("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		add("per_page", strconv.Itoa(p.PerPage))
	}

	sort.Strings(pairs)
	return strings.Join(pairs, "&")
}
