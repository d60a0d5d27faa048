package models

// SearchParams is the full parameter set for a product listing request.
// It is a value type: two values with the same effective fields are the same
// query regardless of how they were assembled.
type SearchParams struct {
	Query   string    `json:"query,omitempty"`
	Filters Filters   `json:"filters,omitempty"`
	Sort    *SortSpec `json:"sort,omitempty"`
	Page    int       `json:"page,omitempty"`
	PerPage int       `json:"per_page,omitempty"`
}

type Filters struct {
	Category     string   `json:"category,omitempty"`
	Brand        string   `json:"brand,omitempty"`
	MinPrice     *float64 `json:"min_price,omitempty"`
	MaxPrice     *float64 `json:"max_price,omitempty"`
	Availability string   `json:"availability,omitempty"`
	DateFrom     string   `json:"date_from,omitempty"`
	DateTo       string   `json:"date_to,omitempty"`
}

type SortSpec struct {
	Field string `json:"field"`
	Order string `json:"order"` // "asc" or "desc"
}

// ParamsPatch is a partial SearchParams update. Nil fields are left as-is,
// non-nil fields replace the current value shallowly. Merging does not
// trigger a fetch; callers batch patches and then dispatch explicitly.
type ParamsPatch struct {
	Query   *string   `json:"query,omitempty"`
	Filters *Filters  `json:"filters,omitempty"`
	Sort    *SortSpec `json:"sort,omitempty"`
	Page    *int      `json:"page,omitempty"`
	PerPage *int      `json:"per_page,omitempty"`
}

// Merge returns a copy of p with the patch applied.
func (p SearchParams) Merge(patch ParamsPatch) SearchParams {
	out := p
	if patch.Query != nil {
		out.Query = *patch.Query
	}
	if patch.Filters != nil {
		out.Filters = *patch.Filters
	}
	if patch.Sort != nil {
		out.Sort = patch.Sort
	}
	if patch.Page != nil {
		out.Page = *patch.Page
	}
	if patch.PerPage != nil {
		out.PerPage = *patch.PerPage
	}
	return out
}

// WithPage returns a copy of p pointed at the given page.
func (p SearchParams) WithPage(page int) SearchParams {
	p.Page = page
	return p
}
