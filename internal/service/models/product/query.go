package product

// SortBy selects the ordering of product listings.
type SortBy string

const (
	SortByTime      SortBy = "time"
	SortByPriceAsc  SortBy = "price-asc"
	SortByPriceDesc SortBy = "price-desc"
)

// ParseSortBy falls back to newest-first for unknown values.
func ParseSortBy(s string) SortBy {
	switch SortBy(s) {
	case SortByPriceAsc, SortByPriceDesc:
		return SortBy(s)
	default:
		return SortByTime
	}
}

// QueryProductsModel represents filter parameters for querying products.
type QueryProductsModel struct {
	Name           string `json:"name,omitempty"`
	PriceFromCents *int64 `json:"priceFromCents,omitempty"`
	PriceToCents   *int64 `json:"priceToCents,omitempty"`
	SortBy         SortBy `json:"sortBy,omitempty"`
	Limit          int    `json:"limit,omitempty"`
	Offset         int    `json:"offset,omitempty"`
}
