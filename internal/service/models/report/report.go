package report

// RangeType selects the reporting period granularity.
type RangeType string

const (
	RangeDay   RangeType = "day"
	RangeWeek  RangeType = "week"
	RangeMonth RangeType = "month"
)

// ParseRange falls back to month for unknown values, matching the default
// period of the dashboards.
func ParseRange(s string) RangeType {
	switch RangeType(s) {
	case RangeDay, RangeWeek:
		return RangeType(s)
	default:
		return RangeMonth
	}
}

// Metric selects what a chart aggregates.
type Metric string

const (
	MetricRevenue  Metric = "revenue"
	MetricProfit   Metric = "profit"
	MetricOrders   Metric = "orders"
	MetricProducts Metric = "products"
)

// Summary is the dashboard headline for one period. Profit and ProductsSold
// are fractional because sub-unit sales convert through unit weights.
type Summary struct {
	RevenueCents int64   `json:"revenueCents"`
	ProfitCents  float64 `json:"profitCents"`
	OrdersCount  int64   `json:"ordersCount"`
	ProductsSold float64 `json:"productsSold"`
}

// TopSoldItem is one row of the best-seller listing.
type TopSoldItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	AmountSold  float64 `json:"amountSold"`
}

// ChartItem is one bucket of a chart series.
type ChartItem struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}
