package ireportrepo

import (
	"context"
	"time"

	"github.com/corray333/backoffice/internal/service/models/report"
)

// Bucket is the time component charts group by.
type Bucket string

const (
	BucketHour Bucket = "hour"
	BucketDow  Bucket = "dow"
	BucketDay  Bucket = "day"
)

// Repository runs the read-only reporting rollups. All queries exclude
// soft-deleted orders.
type Repository interface {
	OrdersSummary(ctx context.Context, start, end time.Time) (revenueCents, ordersCount int64, err error)
	ItemsSummary(ctx context.Context, start, end time.Time) (profitCents, amountSold float64, err error)
	TopSold(ctx context.Context, start, end time.Time, limit int) ([]report.TopSoldItem, error)
	OrdersByBucket(ctx context.Context, start, end time.Time, bucket Bucket, tz string, metric report.Metric) (map[int]float64, error)
	ItemsByBucket(ctx context.Context, start, end time.Time, bucket Bucket, tz string, metric report.Metric) (map[int]float64, error)
}
