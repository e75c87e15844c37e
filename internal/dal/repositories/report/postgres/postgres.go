package postgresrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/corray333/backoffice/internal/dal/interfaces/ireportrepo"
	"github.com/corray333/backoffice/internal/dal/postgres"
	"github.com/corray333/backoffice/internal/service/models/report"
)

// Repository runs the reporting rollups directly against Postgres. It only
// reads; reconciliation stays in the order service.
type Repository struct {
	conn postgres.Conn
}

// NewRepository creates a new Postgres report repository.
func NewRepository(conn postgres.Conn) *Repository {
	return &Repository{conn: conn}
}

// profitExpr computes per-piece profit, converting the product's base cost
// into the sold unit via its weight (multiple of base) or fractional weight
// (fraction of base).
const profitExpr = `
	CASE
		WHEN oi.unit_id IS NULL THEN (oi.price_cents - COALESCE(p.base_price_cents, 0))
		WHEN u.weight IS NOT NULL THEN (oi.price_cents - COALESCE(p.base_price_cents, 0) * u.weight)
		WHEN u.fractional_weight IS NOT NULL AND u.fractional_weight <> 0
			THEN (oi.price_cents - COALESCE(p.base_price_cents, 0) / u.fractional_weight)
		ELSE (oi.price_cents - COALESCE(p.base_price_cents, 0))
	END
`

// amountExpr converts one sold piece into base-unit amounts.
const amountExpr = `
	CASE
		WHEN oi.unit_id IS NULL THEN 1
		WHEN u.weight IS NOT NULL THEN u.weight
		WHEN u.fractional_weight IS NOT NULL AND u.fractional_weight <> 0 THEN (1.0 / u.fractional_weight)
		ELSE 1
	END
`

const itemJoins = `
	FROM order_items oi
	INNER JOIN orders o ON o.id = oi.order_id
	INNER JOIN products p ON p.id = oi.product_id
	LEFT JOIN units u ON u.id = oi.unit_id
`

// OrdersSummary returns total revenue and distinct order count for a period.
func (r *Repository) OrdersSummary(ctx context.Context, start, end time.Time) (int64, int64, error) {
	const query = `
		SELECT COALESCE(SUM(o.total_cents), 0), COUNT(DISTINCT o.id)
		FROM orders o
		WHERE o.created_at BETWEEN $1 AND $2 AND o.deleted_at IS NULL
	`

	var revenue, count int64
	if err := r.conn.QueryRow(ctx, query, start, end).Scan(&revenue, &count); err != nil {
		return 0, 0, fmt.Errorf("failed to query orders summary: %w", err)
	}

	return revenue, count, nil
}

// ItemsSummary returns total profit and base-unit amount sold for a period.
func (r *Repository) ItemsSummary(ctx context.Context, start, end time.Time) (float64, float64, error) {
	query := `
		SELECT COALESCE(SUM((` + profitExpr + `) * oi.quantity), 0),
		       COALESCE(SUM((` + amountExpr + `) * oi.quantity), 0)
	` + itemJoins + `
		WHERE o.created_at BETWEEN $1 AND $2 AND o.deleted_at IS NULL
	`

	var profit, amount float64
	if err := r.conn.QueryRow(ctx, query, start, end).Scan(&profit, &amount); err != nil {
		return 0, 0, fmt.Errorf("failed to query items summary: %w", err)
	}

	return profit, amount, nil
}

// TopSold returns the best selling products by base-unit amount.
func (r *Repository) TopSold(ctx context.Context, start, end time.Time, limit int) ([]report.TopSoldItem, error) {
	query := `
		SELECT p.id, p.name, COALESCE(SUM((` + amountExpr + `) * oi.quantity), 0) AS amount_sold
	` + itemJoins + `
		WHERE o.created_at BETWEEN $1 AND $2 AND o.deleted_at IS NULL
		GROUP BY p.id, p.name
		ORDER BY amount_sold DESC
		LIMIT $3
	`

	rows, err := r.conn.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top sold: %w", err)
	}
	defer rows.Close()

	var result []report.TopSoldItem
	for rows.Next() {
		var item report.TopSoldItem
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.AmountSold); err != nil {
			return nil, fmt.Errorf("failed to scan top sold row: %w", err)
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

func bucketExpr(bucket ireportrepo.Bucket, column string) string {
	switch bucket {
	case ireportrepo.BucketHour:
		return fmt.Sprintf("EXTRACT(HOUR FROM %s AT TIME ZONE $3)::int", column)
	case ireportrepo.BucketDow:
		return fmt.Sprintf("EXTRACT(ISODOW FROM %s AT TIME ZONE $3)::int", column)
	default:
		return fmt.Sprintf("EXTRACT(DAY FROM %s AT TIME ZONE $3)::int", column)
	}
}

// OrdersByBucket groups revenue or order counts into chart buckets.
func (r *Repository) OrdersByBucket(ctx context.Context, start, end time.Time, bucket ireportrepo.Bucket, tz string, metric report.Metric) (map[int]float64, error) {
	value := "COALESCE(SUM(o.total_cents), 0)"
	if metric == report.MetricOrders {
		value = "COUNT(DISTINCT o.id)"
	}

	query := `
		SELECT ` + bucketExpr(bucket, "o.created_at") + ` AS bucket, ` + value + `
		FROM orders o
		WHERE o.created_at BETWEEN $1 AND $2 AND o.deleted_at IS NULL
		GROUP BY bucket
	`

	return r.queryBuckets(ctx, query, start, end, tz)
}

// ItemsByBucket groups profit or base-unit amounts into chart buckets.
func (r *Repository) ItemsByBucket(ctx context.Context, start, end time.Time, bucket ireportrepo.Bucket, tz string, metric report.Metric) (map[int]float64, error) {
	value := "COALESCE(SUM((" + amountExpr + ") * oi.quantity), 0)"
	if metric == report.MetricProfit {
		value = "COALESCE(SUM((" + profitExpr + ") * oi.quantity), 0)"
	}

	query := `
		SELECT ` + bucketExpr(bucket, "o.created_at") + ` AS bucket, ` + value + `
	` + itemJoins + `
		WHERE o.created_at BETWEEN $1 AND $2 AND o.deleted_at IS NULL
		GROUP BY bucket
	`

	return r.queryBuckets(ctx, query, start, end, tz)
}

func (r *Repository) queryBuckets(ctx context.Context, query string, start, end time.Time, tz string) (map[int]float64, error) {
	rows, err := r.conn.Query(ctx, query, start, end, tz)
	if err != nil {
		return nil, fmt.Errorf("failed to query chart buckets: %w", err)
	}
	defer rows.Close()

	result := make(map[int]float64)
	for rows.Next() {
		var bucket int
		var value float64
		if err := rows.Scan(&bucket, &value); err != nil {
			return nil, fmt.Errorf("failed to scan chart bucket: %w", err)
		}
		result[bucket] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
