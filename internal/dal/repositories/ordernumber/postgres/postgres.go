package postgresrepo

import (
	"context"
	"fmt"

	"github.com/corray333/backoffice/internal/dal/postgres"
)

// Repository allocates sequential order numbers from per-month counter rows.
type Repository struct {
	conn postgres.Conn
}

// NewRepository creates a new Postgres order number repository.
func NewRepository(conn postgres.Conn) *Repository {
	return &Repository{conn: conn}
}

// Next increments and returns the counter for the given month prefix.
// The upsert takes a row lock, so concurrent transactions allocating numbers
// for the same month are serialized until commit; two orders can never be
// handed the same number. Counters only grow: numbers of deleted orders stay
// consumed.
func (r *Repository) Next(ctx context.Context, prefix string) (int64, error) {
	const query = `
		INSERT INTO order_counters (prefix, last_number)
		VALUES ($1, 1)
		ON CONFLICT (prefix)
		DO UPDATE SET last_number = order_counters.last_number + 1
		RETURNING last_number
	`

	var lastNumber int64
	if err := r.conn.QueryRow(ctx, query, prefix).Scan(&lastNumber); err != nil {
		return 0, fmt.Errorf("failed to allocate order number: %w", err)
	}

	return lastNumber, nil
}
