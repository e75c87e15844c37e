package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backoffice/internal/dal/postgres"
	"github.com/corray333/backoffice/internal/service/models/orderitem"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OrderItemDal represents the order item data access layer model.
type OrderItemDal struct {
	Id         uuid.UUID  `db:"id"`
	OrderId    uuid.UUID  `db:"order_id"`
	ProductId  uuid.UUID  `db:"product_id"`
	UnitId     *uuid.UUID `db:"unit_id"`
	UnitName   *string    `db:"unit_name"`
	Quantity   int        `db:"quantity"`
	PriceCents int64      `db:"price_cents"`
	TotalCents int64      `db:"total_cents"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
}

// ToModel converts OrderItemDal to the service layer OrderItem model.
func (oi *OrderItemDal) ToModel() *orderitem.OrderItem {
	return &orderitem.OrderItem{
		ID:         oi.Id,
		OrderID:    oi.OrderId,
		ProductID:  oi.ProductId,
		UnitID:     oi.UnitId,
		UnitName:   oi.UnitName,
		Quantity:   oi.Quantity,
		PriceCents: oi.PriceCents,
		TotalCents: oi.TotalCents,
		CreatedAt:  oi.CreatedAt,
		UpdatedAt:  oi.UpdatedAt,
	}
}

// Repository is the Postgres order item repository.
type Repository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewRepository creates a new Postgres order item repository.
func NewRepository(conn postgres.Conn) *Repository {
	return &Repository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

const selectWithUnitName = `
	SELECT oi.id, oi.order_id, oi.product_id, oi.unit_id, u.name,
	       oi.quantity, oi.price_cents, oi.total_cents, oi.created_at, oi.updated_at
	FROM order_items oi
	LEFT JOIN units u ON u.id = oi.unit_id
`

func scanItems(rows pgx.Rows) ([]orderitem.OrderItem, error) {
	defer rows.Close()

	var result []orderitem.OrderItem
	for rows.Next() {
		var dal OrderItemDal
		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.ProductId,
			&dal.UnitId,
			&dal.UnitName,
			&dal.Quantity,
			&dal.PriceCents,
			&dal.TotalCents,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// BulkInsert inserts multiple order items and returns them with generated IDs.
func (r *Repository) BulkInsert(ctx context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error) {
	if len(items) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	builder := r.sb.Insert("order_items").
		Columns(
			"order_id",
			"product_id",
			"unit_id",
			"quantity",
			"price_cents",
			"total_cents",
			"created_at",
			"updated_at",
		)

	for _, item := range items {
		builder = builder.Values(
			item.OrderID,
			item.ProductID,
			item.UnitID,
			item.Quantity,
			item.PriceCents,
			item.TotalCents,
			item.CreatedAt,
			item.UpdatedAt,
		)
	}

	query, args, err := builder.
		Suffix("RETURNING id, order_id, product_id, unit_id, quantity, price_cents, total_cents, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert order items: %w", err)
	}
	defer rows.Close()

	unitNames := unitNamesByID(items)

	var result []orderitem.OrderItem
	for rows.Next() {
		var dal OrderItemDal
		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.ProductId,
			&dal.UnitId,
			&dal.Quantity,
			&dal.PriceCents,
			&dal.TotalCents,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		model := dal.ToModel()
		if dal.UnitId != nil {
			if name, ok := unitNames[*dal.UnitId]; ok {
				model.UnitName = &name
			}
		}
		result = append(result, *model)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// unitNamesByID indexes the denormalized unit names of the given items by
// unit id. RETURNING gives no ordering guarantee, so names are re-attached
// to the returned rows by unit id rather than by position.
func unitNamesByID(items []orderitem.OrderItem) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string)
	for _, item := range items {
		if item.UnitID != nil && item.UnitName != nil {
			names[*item.UnitID] = *item.UnitName
		}
	}

	return names
}

// BulkUpdate overwrites unit reference, quantity, price and total of the
// given items.
func (r *Repository) BulkUpdate(ctx context.Context, items []orderitem.OrderItem) error {
	for _, item := range items {
		query, args, err := r.sb.Update("order_items").
			Set("unit_id", item.UnitID).
			Set("quantity", item.Quantity).
			Set("price_cents", item.PriceCents).
			Set("total_cents", item.TotalCents).
			Set("updated_at", item.UpdatedAt).
			Where(sq.Eq{"id": item.ID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update query: %w", err)
		}

		if _, err := r.conn.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to update order item %s: %w", item.ID, err)
		}
	}

	return nil
}

// GetByIDs retrieves order items by their ids.
func (r *Repository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]orderitem.OrderItem, error) {
	if len(ids) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	rows, err := r.conn.Query(ctx, selectWithUnitName+" WHERE oi.id = ANY($1)", ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}

	return scanItems(rows)
}

// ListByOrderIDs retrieves all items belonging to the given orders.
func (r *Repository) ListByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) ([]orderitem.OrderItem, error) {
	if len(orderIDs) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	rows, err := r.conn.Query(ctx, selectWithUnitName+" WHERE oi.order_id = ANY($1) ORDER BY oi.created_at", orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}

	return scanItems(rows)
}
