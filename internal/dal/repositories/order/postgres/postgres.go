package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backoffice/internal/dal/postgres"
	"github.com/corray333/backoffice/internal/service/models/order"
	"github.com/corray333/backoffice/internal/service/models/orderitem"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OrderDal represents the order data access layer model.
type OrderDal struct {
	Id           uuid.UUID  `db:"id"`
	Name         string     `db:"name"`
	Status       string     `db:"status"`
	TotalCents   int64      `db:"total_cents"`
	Address      *string    `db:"address"`
	Phone        *string    `db:"phone"`
	Email        *string    `db:"email"`
	CustomerName *string    `db:"customer_name"`
	CustomerId   *uuid.UUID `db:"customer_id"`
	StaffId      *uuid.UUID `db:"staff_id"`
	UpdatedBy    *uuid.UUID `db:"updated_by"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", o.Id, err)
	}

	return &order.Order{
		ID:           o.Id,
		Name:         o.Name,
		Status:       status,
		TotalCents:   o.TotalCents,
		Address:      o.Address,
		Phone:        o.Phone,
		Email:        o.Email,
		CustomerName: o.CustomerName,
		CustomerID:   o.CustomerId,
		StaffID:      o.StaffId,
		UpdatedBy:    o.UpdatedBy,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
		DeletedAt:    o.DeletedAt,
		Items:        []orderitem.OrderItem{}, // populated separately
	}, nil
}

var orderColumns = []string{
	"id",
	"name",
	"status",
	"total_cents",
	"address",
	"phone",
	"email",
	"customer_name",
	"customer_id",
	"staff_id",
	"updated_by",
	"created_at",
	"updated_at",
	"deleted_at",
}

// Repository is the Postgres order repository.
type Repository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewRepository creates a new Postgres order repository.
func NewRepository(conn postgres.Conn) *Repository {
	return &Repository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanOrder(row pgx.Row) (*order.Order, error) {
	var dal OrderDal
	err := row.Scan(
		&dal.Id,
		&dal.Name,
		&dal.Status,
		&dal.TotalCents,
		&dal.Address,
		&dal.Phone,
		&dal.Email,
		&dal.CustomerName,
		&dal.CustomerId,
		&dal.StaffId,
		&dal.UpdatedBy,
		&dal.CreatedAt,
		&dal.UpdatedAt,
		&dal.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	return dal.ToModel()
}

// Insert stores a new order and returns it with generated fields populated.
func (r *Repository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	query, args, err := r.sb.Insert("orders").
		Columns(
			"name",
			"status",
			"total_cents",
			"address",
			"phone",
			"email",
			"customer_name",
			"customer_id",
			"staff_id",
			"updated_by",
			"created_at",
			"updated_at",
		).
		Values(
			o.Name,
			o.Status.String(),
			o.TotalCents,
			o.Address,
			o.Phone,
			o.Email,
			o.CustomerName,
			o.CustomerID,
			o.StaffID,
			o.UpdatedBy,
			o.CreatedAt,
			o.UpdatedAt,
		).
		Suffix("RETURNING " + strings.Join(orderColumns, ", ")).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	saved, err := scanOrder(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	saved.Items = o.Items

	return *saved, nil
}

// Update overwrites the mutable columns of an order.
func (r *Repository) Update(ctx context.Context, o order.Order) (order.Order, error) {
	query, args, err := r.sb.Update("orders").
		Set("status", o.Status.String()).
		Set("total_cents", o.TotalCents).
		Set("address", o.Address).
		Set("phone", o.Phone).
		Set("email", o.Email).
		Set("customer_name", o.CustomerName).
		Set("staff_id", o.StaffID).
		Set("updated_by", o.UpdatedBy).
		Set("updated_at", o.UpdatedAt).
		Where(sq.Eq{"id": o.ID}).
		Where("deleted_at IS NULL").
		Suffix("RETURNING " + strings.Join(orderColumns, ", ")).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build update query: %w", err)
	}

	saved, err := scanOrder(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to update order: %w", err)
	}

	saved.Items = o.Items

	return *saved, nil
}

// GetByID returns one order or nil when absent (or soft-deleted).
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	query, args, err := r.sb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	o, err := scanOrder(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return o, nil
}

// Query retrieves orders based on filter criteria, newest first.
func (r *Repository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	builder := r.sb.Select(orderColumns...).
		From("orders").
		Where("deleted_at IS NULL").
		OrderBy("created_at DESC")

	builder = applyFilter(builder, filter)

	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		result = append(result, *o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Count returns the number of orders matching the filter, ignoring pagination.
func (r *Repository) Count(ctx context.Context, filter *order.QueryOrdersModel) (int64, error) {
	builder := r.sb.Select("COUNT(*)").
		From("orders").
		Where("deleted_at IS NULL")

	builder = applyFilter(builder, filter)

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int64
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return count, nil
}

// SoftDelete marks the order deleted and records the deleting actor.
// Returns false when the order does not exist or is already deleted.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID, deletedAt time.Time, deletedBy uuid.UUID) (bool, error) {
	query, args, err := r.sb.Update("orders").
		Set("deleted_at", deletedAt).
		Set("updated_by", deletedBy).
		Where(sq.Eq{"id": id}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to soft delete order: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func applyFilter(builder sq.SelectBuilder, filter *order.QueryOrdersModel) sq.SelectBuilder {
	if len(filter.Ids) > 0 {
		builder = builder.Where(sq.Eq{"id": filter.Ids})
	}
	if len(filter.CustomerIds) > 0 {
		builder = builder.Where(sq.Eq{"customer_id": filter.CustomerIds})
	}
	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"status": filter.Status.String()})
	}

	return builder
}
