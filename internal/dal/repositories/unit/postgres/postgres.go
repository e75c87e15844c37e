package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backoffice/internal/dal/postgres"
	"github.com/corray333/backoffice/internal/service/models/unit"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UnitDal represents the unit data access layer model.
type UnitDal struct {
	Id               uuid.UUID  `db:"id"`
	ProductId        uuid.UUID  `db:"product_id"`
	Name             string     `db:"name"`
	Weight           *float64   `db:"weight"`
	FractionalWeight *float64   `db:"fractional_weight"`
	PriceCents       int64      `db:"price_cents"`
	Enabled          bool       `db:"enabled"`
	DeletedAt        *time.Time `db:"deleted_at"`
}

// ToModel converts UnitDal to the service layer Unit model.
func (u *UnitDal) ToModel() *unit.Unit {
	return &unit.Unit{
		ID:               u.Id,
		ProductID:        u.ProductId,
		Name:             u.Name,
		Weight:           u.Weight,
		FractionalWeight: u.FractionalWeight,
		PriceCents:       u.PriceCents,
		Enabled:          u.Enabled,
		DeletedAt:        u.DeletedAt,
	}
}

// Repository is the Postgres unit repository.
type Repository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewRepository creates a new Postgres unit repository.
func NewRepository(conn postgres.Conn) *Repository {
	return &Repository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var unitColumns = "id, product_id, name, weight, fractional_weight, price_cents, enabled, deleted_at"

func scanUnits(rows pgx.Rows) ([]unit.Unit, error) {
	defer rows.Close()

	var result []unit.Unit
	for rows.Next() {
		var dal UnitDal
		err := rows.Scan(
			&dal.Id,
			&dal.ProductId,
			&dal.Name,
			&dal.Weight,
			&dal.FractionalWeight,
			&dal.PriceCents,
			&dal.Enabled,
			&dal.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan unit: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// BulkInsert inserts multiple units and returns them with generated IDs.
func (r *Repository) BulkInsert(ctx context.Context, units []unit.Unit) ([]unit.Unit, error) {
	if len(units) == 0 {
		return []unit.Unit{}, nil
	}

	builder := r.sb.Insert("units").
		Columns("product_id", "name", "weight", "fractional_weight", "price_cents", "enabled")

	for _, u := range units {
		builder = builder.Values(u.ProductID, u.Name, u.Weight, u.FractionalWeight, u.PriceCents, u.Enabled)
	}

	query, args, err := builder.
		Suffix("RETURNING " + unitColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert units: %w", err)
	}

	return scanUnits(rows)
}

// ListByProductID retrieves the live units of one product.
func (r *Repository) ListByProductID(ctx context.Context, productID uuid.UUID) ([]unit.Unit, error) {
	query, args, err := r.sb.Select(unitColumns).
		From("units").
		Where(sq.Eq{"product_id": productID}).
		Where("deleted_at IS NULL").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query units: %w", err)
	}

	return scanUnits(rows)
}

// SoftDeleteByProductID marks all of a product's units deleted. Used when a
// product's unit list is replaced or the product itself is removed.
func (r *Repository) SoftDeleteByProductID(ctx context.Context, productID uuid.UUID, deletedAt time.Time) error {
	query, args, err := r.sb.Update("units").
		Set("deleted_at", deletedAt).
		Where(sq.Eq{"product_id": productID}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to soft delete units: %w", err)
	}

	return nil
}
