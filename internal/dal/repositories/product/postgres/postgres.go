package postgresrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backoffice/internal/dal/postgres"
	"github.com/corray333/backoffice/internal/service/models/product"
	"github.com/corray333/backoffice/internal/service/models/unit"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductDal represents the product data access layer model.
type ProductDal struct {
	Id             uuid.UUID  `db:"id"`
	Name           string     `db:"name"`
	Enabled        bool       `db:"enabled"`
	Description    *string    `db:"description"`
	PriceCents     int64      `db:"price_cents"`
	BasePriceCents *int64     `db:"base_price_cents"`
	Quantity       int        `db:"quantity"`
	MinQuantity    *int       `db:"min_quantity"`
	Barcode        *string    `db:"barcode"`
	BaseUnit       *string    `db:"base_unit"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}

// ToModel converts ProductDal to the service layer Product model.
func (p *ProductDal) ToModel() *product.Product {
	return &product.Product{
		ID:             p.Id,
		Name:           p.Name,
		Enabled:        p.Enabled,
		Description:    p.Description,
		PriceCents:     p.PriceCents,
		BasePriceCents: p.BasePriceCents,
		Quantity:       p.Quantity,
		MinQuantity:    p.MinQuantity,
		Barcode:        p.Barcode,
		BaseUnit:       p.BaseUnit,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		DeletedAt:      p.DeletedAt,
		Units:          []unit.Unit{}, // populated separately
	}
}

var productColumns = []string{
	"id",
	"name",
	"enabled",
	"description",
	"price_cents",
	"base_price_cents",
	"quantity",
	"min_quantity",
	"barcode",
	"base_unit",
	"created_at",
	"updated_at",
	"deleted_at",
}

// Repository is the Postgres product repository.
type Repository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewRepository creates a new Postgres product repository.
func NewRepository(conn postgres.Conn) *Repository {
	return &Repository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanProduct(row pgx.Row) (*product.Product, error) {
	var dal ProductDal
	err := row.Scan(
		&dal.Id,
		&dal.Name,
		&dal.Enabled,
		&dal.Description,
		&dal.PriceCents,
		&dal.BasePriceCents,
		&dal.Quantity,
		&dal.MinQuantity,
		&dal.Barcode,
		&dal.BaseUnit,
		&dal.CreatedAt,
		&dal.UpdatedAt,
		&dal.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	return dal.ToModel(), nil
}

// Insert stores a new product. Units are managed by the unit repository.
func (r *Repository) Insert(ctx context.Context, p product.Product) (product.Product, error) {
	query, args, err := r.sb.Insert("products").
		Columns(
			"name",
			"enabled",
			"description",
			"price_cents",
			"base_price_cents",
			"quantity",
			"min_quantity",
			"barcode",
			"base_unit",
			"created_at",
			"updated_at",
		).
		Values(
			p.Name,
			p.Enabled,
			p.Description,
			p.PriceCents,
			p.BasePriceCents,
			p.Quantity,
			p.MinQuantity,
			p.Barcode,
			p.BaseUnit,
			p.CreatedAt,
			p.UpdatedAt,
		).
		Suffix("RETURNING " + strings.Join(productColumns, ", ")).
		ToSql()
	if err != nil {
		return product.Product{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	saved, err := scanProduct(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		return product.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}

	return *saved, nil
}

// Update overwrites the mutable columns of a product.
func (r *Repository) Update(ctx context.Context, p product.Product) (product.Product, error) {
	query, args, err := r.sb.Update("products").
		Set("name", p.Name).
		Set("enabled", p.Enabled).
		Set("description", p.Description).
		Set("price_cents", p.PriceCents).
		Set("base_price_cents", p.BasePriceCents).
		Set("quantity", p.Quantity).
		Set("min_quantity", p.MinQuantity).
		Set("barcode", p.Barcode).
		Set("base_unit", p.BaseUnit).
		Set("updated_at", p.UpdatedAt).
		Where(sq.Eq{"id": p.ID}).
		Where("deleted_at IS NULL").
		Suffix("RETURNING " + strings.Join(productColumns, ", ")).
		ToSql()
	if err != nil {
		return product.Product{}, fmt.Errorf("failed to build update query: %w", err)
	}

	saved, err := scanProduct(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		return product.Product{}, fmt.Errorf("failed to update product: %w", err)
	}

	saved.Units = p.Units

	return *saved, nil
}

// GetByID returns one product with its units, or nil when absent.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	products, err := r.GetByIDs(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}

	return &products[0], nil
}

// GetByIDs retrieves products with their units in two bulk queries.
func (r *Repository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]product.Product, error) {
	if len(ids) == 0 {
		return []product.Product{}, nil
	}

	query, args, err := r.sb.Select(productColumns...).
		From("products").
		Where(sq.Eq{"id": ids}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	products, err := r.queryProducts(ctx, query, args)
	if err != nil {
		return nil, err
	}

	return r.attachUnits(ctx, products)
}

// Query retrieves products based on filter criteria.
func (r *Repository) Query(ctx context.Context, filter *product.QueryProductsModel) ([]product.Product, error) {
	builder := r.sb.Select(productColumns...).
		From("products").
		Where("deleted_at IS NULL")

	builder = applyFilter(builder, filter)

	switch filter.SortBy {
	case product.SortByPriceAsc:
		builder = builder.OrderBy("price_cents ASC")
	case product.SortByPriceDesc:
		builder = builder.OrderBy("price_cents DESC")
	default:
		builder = builder.OrderBy("created_at DESC")
	}

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

	products, err := r.queryProducts(ctx, query, args)
	if err != nil {
		return nil, err
	}

	return r.attachUnits(ctx, products)
}

// Count returns the number of products matching the filter, ignoring pagination.
func (r *Repository) Count(ctx context.Context, filter *product.QueryProductsModel) (int64, error) {
	builder := r.sb.Select("COUNT(*)").
		From("products").
		Where("deleted_at IS NULL")

	builder = applyFilter(builder, filter)

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int64
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return count, nil
}

// SoftDelete marks the product deleted. Returns false when absent.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID, deletedAt time.Time) (bool, error) {
	query, args, err := r.sb.Update("products").
		Set("deleted_at", deletedAt).
		Where(sq.Eq{"id": id}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to soft delete product: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *Repository) queryProducts(ctx context.Context, query string, args []interface{}) ([]product.Product, error) {
	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var result []product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		result = append(result, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

func (r *Repository) attachUnits(ctx context.Context, products []product.Product) ([]product.Product, error) {
	if len(products) == 0 {
		return products, nil
	}

	ids := make([]uuid.UUID, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	query, args, err := r.sb.
		Select("id", "product_id", "name", "weight", "fractional_weight", "price_cents", "enabled", "deleted_at").
		From("units").
		Where(sq.Eq{"product_id": ids}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build units query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query units: %w", err)
	}
	defer rows.Close()

	byProduct := make(map[uuid.UUID][]unit.Unit)
	for rows.Next() {
		var u unit.Unit
		err := rows.Scan(
			&u.ID,
			&u.ProductID,
			&u.Name,
			&u.Weight,
			&u.FractionalWeight,
			&u.PriceCents,
			&u.Enabled,
			&u.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan unit: %w", err)
		}
		byProduct[u.ProductID] = append(byProduct[u.ProductID], u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	for i := range products {
		if units, ok := byProduct[products[i].ID]; ok {
			products[i].Units = units
		}
	}

	return products, nil
}

func applyFilter(builder sq.SelectBuilder, filter *product.QueryProductsModel) sq.SelectBuilder {
	if filter.Name != "" {
		builder = builder.Where(sq.ILike{"name": "%" + filter.Name + "%"})
	}
	if filter.PriceFromCents != nil {
		builder = builder.Where(sq.GtOrEq{"price_cents": *filter.PriceFromCents})
	}
	if filter.PriceToCents != nil {
		builder = builder.Where(sq.LtOrEq{"price_cents": *filter.PriceToCents})
	}

	return builder
}
