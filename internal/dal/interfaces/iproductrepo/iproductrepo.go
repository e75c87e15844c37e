package iproductrepo

import (
	"context"
	"time"

	"github.com/corray333/backoffice/internal/service/models/product"
	"github.com/google/uuid"
)

// Repository is the Postgres repository for products. Reads include each
// product's units.
type Repository interface {
	Insert(ctx context.Context, p product.Product) (product.Product, error)
	Update(ctx context.Context, p product.Product) (product.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]product.Product, error)
	Query(ctx context.Context, filter *product.QueryProductsModel) ([]product.Product, error)
	Count(ctx context.Context, filter *product.QueryProductsModel) (int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID, deletedAt time.Time) (bool, error)
}
