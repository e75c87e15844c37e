package iorderrepo

import (
	"context"
	"time"

	"github.com/corray333/backoffice/internal/service/models/order"
	"github.com/google/uuid"
)

// Repository is the Postgres repository for orders.
type Repository interface {
	Insert(ctx context.Context, o order.Order) (order.Order, error)
	Update(ctx context.Context, o order.Order) (order.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	Count(ctx context.Context, filter *order.QueryOrdersModel) (int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID, deletedAt time.Time, deletedBy uuid.UUID) (bool, error)
}
