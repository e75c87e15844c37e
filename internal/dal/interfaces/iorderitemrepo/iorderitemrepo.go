package iorderitemrepo

import (
	"context"

	"github.com/corray333/backoffice/internal/service/models/orderitem"
	"github.com/google/uuid"
)

// Repository is the Postgres repository for order items.
type Repository interface {
	BulkInsert(ctx context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error)
	BulkUpdate(ctx context.Context, items []orderitem.OrderItem) error
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]orderitem.OrderItem, error)
	ListByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) ([]orderitem.OrderItem, error)
}
