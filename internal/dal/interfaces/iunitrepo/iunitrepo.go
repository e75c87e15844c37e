package iunitrepo

import (
	"context"
	"time"

	"github.com/corray333/backoffice/internal/service/models/unit"
	"github.com/google/uuid"
)

// Repository is the Postgres repository for product units.
type Repository interface {
	BulkInsert(ctx context.Context, units []unit.Unit) ([]unit.Unit, error)
	ListByProductID(ctx context.Context, productID uuid.UUID) ([]unit.Unit, error)
	SoftDeleteByProductID(ctx context.Context, productID uuid.UUID, deletedAt time.Time) error
}
