package iuserrepo

import (
	"context"

	"github.com/corray333/backoffice/internal/service/models/user"
	"github.com/google/uuid"
)

// Repository is the Postgres repository for users.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	Query(ctx context.Context, limit, offset int) ([]user.User, error)
}
