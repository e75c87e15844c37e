package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backoffice/internal/dal/postgres"
	"github.com/corray333/backoffice/internal/service/models/user"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserDal represents the user data access layer model.
type UserDal struct {
	Id        uuid.UUID  `db:"id"`
	Name      string     `db:"name"`
	Email     *string    `db:"email"`
	Phone     string     `db:"phone"`
	Role      string     `db:"role"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

// ToModel converts UserDal to the service layer User model.
func (u *UserDal) ToModel() *user.User {
	return &user.User{
		ID:        u.Id,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      user.Role(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		DeletedAt: u.DeletedAt,
	}
}

const userColumns = "id, name, email, phone, role, created_at, updated_at, deleted_at"

// Repository is the Postgres user repository.
type Repository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewRepository creates a new Postgres user repository.
func NewRepository(conn postgres.Conn) *Repository {
	return &Repository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanUser(row pgx.Row) (*user.User, error) {
	var dal UserDal
	err := row.Scan(
		&dal.Id,
		&dal.Name,
		&dal.Email,
		&dal.Phone,
		&dal.Role,
		&dal.CreatedAt,
		&dal.UpdatedAt,
		&dal.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	return dal.ToModel(), nil
}

// GetByID returns one user or nil when absent.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query, args, err := r.sb.Select(userColumns).
		From("users").
		Where(sq.Eq{"id": id}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	u, err := scanUser(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// Query retrieves users ordered by creation time, newest first.
func (r *Repository) Query(ctx context.Context, limit, offset int) ([]user.User, error) {
	builder := r.sb.Select(userColumns).
		From("users").
		Where("deleted_at IS NULL").
		OrderBy("created_at DESC")

	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	if offset > 0 {
		builder = builder.Offset(uint64(offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var result []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		result = append(result, *u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
