package user

import (
	"time"

	"github.com/google/uuid"
)

// Role distinguishes customers from staff. Admin is the second staff tier.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

// IsStaff reports whether the role belongs to either staff tier.
func (r Role) IsStaff() bool {
	return r == RoleStaff || r == RoleAdmin
}

// User is an actor in the system: a customer placing orders or a staff
// member operating the back office.
type User struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     *string    `json:"email,omitempty"`
	Phone     string     `json:"phone"`
	Role      Role       `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
