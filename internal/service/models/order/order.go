package order

import (
	"time"

	"github.com/corray333/backoffice/internal/service/models/orderitem"
	"github.com/google/uuid"
)

// Order represents a customer order in the system.
type Order struct {
	ID           uuid.UUID             `json:"id"`
	Name         string                `json:"name"`
	Status       Status                `json:"status"`
	TotalCents   int64                 `json:"totalCents"`
	Address      *string               `json:"address,omitempty"`
	Phone        *string               `json:"phone,omitempty"`
	Email        *string               `json:"email,omitempty"`
	CustomerName *string               `json:"customerName,omitempty"`
	CustomerID   *uuid.UUID            `json:"customerId,omitempty"`
	StaffID      *uuid.UUID            `json:"staffId,omitempty"`
	UpdatedBy    *uuid.UUID            `json:"updatedBy,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
	DeletedAt    *time.Time            `json:"deletedAt,omitempty"`
	Items        []orderitem.OrderItem `json:"items"`
}

// AuditModule is the module name audit entries for orders are recorded under.
const AuditModule = "Order"

// AuditSnapshot returns the current values of the order's audited fields.
// Keys match the audited-field declaration in the auditlog package.
func (o *Order) AuditSnapshot() map[string]*string {
	status := string(o.Status)

	return map[string]*string{
		"status":       &status,
		"address":      o.Address,
		"phone":        o.Phone,
		"email":        o.Email,
		"customerName": o.CustomerName,
	}
}
