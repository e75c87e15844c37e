package ordersvc

import (
	"context"

	"github.com/corray333/backoffice/internal/dal/interfaces/iauditrepo"
	"github.com/corray333/backoffice/internal/dal/interfaces/iordernumrepo"
	"github.com/corray333/backoffice/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/backoffice/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backoffice/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/backoffice/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/backoffice/internal/dal/interfaces/iuserrepo"
	"github.com/corray333/backoffice/internal/dal/postgres"
	"github.com/corray333/backoffice/internal/dal/uow"
	"github.com/google/uuid"
)

// OrderService orchestrates the order lifecycle: creation at the point of
// sale or online, updates while pending, closing, and soft deletion. Every
// mutation runs inside one unit-of-work transaction together with number
// assignment, line item reconciliation, audit capture and event enqueueing.
type OrderService struct {
	pgClient *postgres.Client
	newUOW   func() unitOfWork
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	Orders() iorderrepo.Repository
	OrderItems() iorderitemrepo.Repository
	Products() iproductrepo.Repository
	Users() iuserrepo.Repository
	AuditLogs() iauditrepo.Repository
	OrderNumbers() iordernumrepo.Repository
	Outbox() ioutboxrepo.Repository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.newUOW == nil {
		if s.pgClient == nil {
			panic("ordersvc: no postgres client configured")
		}
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(s.pgClient)
		}
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
	}
}

// WithUnitOfWorkFactory overrides the unit-of-work constructor. Used by
// tests to substitute an in-memory store.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(factory func() unitOfWork) option {
	return func(s *OrderService) {
		s.newUOW = factory
	}
}

// LineItemRequest is one requested order line. ID set means an existing
// line item is being updated; otherwise a new line is created. PriceCents
// is a caller override, only honored where the pricing mode permits it.
type LineItemRequest struct {
	ID         *uuid.UUID `json:"id,omitempty"`
	ProductID  uuid.UUID  `json:"productId"`
	UnitName   *string    `json:"unitName,omitempty"`
	Quantity   *int       `json:"quantity,omitempty"`
	PriceCents *int64     `json:"priceCents,omitempty"`
}

// CreatePOSOrderRequest is a staff-entered point of sale order.
type CreatePOSOrderRequest struct {
	Items []LineItemRequest `json:"items"`
}

// CreateOnlineOrderRequest is a self-service order. Contact fields are
// mandatory when no authenticated actor is supplied.
type CreateOnlineOrderRequest struct {
	Address      *string           `json:"address,omitempty"`
	Phone        *string           `json:"phone,omitempty"`
	Email        *string           `json:"email,omitempty"`
	CustomerName *string           `json:"customerName,omitempty"`
	Items        []LineItemRequest `json:"items"`
}

// UpdateOrderRequest patches a pending order. Nil fields are left unchanged;
// a non-nil Items list is reconciled against the existing line items.
type UpdateOrderRequest struct {
	Status       *string           `json:"status,omitempty"`
	Address      *string           `json:"address,omitempty"`
	Phone        *string           `json:"phone,omitempty"`
	Email        *string           `json:"email,omitempty"`
	CustomerName *string           `json:"customerName,omitempty"`
	Items        []LineItemRequest `json:"items,omitempty"`
}
