package catalogsvc

import (
	"context"

	"github.com/corray333/backoffice/internal/dal/interfaces/iauditrepo"
	"github.com/corray333/backoffice/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/backoffice/internal/dal/interfaces/iunitrepo"
	"github.com/corray333/backoffice/internal/dal/interfaces/iuserrepo"
	"github.com/corray333/backoffice/internal/dal/postgres"
	"github.com/corray333/backoffice/internal/dal/uow"
	"github.com/corray333/backoffice/internal/service/models/apperrors"
)

// CatalogService manages the product catalog: products and their sale
// units. Updates and deletions of audited product fields are recorded in
// the audit trail within the same transaction.
type CatalogService struct {
	pgClient *postgres.Client
	newUOW   func() unitOfWork
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	Products() iproductrepo.Repository
	Units() iunitrepo.Repository
	Users() iuserrepo.Repository
	AuditLogs() iauditrepo.Repository
}

// option is a function that configures the CatalogService.
type option func(*CatalogService)

// MustNewCatalogService creates a new CatalogService.
func MustNewCatalogService(opts ...option) *CatalogService {
	s := &CatalogService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.newUOW == nil {
		if s.pgClient == nil {
			panic("catalogsvc: no postgres client configured")
		}
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(s.pgClient)
		}
	}

	return s
}

// WithPostgresClient sets the Postgres client for the CatalogService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *CatalogService) {
		s.pgClient = pgClient
	}
}

// WithUnitOfWorkFactory overrides the unit-of-work constructor.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(factory func() unitOfWork) option {
	return func(s *CatalogService) {
		s.newUOW = factory
	}
}

// UnitInput describes one sale unit of a product. Weight and
// FractionalWeight are mutually exclusive.
type UnitInput struct {
	Name             string   `json:"name"`
	Weight           *float64 `json:"weight,omitempty"`
	FractionalWeight *float64 `json:"fractionalWeight,omitempty"`
	PriceCents       int64    `json:"priceCents"`
	Enabled          *bool    `json:"enabled,omitempty"`
}

func (u UnitInput) validate() error {
	if u.Name == "" {
		return apperrors.BadRequest("unit name must not be empty")
	}
	if u.Weight != nil && u.FractionalWeight != nil {
		return apperrors.BadRequest("unit %q: weight and fractionalWeight are mutually exclusive", u.Name)
	}
	return nil
}

// CreateProductRequest describes a new catalog product with its units.
type CreateProductRequest struct {
	Name           string      `json:"name"`
	Description    *string     `json:"description,omitempty"`
	PriceCents     int64       `json:"priceCents"`
	BasePriceCents *int64      `json:"basePriceCents,omitempty"`
	Quantity       int         `json:"quantity"`
	MinQuantity    *int        `json:"minQuantity,omitempty"`
	Barcode        *string     `json:"barcode,omitempty"`
	BaseUnit       *string     `json:"baseUnit,omitempty"`
	Enabled        *bool       `json:"enabled,omitempty"`
	Units          []UnitInput `json:"units,omitempty"`
}

// UpdateProductRequest patches a product. Nil fields stay unchanged; a
// non-nil Units list replaces the product's units entirely.
type UpdateProductRequest struct {
	Name           *string      `json:"name,omitempty"`
	Description    *string      `json:"description,omitempty"`
	PriceCents     *int64       `json:"priceCents,omitempty"`
	BasePriceCents *int64       `json:"basePriceCents,omitempty"`
	Quantity       *int         `json:"quantity,omitempty"`
	MinQuantity    *int         `json:"minQuantity,omitempty"`
	Barcode        *string      `json:"barcode,omitempty"`
	BaseUnit       *string      `json:"baseUnit,omitempty"`
	Enabled        *bool        `json:"enabled,omitempty"`
	Units          *[]UnitInput `json:"units,omitempty"`
}
