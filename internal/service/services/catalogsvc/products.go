package catalogsvc

import (
	"context"
	"fmt"
	"time"

	"github.com/corray333/backoffice/internal/service/models/apperrors"
	"github.com/corray333/backoffice/internal/service/models/product"
	"github.com/corray333/backoffice/internal/service/models/unit"
	"github.com/corray333/backoffice/internal/service/services/auditsvc"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("backoffice/catalogsvc")

// CreateProduct adds a product with its units to the catalog. Staff only.
func (s *CatalogService) CreateProduct(
	ctx context.Context,
	req CreateProductRequest,
	actorID uuid.UUID,
) (*product.Product, error) {
	ctx, span := tracer.Start(ctx, "CreateProduct")
	defer span.End()

	if req.Name == "" {
		return nil, apperrors.BadRequest("product name must not be empty")
	}
	for _, u := range req.Units {
		if err := u.validate(); err != nil {
			return nil, err
		}
	}

	now := time.Now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() { _ = work.Rollback(ctx) }()

	if err := s.requireStaff(ctx, work, actorID); err != nil {
		return nil, err
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	p := product.Product{
		Name:           req.Name,
		Enabled:        enabled,
		Description:    req.Description,
		PriceCents:     req.PriceCents,
		BasePriceCents: req.BasePriceCents,
		Quantity:       req.Quantity,
		MinQuantity:    req.MinQuantity,
		Barcode:        req.Barcode,
		BaseUnit:       req.BaseUnit,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	p, err := work.Products().Insert(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}

	p.Units, err = s.insertUnits(ctx, work, p.ID, req.Units)
	if err != nil {
		return nil, err
	}

	if err = work.Commit(ctx); err != nil {
		return nil, err
	}

	return &p, nil
}

// UpdateProduct patches a product and records audit entries for changed
// audited fields. A supplied unit list replaces the existing units.
func (s *CatalogService) UpdateProduct(
	ctx context.Context,
	id uuid.UUID,
	req UpdateProductRequest,
	actorID uuid.UUID,
) (*product.Product, error) {
	ctx, span := tracer.Start(ctx, "UpdateProduct")
	defer span.End()

	if req.Units != nil {
		for _, u := range *req.Units {
			if err := u.validate(); err != nil {
				return nil, err
			}
		}
	}

	now := time.Now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() { _ = work.Rollback(ctx) }()

	actorErr := s.requireStaff(ctx, work, actorID)
	if actorErr != nil {
		return nil, actorErr
	}

	p, err := work.Products().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.NotFound("product %s not found", id)
	}

	before := p.AuditSnapshot()

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.PriceCents != nil {
		p.PriceCents = *req.PriceCents
	}
	if req.BasePriceCents != nil {
		p.BasePriceCents = req.BasePriceCents
	}
	if req.Quantity != nil {
		p.Quantity = *req.Quantity
	}
	if req.MinQuantity != nil {
		p.MinQuantity = req.MinQuantity
	}
	if req.Barcode != nil {
		p.Barcode = req.Barcode
	}
	if req.BaseUnit != nil {
		p.BaseUnit = req.BaseUnit
	}
	if req.Enabled != nil {
		p.Enabled = *req.Enabled
	}
	p.UpdatedAt = now

	updated, err := work.Products().Update(ctx, *p)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	units := p.Units
	*p = updated
	p.Units = units

	if req.Units != nil {
		if err = work.Units().SoftDeleteByProductID(ctx, p.ID, now); err != nil {
			return nil, fmt.Errorf("replace units: %w", err)
		}
		p.Units, err = s.insertUnits(ctx, work, p.ID, *req.Units)
		if err != nil {
			return nil, err
		}
	}

	entries := auditsvc.BuildUpdateEntries(product.AuditModule, p.ID, &actorID, before, p.AuditSnapshot(), now)
	if len(entries) > 0 {
		if err = work.AuditLogs().BulkInsert(ctx, entries); err != nil {
			return nil, fmt.Errorf("record audit entries: %w", err)
		}
	}

	if err = work.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}

// DeleteProduct soft-deletes a product and its units, recording a deletion
// audit entry per audited field.
func (s *CatalogService) DeleteProduct(
	ctx context.Context,
	id uuid.UUID,
	actorID uuid.UUID,
) error {
	ctx, span := tracer.Start(ctx, "DeleteProduct")
	defer span.End()

	now := time.Now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = work.Rollback(ctx) }()

	if err := s.requireStaff(ctx, work, actorID); err != nil {
		return err
	}

	p, err := work.Products().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return apperrors.NotFound("product %s not found", id)
	}

	ok, err := work.Products().SoftDelete(ctx, id, now)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if !ok {
		return apperrors.NotFound("product %s not found", id)
	}
	if err = work.Units().SoftDeleteByProductID(ctx, id, now); err != nil {
		return fmt.Errorf("delete units: %w", err)
	}

	entries := auditsvc.BuildDeleteEntries(product.AuditModule, p.ID, &actorID, p.AuditSnapshot(), now)
	if err = work.AuditLogs().BulkInsert(ctx, entries); err != nil {
		return fmt.Errorf("record audit entries: %w", err)
	}

	return work.Commit(ctx)
}

// GetProduct returns one product with its units.
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	ctx, span := tracer.Start(ctx, "GetProduct")
	defer span.End()

	p, err := s.newUOW().Products().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.NotFound("product %s not found", id)
	}

	return p, nil
}

// ListProducts returns a filtered page of products plus the total matching
// count.
func (s *CatalogService) ListProducts(
	ctx context.Context,
	filter *product.QueryProductsModel,
) ([]product.Product, int64, error) {
	ctx, span := tracer.Start(ctx, "ListProducts")
	defer span.End()

	work := s.newUOW()

	products, err := work.Products().Query(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := work.Products().Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (s *CatalogService) insertUnits(
	ctx context.Context,
	work unitOfWork,
	productID uuid.UUID,
	inputs []UnitInput,
) ([]unit.Unit, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	units := make([]unit.Unit, 0, len(inputs))
	for _, in := range inputs {
		enabled := true
		if in.Enabled != nil {
			enabled = *in.Enabled
		}
		units = append(units, unit.Unit{
			ProductID:        productID,
			Name:             in.Name,
			Weight:           in.Weight,
			FractionalWeight: in.FractionalWeight,
			PriceCents:       in.PriceCents,
			Enabled:          enabled,
		})
	}

	units, err := work.Units().BulkInsert(ctx, units)
	if err != nil {
		return nil, fmt.Errorf("insert units: %w", err)
	}

	return units, nil
}

func (s *CatalogService) requireStaff(ctx context.Context, work unitOfWork, actorID uuid.UUID) error {
	actor, err := work.Users().GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor == nil || !actor.Role.IsStaff() {
		return apperrors.Unauthorized("user %s may not manage the catalog", actorID)
	}

	return nil
}
