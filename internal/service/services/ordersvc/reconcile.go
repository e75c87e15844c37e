package ordersvc

import (
	"context"
	"fmt"
	"time"

	"github.com/corray333/backoffice/internal/service/models/apperrors"
	"github.com/corray333/backoffice/internal/service/models/order"
	"github.com/corray333/backoffice/internal/service/models/orderitem"
	"github.com/corray333/backoffice/internal/service/models/product"
	"github.com/corray333/backoffice/internal/service/models/unit"
	"github.com/google/uuid"
)

// reconcileItems applies the requested line items to the order: requests
// carrying an item id update that item, the rest create new items. All
// referenced products and items are bulk-loaded up front, per-line totals
// are recomputed and the order total is rebuilt from the full current item
// set before the order row is saved. Updated items take the current catalog
// price of their unit or product unless the request carries an explicit
// price. allowOverride controls whether caller-supplied prices are honored
// for new items.
func (s *OrderService) reconcileItems(
	ctx context.Context,
	work unitOfWork,
	o *order.Order,
	reqs []LineItemRequest,
	allowOverride bool,
	now time.Time,
) error {
	itemIDs := make([]uuid.UUID, 0, len(reqs))
	for _, r := range reqs {
		if r.ID != nil {
			itemIDs = append(itemIDs, *r.ID)
		}
	}

	existing := make(map[uuid.UUID]orderitem.OrderItem)
	if len(itemIDs) > 0 {
		items, err := work.OrderItems().GetByIDs(ctx, itemIDs)
		if err != nil {
			return err
		}
		for _, item := range items {
			existing[item.ID] = item
		}
	}

	productIDs := make([]uuid.UUID, 0, len(reqs))
	seen := make(map[uuid.UUID]struct{})
	addProduct := func(id uuid.UUID) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			productIDs = append(productIDs, id)
		}
	}
	for _, r := range reqs {
		if r.ID == nil {
			addProduct(r.ProductID)
		} else if item, ok := existing[*r.ID]; ok {
			addProduct(item.ProductID)
		}
	}

	products := make(map[uuid.UUID]*product.Product)
	if len(productIDs) > 0 {
		loaded, err := work.Products().GetByIDs(ctx, productIDs)
		if err != nil {
			return err
		}
		for i := range loaded {
			products[loaded[i].ID] = &loaded[i]
		}
	}

	var updates, inserts []orderitem.OrderItem
	for _, r := range reqs {
		if r.ID != nil {
			item, ok := existing[*r.ID]
			if !ok || item.OrderID != o.ID {
				return apperrors.NotFound("order item %s not found", *r.ID)
			}
			p, ok := products[item.ProductID]
			if !ok {
				return apperrors.NotFound("product %s not found", item.ProductID)
			}

			var u *unit.Unit
			if r.UnitName != nil {
				var err error
				if u, err = resolveUnit(p, *r.UnitName); err != nil {
					return err
				}
				if u != nil {
					item.UnitID = &u.ID
					item.UnitName = &u.Name
				} else {
					item.UnitID = nil
					item.UnitName = nil
				}
			} else if item.UnitID != nil {
				// A unit removed from the catalog since the sale falls back
				// to the product price; the line keeps its unit reference.
				u = p.UnitByID(*item.UnitID)
			}
			if r.Quantity != nil {
				if *r.Quantity < 1 {
					return apperrors.BadRequest("quantity must be positive")
				}
				item.Quantity = *r.Quantity
			}
			item.PriceCents = resolvePrice(p, u, r.PriceCents, true)
			item.TotalCents = int64(item.Quantity) * item.PriceCents
			item.UpdatedAt = now

			updates = append(updates, item)
			continue
		}

		p, ok := products[r.ProductID]
		if !ok {
			return apperrors.NotFound("product %s not found", r.ProductID)
		}
		if r.Quantity == nil || *r.Quantity < 1 {
			return apperrors.BadRequest("quantity must be positive")
		}

		var u *unit.Unit
		if r.UnitName != nil {
			var err error
			if u, err = resolveUnit(p, *r.UnitName); err != nil {
				return err
			}
		}

		price := resolvePrice(p, u, r.PriceCents, allowOverride)
		item := orderitem.OrderItem{
			OrderID:    o.ID,
			ProductID:  p.ID,
			Quantity:   *r.Quantity,
			PriceCents: price,
			TotalCents: int64(*r.Quantity) * price,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if u != nil {
			item.UnitID = &u.ID
			item.UnitName = &u.Name
		}

		inserts = append(inserts, item)
	}

	if len(updates) > 0 {
		if err := work.OrderItems().BulkUpdate(ctx, updates); err != nil {
			return fmt.Errorf("update order items: %w", err)
		}
	}
	if len(inserts) > 0 {
		if _, err := work.OrderItems().BulkInsert(ctx, inserts); err != nil {
			return fmt.Errorf("insert order items: %w", err)
		}
	}

	items, err := work.OrderItems().ListByOrderIDs(ctx, []uuid.UUID{o.ID})
	if err != nil {
		return err
	}

	o.TotalCents = 0
	for _, item := range items {
		o.TotalCents += item.TotalCents
	}
	o.Items = items
	o.UpdatedAt = now

	saved, err := work.Orders().Update(ctx, *o)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	saved.Items = items
	*o = saved

	return nil
}

// resolveUnit maps a requested unit name onto one of the product's units.
// The product's base unit name (and the empty string) mean "no unit": the
// product is sold as-is at its own price. Any other name must match an
// enabled unit of this product.
func resolveUnit(p *product.Product, name string) (*unit.Unit, error) {
	if name == "" {
		return nil, nil
	}
	if p.BaseUnit != nil && name == *p.BaseUnit {
		return nil, nil
	}

	u := p.UnitByName(name)
	if u == nil {
		return nil, apperrors.NotFound("product %s has no unit %q", p.ID, name)
	}

	return u, nil
}
