package ordersvc

import (
	"github.com/corray333/backoffice/internal/service/models/product"
	"github.com/corray333/backoffice/internal/service/models/unit"
)

// resolvePrice picks the unit price for a new line item. A caller override
// wins only when the pricing mode allows it (POS sales); otherwise the
// chosen unit's price applies, falling back to the product's own price.
func resolvePrice(p *product.Product, u *unit.Unit, override *int64, allowOverride bool) int64 {
	if allowOverride && override != nil {
		return *override
	}
	if u != nil {
		return u.PriceCents
	}
	return p.PriceCents
}
