package product

import (
	"strconv"
	"time"

	"github.com/corray333/backoffice/internal/service/models/unit"
	"github.com/google/uuid"
)

// Product is a catalog item. BasePriceCents is the cost basis used by profit
// reporting; BaseUnit names the default unit of sale, distinct from the
// named sub-units in Units.
type Product struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	Enabled        bool        `json:"enabled"`
	Description    *string     `json:"description,omitempty"`
	PriceCents     int64       `json:"priceCents"`
	BasePriceCents *int64      `json:"basePriceCents,omitempty"`
	Quantity       int         `json:"quantity"`
	MinQuantity    *int        `json:"minQuantity,omitempty"`
	Barcode        *string     `json:"barcode,omitempty"`
	BaseUnit       *string     `json:"baseUnit,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
	DeletedAt      *time.Time  `json:"deletedAt,omitempty"`
	Units          []unit.Unit `json:"units"`
}

// AuditModule is the module name audit entries for products are recorded under.
const AuditModule = "Product"

// AuditSnapshot returns the current values of the product's audited fields.
func (p *Product) AuditSnapshot() map[string]*string {
	price := strconv.FormatInt(p.PriceCents, 10)

	var basePrice *string
	if p.BasePriceCents != nil {
		s := strconv.FormatInt(*p.BasePriceCents, 10)
		basePrice = &s
	}

	name := p.Name

	return map[string]*string{
		"name":      &name,
		"price":     &price,
		"basePrice": basePrice,
		"barcode":   p.Barcode,
	}
}

// UnitByID finds one of the product's own units by id. Unlike UnitByName a
// disabled unit still matches: existing order lines keep their unit
// reference after the unit is retired from sale.
func (p *Product) UnitByID(id uuid.UUID) *unit.Unit {
	for i := range p.Units {
		if p.Units[i].ID == id {
			return &p.Units[i]
		}
	}

	return nil
}

// UnitByName finds one of the product's own units by name. Disabled and
// soft-deleted units never match.
func (p *Product) UnitByName(name string) *unit.Unit {
	for i := range p.Units {
		u := &p.Units[i]
		if u.Name == name && u.Enabled && u.DeletedAt == nil {
			return u
		}
	}

	return nil
}
