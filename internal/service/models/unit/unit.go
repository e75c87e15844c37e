package unit

import (
	"time"

	"github.com/google/uuid"
)

// Unit is a named sub-unit a product can be sold in, with its own price.
// Exactly one of Weight or FractionalWeight is set: Weight units contain
// several base units (a crate of 24), FractionalWeight units are a fraction
// of the base unit (a half-loaf has FractionalWeight 2).
type Unit struct {
	ID               uuid.UUID  `json:"id"`
	ProductID        uuid.UUID  `json:"productId"`
	Name             string     `json:"name"`
	Weight           *float64   `json:"weight,omitempty"`
	FractionalWeight *float64   `json:"fractionalWeight,omitempty"`
	PriceCents       int64      `json:"priceCents"`
	Enabled          bool       `json:"enabled"`
	DeletedAt        *time.Time `json:"deletedAt,omitempty"`
}
