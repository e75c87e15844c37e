package orderitem

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem represents one product line within an order. UnitID is set when
// the line was sold in one of the product's named sub-units; UnitName is
// denormalized alongside it for read models.
type OrderItem struct {
	ID         uuid.UUID  `json:"id"`
	OrderID    uuid.UUID  `json:"orderId"`
	ProductID  uuid.UUID  `json:"productId"`
	UnitID     *uuid.UUID `json:"unitId,omitempty"`
	UnitName   *string    `json:"unitName,omitempty"`
	Quantity   int        `json:"quantity"`
	PriceCents int64      `json:"priceCents"`
	TotalCents int64      `json:"totalCents"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}
