package httptransport

import (
	"time"

	"github.com/corray333/backoffice/internal/service/models/order"
	"github.com/corray333/backoffice/internal/service/models/orderitem"
	"github.com/google/uuid"
)

// OrderItemView is the line item shape the API exposes.
type OrderItemView struct {
	ID         uuid.UUID  `json:"id"`
	ProductID  uuid.UUID  `json:"productId"`
	UnitID     *uuid.UUID `json:"unitId,omitempty"`
	UnitName   *string    `json:"unitName,omitempty"`
	Quantity   int        `json:"quantity"`
	PriceCents int64      `json:"priceCents"`
	TotalCents int64      `json:"totalCents"`
}

// OrderView is the order shape the API exposes.
type OrderView struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Status       order.Status    `json:"status"`
	TotalCents   int64           `json:"totalCents"`
	Address      *string         `json:"address,omitempty"`
	Phone        *string         `json:"phone,omitempty"`
	Email        *string         `json:"email,omitempty"`
	CustomerName *string         `json:"customerName,omitempty"`
	CustomerID   *uuid.UUID      `json:"customerId,omitempty"`
	StaffID      *uuid.UUID      `json:"staffId,omitempty"`
	Items        []OrderItemView `json:"items"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type listOrdersResponse struct {
	Orders     []OrderView `json:"orders"`
	TotalCount int64       `json:"totalCount"`
}

// OrderItemToView converts an order item model to its API view.
func OrderItemToView(item orderitem.OrderItem) OrderItemView {
	return OrderItemView{
		ID:         item.ID,
		ProductID:  item.ProductID,
		UnitID:     item.UnitID,
		UnitName:   item.UnitName,
		Quantity:   item.Quantity,
		PriceCents: item.PriceCents,
		TotalCents: item.TotalCents,
	}
}

// OrderToView converts an order model to its API view.
func OrderToView(o order.Order) OrderView {
	items := make([]OrderItemView, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemToView(item))
	}

	return OrderView{
		ID:           o.ID,
		Name:         o.Name,
		Status:       o.Status,
		TotalCents:   o.TotalCents,
		Address:      o.Address,
		Phone:        o.Phone,
		Email:        o.Email,
		CustomerName: o.CustomerName,
		CustomerID:   o.CustomerID,
		StaffID:      o.StaffID,
		Items:        items,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

func ordersToViews(orders []order.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, OrderToView(o))
	}

	return views
}
