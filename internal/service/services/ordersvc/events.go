package ordersvc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/corray333/backoffice/internal/service/models/order"
	"github.com/corray333/backoffice/internal/service/models/outbox"
	"github.com/google/uuid"
)

const (
	eventOrderCreated = "order.created"
	eventOrderUpdated = "order.updated"
	eventOrderClosed  = "order.closed"
	eventOrderDeleted = "order.deleted"

	orderEventsQueue = "backoffice.order.events"
)

type orderEvent struct {
	Event      string       `json:"event"`
	OrderID    uuid.UUID    `json:"orderId"`
	Name       string       `json:"name"`
	Status     order.Status `json:"status"`
	TotalCents int64        `json:"totalCents"`
	ActorID    *uuid.UUID   `json:"actorId,omitempty"`
	OccurredAt time.Time    `json:"occurredAt"`
}

// enqueueOrderEvent stores a lifecycle event in the outbox within the
// current transaction; the worker delivers it to RabbitMQ after commit.
func (s *OrderService) enqueueOrderEvent(
	ctx context.Context,
	work unitOfWork,
	event string,
	o *order.Order,
	actorID *uuid.UUID,
	now time.Time,
) error {
	payload, err := json.Marshal(orderEvent{
		Event:      event,
		OrderID:    o.ID,
		Name:       o.Name,
		Status:     o.Status,
		TotalCents: o.TotalCents,
		ActorID:    actorID,
		OccurredAt: now,
	})
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	msg := outbox.Message{
		QueueName:   orderEventsQueue,
		RoutingKey:  event,
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  5,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	}
	if err := work.Outbox().Insert(ctx, msg); err != nil {
		return fmt.Errorf("enqueue order event: %w", err)
	}

	return nil
}
