package ordersvc

import (
	"context"
	"fmt"
	"time"

	"github.com/corray333/backoffice/internal/service/models/apperrors"
	"github.com/corray333/backoffice/internal/service/models/order"
	"github.com/corray333/backoffice/internal/service/models/orderitem"
	"github.com/corray333/backoffice/internal/service/models/user"
	"github.com/corray333/backoffice/internal/service/services/auditsvc"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("backoffice/ordersvc")

// CreatePOSOrder registers a sale entered at the register by a staff
// member. The order is created already DONE and caller-supplied line item
// prices are honored.
func (s *OrderService) CreatePOSOrder(
	ctx context.Context,
	req CreatePOSOrderRequest,
	staffID uuid.UUID,
) (*order.Order, error) {
	ctx, span := tracer.Start(ctx, "CreatePOSOrder")
	defer span.End()

	if len(req.Items) == 0 {
		return nil, apperrors.BadRequest("order must contain at least one item")
	}

	now := time.Now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() { _ = work.Rollback(ctx) }()

	actor, err := work.Users().GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if actor == nil || !actor.Role.IsStaff() {
		return nil, apperrors.Unauthorized("user %s may not register sales", staffID)
	}

	name, err := s.nextOrderName(ctx, work, now)
	if err != nil {
		return nil, err
	}

	o := order.Order{
		Name:      name,
		Status:    order.StatusDone,
		StaffID:   &staffID,
		UpdatedBy: &staffID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	o, err = work.Orders().Insert(ctx, o)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	if err = s.reconcileItems(ctx, work, &o, req.Items, true, now); err != nil {
		return nil, err
	}

	if err = s.enqueueOrderEvent(ctx, work, eventOrderCreated, &o, &staffID, now); err != nil {
		return nil, err
	}

	if err = work.Commit(ctx); err != nil {
		return nil, err
	}

	return &o, nil
}

// CreateOnlineOrder registers a self-service order. An authenticated
// customer may omit contact details; an anonymous caller must supply
// address, phone and a customer name. A staff actor placing the order is
// recorded as its staff member, not its customer. The order starts PENDING
// and catalog prices always apply.
func (s *OrderService) CreateOnlineOrder(
	ctx context.Context,
	req CreateOnlineOrderRequest,
	actorID *uuid.UUID,
) (*order.Order, error) {
	ctx, span := tracer.Start(ctx, "CreateOnlineOrder")
	defer span.End()

	if len(req.Items) == 0 {
		return nil, apperrors.BadRequest("order must contain at least one item")
	}

	now := time.Now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() { _ = work.Rollback(ctx) }()

	o := order.Order{
		Status:       order.StatusPending,
		Address:      req.Address,
		Phone:        req.Phone,
		Email:        req.Email,
		CustomerName: req.CustomerName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if actorID != nil {
		actor, err := work.Users().GetByID(ctx, *actorID)
		if err != nil {
			return nil, err
		}
		if actor == nil {
			return nil, apperrors.Unauthorized("user %s not found", *actorID)
		}
		if actor.Role.IsStaff() {
			o.StaffID = &actor.ID
		} else {
			o.CustomerID = &actor.ID
			if o.CustomerName == nil {
				o.CustomerName = &actor.Name
			}
		}
		o.UpdatedBy = &actor.ID
	} else if req.Address == nil || req.Phone == nil || req.CustomerName == nil {
		return nil, apperrors.BadRequest("anonymous order requires address, phone and customer name")
	}

	name, err := s.nextOrderName(ctx, work, now)
	if err != nil {
		return nil, err
	}
	o.Name = name

	o, err = work.Orders().Insert(ctx, o)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	if err = s.reconcileItems(ctx, work, &o, req.Items, false, now); err != nil {
		return nil, err
	}

	if err = s.enqueueOrderEvent(ctx, work, eventOrderCreated, &o, actorID, now); err != nil {
		return nil, err
	}

	if err = work.Commit(ctx); err != nil {
		return nil, err
	}

	return &o, nil
}

// UpdateOrder patches a pending order on behalf of the given actor.
// Customers may only touch their own orders and may not change the status;
// any non-PENDING order rejects the update.
func (s *OrderService) UpdateOrder(
	ctx context.Context,
	id uuid.UUID,
	req UpdateOrderRequest,
	actorID uuid.UUID,
) (*order.Order, error) {
	ctx, span := tracer.Start(ctx, "UpdateOrder")
	defer span.End()

	now := time.Now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() { _ = work.Rollback(ctx) }()

	o, err := work.Orders().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperrors.NotFound("order %s not found", id)
	}

	actor, err := work.Users().GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, apperrors.Unauthorized("user %s not found", actorID)
	}
	if actor.Role == user.RoleCustomer &&
		(o.CustomerID == nil || *o.CustomerID != actor.ID) {
		return nil, apperrors.Unauthorized("order %s does not belong to user %s", id, actorID)
	}

	if o.Status != order.StatusPending {
		return nil, apperrors.Unprocessable("order %s is %s and can no longer be updated", id, o.Status)
	}

	before := o.AuditSnapshot()

	if req.Status != nil && actor.Role.IsStaff() {
		status, perr := order.ParseStatus(*req.Status)
		if perr != nil {
			return nil, apperrors.BadRequest("unknown order status %q", *req.Status)
		}
		o.Status = status
		o.StaffID = &actor.ID
	}
	if req.Address != nil {
		o.Address = req.Address
	}
	if req.Phone != nil {
		o.Phone = req.Phone
	}
	if req.Email != nil {
		o.Email = req.Email
	}
	if req.CustomerName != nil {
		o.CustomerName = req.CustomerName
	}
	o.UpdatedBy = &actor.ID
	o.UpdatedAt = now

	if len(req.Items) > 0 {
		if err = s.reconcileItems(ctx, work, o, req.Items, false, now); err != nil {
			return nil, err
		}
	} else {
		updated, uerr := work.Orders().Update(ctx, *o)
		if uerr != nil {
			return nil, fmt.Errorf("update order: %w", uerr)
		}
		*o = updated
		o.Items, uerr = s.loadItems(ctx, work, o.ID)
		if uerr != nil {
			return nil, uerr
		}
	}

	entries := auditsvc.BuildUpdateEntries(order.AuditModule, o.ID, &actor.ID, before, o.AuditSnapshot(), now)
	if len(entries) > 0 {
		if err = work.AuditLogs().BulkInsert(ctx, entries); err != nil {
			return nil, fmt.Errorf("record audit entries: %w", err)
		}
	}

	if err = s.enqueueOrderEvent(ctx, work, eventOrderUpdated, o, &actor.ID, now); err != nil {
		return nil, err
	}

	if err = work.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// CloseOrder marks an order DONE. Closing an already closed order fails.
func (s *OrderService) CloseOrder(
	ctx context.Context,
	id uuid.UUID,
	actorID uuid.UUID,
) (*order.Order, error) {
	ctx, span := tracer.Start(ctx, "CloseOrder")
	defer span.End()

	now := time.Now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() { _ = work.Rollback(ctx) }()

	o, err := work.Orders().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperrors.NotFound("order %s not found", id)
	}

	actor, err := work.Users().GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, apperrors.Unauthorized("user %s not found", actorID)
	}

	if o.Status == order.StatusDone {
		return nil, apperrors.Unprocessable("order %s is already closed", id)
	}

	before := o.AuditSnapshot()

	o.Status = order.StatusDone
	o.StaffID = &actor.ID
	o.UpdatedBy = &actor.ID
	o.UpdatedAt = now

	updated, err := work.Orders().Update(ctx, *o)
	if err != nil {
		return nil, fmt.Errorf("close order: %w", err)
	}
	*o = updated

	entries := auditsvc.BuildUpdateEntries(order.AuditModule, o.ID, &actor.ID, before, o.AuditSnapshot(), now)
	if len(entries) > 0 {
		if err = work.AuditLogs().BulkInsert(ctx, entries); err != nil {
			return nil, fmt.Errorf("record audit entries: %w", err)
		}
	}

	if err = s.enqueueOrderEvent(ctx, work, eventOrderClosed, o, &actor.ID, now); err != nil {
		return nil, err
	}

	o.Items, err = s.loadItems(ctx, work, o.ID)
	if err != nil {
		return nil, err
	}

	if err = work.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// DeleteOrder soft-deletes an order. Admin only. The order number stays
// consumed and every audited field gets a deletion audit entry.
func (s *OrderService) DeleteOrder(
	ctx context.Context,
	id uuid.UUID,
	actorID uuid.UUID,
) error {
	ctx, span := tracer.Start(ctx, "DeleteOrder")
	defer span.End()

	now := time.Now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = work.Rollback(ctx) }()

	o, err := work.Orders().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if o == nil {
		return apperrors.NotFound("order %s not found", id)
	}

	actor, err := work.Users().GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor == nil || actor.Role != user.RoleAdmin {
		return apperrors.Unauthorized("user %s may not delete orders", actorID)
	}

	ok, err := work.Orders().SoftDelete(ctx, id, now, actor.ID)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if !ok {
		return apperrors.NotFound("order %s not found", id)
	}

	entries := auditsvc.BuildDeleteEntries(order.AuditModule, o.ID, &actor.ID, o.AuditSnapshot(), now)
	if err = work.AuditLogs().BulkInsert(ctx, entries); err != nil {
		return fmt.Errorf("record audit entries: %w", err)
	}

	if err = s.enqueueOrderEvent(ctx, work, eventOrderDeleted, o, &actor.ID, now); err != nil {
		return err
	}

	return work.Commit(ctx)
}

// GetOrder returns one order with its line items.
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	ctx, span := tracer.Start(ctx, "GetOrder")
	defer span.End()

	work := s.newUOW()

	o, err := work.Orders().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperrors.NotFound("order %s not found", id)
	}

	o.Items, err = s.loadItems(ctx, work, o.ID)
	if err != nil {
		return nil, err
	}

	return o, nil
}

// ListOrders returns a page of orders, newest first, with line items
// attached, plus the total matching count for pagination.
func (s *OrderService) ListOrders(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) ([]order.Order, int64, error) {
	ctx, span := tracer.Start(ctx, "ListOrders")
	defer span.End()

	work := s.newUOW()

	orders, err := work.Orders().Query(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := work.Orders().Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	if len(orders) == 0 {
		return []order.Order{}, total, nil
	}

	orderIDs := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}
	items, err := work.OrderItems().ListByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, 0, err
	}

	byOrder := make(map[uuid.UUID][]int)
	for i := range orders {
		orders[i].Items = nil
		byOrder[orders[i].ID] = append(byOrder[orders[i].ID], i)
	}
	for _, item := range items {
		for _, i := range byOrder[item.OrderID] {
			orders[i].Items = append(orders[i].Items, item)
		}
	}

	return orders, total, nil
}

func (s *OrderService) loadItems(ctx context.Context, work unitOfWork, orderID uuid.UUID) ([]orderitem.OrderItem, error) {
	return work.OrderItems().ListByOrderIDs(ctx, []uuid.UUID{orderID})
}
