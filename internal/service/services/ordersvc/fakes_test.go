package ordersvc

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/corray333/backoffice/internal/dal/interfaces/iauditrepo"
	"github.com/corray333/backoffice/internal/dal/interfaces/iordernumrepo"
	"github.com/corray333/backoffice/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/backoffice/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backoffice/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/backoffice/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/backoffice/internal/dal/interfaces/iuserrepo"
	"github.com/corray333/backoffice/internal/service/models/auditlog"
	"github.com/corray333/backoffice/internal/service/models/order"
	"github.com/corray333/backoffice/internal/service/models/orderitem"
	"github.com/corray333/backoffice/internal/service/models/outbox"
	"github.com/corray333/backoffice/internal/service/models/product"
	"github.com/corray333/backoffice/internal/service/models/user"
	"github.com/google/uuid"
)

// store is the shared in-memory state behind the fake repositories.
type store struct {
	users     map[uuid.UUID]user.User
	orders    map[uuid.UUID]order.Order
	items     map[uuid.UUID]orderitem.OrderItem
	itemSeq   []uuid.UUID
	products  map[uuid.UUID]product.Product
	counters  map[string]int64
	counterMu sync.Mutex
	audits    []auditlog.AuditLog
	events    []outbox.Message

	commits   int
	rollbacks int
}

func newStore() *store {
	return &store{
		users:    make(map[uuid.UUID]user.User),
		orders:   make(map[uuid.UUID]order.Order),
		items:    make(map[uuid.UUID]orderitem.OrderItem),
		products: make(map[uuid.UUID]product.Product),
		counters: make(map[string]int64),
	}
}

func (s *store) addUser(role user.Role) uuid.UUID {
	id := uuid.New()
	s.users[id] = user.User{ID: id, Name: "user " + id.String()[:8], Role: role}
	return id
}

func (s *store) addProduct(p product.Product) uuid.UUID {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i := range p.Units {
		if p.Units[i].ID == uuid.Nil {
			p.Units[i].ID = uuid.New()
		}
		p.Units[i].ProductID = p.ID
	}
	s.products[p.ID] = p
	return p.ID
}

type fakeUOW struct {
	s *store
}

func (u *fakeUOW) Begin(context.Context) error { return nil }

func (u *fakeUOW) Commit(context.Context) error {
	u.s.commits++
	return nil
}

func (u *fakeUOW) Rollback(context.Context) error {
	u.s.rollbacks++
	return nil
}

func (u *fakeUOW) Orders() iorderrepo.Repository          { return &fakeOrderRepo{u.s} }
func (u *fakeUOW) OrderItems() iorderitemrepo.Repository  { return &fakeOrderItemRepo{u.s} }
func (u *fakeUOW) Products() iproductrepo.Repository      { return &fakeProductRepo{u.s} }
func (u *fakeUOW) Users() iuserrepo.Repository            { return &fakeUserRepo{u.s} }
func (u *fakeUOW) AuditLogs() iauditrepo.Repository       { return &fakeAuditRepo{u.s} }
func (u *fakeUOW) OrderNumbers() iordernumrepo.Repository { return &fakeOrderNumRepo{u.s} }
func (u *fakeUOW) Outbox() ioutboxrepo.Repository         { return &fakeOutboxRepo{u.s} }

func newTestService(s *store) *OrderService {
	return MustNewOrderService(WithUnitOfWorkFactory(func() unitOfWork {
		return &fakeUOW{s: s}
	}))
}

type fakeOrderRepo struct{ s *store }

func (r *fakeOrderRepo) Insert(_ context.Context, o order.Order) (order.Order, error) {
	o.ID = uuid.New()
	r.s.orders[o.ID] = o
	return o, nil
}

func (r *fakeOrderRepo) Update(_ context.Context, o order.Order) (order.Order, error) {
	r.s.orders[o.ID] = o
	return o, nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	o, ok := r.s.orders[id]
	if !ok || o.DeletedAt != nil {
		return nil, nil
	}
	return &o, nil
}

func (r *fakeOrderRepo) Query(_ context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	var result []order.Order
	for _, o := range r.s.orders {
		if o.DeletedAt != nil {
			continue
		}
		if filter != nil && filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		result = append(result, o)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *fakeOrderRepo) Count(ctx context.Context, filter *order.QueryOrdersModel) (int64, error) {
	orders, err := r.Query(ctx, filter)
	return int64(len(orders)), err
}

func (r *fakeOrderRepo) SoftDelete(_ context.Context, id uuid.UUID, deletedAt time.Time, deletedBy uuid.UUID) (bool, error) {
	o, ok := r.s.orders[id]
	if !ok || o.DeletedAt != nil {
		return false, nil
	}
	o.DeletedAt = &deletedAt
	o.UpdatedBy = &deletedBy
	r.s.orders[id] = o
	return true, nil
}

type fakeOrderItemRepo struct{ s *store }

func (r *fakeOrderItemRepo) BulkInsert(_ context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error) {
	for i := range items {
		items[i].ID = uuid.New()
		r.s.items[items[i].ID] = items[i]
		r.s.itemSeq = append(r.s.itemSeq, items[i].ID)
	}
	return items, nil
}

func (r *fakeOrderItemRepo) BulkUpdate(_ context.Context, items []orderitem.OrderItem) error {
	for _, item := range items {
		r.s.items[item.ID] = item
	}
	return nil
}

func (r *fakeOrderItemRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]orderitem.OrderItem, error) {
	var result []orderitem.OrderItem
	for _, id := range ids {
		if item, ok := r.s.items[id]; ok {
			result = append(result, item)
		}
	}
	return result, nil
}

func (r *fakeOrderItemRepo) ListByOrderIDs(_ context.Context, orderIDs []uuid.UUID) ([]orderitem.OrderItem, error) {
	var result []orderitem.OrderItem
	for _, id := range r.s.itemSeq {
		item := r.s.items[id]
		for _, orderID := range orderIDs {
			if item.OrderID == orderID {
				result = append(result, item)
			}
		}
	}
	return result, nil
}

type fakeProductRepo struct{ s *store }

func (r *fakeProductRepo) Insert(_ context.Context, p product.Product) (product.Product, error) {
	p.ID = uuid.New()
	r.s.products[p.ID] = p
	return p, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p product.Product) (product.Product, error) {
	r.s.products[p.ID] = p
	return p, nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*product.Product, error) {
	p, ok := r.s.products[id]
	if !ok || p.DeletedAt != nil {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeProductRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]product.Product, error) {
	var result []product.Product
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok && p.DeletedAt == nil {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *fakeProductRepo) Query(_ context.Context, _ *product.QueryProductsModel) ([]product.Product, error) {
	var result []product.Product
	for _, p := range r.s.products {
		if p.DeletedAt == nil {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *fakeProductRepo) Count(ctx context.Context, filter *product.QueryProductsModel) (int64, error) {
	products, err := r.Query(ctx, filter)
	return int64(len(products)), err
}

func (r *fakeProductRepo) SoftDelete(_ context.Context, id uuid.UUID, deletedAt time.Time) (bool, error) {
	p, ok := r.s.products[id]
	if !ok || p.DeletedAt != nil {
		return false, nil
	}
	p.DeletedAt = &deletedAt
	r.s.products[id] = p
	return true, nil
}

type fakeUserRepo struct{ s *store }

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) Query(_ context.Context, limit, offset int) ([]user.User, error) {
	var result []user.User
	for _, u := range r.s.users {
		result = append(result, u)
	}
	return result, nil
}

type fakeAuditRepo struct{ s *store }

func (r *fakeAuditRepo) BulkInsert(_ context.Context, logs []auditlog.AuditLog) error {
	r.s.audits = append(r.s.audits, logs...)
	return nil
}

func (r *fakeAuditRepo) ListByRecord(_ context.Context, module string, recordID uuid.UUID, _, _ int) ([]auditlog.AuditLog, error) {
	var result []auditlog.AuditLog
	for _, entry := range r.s.audits {
		if entry.Module == module && entry.RecordID == recordID {
			result = append(result, entry)
		}
	}
	return result, nil
}

type fakeOrderNumRepo struct{ s *store }

// Next serializes like the counter row lock does in Postgres.
func (r *fakeOrderNumRepo) Next(_ context.Context, prefix string) (int64, error) {
	r.s.counterMu.Lock()
	defer r.s.counterMu.Unlock()

	r.s.counters[prefix]++
	return r.s.counters[prefix], nil
}

type fakeOutboxRepo struct{ s *store }

func (r *fakeOutboxRepo) Insert(_ context.Context, msg outbox.Message) error {
	msg.ID = int64(len(r.s.events) + 1)
	r.s.events = append(r.s.events, msg)
	return nil
}

func (r *fakeOutboxRepo) GetPendingMessages(_ context.Context, limit int) ([]outbox.Message, error) {
	if len(r.s.events) > limit {
		return r.s.events[:limit], nil
	}
	return r.s.events, nil
}

func (r *fakeOutboxRepo) Delete(_ context.Context, id int64) error {
	for i, msg := range r.s.events {
		if msg.ID == id {
			r.s.events = append(r.s.events[:i], r.s.events[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeOutboxRepo) UpdateRetry(_ context.Context, id int64, retryCount int, lastError string, nextRetryAt time.Time) error {
	for i := range r.s.events {
		if r.s.events[i].ID == id {
			r.s.events[i].RetryCount = retryCount
			r.s.events[i].LastError = lastError
			r.s.events[i].NextRetryAt = nextRetryAt
		}
	}
	return nil
}
