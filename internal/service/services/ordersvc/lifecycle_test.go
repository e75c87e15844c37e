package ordersvc

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/corray333/backoffice/internal/service/models/apperrors"
	"github.com/corray333/backoffice/internal/service/models/order"
	"github.com/corray333/backoffice/internal/service/models/product"
	"github.com/corray333/backoffice/internal/service/models/unit"
	"github.com/corray333/backoffice/internal/service/models/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func simpleProduct(s *store, priceCents int64) uuid.UUID {
	return s.addProduct(product.Product{
		Name:       "plain loaf",
		Enabled:    true,
		PriceCents: priceCents,
	})
}

func lineItem(productID uuid.UUID, quantity int) LineItemRequest {
	return LineItemRequest{ProductID: productID, Quantity: ptr(quantity)}
}

func TestCreatePOSOrder_HonorsPriceOverride(t *testing.T) {
	s := newStore()
	svc := newTestService(s)
	staffID := s.addUser(user.RoleStaff)
	productID := simpleProduct(s, 1000)

	req := CreatePOSOrderRequest{Items: []LineItemRequest{{
		ProductID:  productID,
		Quantity:   ptr(2),
		PriceCents: ptr(int64(1500)),
	}}}

	o, err := svc.CreatePOSOrder(context.Background(), req, staffID)
	require.NoError(t, err)
	require.Equal(t, order.StatusDone, o.Status)
	require.Len(t, o.Items, 1)
	require.Equal(t, int64(1500), o.Items[0].PriceCents)
	require.Equal(t, int64(3000), o.Items[0].TotalCents)
	require.Equal(t, int64(3000), o.TotalCents)
	require.Equal(t, 1, s.commits)
	require.Len(t, s.events, 1)
	require.Empty(t, s.audits)
}

func TestCreatePOSOrder_RequiresStaff(t *testing.T) {
	s := newStore()
	svc := newTestService(s)
	customerID := s.addUser(user.RoleCustomer)
	productID := simpleProduct(s, 1000)

	_, err := svc.CreatePOSOrder(context.Background(), CreatePOSOrderRequest{
		Items: []LineItemRequest{lineItem(productID, 1)},
	}, customerID)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	require.Zero(t, s.commits)
}

func TestCreateOnlineOrder_IgnoresPriceOverride(t *testing.T) {
	s := newStore()
	svc := newTestService(s)
	customerID := s.addUser(user.RoleCustomer)
	productID := simpleProduct(s, 1000)

	o, err := svc.CreateOnlineOrder(context.Background(), CreateOnlineOrderRequest{
		Items: []LineItemRequest{{
			ProductID:  productID,
			Quantity:   ptr(1),
			PriceCents: ptr(int64(1)),
		}},
	}, &customerID)
	require.NoError(t, err)
	require.Equal(t, order.StatusPending, o.Status)
	require.Equal(t, int64(1000), o.Items[0].PriceCents)
}

func TestCreateOnlineOrder_AnonymousRequiresContact(t *testing.T) {
	s := newStore()
	svc := newTestService(s)
	productID := simpleProduct(s, 1000)

	_, err := svc.CreateOnlineOrder(context.Background(), CreateOnlineOrderRequest{
		Address:      ptr("12 Main St"),
		CustomerName: ptr("Ann"),
		Items:        []LineItemRequest{lineItem(productID, 1)},
	}, nil)
	require.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCreateOnlineOrder_DefaultsCustomerName(t *testing.T) {
	s := newStore()
	svc := newTestService(s)
	customerID := s.addUser(user.RoleCustomer)
	productID := simpleProduct(s, 1000)

	o, err := svc.CreateOnlineOrder(context.Background(), CreateOnlineOrderRequest{
		Items: []LineItemRequest{lineItem(productID, 1)},
	}, &customerID)
	require.NoError(t, err)
	require.NotNil(t, o.CustomerName)
	require.Equal(t, s.users[customerID].Name, *o.CustomerName)
	require.Equal(t, &customerID, o.CustomerID)
}

func TestCreateOnlineOrder_StaffActorIsNotTheCustomer(t *testing.T) {
	s := newStore()
	svc := newTestService(s)
	staffID := s.addUser(user.RoleStaff)
	productID := simpleProduct(s, 1000)

	o, err := svc.CreateOnlineOrder(context.Background(), CreateOnlineOrderRequest{
		CustomerName: ptr("Ann"),
		Items:        []LineItemRequest{lineItem(productID, 1)},
	}, &staffID)
	require.NoError(t, err)
	require.Nil(t, o.CustomerID)
	require.Equal(t, &staffID, o.StaffID)
	require.Equal(t, &staffID, o.UpdatedBy)
	require.Equal(t, "Ann", *o.CustomerName)
}

func TestCreateOrder_UnitPricing(t *testing.T) {
	s := newStore()
	svc := newTestService(s)
	customerID := s.addUser(user.RoleCustomer)
	productID := s.addProduct(product.Product{
		Name:       "sourdough",
		Enabled:    true,
		PriceCents: 1000,
		BaseUnit:   ptr("loaf"),
		Units: []unit.Unit{{
			Name:             "half",
			FractionalWeight: ptr(2.0),
			PriceCents:       600,
			Enabled:          true,
		}},
	})

	o, err := svc.CreateOnlineOrder(context.Background(), CreateOnlineOrderRequest{
		Items: []LineItemRequest{{
			ProductID: productID,
			UnitName:  ptr("half"),
			Quantity:  ptr(3),
		}},
	}, &customerID)
	require.NoError(t, err)
	require.Equal(t, int64(600), o.Items[0].PriceCents)
	require.NotNil(t, o.Items[0].UnitID)
	require.Equal(t, "half", *o.Items[0].UnitName)
	require.Equal(t, int64(1800), o.TotalCents)
}

func TestCreateOrder_BaseUnitNameMeansNoUnit(t *testing.T) {
	s := newStore()
	svc := newTestService(s)
	customerID := s.addUser(user.RoleCustomer)
	productID := s.addProduct(product.Product{
		Name:       "sourdough",
		Enabled:    true,
		PriceCents: 1000,
		BaseUnit:   ptr("loaf"),
		Units: []unit.Unit{{
			Name:       "half",
			PriceCents: 600,
			Enabled:    true,
		}},
	})

	o, err := svc.CreateOnlineOrder(context.Background(), CreateOnlineOrderRequest{
		Items: []LineItemRequest{{
			ProductID: productID,
			UnitName:  ptr("loaf"),
			Quantity:  ptr(1),
		}},
	}, &customerID)
	require.NoError(t, err)
	require.Nil(t, o.Items[0].UnitID)
	require.Equal(t, int64(1000), o.Items[0].PriceCents)
}

func TestCreateOrder_UnknownUnitFails(t *testing.T) {
	s := newStore()
	svc := newTestService(s)
	customerID := s.addUser(user.RoleCustomer)
	productID := simpleProduct(s, 1000)

	_, err := svc.CreateOnlineOrder(context.Background(), CreateOnlineOrderRequest{
		Items: []LineItemRequest{{
			ProductID: productID,
			UnitName:  ptr("crate"),
			Quantity:  ptr(1),
		}},
	}, &customerID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.Zero(t, s.commits)
}

func TestUpdateOrder_OtherCustomersOrderIsRejected(t *testing.T) {
	s := newStore()
	svc := newTestService(s)
	ownerID := s.addUser(user.RoleCustomer)
	otherID := s.addUser(user.RoleCustomer)
	productID := simpleProduct(s, 1000)

	o, err := svc.CreateOnlineOrder(context.Background(), CreateOnlineOrderRequest{
		Items: []LineItemRequest{lineItem(productID, 1)},
	}, &ownerID)
	require.NoError(t, err)

	_, err = svc.UpdateOrder(context.Background(), o.ID, UpdateOrderRequest{
		Address: ptr("elsewhere"),
	}, otherID)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestUpdateOrder_NonPendingIsRejected(t *testing.T) {
	s := newStore()
	svc := newTestService(s)
	staffID := s.addUser(user.RoleStaff)
	productID := simpleProduct(s, 1000)

	o, err := svc.CreatePOSOrder(context.Background(), CreatePOSOrderRequest{
		Items: []LineItemRequest{lineItem(productID, 1)},
	}, staffID)
	require.NoError(t, err)

	_, err = svc.UpdateOrder(context.Background(), o.ID, UpdateOrderRequest{
		Address: ptr("elsewhere"),
	}, staffID)
	require.ErrorIs(t, err, apperrors.ErrUnprocessable)
}

func TestUpdateOrder_RecordsAuditEntries(t *testing.T) {
	s := newStore()
	svc := newTestService(s)
	customerID := s.addUser(user.RoleCustomer)
	productID := simpleProduct(s, 1000)

	o, err := svc.CreateOnlineOrder(context.Background(), CreateOnlineOrderRequest{
		Phone: ptr("555-0100"),
		Items: []LineItemRequest{lineItem(productID, 1)},
	}, &customerID)
	require.NoError(t, err)
	require.Empty(t, s.audits)

	_, err = svc.UpdateOrder(context.Background(), o.ID, UpdateOrderRequest{
		Address: ptr("12 Main St"),
	}, customerID)
	require.NoError(t, err)

	require.Len(t, s.audits, 1)
	entry := s.audits[0]
	require.Equal(t, order.AuditModule, entry.Module)
	require.Equal(t, o.ID, entry.RecordID)
	require.Equal(t, "address", entry.FieldName)
	require.Nil(t, entry.OldValue)
	require.Equal(t, "12 Main St", *entry.NewValue)
	require.Equal(t, customerID, *entry.ChangedBy)
}

func TestUpdateOrder_ReconcilesItems(t *testing.T) {
	s := newStore()
	svc := newTestService(s)
	customerID := s.addUser(user.RoleCustomer)
	firstID := simpleProduct(s, 1000)
	secondID := s.addProduct(product.Product{Name: "rye", Enabled: true, PriceCents: 700})

	o, err := svc.CreateOnlineOrder(context.Background(), CreateOnlineOrderRequest{
		Items: []LineItemRequest{lineItem(firstID, 1)},
	}, &customerID)
	require.NoError(t, err)
	require.Equal(t, int64(1000), o.TotalCents)

	updated, err := svc.UpdateOrder(context.Background(), o.ID, UpdateOrderRequest{
		Items: []LineItemRequest{
			{ID: &o.Items[0].ID, Quantity: ptr(3)},
			lineItem(secondID, 2),
		},
	}, customerID)
	require.NoError(t, err)
	require.Len(t, updated.Items, 2)
	require.Equal(t, int64(3*1000+2*700), updated.TotalCents)
}

func TestUpdateOrder_TakesCurrentCatalogPrice(t *testing.T) {
	s := newStore()
	svc := newTestService(s)
	customerID := s.addUser(user.RoleCustomer)
	productID := simpleProduct(s, 1000)

	o, err := svc.CreateOnlineOrder(context.Background(), CreateOnlineOrderRequest{
		Items: []LineItemRequest{lineItem(productID, 1)},
	}, &customerID)
	require.NoError(t, err)
	require.Equal(t, int64(1000), o.Items[0].PriceCents)

	p := s.products[productID]
	p.PriceCents = 1200
	s.products[productID] = p

	updated, err := svc.UpdateOrder(context.Background(), o.ID, UpdateOrderRequest{
		Items: []LineItemRequest{{ID: &o.Items[0].ID, Quantity: ptr(2)}},
	}, customerID)
	require.NoError(t, err)
	require.Equal(t, int64(1200), updated.Items[0].PriceCents)
	require.Equal(t, int64(2400), updated.TotalCents)

	updated, err = svc.UpdateOrder(context.Background(), o.ID, UpdateOrderRequest{
		Items: []LineItemRequest{{ID: &o.Items[0].ID, PriceCents: ptr(int64(900))}},
	}, customerID)
	require.NoError(t, err)
	require.Equal(t, int64(900), updated.Items[0].PriceCents)
}

func TestUpdateOrder_TakesCurrentUnitPrice(t *testing.T) {
	s := newStore()
	svc := newTestService(s)
	customerID := s.addUser(user.RoleCustomer)
	productID := s.addProduct(product.Product{
		Name:       "sourdough",
		Enabled:    true,
		PriceCents: 900,
		Units:      []unit.Unit{{Name: "kg", PriceCents: 500, Enabled: true}},
	})

	o, err := svc.CreateOnlineOrder(context.Background(), CreateOnlineOrderRequest{
		Items: []LineItemRequest{{
			ProductID: productID,
			UnitName:  ptr("kg"),
			Quantity:  ptr(1),
		}},
	}, &customerID)
	require.NoError(t, err)
	require.Equal(t, int64(500), o.Items[0].PriceCents)

	p := s.products[productID]
	p.Units[0].PriceCents = 600
	s.products[productID] = p

	updated, err := svc.UpdateOrder(context.Background(), o.ID, UpdateOrderRequest{
		Items: []LineItemRequest{{ID: &o.Items[0].ID, Quantity: ptr(3)}},
	}, customerID)
	require.NoError(t, err)
	require.Equal(t, int64(600), updated.Items[0].PriceCents)
	require.Equal(t, int64(1800), updated.TotalCents)
}

func TestUpdateOrder_UnknownItemFails(t *testing.T) {
	s := newStore()
	svc := newTestService(s)
	customerID := s.addUser(user.RoleCustomer)
	productID := simpleProduct(s, 1000)

	o, err := svc.CreateOnlineOrder(context.Background(), CreateOnlineOrderRequest{
		Items: []LineItemRequest{lineItem(productID, 1)},
	}, &customerID)
	require.NoError(t, err)

	ghost := uuid.New()
	_, err = svc.UpdateOrder(context.Background(), o.ID, UpdateOrderRequest{
		Items: []LineItemRequest{{ID: &ghost, Quantity: ptr(1)}},
	}, customerID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCloseOrder_MarksDoneAndAudits(t *testing.T) {
	s := newStore()
	svc := newTestService(s)
	customerID := s.addUser(user.RoleCustomer)
	staffID := s.addUser(user.RoleStaff)
	productID := simpleProduct(s, 1000)

	o, err := svc.CreateOnlineOrder(context.Background(), CreateOnlineOrderRequest{
		Items: []LineItemRequest{lineItem(productID, 1)},
	}, &customerID)
	require.NoError(t, err)

	closed, err := svc.CloseOrder(context.Background(), o.ID, staffID)
	require.NoError(t, err)
	require.Equal(t, order.StatusDone, closed.Status)
	require.Equal(t, &staffID, closed.StaffID)

	var statusEntry bool
	for _, entry := range s.audits {
		if entry.FieldName == "status" {
			statusEntry = true
			require.Equal(t, string(order.StatusPending), *entry.OldValue)
			require.Equal(t, string(order.StatusDone), *entry.NewValue)
		}
	}
	require.True(t, statusEntry)
}

func TestCloseOrder_AlreadyClosedFails(t *testing.T) {
	s := newStore()
	svc := newTestService(s)
	staffID := s.addUser(user.RoleStaff)
	productID := simpleProduct(s, 1000)

	o, err := svc.CreatePOSOrder(context.Background(), CreatePOSOrderRequest{
		Items: []LineItemRequest{lineItem(productID, 1)},
	}, staffID)
	require.NoError(t, err)

	_, err = svc.CloseOrder(context.Background(), o.ID, staffID)
	require.ErrorIs(t, err, apperrors.ErrUnprocessable)
}

func TestDeleteOrder_RequiresAdmin(t *testing.T) {
	s := newStore()
	svc := newTestService(s)
	staffID := s.addUser(user.RoleStaff)
	productID := simpleProduct(s, 1000)

	o, err := svc.CreatePOSOrder(context.Background(), CreatePOSOrderRequest{
		Items: []LineItemRequest{lineItem(productID, 1)},
	}, staffID)
	require.NoError(t, err)

	err = svc.DeleteOrder(context.Background(), o.ID, staffID)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestDeleteOrder_SoftDeletesAndAudits(t *testing.T) {
	s := newStore()
	svc := newTestService(s)
	adminID := s.addUser(user.RoleAdmin)
	productID := simpleProduct(s, 1000)

	o, err := svc.CreatePOSOrder(context.Background(), CreatePOSOrderRequest{
		Items: []LineItemRequest{lineItem(productID, 1)},
	}, adminID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOrder(context.Background(), o.ID, adminID))

	_, err = svc.GetOrder(context.Background(), o.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	fields := make(map[string]bool)
	for _, entry := range s.audits {
		require.Nil(t, entry.NewValue)
		fields[entry.FieldName] = true
	}
	for _, field := range []string{"status", "address", "phone", "email", "customerName"} {
		require.True(t, fields[field], "missing deletion entry for %s", field)
	}
}

func TestOrderNumbers_SequentialWithinMonth(t *testing.T) {
	s := newStore()
	svc := newTestService(s)
	staffID := s.addUser(user.RoleStaff)
	productID := simpleProduct(s, 1000)

	prefix := monthPrefix(time.Now())
	for i := 1; i <= 3; i++ {
		o, err := svc.CreatePOSOrder(context.Background(), CreatePOSOrderRequest{
			Items: []LineItemRequest{lineItem(productID, 1)},
		}, staffID)
		require.NoError(t, err)
		require.Equal(t, fmt.Sprintf("%s%08d", prefix, i), o.Name)
	}
}

func TestListOrders_ReturnsTotalCount(t *testing.T) {
	s := newStore()
	svc := newTestService(s)
	staffID := s.addUser(user.RoleStaff)
	productID := simpleProduct(s, 1000)

	for i := 0; i < 3; i++ {
		_, err := svc.CreatePOSOrder(context.Background(), CreatePOSOrderRequest{
			Items: []LineItemRequest{lineItem(productID, 1)},
		}, staffID)
		require.NoError(t, err)
	}

	orders, total, err := svc.ListOrders(context.Background(), &order.QueryOrdersModel{Limit: 10})
	require.NoError(t, err)
	require.Len(t, orders, 3)
	require.Equal(t, int64(3), total)
	for _, o := range orders {
		require.Len(t, o.Items, 1)
	}
}
