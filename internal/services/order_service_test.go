package services

import (
	"testing"

	"retail_pos/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrderService() (OrderService, *fakeOrderRepo, *fakeBillRepo, *fakeNotifier) {
	billRepo := newFakeBillRepo()
	orderRepo := newFakeOrderRepo(billRepo)
	notifier := &fakeNotifier{}
	svc := NewOrderService(orderRepo, billRepo, nil, notifier, 0)
	return svc, orderRepo, billRepo, notifier
}

func seedBill(t *testing.T, billRepo *fakeBillRepo, userID uint) {
	t.Helper()
	bill, err := billRepo.GetOrCreate(userID)
	require.NoError(t, err)
	require.NoError(t, billRepo.CreateItem(&models.BillItem{
		BillID: bill.ID, ProductID: 1, ProductName: "Oxford Shirt", Color: "blue",
		UnitPrice: 1499, Quantity: 2, DiscountPercent: 10,
	}))
	require.NoError(t, billRepo.CreateItem(&models.BillItem{
		BillID: bill.ID, ProductID: 2, ProductName: "Chinos", Color: "khaki",
		UnitPrice: 2199, Quantity: 1,
	}))
}

func validInfo() CustomerInfo {
	return CustomerInfo{Name: "Asha", Phone: "9876543210", OrderMode: models.OrderModePickup, PaymentMode: models.PaymentModeUPI}
}

func TestCreateFromBillValidation(t *testing.T) {
	svc, _, billRepo, _ := newTestOrderService()
	seedBill(t, billRepo, 1)

	tests := []struct {
		name string
		mod  func(*CustomerInfo)
		want error
	}{
		{"missing name", func(i *CustomerInfo) { i.Name = "" }, ErrNameRequired},
		{"short phone", func(i *CustomerInfo) { i.Phone = "12345" }, ErrPhoneTooShort},
		{"delivery without address", func(i *CustomerInfo) { i.OrderMode = models.OrderModeDelivery }, ErrAddressRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := validInfo()
			tt.mod(&info)
			_, err := svc.CreateFromBill(1, info)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	// Pickup and print orders never need an address.
	info := validInfo()
	info.OrderMode = models.OrderModePrint
	_, err := svc.CreateFromBill(1, info)
	assert.NoError(t, err)
}

func TestCreateFromBillEmptyBill(t *testing.T) {
	svc, _, _, _ := newTestOrderService()
	_, err := svc.CreateFromBill(1, validInfo())
	assert.ErrorIs(t, err, ErrEmptyBill)
}

func TestCreateFromBillFreezesPricing(t *testing.T) {
	svc, _, billRepo, notifier := newTestOrderService()
	seedBill(t, billRepo, 1)

	order, err := svc.CreateFromBill(1, validInfo())
	require.NoError(t, err)

	require.Len(t, order.Items, 2)
	assert.Equal(t, 1499.0, order.Items[0].Amount, "unit price copied from the bill line")
	assert.Equal(t, 10.0, order.Items[0].DiscountPercent)
	assert.InDelta(t, 1499*2*0.9+2199, order.TotalAmount, 0.001)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Greater(t, order.OrderNumber, int64(1000))

	require.Len(t, notifier.created, 1)
	assert.Equal(t, order.ID, notifier.created[0].ID)

	bill, err := billRepo.GetByUserID(1)
	require.NoError(t, err)
	assert.Empty(t, bill.Items, "bill empties in the same transaction")
}

func TestCreateFromBillDefaultsModes(t *testing.T) {
	svc, _, billRepo, _ := newTestOrderService()
	seedBill(t, billRepo, 1)

	order, err := svc.CreateFromBill(1, CustomerInfo{Name: "Asha", Phone: "9876543210"})
	require.NoError(t, err)
	assert.Equal(t, models.OrderModePickup, order.OrderMode)
	assert.Equal(t, models.PaymentModeCash, order.PaymentMode)
}

func TestUpdateStatusFollowsLifecycle(t *testing.T) {
	svc, orderRepo, billRepo, notifier := newTestOrderService()
	seedBill(t, billRepo, 1)
	order, err := svc.CreateFromBill(1, validInfo())
	require.NoError(t, err)

	for _, next := range []models.OrderStatus{
		models.OrderStatusConfirmed,
		models.OrderStatusPacked,
		models.OrderStatusDispatched,
		models.OrderStatusOutForDeliver,
		models.OrderStatusDelivered,
	} {
		updated, err := svc.UpdateStatus(order.ID, next)
		require.NoError(t, err, "transition to %s", next)
		assert.Equal(t, next, updated.Status)
	}
	assert.Len(t, notifier.statusChanged, 5)

	// Delivered can only move to return.
	_, err = svc.UpdateStatus(order.ID, models.OrderStatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	stored, _ := orderRepo.GetByID(order.ID)
	assert.Equal(t, models.OrderStatusDelivered, stored.Status)
}

func TestUpdateStatusRejectsSkips(t *testing.T) {
	svc, _, billRepo, _ := newTestOrderService()
	seedBill(t, billRepo, 1)
	order, err := svc.CreateFromBill(1, validInfo())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(order.ID, models.OrderStatusDelivered)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.UpdateStatus(9999, models.OrderStatusConfirmed)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetStatsExcludesCancelledRevenue(t *testing.T) {
	svc, _, billRepo, _ := newTestOrderService()

	seedBill(t, billRepo, 1)
	first, err := svc.CreateFromBill(1, validInfo())
	require.NoError(t, err)

	seedBill(t, billRepo, 2)
	_, err = svc.CreateFromBill(2, validInfo())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(first.ID, models.OrderStatusCancelled)
	require.NoError(t, err)

	stats, err := svc.GetStats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalOrders)
	assert.InDelta(t, first.TotalAmount, stats.TotalRevenue, 0.001, "only the live order counts")
	assert.Equal(t, int64(1), stats.ByStatus[models.OrderStatusCancelled])
}
