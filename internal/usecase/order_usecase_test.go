package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodapp/internal/domain/entity"
	"foodapp/pkg/errors"
)

func newOrderFixture() (*OrderUseCase, *memOrderRepo, *memCartRepo, *entity.Account, *entity.Account) {
	customer := &entity.Account{ID: "cust1", Role: entity.RoleCustomer}
	owner := &entity.Account{ID: "own1", Role: entity.RoleStore}

	orderRepo := newMemOrderRepo()
	cartRepo := newMemCartRepo()
	storeRepo := newMemStoreRepo(&entity.Store{ID: "s1", AccountID: "own1", Name: "Bún Chả 36"})

	uc := NewOrderUseCase(orderRepo, cartRepo, storeRepo, nil)
	return uc, orderRepo, cartRepo, customer, owner
}

func seedCart(t *testing.T, cartRepo *memCartRepo, customerID string) {
	t.Helper()
	require.NoError(t, cartRepo.Save(context.Background(), &entity.Cart{
		CustomerID: customerID,
		StoreID:    "s1",
		Items: []entity.CartItem{
			{FoodID: "pho", FoodName: "Phở bò", Price: 45000, Quantity: 2},
		},
	}))
}

func TestCheckout(t *testing.T) {
	uc, _, cartRepo, customer, _ := newOrderFixture()
	ctx := context.Background()
	seedCart(t, cartRepo, customer.ID)

	order, err := uc.Checkout(ctx, customer, CheckoutInput{
		DeliveryAddress: "12 Lý Thường Kiệt",
		ShippingFee:     15000,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, "s1", order.StoreID)
	assert.Equal(t, entity.PaymentMethodCash, order.PaymentMethod)
	assert.Equal(t, 105000.0, order.TotalAmount())

	// The cart empties after checkout.
	cart, err := cartRepo.Get(ctx, customer.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCheckoutEmptyCart(t *testing.T) {
	uc, _, _, customer, _ := newOrderFixture()

	_, err := uc.Checkout(context.Background(), customer, CheckoutInput{DeliveryAddress: "somewhere"})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestOrderStatusFlow(t *testing.T) {
	uc, _, cartRepo, customer, owner := newOrderFixture()
	ctx := context.Background()
	seedCart(t, cartRepo, customer.ID)

	order, err := uc.Checkout(ctx, customer, CheckoutInput{DeliveryAddress: "somewhere"})
	require.NoError(t, err)

	// The store walks the order through its lifecycle.
	for _, status := range []string{
		entity.OrderStatusConfirmed,
		entity.OrderStatusDelivering,
		entity.OrderStatusCompleted,
	} {
		order, err = uc.UpdateStatus(ctx, owner, order.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, order.Status)
	}

	// No transitions out of a completed order.
	_, err = uc.UpdateStatus(ctx, owner, order.ID, entity.OrderStatusCancelled)
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestCustomerCanOnlyCancelPending(t *testing.T) {
	uc, _, cartRepo, customer, owner := newOrderFixture()
	ctx := context.Background()
	seedCart(t, cartRepo, customer.ID)

	order, err := uc.Checkout(ctx, customer, CheckoutInput{DeliveryAddress: "somewhere"})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(ctx, customer, order.ID, entity.OrderStatusConfirmed)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	order, err = uc.UpdateStatus(ctx, customer, order.ID, entity.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, order.Status)

	// A confirmed order is past the point of cancellation.
	seedCart(t, cartRepo, customer.ID)
	order, err = uc.Checkout(ctx, customer, CheckoutInput{DeliveryAddress: "somewhere"})
	require.NoError(t, err)
	_, err = uc.UpdateStatus(ctx, owner, order.ID, entity.OrderStatusConfirmed)
	require.NoError(t, err)
	_, err = uc.UpdateStatus(ctx, customer, order.ID, entity.OrderStatusCancelled)
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestOrderAccessControl(t *testing.T) {
	uc, _, cartRepo, customer, owner := newOrderFixture()
	ctx := context.Background()
	seedCart(t, cartRepo, customer.ID)

	order, err := uc.Checkout(ctx, customer, CheckoutInput{DeliveryAddress: "somewhere"})
	require.NoError(t, err)

	// Customer, the store owner and admins may read the order.
	_, err = uc.GetOrder(ctx, customer, order.ID)
	assert.NoError(t, err)
	_, err = uc.GetOrder(ctx, owner, order.ID)
	assert.NoError(t, err)
	_, err = uc.GetOrder(ctx, &entity.Account{ID: "adm", Role: entity.RoleAdmin}, order.ID)
	assert.NoError(t, err)

	_, err = uc.GetOrder(ctx, &entity.Account{ID: "other", Role: entity.RoleCustomer}, order.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestRevenueStats(t *testing.T) {
	uc, orderRepo, _, _, owner := newOrderFixture()
	ctx := context.Background()

	year := 2026
	mk := func(id string, month time.Month, status string, price float64) {
		require.NoError(t, orderRepo.Create(ctx, &entity.Order{
			ID:        id,
			StoreID:   "s1",
			Status:    status,
			Items:     []entity.OrderItem{{Price: price, Quantity: 1}},
			CreatedAt: time.Date(year, month, 10, 12, 0, 0, 0, time.Local),
		}))
	}
	mk("o1", time.January, entity.OrderStatusCompleted, 50000)
	mk("o2", time.January, entity.OrderStatusCompleted, 30000)
	mk("o3", time.April, entity.OrderStatusCompleted, 20000)
	mk("o4", time.April, entity.OrderStatusCancelled, 99999) // not revenue

	monthly, err := uc.RevenueStats(ctx, owner, year, "month")
	require.NoError(t, err)
	require.Len(t, monthly, 12)
	assert.Equal(t, 80000.0, monthly[0].Revenue)
	assert.Equal(t, 2, monthly[0].OrderCount)
	assert.Equal(t, 20000.0, monthly[3].Revenue)
	assert.Equal(t, 0.0, monthly[1].Revenue)

	quarterly, err := uc.RevenueStats(ctx, owner, year, "quarter")
	require.NoError(t, err)
	require.Len(t, quarterly, 4)
	assert.Equal(t, 80000.0, quarterly[0].Revenue)
	assert.Equal(t, 20000.0, quarterly[1].Revenue)

	yearly, err := uc.RevenueStats(ctx, owner, year, "year")
	require.NoError(t, err)
	require.Len(t, yearly, 1)
	assert.Equal(t, 100000.0, yearly[0].Revenue)
	assert.Equal(t, 3, yearly[0].OrderCount)

	_, err = uc.RevenueStats(ctx, owner, year, "weekly")
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}

func TestRevenueByFood(t *testing.T) {
	uc, orderRepo, _, _, owner := newOrderFixture()
	ctx := context.Background()

	year := 2026
	mk := func(id, status string, items ...entity.OrderItem) {
		require.NoError(t, orderRepo.Create(ctx, &entity.Order{
			ID:        id,
			StoreID:   "s1",
			Status:    status,
			Items:     items,
			CreatedAt: time.Date(year, time.March, 10, 12, 0, 0, 0, time.Local),
		}))
	}
	mk("o1", entity.OrderStatusCompleted,
		entity.OrderItem{FoodID: "pho", FoodName: "Phở bò", Price: 45000, Quantity: 2},
		entity.OrderItem{FoodID: "tra", FoodName: "Trà đá", Price: 5000, Quantity: 2})
	mk("o2", entity.OrderStatusCompleted,
		entity.OrderItem{FoodID: "pho", FoodName: "Phở bò", Price: 45000, Quantity: 1})
	mk("o3", entity.OrderStatusPending,
		entity.OrderItem{FoodID: "pho", FoodName: "Phở bò", Price: 45000, Quantity: 9})

	stats, err := uc.RevenueByFood(ctx, owner, year)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	// Best seller first; the pending order does not count.
	assert.Equal(t, "pho", stats[0].FoodID)
	assert.Equal(t, 3, stats[0].Quantity)
	assert.Equal(t, 135000.0, stats[0].Revenue)
	assert.Equal(t, "tra", stats[1].FoodID)
	assert.Equal(t, 10000.0, stats[1].Revenue)
}
