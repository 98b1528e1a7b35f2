package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodapp/internal/domain/entity"
	"foodapp/pkg/errors"
)

func newCartFixture() (*CartUseCase, *entity.Account) {
	customer := &entity.Account{ID: "cust1", Role: entity.RoleCustomer}
	foodRepo := newMemFoodRepo(
		&entity.Food{ID: "pho", StoreID: "s1", Name: "Phở bò", Price: 45000, IsAvailable: true, Active: true},
		&entity.Food{ID: "bun", StoreID: "s1", Name: "Bún chả", Price: 40000, IsAvailable: true, Active: true},
		&entity.Food{ID: "com", StoreID: "s2", Name: "Cơm tấm", Price: 35000, IsAvailable: true, Active: true},
		&entity.Food{ID: "soldout", StoreID: "s1", Name: "Bánh mì", Price: 20000, IsAvailable: false, Active: true},
	)
	return NewCartUseCase(newMemCartRepo(), foodRepo), customer
}

func TestAddToCart(t *testing.T) {
	uc, customer := newCartFixture()
	ctx := context.Background()

	cart, err := uc.AddToCart(ctx, customer, AddToCartInput{FoodID: "pho", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, "s1", cart.StoreID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 90000.0, cart.Total())

	// Same food again merges quantities.
	cart, err = uc.AddToCart(ctx, customer, AddToCartInput{FoodID: "pho", Quantity: 1})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	// Another food from the same store is a second line item.
	cart, err = uc.AddToCart(ctx, customer, AddToCartInput{FoodID: "bun", Quantity: 1})
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
}

func TestAddToCartSingleStore(t *testing.T) {
	uc, customer := newCartFixture()
	ctx := context.Background()

	_, err := uc.AddToCart(ctx, customer, AddToCartInput{FoodID: "pho", Quantity: 1})
	require.NoError(t, err)

	// A food from a different store is rejected.
	_, err = uc.AddToCart(ctx, customer, AddToCartInput{FoodID: "com", Quantity: 1})
	assert.True(t, errors.Is(err, "CONFLICT"))

	// Unless the caller opts into replacing the cart.
	cart, err := uc.AddToCart(ctx, customer, AddToCartInput{FoodID: "com", Quantity: 1, Replace: true})
	require.NoError(t, err)
	assert.Equal(t, "s2", cart.StoreID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "com", cart.Items[0].FoodID)
}

func TestAddToCartUnavailableFood(t *testing.T) {
	uc, customer := newCartFixture()

	_, err := uc.AddToCart(context.Background(), customer, AddToCartInput{FoodID: "soldout", Quantity: 1})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestUpdateQuantity(t *testing.T) {
	uc, customer := newCartFixture()
	ctx := context.Background()

	_, err := uc.AddToCart(ctx, customer, AddToCartInput{FoodID: "pho", Quantity: 2})
	require.NoError(t, err)

	cart, err := uc.UpdateQuantity(ctx, customer, "pho", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	_, err = uc.UpdateQuantity(ctx, customer, "pho", -1)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))

	_, err = uc.UpdateQuantity(ctx, customer, "missing", 1)
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	// Zero removes the item; the emptied cart drops its store binding
	// so a food from any store can start the next cart.
	cart, err = uc.UpdateQuantity(ctx, customer, "pho", 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, "", cart.StoreID)

	cart, err = uc.AddToCart(ctx, customer, AddToCartInput{FoodID: "com", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, "s2", cart.StoreID)
}
