package usecase

import (
	"context"
	"time"

	"foodapp/internal/domain/entity"
	"foodapp/internal/domain/repository"
	"foodapp/pkg/errors"
)

type CartUseCase struct {
	cartRepo repository.CartRepository
	foodRepo repository.FoodRepository
}

func NewCartUseCase(cartRepo repository.CartRepository, foodRepo repository.FoodRepository) *CartUseCase {
	return &CartUseCase{
		cartRepo: cartRepo,
		foodRepo: foodRepo,
	}
}

type AddToCartInput struct {
	FoodID   string `json:"food_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1,max=50"`
	Note     string `json:"note" validate:"max=200"`

	// Replace acknowledges dropping the existing cart when the food
	// comes from a different store.
	Replace bool `json:"replace"`
}

// AddToCart puts a food in the customer's cart. A cart holds items
// from one store only; adding from another store fails unless the
// caller opts into replacing the cart.
func (uc *CartUseCase) AddToCart(ctx context.Context, customer *entity.Account, input AddToCartInput) (*entity.Cart, error) {
	food, err := uc.foodRepo.GetByID(ctx, input.FoodID)
	if err != nil {
		return nil, err
	}
	if !food.IsAvailable || !food.Active {
		return nil, errors.BadRequest("food is not available right now", nil)
	}

	cart, err := uc.cartRepo.Get(ctx, customer.ID)
	if err != nil {
		return nil, err
	}

	if cart.StoreID != "" && cart.StoreID != food.StoreID {
		if !input.Replace {
			return nil, errors.Conflict("cart contains items from another store")
		}
		cart.Items = nil
		cart.StoreID = ""
	}

	cart.CustomerID = customer.ID
	cart.StoreID = food.StoreID

	found := false
	for i := range cart.Items {
		if cart.Items[i].FoodID == food.ID {
			cart.Items[i].Quantity += input.Quantity
			if input.Note != "" {
				cart.Items[i].Note = input.Note
			}
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, entity.CartItem{
			FoodID:   food.ID,
			FoodName: food.Name,
			Price:    food.Price,
			Quantity: input.Quantity,
			Note:     input.Note,
		})
	}
	cart.UpdatedAt = time.Now()

	if err := uc.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (uc *CartUseCase) GetCart(ctx context.Context, customer *entity.Account) (*entity.Cart, error) {
	return uc.cartRepo.Get(ctx, customer.ID)
}

// UpdateQuantity sets the quantity of one item; zero removes it. An
// empty cart loses its store binding so the next add starts fresh.
func (uc *CartUseCase) UpdateQuantity(ctx context.Context, customer *entity.Account, foodID string, quantity int) (*entity.Cart, error) {
	if quantity < 0 {
		return nil, errors.Validation("quantity must not be negative", nil)
	}

	cart, err := uc.cartRepo.Get(ctx, customer.ID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range cart.Items {
		if cart.Items[i].FoodID == foodID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, errors.NotFound("Cart item", nil)
	}

	if quantity == 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	} else {
		cart.Items[idx].Quantity = quantity
	}
	if len(cart.Items) == 0 {
		cart.StoreID = ""
	}
	cart.UpdatedAt = time.Now()

	if err := uc.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (uc *CartUseCase) ClearCart(ctx context.Context, customer *entity.Account) error {
	return uc.cartRepo.Clear(ctx, customer.ID)
}
