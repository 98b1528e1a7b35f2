package repository

import (
	"context"

	"foodapp/internal/domain/entity"
)

// CartRepository is the persistent key-value storage for cart
// contents, keyed by customer id.
type CartRepository interface {
	Get(ctx context.Context, customerID string) (*entity.Cart, error)
	Save(ctx context.Context, cart *entity.Cart) error
	Clear(ctx context.Context, customerID string) error
}
