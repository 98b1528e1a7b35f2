package repository

import (
	"context"

	"foodapp/internal/domain/entity"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByOrderID(ctx context.Context, orderID string) (*entity.Review, error)
	ListByStore(ctx context.Context, storeID string, limit, offset int) ([]*entity.Review, int64, error)
	ListByFood(ctx context.Context, foodID string, limit, offset int) ([]*entity.Review, int64, error)
}
