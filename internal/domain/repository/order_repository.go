package repository

import (
	"context"
	"time"

	"foodapp/internal/domain/entity"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListByCustomer(ctx context.Context, customerID string, status string, limit, offset int) ([]*entity.Order, int64, error)
	ListByStore(ctx context.Context, storeID string, status string, limit, offset int) ([]*entity.Order, int64, error)
	Update(ctx context.Context, order *entity.Order) error

	// ListCompletedByStoreBetween feeds the revenue statistics.
	ListCompletedByStoreBetween(ctx context.Context, storeID string, from, to time.Time) ([]*entity.Order, error)
}
