package repository

import (
	"context"

	"foodapp/internal/domain/entity"
)

type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	GetByID(ctx context.Context, id string) (*entity.Store, error)
	GetByAccountID(ctx context.Context, accountID string) (*entity.Store, error)
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Store, int64, error)
	Update(ctx context.Context, store *entity.Store) error
}
