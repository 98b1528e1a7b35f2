package repository

import (
	"context"

	"foodapp/internal/domain/entity"
)

type FoodFilter struct {
	StoreID    string
	CategoryID string
	MealTime   string
	Search     string
}

type FoodRepository interface {
	Create(ctx context.Context, food *entity.Food) error
	GetByID(ctx context.Context, id string) (*entity.Food, error)
	List(ctx context.Context, filter FoodFilter, limit, offset int) ([]*entity.Food, int64, error)
	Update(ctx context.Context, food *entity.Food) error
	Delete(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]*entity.Category, error)

	CreateMenu(ctx context.Context, menu *entity.Menu) error
	GetMenuByID(ctx context.Context, id string) (*entity.Menu, error)
	ListMenusByStore(ctx context.Context, storeID string) ([]*entity.Menu, error)
	UpdateMenu(ctx context.Context, menu *entity.Menu) error
	DeleteMenu(ctx context.Context, id string) error
}
