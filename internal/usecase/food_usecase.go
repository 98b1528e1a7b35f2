package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"foodapp/internal/domain/entity"
	"foodapp/internal/domain/repository"
	"foodapp/pkg/errors"
)

type FoodUseCase struct {
	foodRepo  repository.FoodRepository
	storeRepo repository.StoreRepository
}

func NewFoodUseCase(foodRepo repository.FoodRepository, storeRepo repository.StoreRepository) *FoodUseCase {
	return &FoodUseCase{
		foodRepo:  foodRepo,
		storeRepo: storeRepo,
	}
}

type CreateFoodInput struct {
	CategoryID    string  `json:"category_id"`
	Name          string  `json:"name" validate:"required,min=2,max=100"`
	Description   string  `json:"description" validate:"max=1000"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	Image         string  `json:"image" validate:"omitempty,url"`
	MealTime      string  `json:"meal_time" validate:"omitempty,oneof=BREAKFAST LUNCH DINNER ANYTIME"`
	AvailableFrom string  `json:"available_from" validate:"omitempty,len=5"`
	AvailableTo   string  `json:"available_to" validate:"omitempty,len=5"`
}

// requireOwnStore resolves the caller's store and verifies ownership.
func (uc *FoodUseCase) requireOwnStore(ctx context.Context, owner *entity.Account) (*entity.Store, error) {
	if !owner.IsStoreOwner() {
		return nil, errors.Forbidden("Only store accounts can manage foods", nil)
	}
	store, err := uc.storeRepo.GetByAccountID(ctx, owner.ID)
	if err != nil {
		return nil, errors.NotFound("Store", err)
	}
	return store, nil
}

func (uc *FoodUseCase) CreateFood(ctx context.Context, owner *entity.Account, input CreateFoodInput) (*entity.Food, error) {
	store, err := uc.requireOwnStore(ctx, owner)
	if err != nil {
		return nil, err
	}

	mealTime := input.MealTime
	if mealTime == "" {
		mealTime = entity.MealTimeAnytime
	}

	now := time.Now()
	food := &entity.Food{
		ID:            uuid.New().String(),
		StoreID:       store.ID,
		CategoryID:    input.CategoryID,
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		Image:         input.Image,
		MealTime:      mealTime,
		IsAvailable:   true,
		AvailableFrom: input.AvailableFrom,
		AvailableTo:   input.AvailableTo,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.foodRepo.Create(ctx, food); err != nil {
		return nil, err
	}
	return food, nil
}

func (uc *FoodUseCase) GetFood(ctx context.Context, id string) (*entity.Food, error) {
	return uc.foodRepo.GetByID(ctx, id)
}

func (uc *FoodUseCase) ListFoods(ctx context.Context, filter repository.FoodFilter, limit, offset int) ([]*entity.Food, int64, error) {
	return uc.foodRepo.List(ctx, filter, limit, offset)
}

type UpdateFoodInput struct {
	CategoryID    string  `json:"category_id"`
	Name          string  `json:"name" validate:"omitempty,min=2,max=100"`
	Description   string  `json:"description" validate:"max=1000"`
	Price         float64 `json:"price" validate:"omitempty,gt=0"`
	Image         string  `json:"image" validate:"omitempty,url"`
	MealTime      string  `json:"meal_time" validate:"omitempty,oneof=BREAKFAST LUNCH DINNER ANYTIME"`
	IsAvailable   *bool   `json:"is_available"`
	AvailableFrom string  `json:"available_from" validate:"omitempty,len=5"`
	AvailableTo   string  `json:"available_to" validate:"omitempty,len=5"`
}

func (uc *FoodUseCase) UpdateFood(ctx context.Context, owner *entity.Account, foodID string, input UpdateFoodInput) (*entity.Food, error) {
	store, err := uc.requireOwnStore(ctx, owner)
	if err != nil {
		return nil, err
	}

	food, err := uc.foodRepo.GetByID(ctx, foodID)
	if err != nil {
		return nil, err
	}
	if food.StoreID != store.ID {
		return nil, errors.Forbidden("Food belongs to another store", nil)
	}

	if input.CategoryID != "" {
		food.CategoryID = input.CategoryID
	}
	if input.Name != "" {
		food.Name = input.Name
	}
	if input.Description != "" {
		food.Description = input.Description
	}
	if input.Price > 0 {
		food.Price = input.Price
	}
	if input.Image != "" {
		food.Image = input.Image
	}
	if input.MealTime != "" {
		food.MealTime = input.MealTime
	}
	if input.IsAvailable != nil {
		food.IsAvailable = *input.IsAvailable
	}
	if input.AvailableFrom != "" {
		food.AvailableFrom = input.AvailableFrom
	}
	if input.AvailableTo != "" {
		food.AvailableTo = input.AvailableTo
	}
	food.UpdatedAt = time.Now()

	if err := uc.foodRepo.Update(ctx, food); err != nil {
		return nil, err
	}
	return food, nil
}

func (uc *FoodUseCase) DeleteFood(ctx context.Context, owner *entity.Account, foodID string) error {
	store, err := uc.requireOwnStore(ctx, owner)
	if err != nil {
		return err
	}

	food, err := uc.foodRepo.GetByID(ctx, foodID)
	if err != nil {
		return err
	}
	if food.StoreID != store.ID {
		return errors.Forbidden("Food belongs to another store", nil)
	}

	return uc.foodRepo.Delete(ctx, foodID)
}

func (uc *FoodUseCase) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	return uc.foodRepo.ListCategories(ctx)
}

type MenuInput struct {
	Name     string   `json:"name" validate:"required,min=2,max=100"`
	MenuType string   `json:"menu_type" validate:"required,oneof=BREAKFAST LUNCH DINNER ANYTIME"`
	FoodIDs  []string `json:"food_ids" validate:"required,min=1"`
}

func (uc *FoodUseCase) CreateMenu(ctx context.Context, owner *entity.Account, input MenuInput) (*entity.Menu, error) {
	store, err := uc.requireOwnStore(ctx, owner)
	if err != nil {
		return nil, err
	}

	// Every referenced food must exist and belong to this store.
	for _, foodID := range input.FoodIDs {
		food, err := uc.foodRepo.GetByID(ctx, foodID)
		if err != nil {
			return nil, errors.BadRequest("menu references an unknown food", err)
		}
		if food.StoreID != store.ID {
			return nil, errors.Forbidden("menu references a food from another store", nil)
		}
	}

	now := time.Now()
	menu := &entity.Menu{
		ID:        uuid.New().String(),
		StoreID:   store.ID,
		Name:      input.Name,
		MenuType:  input.MenuType,
		FoodIDs:   input.FoodIDs,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.foodRepo.CreateMenu(ctx, menu); err != nil {
		return nil, err
	}
	return menu, nil
}

func (uc *FoodUseCase) ListMenus(ctx context.Context, storeID string) ([]*entity.Menu, error) {
	return uc.foodRepo.ListMenusByStore(ctx, storeID)
}

func (uc *FoodUseCase) UpdateMenu(ctx context.Context, owner *entity.Account, menuID string, input MenuInput) (*entity.Menu, error) {
	store, err := uc.requireOwnStore(ctx, owner)
	if err != nil {
		return nil, err
	}

	menu, err := uc.foodRepo.GetMenuByID(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if menu.StoreID != store.ID {
		return nil, errors.Forbidden("Menu belongs to another store", nil)
	}

	menu.Name = input.Name
	menu.MenuType = input.MenuType
	menu.FoodIDs = input.FoodIDs
	menu.UpdatedAt = time.Now()

	if err := uc.foodRepo.UpdateMenu(ctx, menu); err != nil {
		return nil, err
	}
	return menu, nil
}

func (uc *FoodUseCase) DeleteMenu(ctx context.Context, owner *entity.Account, menuID string) error {
	store, err := uc.requireOwnStore(ctx, owner)
	if err != nil {
		return err
	}

	menu, err := uc.foodRepo.GetMenuByID(ctx, menuID)
	if err != nil {
		return err
	}
	if menu.StoreID != store.ID {
		return errors.Forbidden("Menu belongs to another store", nil)
	}

	return uc.foodRepo.DeleteMenu(ctx, menuID)
}
