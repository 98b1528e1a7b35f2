package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"foodapp/internal/domain/entity"
	"foodapp/internal/domain/repository"
	"foodapp/pkg/errors"
	"foodapp/pkg/logger"
)

type StoreUseCase struct {
	storeRepo   repository.StoreRepository
	accountRepo repository.AccountRepository
}

func NewStoreUseCase(storeRepo repository.StoreRepository, accountRepo repository.AccountRepository) *StoreUseCase {
	return &StoreUseCase{
		storeRepo:   storeRepo,
		accountRepo: accountRepo,
	}
}

type CreateStoreInput struct {
	Name         string  `json:"name" validate:"required,min=2,max=100"`
	Description  string  `json:"description" validate:"max=1000"`
	Address      string  `json:"address" validate:"required,max=200"`
	Latitude     float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude    float64 `json:"longitude" validate:"min=-180,max=180"`
	OpeningHours string  `json:"opening_hours" validate:"max=100"`
	Avatar       string  `json:"avatar" validate:"omitempty,url"`
}

// CreateStore registers the owner's store. One store per account; the
// store stays unlisted until an admin approves it.
func (uc *StoreUseCase) CreateStore(ctx context.Context, owner *entity.Account, input CreateStoreInput) (*entity.Store, error) {
	if !owner.IsStoreOwner() {
		return nil, errors.Forbidden("Only store accounts can register a store", nil)
	}
	if existing, err := uc.storeRepo.GetByAccountID(ctx, owner.ID); err == nil && existing != nil {
		return nil, errors.Conflict("account already owns a store")
	}

	now := time.Now()
	store := &entity.Store{
		ID:           uuid.New().String(),
		AccountID:    owner.ID,
		Name:         input.Name,
		Description:  input.Description,
		Address:      input.Address,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		OpeningHours: input.OpeningHours,
		Avatar:       input.Avatar,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.storeRepo.Create(ctx, store); err != nil {
		return nil, err
	}

	owner.StoreID = store.ID
	owner.UpdatedAt = now
	if err := uc.accountRepo.Update(ctx, owner); err != nil {
		logger.Warn("Failed to link store %s to account %s: %v", store.ID, owner.ID, err)
	}

	logger.Info("Store %s created by %s, awaiting approval", store.ID, owner.ID)
	return store, nil
}

func (uc *StoreUseCase) GetStore(ctx context.Context, id string) (*entity.Store, error) {
	return uc.storeRepo.GetByID(ctx, id)
}

func (uc *StoreUseCase) ListStores(ctx context.Context, search string, limit, offset int) ([]*entity.Store, int64, error) {
	return uc.storeRepo.List(ctx, search, limit, offset)
}

type UpdateStoreInput struct {
	Name         string  `json:"name" validate:"omitempty,min=2,max=100"`
	Description  string  `json:"description" validate:"max=1000"`
	Address      string  `json:"address" validate:"max=200"`
	Latitude     float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude    float64 `json:"longitude" validate:"min=-180,max=180"`
	OpeningHours string  `json:"opening_hours" validate:"max=100"`
	Avatar       string  `json:"avatar" validate:"omitempty,url"`
}

func (uc *StoreUseCase) UpdateStore(ctx context.Context, owner *entity.Account, storeID string, input UpdateStoreInput) (*entity.Store, error) {
	store, err := uc.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store.AccountID != owner.ID && owner.Role != entity.RoleAdmin {
		return nil, errors.Forbidden("You do not own this store", nil)
	}

	if input.Name != "" {
		store.Name = input.Name
	}
	if input.Description != "" {
		store.Description = input.Description
	}
	if input.Address != "" {
		store.Address = input.Address
	}
	if input.Latitude != 0 {
		store.Latitude = input.Latitude
	}
	if input.Longitude != 0 {
		store.Longitude = input.Longitude
	}
	if input.OpeningHours != "" {
		store.OpeningHours = input.OpeningHours
	}
	if input.Avatar != "" {
		store.Avatar = input.Avatar
	}
	store.UpdatedAt = time.Now()

	if err := uc.storeRepo.Update(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// ApproveStore is admin-only and makes the store visible in listings.
func (uc *StoreUseCase) ApproveStore(ctx context.Context, admin *entity.Account, storeID string) (*entity.Store, error) {
	if admin.Role != entity.RoleAdmin {
		return nil, errors.Forbidden("Admin access required", nil)
	}

	store, err := uc.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store.IsApproved {
		return store, nil
	}

	store.IsApproved = true
	store.UpdatedAt = time.Now()
	if err := uc.storeRepo.Update(ctx, store); err != nil {
		return nil, err
	}

	logger.Info("Store %s approved by admin %s", storeID, admin.ID)
	return store, nil
}
